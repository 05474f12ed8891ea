package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/prepnerdz/prepnerdz-api/pkg/errors"
	"github.com/prepnerdz/prepnerdz-api/pkg/response"
)

const maxBodyBytes = 1 << 20

// RequestValidation rejects mutating requests that do not carry a JSON object
// body. The body is restored for the handler.
func RequestValidation() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if err != nil || mediaType != "application/json" {
			response.Abort(c, appErrors.Clone(appErrors.ErrValidation, "content type must be application/json"))
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
		if err != nil {
			response.Abort(c, appErrors.Clone(appErrors.ErrValidation, "request body too large"))
			return
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil || len(obj) == 0 {
			response.Abort(c, appErrors.Clone(appErrors.ErrValidation, "request body must be a non-empty JSON object"))
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}
