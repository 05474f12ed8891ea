package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	cloned := Clone(ErrValidation, "Please fill in all fields")
	assert.True(t, errors.Is(cloned, ErrValidation))
	assert.False(t, errors.Is(cloned, ErrNetwork))

	wrapped := Wrap(cloned, ErrSearchFailed.Code, ErrSearchFailed.Status, ErrSearchFailed.Message)
	assert.True(t, errors.Is(wrapped, ErrSearchFailed))
	assert.True(t, errors.Is(wrapped, ErrValidation))
}

func TestFromErrorNormalises(t *testing.T) {
	assert.Nil(t, FromError(nil))

	plain := fmt.Errorf("boom")
	appErr := FromError(plain)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.ErrorIs(t, appErr, plain)

	typed := Clone(ErrNotFound, "branch not found")
	assert.Same(t, typed, FromError(fmt.Errorf("lookup: %w", typed)))
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(fmt.Errorf("dial tcp: refused"), ErrNetwork.Code, ErrNetwork.Status, "GET /resource")
	assert.Equal(t, "GET /resource: dial tcp: refused", err.Error())
	assert.Equal(t, "<nil>", (*Error)(nil).Error())
}
