package main

import (
	"github.com/gin-gonic/gin"

	"github.com/prepnerdz/prepnerdz-api/internal/handler"
	"github.com/prepnerdz/prepnerdz-api/internal/middleware"
	"github.com/prepnerdz/prepnerdz-api/internal/service"
)

type handlers struct {
	resources *handler.ResourceHandler
	taxonomy  *handler.TaxonomyHandler
	bookmarks *handler.BookmarkHandler
	session   *handler.SessionHandler
	metrics   *handler.MetricsHandler
}

// registerRoutes mounts the resource API under prefix and the operational
// endpoints at the root.
func registerRoutes(r *gin.Engine, prefix string, auth *service.AuthService, cookieName string, h handlers) {
	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	requireSession := middleware.JWT(auth, cookieName)
	optionalSession := middleware.OptionalJWT(auth, cookieName)

	api := r.Group(prefix)

	resource := api.Group("/resource")
	resource.POST("/add", middleware.RequestValidation(), requireSession, middleware.AdminAuth(), h.resources.Add)
	resource.GET("", h.resources.ListByType)
	resource.GET("/recent", h.resources.Recent)
	resource.GET("/:id", h.resources.Get)

	api.GET("/search", h.resources.Search)

	getMyID := api.Group("/getmyid")
	getMyID.GET("/branchid", h.taxonomy.BranchID)
	getMyID.GET("/semesterid", h.taxonomy.SemesterID)

	api.GET("/auth/user/session", optionalSession, h.session.Session)

	bookmark := api.Group("/bookmark", requireSession)
	bookmark.GET("/user/:userId", h.bookmarks.List)
	bookmark.POST("", h.bookmarks.Add)
	bookmark.DELETE("", h.bookmarks.Remove)
}
