package server

import (
	"github.com/OFFIS-RIT/storyboard/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/storyboard/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Relationship routes
	apiRoutes.GET("/projects/:id/relationships", routes.GetRelationshipsHandler, middleware.RequirePermission("relationship.view"))
	apiRoutes.POST("/projects/:id/relationships/analyze", routes.AnalyzeRelationshipsHandler, middleware.RequirePermission("relationship.analyze"))
	apiRoutes.PUT("/projects/:id/relationships", routes.ReplaceRelationshipsHandler, middleware.RequirePermission("relationship.update"))
	apiRoutes.DELETE("/projects/:id/relationships", routes.ClearRelationshipsHandler, middleware.RequirePermission("relationship.delete"))
}
