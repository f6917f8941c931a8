package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/OFFIS-RIT/storyboard/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/leaselock"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/store"
)

type messageResponse struct {
	Message string `json:"message"`
}

type relationshipsResponse struct {
	Relationships  []common.Relationship `json:"relationships"`
	AnalysisMethod common.AnalysisMethod `json:"analysis_method"`
	AnalyzedAt     time.Time             `json:"analyzed_at"`
	Warning        string                `json:"warning,omitempty"`
}

func batchResponse(batch *common.RelationshipBatch, warning string) relationshipsResponse {
	rels := batch.Relationships
	if rels == nil {
		rels = []common.Relationship{}
	}
	return relationshipsResponse{
		Relationships:  rels,
		AnalysisMethod: batch.AnalysisMethod,
		AnalyzedAt:     batch.AnalyzedAt,
		Warning:        warning,
	}
}

func resultResponse(res *relation.AnalysisResult) relationshipsResponse {
	return batchResponse(res.Batch, res.Warning)
}

// authorizeProject checks that the current user may access the project. It
// writes the error response itself and returns false when access is denied.
func authorizeProject(c echo.Context, projectID int64) (bool, error) {
	cc := c.(*middleware.AppContext)
	if cc.User == nil {
		return false, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	owner, err := cc.App.Projects.ProjectOwner(c.Request().Context(), projectID)
	if err != nil {
		return false, errorResponse(c, err)
	}
	if !middleware.CanAccessProject(cc.User, owner) {
		return false, c.JSON(http.StatusForbidden, messageResponse{Message: "You are not allowed to access this project"})
	}
	return true, nil
}

func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrProjectNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Project not found"})
	case errors.Is(err, store.ErrInvalidBatch):
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	case errors.Is(err, leaselock.ErrBusy):
		return c.JSON(http.StatusConflict, messageResponse{Message: "Project is being analyzed"})
	default:
		logger.Error("[Server] Relationship request failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Internal server error"})
	}
}
