package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/OFFIS-RIT/storyboard/backend/internal/queue"
	"github.com/OFFIS-RIT/storyboard/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"
)

// AnalyzeRelationshipsHandler clears and re-runs the analysis of a project.
// With async set the job is queued and 202 is returned.
func AnalyzeRelationshipsHandler(c echo.Context) error {
	type analyzeRelationshipsData struct {
		ID           int64  `param:"id" validate:"required,min=1"`
		Method       string `json:"method" validate:"omitempty,oneof=keyword ai"`
		StoryContext string `json:"story_context"`
		Async        bool   `json:"async"`
	}

	data := new(analyzeRelationshipsData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request params"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request params"})
	}

	if ok, err := authorizeProject(c, data.ID); !ok {
		return err
	}

	method := common.AnalysisMethod(data.Method)
	if method == "" {
		method = common.AnalysisKeyword
	}
	app := c.(*middleware.AppContext).App

	if data.Async {
		body, err := queue.NewRelationshipMessage(data.ID, method, data.StoryContext)
		if err != nil {
			return errorResponse(c, err)
		}
		if err := app.Publish(queue.RelationshipQueue, body); err != nil {
			logger.Error("[Server] Failed to queue relationship analysis", "project_id", data.ID, "err", err)
			return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Failed to queue analysis"})
		}
		return c.JSON(http.StatusAccepted, messageResponse{Message: "Analysis queued"})
	}

	res, err := app.Relations.Analyze(c.Request().Context(), data.ID, relation.AnalyzeOptions{
		Method:       method,
		StoryContext: data.StoryContext,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resultResponse(res))
}
