package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/OFFIS-RIT/storyboard/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"
)

// GetRelationshipsHandler returns the stored relationships of a project and
// analyzes the project first when nothing is stored.
func GetRelationshipsHandler(c echo.Context) error {
	type getRelationshipsData struct {
		ID     int64  `param:"id" validate:"required,min=1"`
		Method string `query:"method" validate:"omitempty,oneof=keyword ai"`
	}

	data := new(getRelationshipsData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request params"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request params"})
	}

	if ok, err := authorizeProject(c, data.ID); !ok {
		return err
	}

	service := c.(*middleware.AppContext).App.Relations
	res, err := service.Get(c.Request().Context(), data.ID, relation.AnalyzeOptions{
		Method: common.AnalysisMethod(data.Method),
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, resultResponse(res))
}
