package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/OFFIS-RIT/storyboard/backend/internal/server/middleware"
)

// ClearRelationshipsHandler deletes the stored relationships of a project so
// the next read analyzes it again.
func ClearRelationshipsHandler(c echo.Context) error {
	type clearRelationshipsData struct {
		ID int64 `param:"id" validate:"required,min=1"`
	}

	data := new(clearRelationshipsData)
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
	if err := service.Clear(c.Request().Context(), data.ID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Relationships cleared"})
}
