package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/OFFIS-RIT/storyboard/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

// ReplaceRelationshipsHandler stores an externally produced relationship set
// in place of the current one.
func ReplaceRelationshipsHandler(c echo.Context) error {
	type relationshipInput struct {
		Character1  string  `json:"character1" validate:"required"`
		Character2  string  `json:"character2" validate:"required"`
		Strength    float64 `json:"strength" validate:"min=0,max=1"`
		Scenes      []int   `json:"scenes"`
		Type        string  `json:"type" validate:"required,oneof=allies enemies neutral romantic family"`
		Description string  `json:"description"`
	}

	type replaceRelationshipsData struct {
		ID             int64               `param:"id" validate:"required,min=1"`
		AnalysisMethod string              `json:"analysis_method" validate:"required,oneof=keyword ai"`
		Relationships  []relationshipInput `json:"relationships" validate:"dive"`
	}

	data := new(replaceRelationshipsData)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request params"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request params"})
	}

	if ok, err := authorizeProject(c, data.ID); !ok {
		return err
	}

	rels := make([]common.Relationship, 0, len(data.Relationships))
	for _, r := range data.Relationships {
		rels = append(rels, common.Relationship{
			Character1:  r.Character1,
			Character2:  r.Character2,
			Strength:    r.Strength,
			Scenes:      r.Scenes,
			Type:        common.RelationshipType(r.Type),
			Description: r.Description,
		})
	}

	service := c.(*middleware.AppContext).App.Relations
	batch, err := service.Replace(c.Request().Context(), data.ID, rels, common.AnalysisMethod(data.AnalysisMethod))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, batchResponse(batch, ""))
}
