package middleware

import (
	"context"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/labstack/echo/v4"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"
)

type AppUser struct {
	UserID      int64
	Role        string
	Permissions []string
}

// RelationshipService is the analysis API used by the handlers.
type RelationshipService interface {
	Get(ctx context.Context, projectID int64, opts relation.AnalyzeOptions) (*relation.AnalysisResult, error)
	Analyze(ctx context.Context, projectID int64, opts relation.AnalyzeOptions) (*relation.AnalysisResult, error)
	Replace(
		ctx context.Context,
		projectID int64,
		relationships []common.Relationship,
		method common.AnalysisMethod,
	) (*common.RelationshipBatch, error)
	Clear(ctx context.Context, projectID int64) error
}

// ProjectOwners resolves the owner of a project for access checks.
type ProjectOwners interface {
	ProjectOwner(ctx context.Context, projectID int64) (int64, error)
}

type App struct {
	Key            *keyfunc.Keyfunc
	Relations      RelationshipService
	Projects       ProjectOwners
	Publish        func(queueName string, data []byte) error
	MasterAPIKey   string
	MasterUserID   int64
	MasterUserRole string
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
