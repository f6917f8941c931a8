package store

import (
	"context"
	"errors"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

var (
	// ErrNotAnalyzed is returned by Load when a project has no persisted
	// analysis yet.
	ErrNotAnalyzed = errors.New("project has not been analyzed")
	// ErrSaveFailed wraps any failure while replacing a relationship batch.
	// The previously persisted batch stays authoritative.
	ErrSaveFailed = errors.New("failed to save relationships")
	// ErrInvalidBatch is returned when a batch is rejected before it reaches
	// the database.
	ErrInvalidBatch = errors.New("invalid relationship batch")
	// ErrProjectNotFound is returned when a project id does not exist.
	ErrProjectNotFound = errors.New("project not found")
)

// RelationshipStorage persists the relationship batch of a project. A batch
// is always replaced as a whole.
type RelationshipStorage interface {
	Load(ctx context.Context, projectID int64) (*common.RelationshipBatch, error)
	Save(
		ctx context.Context,
		projectID int64,
		relationships []common.Relationship,
		method common.AnalysisMethod,
	) error
	Clear(ctx context.Context, projectID int64) error
}

// ProjectProvider reads the inputs of a relationship analysis.
type ProjectProvider interface {
	GetCharacters(ctx context.Context, projectID int64) ([]common.Character, error)
	// GetScenes returns the scenes ordered by sequence number.
	GetScenes(ctx context.Context, projectID int64) ([]common.Scene, error)
	// GetStoryContext returns an empty string when no context is stored.
	GetStoryContext(ctx context.Context, projectID int64) (string, error)
}

// ProjectStorage combines the provider and the relationship storage of a
// project, as implemented by the database backend.
type ProjectStorage interface {
	RelationshipStorage
	ProjectProvider
}
