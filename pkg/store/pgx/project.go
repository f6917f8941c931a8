package pgx

import (
	"context"
	"encoding/json"
	"errors"

	pgdb "github.com/OFFIS-RIT/storyboard/backend/pkg/db/pgx"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
)

// GetCharacters returns the roster of a project.
func (s *RelationshipDBStorage) GetCharacters(ctx context.Context, projectID int64) ([]common.Character, error) {
	rows, err := pgdb.New(s.conn).GetProjectCharacters(ctx, projectID)
	if err != nil {
		return nil, err
	}

	characters := make([]common.Character, 0, len(rows))
	for _, r := range rows {
		characters = append(characters, common.Character{
			ID:          r.PublicID,
			Name:        r.Name,
			Description: r.Description,
			Role:        r.Role,
		})
	}
	return characters, nil
}

// GetScenes returns the scenes of a project ordered by sequence number.
// Director settings that cannot be decoded are treated as empty.
func (s *RelationshipDBStorage) GetScenes(ctx context.Context, projectID int64) ([]common.Scene, error) {
	rows, err := pgdb.New(s.conn).GetProjectScenes(ctx, projectID)
	if err != nil {
		return nil, err
	}

	scenes := make([]common.Scene, 0, len(rows))
	for _, r := range rows {
		var settings common.DirectorSettings
		if len(r.DirectorSettings) > 0 {
			if err := json.Unmarshal(r.DirectorSettings, &settings); err != nil {
				logger.Warn("[Store] Ignoring malformed director settings", "scene", r.PublicID, "err", err)
				settings = common.DirectorSettings{}
			}
		}
		scenes = append(scenes, common.Scene{
			ID:               r.PublicID,
			SequenceNumber:   int(r.SequenceNumber),
			RawIdea:          r.RawIdea,
			EnhancedPrompt:   r.EnhancedPrompt,
			ContextSummary:   r.ContextSummary,
			DirectorSettings: settings,
		})
	}
	return scenes, nil
}

// GetStoryContext returns the story context of a project, or an empty string
// when none is stored.
func (s *RelationshipDBStorage) GetStoryContext(ctx context.Context, projectID int64) (string, error) {
	content, err := pgdb.New(s.conn).GetStoryContext(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return content, nil
}

// ProjectOwner returns the owner id of a project or store.ErrProjectNotFound.
func (s *RelationshipDBStorage) ProjectOwner(ctx context.Context, projectID int64) (int64, error) {
	p, err := pgdb.New(s.conn).GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return 0, store.ErrProjectNotFound
		}
		return 0, err
	}
	return p.OwnerID, nil
}
