package pgx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pgdb "github.com/OFFIS-RIT/storyboard/backend/pkg/db/pgx"

	"github.com/OFFIS-RIT/storyboard/backend/internal/util"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

func newPublicID() (string, error) {
	return gonanoid.New()
}

// Load returns the persisted batch of a project or store.ErrNotAnalyzed.
func (s *RelationshipDBStorage) Load(ctx context.Context, projectID int64) (*common.RelationshipBatch, error) {
	q := pgdb.New(s.conn)

	analysis, err := q.GetRelationshipAnalysis(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, store.ErrNotAnalyzed
		}
		return nil, fmt.Errorf("failed to load relationship analysis: %w", err)
	}

	rows, err := q.GetProjectRelationships(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load relationships: %w", err)
	}

	relations := make([]common.Relationship, 0, len(rows))
	for _, r := range rows {
		scenes := []int{}
		if len(r.Scenes) > 0 {
			if err := json.Unmarshal(r.Scenes, &scenes); err != nil {
				return nil, fmt.Errorf("failed to decode scenes of relationship %s: %w", r.PublicID, err)
			}
		}
		relations = append(relations, common.Relationship{
			ID:          r.PublicID,
			Character1:  r.Character1,
			Character2:  r.Character2,
			Strength:    r.Strength,
			Scenes:      scenes,
			Type:        common.RelationshipType(r.Type),
			Description: r.Description,
		})
	}

	return &common.RelationshipBatch{
		ProjectID:      projectID,
		Relationships:  relations,
		AnalysisMethod: common.AnalysisMethod(analysis.AnalysisMethod),
		AnalyzedAt:     analysis.AnalyzedAt,
	}, nil
}

// Save replaces the relationships of a project. The batch is validated first,
// then the old rows are deleted, the new rows inserted and the analysis row
// upserted in one transaction. On any failure the transaction is rolled back
// and the error wraps store.ErrSaveFailed.
func (s *RelationshipDBStorage) Save(
	ctx context.Context,
	projectID int64,
	relationships []common.Relationship,
	method common.AnalysisMethod,
) error {
	if err := store.ValidateBatch(relationships, method); err != nil {
		return err
	}

	if err := s.save(ctx, projectID, relationships, method); err != nil {
		logger.Error("[Store] Failed to save relationships", "project_id", projectID, "err", err)
		return fmt.Errorf("%w: %w", store.ErrSaveFailed, err)
	}

	logger.Debug("[Store] Saved relationships", "project_id", projectID, "count", len(relationships), "method", method)
	return nil
}

func (s *RelationshipDBStorage) save(
	ctx context.Context,
	projectID int64,
	relationships []common.Relationship,
	method common.AnalysisMethod,
) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	qtx := pgdb.New(tx)

	if err := qtx.DeleteProjectRelationships(ctx, projectID); err != nil {
		return err
	}

	err = store.ChunkRange(len(relationships), relationshipChunk, func(start, end int) error {
		params, err := s.insertParams(projectID, relationships[start:end])
		if err != nil {
			return err
		}
		return qtx.InsertProjectRelationships(ctx, params)
	})
	if err != nil {
		return err
	}

	_, err = qtx.UpsertRelationshipAnalysis(ctx, pgdb.UpsertRelationshipAnalysisParams{
		ProjectID:      projectID,
		AnalysisMethod: string(method),
		AnalyzedAt:     s.now().UTC(),
	})
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *RelationshipDBStorage) insertParams(
	projectID int64,
	part []common.Relationship,
) (pgdb.InsertProjectRelationshipsParams, error) {
	params := pgdb.InsertProjectRelationshipsParams{
		ProjectID:    projectID,
		PublicIds:    make([]string, 0, len(part)),
		Character1s:  make([]string, 0, len(part)),
		Character2s:  make([]string, 0, len(part)),
		Strengths:    make([]float64, 0, len(part)),
		Scenes:       make([]string, 0, len(part)),
		Types:        make([]string, 0, len(part)),
		Descriptions: make([]string, 0, len(part)),
	}

	for _, r := range part {
		id, err := s.ids()
		if err != nil {
			return params, fmt.Errorf("failed to generate ID for relationship: %w", err)
		}
		scenes := r.Scenes
		if scenes == nil {
			scenes = []int{}
		}
		encoded, err := json.Marshal(scenes)
		if err != nil {
			return params, err
		}

		params.PublicIds = append(params.PublicIds, id)
		params.Character1s = append(params.Character1s, util.SanitizePostgresText(r.Character1))
		params.Character2s = append(params.Character2s, util.SanitizePostgresText(r.Character2))
		params.Strengths = append(params.Strengths, r.Strength)
		params.Scenes = append(params.Scenes, string(encoded))
		params.Types = append(params.Types, string(r.Type))
		params.Descriptions = append(params.Descriptions, util.SanitizePostgresText(r.Description))
	}
	return params, nil
}

// Clear deletes the relationships and the analysis row of a project.
func (s *RelationshipDBStorage) Clear(ctx context.Context, projectID int64) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)
	qtx := pgdb.New(tx)

	if err := qtx.DeleteProjectRelationships(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete relationships: %w", err)
	}
	if err := qtx.DeleteRelationshipAnalysis(ctx, projectID); err != nil {
		return fmt.Errorf("failed to delete relationship analysis: %w", err)
	}
	return tx.Commit(ctx)
}
