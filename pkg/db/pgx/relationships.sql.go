// source: relationships.sql

package pgx

import (
	"context"
	"time"
)

const deleteProjectRelationships = `-- name: DeleteProjectRelationships :exec
DELETE FROM character_relationships
WHERE project_id = $1
`

func (q *Queries) DeleteProjectRelationships(ctx context.Context, projectID int64) error {
	_, err := q.db.Exec(ctx, deleteProjectRelationships, projectID)
	return err
}

const deleteRelationshipAnalysis = `-- name: DeleteRelationshipAnalysis :exec
DELETE FROM relationship_analyses
WHERE project_id = $1
`

func (q *Queries) DeleteRelationshipAnalysis(ctx context.Context, projectID int64) error {
	_, err := q.db.Exec(ctx, deleteRelationshipAnalysis, projectID)
	return err
}

const getProjectRelationships = `-- name: GetProjectRelationships :many
SELECT id, public_id, project_id, character1, character2, strength, scenes, type, description, created_at
FROM character_relationships
WHERE project_id = $1
ORDER BY lower(character1), lower(character2)
`

func (q *Queries) GetProjectRelationships(ctx context.Context, projectID int64) ([]CharacterRelationship, error) {
	rows, err := q.db.Query(ctx, getProjectRelationships, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CharacterRelationship
	for rows.Next() {
		var i CharacterRelationship
		if err := rows.Scan(
			&i.ID,
			&i.PublicID,
			&i.ProjectID,
			&i.Character1,
			&i.Character2,
			&i.Strength,
			&i.Scenes,
			&i.Type,
			&i.Description,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRelationshipAnalysis = `-- name: GetRelationshipAnalysis :one
SELECT project_id, analysis_method, analyzed_at
FROM relationship_analyses
WHERE project_id = $1
`

func (q *Queries) GetRelationshipAnalysis(ctx context.Context, projectID int64) (RelationshipAnalysis, error) {
	row := q.db.QueryRow(ctx, getRelationshipAnalysis, projectID)
	var i RelationshipAnalysis
	err := row.Scan(&i.ProjectID, &i.AnalysisMethod, &i.AnalyzedAt)
	return i, err
}

const insertProjectRelationships = `-- name: InsertProjectRelationships :exec
INSERT INTO character_relationships (
    public_id, project_id, character1, character2, strength, scenes, type, description
)
SELECT t.public_id, $1, t.character1, t.character2, t.strength, t.scenes::jsonb, t.type, t.description
FROM unnest(
    $2::text[],
    $3::text[],
    $4::text[],
    $5::float8[],
    $6::text[],
    $7::text[],
    $8::text[]
) AS t(public_id, character1, character2, strength, scenes, type, description)
`

type InsertProjectRelationshipsParams struct {
	ProjectID    int64
	PublicIds    []string
	Character1s  []string
	Character2s  []string
	Strengths    []float64
	Scenes       []string
	Types        []string
	Descriptions []string
}

func (q *Queries) InsertProjectRelationships(ctx context.Context, arg InsertProjectRelationshipsParams) error {
	_, err := q.db.Exec(ctx, insertProjectRelationships,
		arg.ProjectID,
		arg.PublicIds,
		arg.Character1s,
		arg.Character2s,
		arg.Strengths,
		arg.Scenes,
		arg.Types,
		arg.Descriptions,
	)
	return err
}

const upsertRelationshipAnalysis = `-- name: UpsertRelationshipAnalysis :one
INSERT INTO relationship_analyses (project_id, analysis_method, analyzed_at)
VALUES ($1, $2, $3)
ON CONFLICT (project_id) DO UPDATE
SET analysis_method = EXCLUDED.analysis_method,
    analyzed_at     = EXCLUDED.analyzed_at
RETURNING project_id, analysis_method, analyzed_at
`

type UpsertRelationshipAnalysisParams struct {
	ProjectID      int64
	AnalysisMethod string
	AnalyzedAt     time.Time
}

func (q *Queries) UpsertRelationshipAnalysis(ctx context.Context, arg UpsertRelationshipAnalysisParams) (RelationshipAnalysis, error) {
	row := q.db.QueryRow(ctx, upsertRelationshipAnalysis, arg.ProjectID, arg.AnalysisMethod, arg.AnalyzedAt)
	var i RelationshipAnalysis
	err := row.Scan(&i.ProjectID, &i.AnalysisMethod, &i.AnalyzedAt)
	return i, err
}
