// source: projects.sql

package pgx

import (
	"context"
)

const getProject = `-- name: GetProject :one
SELECT id, public_id, name, owner_id, created_at, updated_at
FROM projects
WHERE id = $1
`

func (q *Queries) GetProject(ctx context.Context, id int64) (Project, error) {
	row := q.db.QueryRow(ctx, getProject, id)
	var i Project
	err := row.Scan(
		&i.ID,
		&i.PublicID,
		&i.Name,
		&i.OwnerID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getProjectCharacters = `-- name: GetProjectCharacters :many
SELECT id, public_id, project_id, name, description, role
FROM characters
WHERE project_id = $1
ORDER BY id
`

func (q *Queries) GetProjectCharacters(ctx context.Context, projectID int64) ([]Character, error) {
	rows, err := q.db.Query(ctx, getProjectCharacters, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Character
	for rows.Next() {
		var i Character
		if err := rows.Scan(
			&i.ID,
			&i.PublicID,
			&i.ProjectID,
			&i.Name,
			&i.Description,
			&i.Role,
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

const getProjectScenes = `-- name: GetProjectScenes :many
SELECT id, public_id, project_id, sequence_number, raw_idea, enhanced_prompt, context_summary, director_settings
FROM scenes
WHERE project_id = $1
ORDER BY sequence_number, id
`

func (q *Queries) GetProjectScenes(ctx context.Context, projectID int64) ([]Scene, error) {
	rows, err := q.db.Query(ctx, getProjectScenes, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Scene
	for rows.Next() {
		var i Scene
		if err := rows.Scan(
			&i.ID,
			&i.PublicID,
			&i.ProjectID,
			&i.SequenceNumber,
			&i.RawIdea,
			&i.EnhancedPrompt,
			&i.ContextSummary,
			&i.DirectorSettings,
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

const getStoryContext = `-- name: GetStoryContext :one
SELECT content
FROM story_contexts
WHERE project_id = $1
`

func (q *Queries) GetStoryContext(ctx context.Context, projectID int64) (string, error) {
	row := q.db.QueryRow(ctx, getStoryContext, projectID)
	var content string
	err := row.Scan(&content)
	return content, err
}
