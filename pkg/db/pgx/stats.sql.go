// source: stats.sql

package pgx

import (
	"context"
)

const addProcessTime = `-- name: AddProcessTime :exec
INSERT INTO process_stats (project_id, amount, duration, stat_type)
VALUES ($1, $2, $3, $4)
`

type AddProcessTimeParams struct {
	ProjectID int64
	Amount    int32
	Duration  int64
	StatType  string
}

func (q *Queries) AddProcessTime(ctx context.Context, arg AddProcessTimeParams) error {
	_, err := q.db.Exec(ctx, addProcessTime,
		arg.ProjectID,
		arg.Amount,
		arg.Duration,
		arg.StatType,
	)
	return err
}

const predictProcessTime = `-- name: PredictProcessTime :one
SELECT COALESCE(AVG(s.duration), 0)::bigint AS duration
FROM (
    SELECT duration
    FROM process_stats
    WHERE stat_type = $1
    ORDER BY created_at DESC
    LIMIT 50
) s
`

func (q *Queries) PredictProcessTime(ctx context.Context, statType string) (int64, error) {
	row := q.db.QueryRow(ctx, predictProcessTime, statType)
	var duration int64
	err := row.Scan(&duration)
	return duration, err
}
