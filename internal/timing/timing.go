// Package timing records how long relationship analyses take and predicts the
// duration of the next one from recent history.
package timing

import (
	"context"
	"time"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	pgdb "github.com/OFFIS-RIT/storyboard/backend/pkg/db/pgx"
)

// StatType returns the stat bucket of an analysis method.
func StatType(method common.AnalysisMethod) string {
	return "relationships:" + string(method)
}

type Recorder struct {
	q *pgdb.Queries
}

func New(conn pgdb.DBTX) *Recorder {
	return &Recorder{q: pgdb.New(conn)}
}

// AddAnalysisTime stores the duration of one analysis. amount is the number of
// relationships it produced.
func (r *Recorder) AddAnalysisTime(
	ctx context.Context,
	projectID int64,
	amount int,
	duration time.Duration,
	method common.AnalysisMethod,
) error {
	return r.q.AddProcessTime(ctx, pgdb.AddProcessTimeParams{
		ProjectID: projectID,
		Amount:    int32(amount),
		Duration:  duration.Milliseconds(),
		StatType:  StatType(method),
	})
}

// PredictAnalysisTime averages the latest analyses of method. It returns zero
// when there is no history.
func (r *Recorder) PredictAnalysisTime(ctx context.Context, method common.AnalysisMethod) (time.Duration, error) {
	ms, err := r.q.PredictProcessTime(ctx, StatType(method))
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
