package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"
)

// QueueRelationshipMsg requests an analysis of one project.
type QueueRelationshipMsg struct {
	Message      string                `json:"message"`
	ProjectID    int64                 `json:"project_id"`
	Method       common.AnalysisMethod `json:"method"`
	StoryContext string                `json:"story_context,omitempty"`
}

// Analyzer runs a stored project analysis.
type Analyzer interface {
	Analyze(ctx context.Context, projectID int64, opts relation.AnalyzeOptions) (*relation.AnalysisResult, error)
}

// ProcessTimer records analysis durations. It may be nil.
type ProcessTimer interface {
	PredictAnalysisTime(ctx context.Context, method common.AnalysisMethod) (time.Duration, error)
	AddAnalysisTime(ctx context.Context, projectID int64, amount int, duration time.Duration, method common.AnalysisMethod) error
}

// NewRelationshipMessage encodes an analysis request.
func NewRelationshipMessage(projectID int64, method common.AnalysisMethod, storyContext string) ([]byte, error) {
	return json.Marshal(QueueRelationshipMsg{
		Message:      "Analyze relationships",
		ProjectID:    projectID,
		Method:       method,
		StoryContext: storyContext,
	})
}

// ProcessRelationshipMessage decodes msg and runs the analysis it requests.
func ProcessRelationshipMessage(ctx context.Context, analyzer Analyzer, timer ProcessTimer, msg []byte) error {
	var data QueueRelationshipMsg
	if err := json.Unmarshal(msg, &data); err != nil {
		return fmt.Errorf("%w: failed to decode relationship message: %v", ErrMalformedMessage, err)
	}
	if data.ProjectID <= 0 {
		return fmt.Errorf("%w: relationship message without project id", ErrMalformedMessage)
	}

	method := data.Method
	if method == "" {
		method = common.AnalysisKeyword
	}
	if timer != nil {
		if prediction, err := timer.PredictAnalysisTime(ctx, method); err == nil {
			logger.Info("[Queue] Prediction for relationship analysis", "project_id", data.ProjectID, "time_ms", prediction.Milliseconds())
		}
	}

	logger.Info("[Queue] Analyzing relationships", "project_id", data.ProjectID, "method", method)

	start := time.Now()
	res, err := analyzer.Analyze(ctx, data.ProjectID, relation.AnalyzeOptions{
		Method:       method,
		StoryContext: data.StoryContext,
	})
	if err != nil {
		return err
	}
	if res.Warning != "" {
		logger.Warn("[Queue] Analysis finished with warning", "project_id", data.ProjectID, "warning", res.Warning)
	}

	if timer != nil {
		// Stats are bucketed by the method that actually ran.
		amount := len(res.Batch.Relationships)
		if err := timer.AddAnalysisTime(ctx, data.ProjectID, amount, time.Since(start), res.Batch.AnalysisMethod); err != nil {
			logger.Warn("[Queue] Failed to record analysis time", "project_id", data.ProjectID, "err", err)
		}
	}
	return nil
}
