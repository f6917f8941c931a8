package relation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/store"
)

// Locker serialises writes to the relationships of a project.
type Locker interface {
	WithProjectLock(ctx context.Context, projectID int64, fn func(ctx context.Context) error) error
}

// AnalyzerParams configures an Analyzer. Suggester and Locker are optional:
// without a suggester AI requests fall back to keywords, without a locker
// writes are not serialised.
type AnalyzerParams struct {
	Storage   store.ProjectStorage
	Suggester Suggester
	Locker    Locker
}

// AnalyzeOptions selects how a project is analyzed.
type AnalyzeOptions struct {
	Method common.AnalysisMethod
	// StoryContext overrides the stored story context when non-empty.
	StoryContext string
}

// AnalysisResult is the outcome of a read or analysis. Warning is set when the
// requested AI analysis failed and keyword results were persisted instead.
// Generated reports whether the batch was produced by this call.
type AnalysisResult struct {
	Batch     *common.RelationshipBatch
	Warning   string
	Generated bool
}

// Analyzer runs relationship extraction for stored projects and persists the
// results.
type Analyzer struct {
	storage   store.ProjectStorage
	suggester Suggester
	locker    Locker
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(params AnalyzerParams) *Analyzer {
	return &Analyzer{
		storage:   params.Storage,
		suggester: params.Suggester,
		locker:    params.Locker,
	}
}

// Get returns the persisted batch of a project, analyzing it first when no
// batch exists.
func (a *Analyzer) Get(ctx context.Context, projectID int64, opts AnalyzeOptions) (*AnalysisResult, error) {
	batch, err := a.storage.Load(ctx, projectID)
	if err == nil {
		return &AnalysisResult{Batch: batch}, nil
	}
	if !errors.Is(err, store.ErrNotAnalyzed) {
		return nil, err
	}
	return a.Analyze(ctx, projectID, opts)
}

// Analyze re-runs extraction for a project and replaces its batch. When the
// save fails the previously stored batch is kept.
func (a *Analyzer) Analyze(ctx context.Context, projectID int64, opts AnalyzeOptions) (*AnalysisResult, error) {
	method := opts.Method
	if method == "" {
		method = common.AnalysisKeyword
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown analysis method %q", store.ErrInvalidBatch, method)
	}

	var result *AnalysisResult
	err := a.withLock(ctx, projectID, func(ctx context.Context) error {
		characters, err := a.storage.GetCharacters(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to load characters: %w", err)
		}
		scenes, err := a.storage.GetScenes(ctx, projectID)
		if err != nil {
			return fmt.Errorf("failed to load scenes: %w", err)
		}

		storyContext := strings.TrimSpace(opts.StoryContext)
		if storyContext == "" && method == common.AnalysisAI {
			storyContext, err = a.storage.GetStoryContext(ctx, projectID)
			if err != nil {
				return fmt.Errorf("failed to load story context: %w", err)
			}
		}

		relations, used, warning := a.extract(ctx, projectID, method, characters, scenes, storyContext)

		// Save replaces the batch and its method in one transaction, so a
		// method switch needs no separate clear.
		if err := a.storage.Save(ctx, projectID, relations, used); err != nil {
			return err
		}
		batch, err := a.storage.Load(ctx, projectID)
		if err != nil {
			return err
		}
		result = &AnalysisResult{Batch: batch, Warning: warning, Generated: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("[Relations] Project analyzed",
		"project_id", projectID,
		"method", result.Batch.AnalysisMethod,
		"relationships", len(result.Batch.Relationships),
	)
	return result, nil
}

// Extract runs the requested extractor over in-memory inputs without touching
// storage. It returns the relationships, the method that actually produced
// them and a warning when the AI extractor failed.
func (a *Analyzer) Extract(
	ctx context.Context,
	method common.AnalysisMethod,
	characters []common.Character,
	scenes []common.Scene,
	storyContext string,
) ([]common.Relationship, common.AnalysisMethod, string) {
	return a.extract(ctx, 0, method, characters, scenes, storyContext)
}

func (a *Analyzer) extract(
	ctx context.Context,
	projectID int64,
	method common.AnalysisMethod,
	characters []common.Character,
	scenes []common.Scene,
	storyContext string,
) ([]common.Relationship, common.AnalysisMethod, string) {
	if method != common.AnalysisAI {
		return Extract(characters, scenes), common.AnalysisKeyword, ""
	}

	relations, err := ExtractWithAI(ctx, a.suggester, characters, scenes, storyContext)
	if err == nil {
		return relations, common.AnalysisAI, ""
	}

	logger.Warn("[Relations] AI analysis failed, falling back to keywords", "project_id", projectID, "err", err)
	warning := fmt.Sprintf("AI analysis failed, keyword analysis used instead: %v", err)
	return Extract(characters, scenes), common.AnalysisKeyword, warning
}

// Replace validates externally supplied relationships and saves them as the
// batch of a project. Pairs are canonicalised, strength is clamped and types
// must be known.
func (a *Analyzer) Replace(
	ctx context.Context,
	projectID int64,
	relationships []common.Relationship,
	method common.AnalysisMethod,
) (*common.RelationshipBatch, error) {
	normalised, err := NormaliseRelationships(relationships)
	if err != nil {
		return nil, err
	}
	if err := store.ValidateBatch(normalised, method); err != nil {
		return nil, err
	}

	var batch *common.RelationshipBatch
	err = a.withLock(ctx, projectID, func(ctx context.Context) error {
		if err := a.storage.Save(ctx, projectID, normalised, method); err != nil {
			return err
		}
		batch, err = a.storage.Load(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Clear removes the batch of a project so the next Get analyzes it again.
func (a *Analyzer) Clear(ctx context.Context, projectID int64) error {
	return a.withLock(ctx, projectID, func(ctx context.Context) error {
		return a.storage.Clear(ctx, projectID)
	})
}

func (a *Analyzer) withLock(ctx context.Context, projectID int64, fn func(ctx context.Context) error) error {
	if a.locker == nil {
		return fn(ctx)
	}
	return a.locker.WithProjectLock(ctx, projectID, fn)
}

// NormaliseRelationships puts externally supplied relationships into
// canonical form: names trimmed and ordered, strength clamped, scenes sorted
// without duplicates. Unknown types are rejected.
func NormaliseRelationships(relationships []common.Relationship) ([]common.Relationship, error) {
	out := make([]common.Relationship, 0, len(relationships))
	for i, r := range relationships {
		if !r.Type.Valid() {
			return nil, fmt.Errorf("%w: relationship %d has unknown type %q", store.ErrInvalidBatch, i, r.Type)
		}
		c1, c2 := canonicalPair(strings.TrimSpace(r.Character1), strings.TrimSpace(r.Character2))
		r.Character1, r.Character2 = c1, c2
		r.Strength = clampStrength(r.Strength)
		r.Scenes = uniqueSorted(r.Scenes)
		r.Description = strings.TrimSpace(r.Description)
		out = append(out, r)
	}
	SortRelationships(out)
	return out, nil
}

func uniqueSorted(in []int) []int {
	out := slices.Clone(in)
	if out == nil {
		out = []int{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
