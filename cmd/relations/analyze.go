package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/OFFIS-RIT/storyboard/backend/internal/aiclient"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/loader"
	loaderio "github.com/OFFIS-RIT/storyboard/backend/pkg/loader/io"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/relation"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type analyzeOutput struct {
	Input          string                `json:"input"`
	Relationships  []common.Relationship `json:"relationships"`
	AnalysisMethod common.AnalysisMethod `json:"analysis_method"`
	AnalyzedAt     time.Time             `json:"analyzed_at"`
	Warning        string                `json:"warning,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one or more project files",
	Long: `Analyze reads project files containing characters and scenes and prints
the inferred relationships as JSON.

Examples:
  relations analyze --input project.json
  relations analyze --input a.json --input b.json --method ai
  relations analyze --input project.json --method ai --story-context "A heist in Lisbon"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, _ := cmd.Flags().GetStringArray("input")
		method, _ := cmd.Flags().GetString("method")
		storyContext, _ := cmd.Flags().GetString("story-context")

		if len(inputs) == 0 {
			return fmt.Errorf("at least one --input is required")
		}
		m := common.AnalysisMethod(method)
		if !m.Valid() {
			return fmt.Errorf("unknown method %q", method)
		}

		params := relation.AnalyzerParams{}
		if m == common.AnalysisAI {
			client, err := aiclient.FromEnv()
			if err != nil {
				return fmt.Errorf("failed to create AI client: %w", err)
			}
			params.Suggester = relation.NewAISuggester(client, aiclient.SuggesterOptionsFromEnv())
		}

		outputs, err := analyzeFiles(cmd.Context(), relation.NewAnalyzer(params), inputs, m, storyContext)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), outputs)
	},
}

func init() {
	analyzeCmd.Flags().StringArrayP("input", "i", nil, "Project JSON file (repeatable)")
	analyzeCmd.Flags().StringP("method", "m", string(common.AnalysisKeyword), "Extraction method (keyword or ai)")
	analyzeCmd.Flags().String("story-context", "", "Story context overriding the one in the input file")
}

func analyzeFiles(
	ctx context.Context,
	analyzer *relation.Analyzer,
	paths []string,
	method common.AnalysisMethod,
	storyContext string,
) ([]analyzeOutput, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	outputs := make([]analyzeOutput, len(paths))
	files := loaderio.NewIOProjectFileLoader()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			file := loader.ProjectFile{FilePath: path, Loader: files}
			input, err := file.Load(ctx)
			if err != nil {
				return err
			}
			sc := storyContext
			if sc == "" {
				sc = input.StoryContext
			}

			rels, used, warning := analyzer.Extract(ctx, method, input.Characters, input.Scenes, sc)
			if rels == nil {
				rels = []common.Relationship{}
			}
			logger.Debug("[CLI] Analyzed file", "input", path, "relationships", len(rels), "method", used)

			outputs[i] = analyzeOutput{
				Input:          path,
				Relationships:  rels,
				AnalysisMethod: used,
				AnalyzedAt:     time.Now().UTC(),
				Warning:        warning,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
