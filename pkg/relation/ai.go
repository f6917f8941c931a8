package relation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

// SuggestRequest is the input handed to a Suggester.
type SuggestRequest struct {
	Characters   []common.Character
	Scenes       []common.Scene
	StoryContext string
}

// Suggestion is a single relationship proposed by an external model. Values
// are untrusted until they pass through ExtractWithAI.
type Suggestion struct {
	Character1  string  `json:"character1"`
	Character2  string  `json:"character2"`
	Strength    float64 `json:"strength"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

// Suggester proposes relationships for a project, usually by asking a
// language model.
type Suggester interface {
	SuggestRelationships(ctx context.Context, req SuggestRequest) ([]Suggestion, error)
}

// ExtractWithAI asks the suggester for relationships and normalises the
// answer: pairs with an empty name or the same name twice are dropped,
// strength is clamped to [0, 1], unknown types become neutral and repeated
// pairs keep their first occurrence. Scene lists are recomputed from the
// scene text; a pair never mentioned together is attributed to scene 1.
func ExtractWithAI(
	ctx context.Context,
	suggester Suggester,
	characters []common.Character,
	scenes []common.Scene,
	storyContext string,
) ([]common.Relationship, error) {
	if suggester == nil {
		return nil, fmt.Errorf("no relationship suggester configured")
	}

	ordered := sortScenes(scenes)
	suggestions, err := suggester.SuggestRelationships(ctx, SuggestRequest{
		Characters:   characters,
		Scenes:       ordered,
		StoryContext: storyContext,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get relationship suggestions: %w", err)
	}

	return normaliseSuggestions(suggestions, ordered), nil
}

func normaliseSuggestions(suggestions []Suggestion, scenes []common.Scene) []common.Relationship {
	texts := make([]string, len(scenes))
	for i, s := range scenes {
		texts[i] = searchableText(s)
	}

	seen := make(map[string]struct{}, len(suggestions))
	relations := make([]common.Relationship, 0, len(suggestions))
	for _, s := range suggestions {
		a := strings.TrimSpace(s.Character1)
		b := strings.TrimSpace(s.Character2)
		if a == "" || b == "" || strings.EqualFold(a, b) {
			continue
		}
		key := pairKey(a, b)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		c1, c2 := canonicalPair(a, b)
		relations = append(relations, common.Relationship{
			Character1:  c1,
			Character2:  c2,
			Strength:    clampStrength(s.Strength),
			Scenes:      coMentionScenes(c1, c2, scenes, texts),
			Type:        coerceType(s.Type),
			Description: strings.TrimSpace(s.Description),
		})
	}

	SortRelationships(relations)
	return relations
}

// coMentionScenes lists the sequence numbers of scenes mentioning both names.
func coMentionScenes(a, b string, scenes []common.Scene, texts []string) []int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	var out []int
	for i, s := range scenes {
		if !containsWord(texts[i], la) || !containsWord(texts[i], lb) {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == s.SequenceNumber {
			continue
		}
		out = append(out, s.SequenceNumber)
	}
	if len(out) == 0 {
		return []int{1}
	}
	return out
}

func clampStrength(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func coerceType(raw string) common.RelationshipType {
	t := common.RelationshipType(strings.ToLower(strings.TrimSpace(raw)))
	if t.Valid() {
		return t
	}
	return common.RelationshipNeutral
}
