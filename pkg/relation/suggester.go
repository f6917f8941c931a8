package relation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/OFFIS-RIT/storyboard/backend/internal/util"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/ai"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/logger"
)

const (
	defaultMaxPromptTokens = 6000
	defaultMaxRetries      = 2
	defaultRetryBackoff    = time.Second
)

type suggestedRelationship struct {
	Character1  string  `json:"character1" jsonschema_description:"Name of the first character, spelled as in the character list"`
	Character2  string  `json:"character2" jsonschema_description:"Name of the second character, spelled as in the character list"`
	Type        string  `json:"type" jsonschema:"enum=allies,enum=enemies,enum=neutral,enum=romantic,enum=family" jsonschema_description:"Nature of the relationship"`
	Strength    float64 `json:"strength" jsonschema_description:"Importance of the relationship between 0.0 and 1.0"`
	Description string  `json:"description" jsonschema_description:"One sentence describing the relationship"`
}

type suggestResponse struct {
	Relationships []suggestedRelationship `json:"relationships" jsonschema_description:"Relationships between characters of the story"`
}

// AISuggesterOptions configures an AISuggester. Zero values select the
// defaults.
type AISuggesterOptions struct {
	// MaxPromptTokens bounds the scene digest. Negative disables the bound.
	MaxPromptTokens int
	MaxRetries      int
	RetryBackoff    time.Duration
	Encoding        string
	// Temperature overrides the client default when positive.
	Temperature float64
}

// AISuggester asks a language model for relationship suggestions using
// structured output.
type AISuggester struct {
	client ai.GraphAIClient
	opts   AISuggesterOptions
}

// NewAISuggester creates a suggester backed by client.
func NewAISuggester(client ai.GraphAIClient, opts AISuggesterOptions) *AISuggester {
	if opts.MaxPromptTokens == 0 {
		opts.MaxPromptTokens = defaultMaxPromptTokens
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = defaultRetryBackoff
	}
	if opts.Encoding == "" {
		opts.Encoding = ai.DefaultEncoding
	}
	return &AISuggester{client: client, opts: opts}
}

// SuggestRelationships implements Suggester.
func (s *AISuggester) SuggestRelationships(ctx context.Context, req SuggestRequest) ([]Suggestion, error) {
	if s.client == nil {
		return nil, fmt.Errorf("ai client is nil")
	}

	digest, truncated, err := ai.TruncateToTokens(s.opts.Encoding, sceneDigest(req.Scenes), s.opts.MaxPromptTokens)
	if err != nil {
		return nil, err
	}
	if truncated {
		logger.Warn("[Relations] Scene digest truncated to token budget", "max_tokens", s.opts.MaxPromptTokens)
	}

	storyContext := strings.TrimSpace(req.StoryContext)
	if storyContext == "" {
		storyContext = "(none)"
	}
	systemPrompt := fmt.Sprintf(ai.RelationshipPrompt, characterList(req.Characters), storyContext, digest)
	genOpts := []ai.GenerateOption{ai.WithSystemPrompts(systemPrompt)}
	if s.opts.Temperature > 0 {
		genOpts = append(genOpts, ai.WithTemperature(s.opts.Temperature))
	}

	res, err := util.RetryWithContext(ctx, s.opts.MaxRetries, s.opts.RetryBackoff, func(ctx context.Context) (suggestResponse, error) {
		var res suggestResponse
		err := s.client.GenerateCompletionWithFormat(
			ctx,
			"suggest_character_relationships",
			"Suggest relationships between the characters of a story.",
			"Analyze the relationships between the characters.",
			&res,
			genOpts...,
		)
		return res, err
	})
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(res.Relationships))
	for _, r := range res.Relationships {
		out = append(out, Suggestion{
			Character1:  r.Character1,
			Character2:  r.Character2,
			Strength:    r.Strength,
			Type:        r.Type,
			Description: r.Description,
		})
	}
	return out, nil
}

func characterList(characters []common.Character) string {
	if len(characters) == 0 {
		return "(no roster, use the speakers named in the scenes)"
	}
	var b strings.Builder
	for _, c := range characters {
		b.WriteString("- ")
		b.WriteString(c.Name)
		if c.Role != "" {
			b.WriteString(" (" + c.Role + ")")
		}
		if d := util.CollapseWhitespace(c.Description); d != "" {
			b.WriteString(": " + d)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func sceneDigest(scenes []common.Scene) string {
	var b strings.Builder
	for _, s := range scenes {
		b.WriteString("## Scene ")
		b.WriteString(strconv.Itoa(s.SequenceNumber))
		b.WriteByte('\n')
		b.WriteString(util.CollapseWhitespace(sceneText(s)))
		b.WriteString("\n\n")
	}
	return b.String()
}
