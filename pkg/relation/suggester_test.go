package relation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/ai"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

type fakeAIClient struct {
	responses []string
	errs      []error
	calls     int
	system    []string
	temp      float64
	name      string
}

func (f *fakeAIClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeAIClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	idx := f.calls
	f.calls++
	f.name = name

	var options ai.GenerateOptions
	for _, o := range opts {
		o(&options)
	}
	f.system = options.SystemPrompts
	f.temp = options.Temperature

	if idx < len(f.errs) && f.errs[idx] != nil {
		return f.errs[idx]
	}
	return json.Unmarshal([]byte(f.responses[idx]), out)
}

func (f *fakeAIClient) LoadModel(ctx context.Context, opts ...ai.GenerateOption) error { return nil }
func (f *fakeAIClient) ResetMetrics()                                                  {}
func (f *fakeAIClient) GetMetrics() ai.ModelMetrics                                    { return ai.ModelMetrics{} }

const cannedAnswer = `{"relationships":[{"character1":"Ana","character2":"Ben","type":"enemies","strength":0.9,"description":"Old rivals."}]}`

func TestAISuggester_SuggestRelationships(t *testing.T) {
	client := &fakeAIClient{responses: []string{cannedAnswer}}
	s := NewAISuggester(client, AISuggesterOptions{MaxPromptTokens: -1})

	got, err := s.SuggestRelationships(context.Background(), SuggestRequest{
		Characters:   []common.Character{{Name: "Ana", Role: "hero"}, {Name: "Ben"}},
		Scenes:       []common.Scene{scene(1, "Ana   meets\nBen.")},
		StoryContext: "A western.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %+v", got)
	}
	want := Suggestion{Character1: "Ana", Character2: "Ben", Strength: 0.9, Type: "enemies", Description: "Old rivals."}
	if got[0] != want {
		t.Fatalf("got %+v, want %+v", got[0], want)
	}

	if len(client.system) != 1 {
		t.Fatalf("expected one system prompt, got %d", len(client.system))
	}
	prompt := client.system[0]
	for _, part := range []string{"- Ana (hero)", "- Ben", "A western.", "## Scene 1", "Ana meets Ben."} {
		if !strings.Contains(prompt, part) {
			t.Fatalf("prompt is missing %q:\n%s", part, prompt)
		}
	}
	if client.name != "suggest_character_relationships" {
		t.Fatalf("unexpected format name %q", client.name)
	}
}

func TestAISuggester_RetriesTransientErrors(t *testing.T) {
	client := &fakeAIClient{
		responses: []string{"", cannedAnswer},
		errs:      []error{errors.New("502 bad gateway"), nil},
	}
	s := NewAISuggester(client, AISuggesterOptions{
		MaxPromptTokens: -1,
		MaxRetries:      2,
		RetryBackoff:    time.Millisecond,
	})

	got, err := s.SuggestRelationships(context.Background(), SuggestRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", client.calls)
	}
	if len(got) != 1 {
		t.Fatalf("expected one suggestion, got %+v", got)
	}
	if !strings.Contains(client.system[0], "(none)") {
		t.Fatal("expected placeholder for an empty story context")
	}
}

func TestAISuggester_GivesUp(t *testing.T) {
	boom := errors.New("timeout")
	client := &fakeAIClient{errs: []error{boom, boom}}
	s := NewAISuggester(client, AISuggesterOptions{
		MaxPromptTokens: -1,
		MaxRetries:      2,
		RetryBackoff:    time.Millisecond,
	})

	if _, err := s.SuggestRelationships(context.Background(), SuggestRequest{}); !errors.Is(err, boom) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", client.calls)
	}
}

func TestAISuggester_Temperature(t *testing.T) {
	client := &fakeAIClient{responses: []string{cannedAnswer, cannedAnswer}}
	req := SuggestRequest{Characters: roster("Ana", "Ben"), Scenes: []common.Scene{scene(1, "Ana meets Ben.")}}

	if _, err := NewAISuggester(client, AISuggesterOptions{MaxPromptTokens: -1}).SuggestRelationships(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.temp != 0 {
		t.Fatalf("expected client default temperature, got %v", client.temp)
	}

	if _, err := NewAISuggester(client, AISuggesterOptions{MaxPromptTokens: -1, Temperature: 0.2}).SuggestRelationships(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.temp != 0.2 {
		t.Fatalf("expected temperature 0.2, got %v", client.temp)
	}
}
