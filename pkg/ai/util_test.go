package ai

import (
	"encoding/json"
	"strings"
	"testing"
)

type pairOut struct {
	Character1 string  `json:"character1"`
	Character2 string  `json:"character2"`
	Strength   float64 `json:"strength,omitempty"`
}

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "valid json object",
			input: `{"character1":"Ana","character2":"Ben"}`,
		},
		{
			name:  "unquoted key and single quotes",
			input: `{character1: 'Ana', character2: 'Ben'}`,
		},
		{
			name:  "trailing comma",
			input: `{"character1":"Ana","character2":"Ben",}`,
		},
		{
			name:  "stringified invalid json object",
			input: `"{character1: 'Ana', character2: 'Ben'}"`,
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"character1\": \"Ana\", \"character2\": \"Ben\"\n}\n",
		},
		{
			name:  "markdown code fence",
			input: "```json\n{\"character1\":\"Ana\",\"character2\":\"Ben\"}\n```",
		},
		{
			name:  "bare code fence",
			input: "```\n{\"character1\":\"Ana\",\"character2\":\"Ben\"}\n```",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got pairOut
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got.Character1 != "Ana" || got.Character2 != "Ben" {
				t.Fatalf("UnmarshalFlexible() got = %+v", got)
			}
		})
	}
}

func TestUnmarshalFlexible_ArrayVariants(t *testing.T) {
	input := `[{character1:'Ana',character2:'Ben'},{character1:'Ben',character2:'Cy',}]`
	var got []pairOut
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got) != 2 || got[1].Character2 != "Cy" {
		t.Fatalf("UnmarshalFlexible() got = %+v", got)
	}
}

func TestUnmarshalFlexible_Empty(t *testing.T) {
	var got pairOut
	if err := UnmarshalFlexible("   ", &got); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestStripCodeFence(t *testing.T) {
	if got := stripCodeFence("no fence"); got != "no fence" {
		t.Fatalf("stripCodeFence() changed unfenced input: %q", got)
	}
	if got := stripCodeFence("```json\n[1]\n```"); got != "[1]" {
		t.Fatalf("stripCodeFence() = %q, want [1]", got)
	}
}

func TestGenerateSchema_DisallowsAdditionalProperties(t *testing.T) {
	b, err := json.Marshal(GenerateSchema(&pairOut{}))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	js := string(b)
	if !strings.Contains(js, `"additionalProperties":false`) {
		t.Fatalf("schema should disallow additional properties: %s", js)
	}
	if !strings.Contains(js, `"character1"`) {
		t.Fatalf("schema should describe character1: %s", js)
	}
}

func TestTruncateToTokens_NoBudget(t *testing.T) {
	got, cut, err := TruncateToTokens(DefaultEncoding, "Ana meets Ben.", 0)
	if err != nil {
		t.Fatalf("TruncateToTokens() error = %v", err)
	}
	if cut || got != "Ana meets Ben." {
		t.Fatalf("TruncateToTokens() with no budget changed input: %q cut=%v", got, cut)
	}
}
