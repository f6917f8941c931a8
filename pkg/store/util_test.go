package store

import (
	"errors"
	"testing"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
)

func TestChunkRange(t *testing.T) {
	var windows [][2]int
	err := ChunkRange(5, 2, func(start, end int) error {
		windows = append(windows, [2]int{start, end})
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][2]int{{0, 2}, {2, 4}, {4, 5}}
	if len(windows) != len(want) {
		t.Fatalf("expected %d windows, got %v", len(want), windows)
	}
	for i := range want {
		if windows[i] != want[i] {
			t.Fatalf("window %d: expected %v, got %v", i, want[i], windows[i])
		}
	}
}

func TestChunkRange_StopsOnError(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := ChunkRange(10, 3, func(start, end int) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestValidateBatch(t *testing.T) {
	rel := func(a, b string) common.Relationship {
		return common.Relationship{Character1: a, Character2: b, Strength: 0.5, Type: common.RelationshipNeutral}
	}

	tests := []struct {
		name    string
		rels    []common.Relationship
		method  common.AnalysisMethod
		wantErr bool
	}{
		{"empty batch", nil, common.AnalysisKeyword, false},
		{"valid", []common.Relationship{rel("Ana", "Ben"), rel("Ana", "Cleo")}, common.AnalysisAI, false},
		{"unknown method", []common.Relationship{rel("Ana", "Ben")}, "magic", true},
		{"self pair", []common.Relationship{rel("Ana", "ana")}, common.AnalysisKeyword, true},
		{"empty name", []common.Relationship{rel("", "Ben")}, common.AnalysisKeyword, true},
		{"duplicate reversed", []common.Relationship{rel("Ana", "Ben"), rel("ben", "ANA")}, common.AnalysisKeyword, true},
		{"bad type", []common.Relationship{{Character1: "Ana", Character2: "Ben", Type: "frenemies"}}, common.AnalysisKeyword, true},
		{"strength out of range", []common.Relationship{{Character1: "Ana", Character2: "Ben", Strength: 1.5, Type: common.RelationshipAllies}}, common.AnalysisKeyword, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatch(tt.rels, tt.method)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBatch) {
					t.Fatalf("expected ErrInvalidBatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
