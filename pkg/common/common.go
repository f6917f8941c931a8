package common

import "time"

// Character is a member of a project's roster. Characters are created by the
// character management part of the application; relationship analysis only
// reads their names.
//
// Names are unique within a project and are matched case-insensitively.
type Character struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Role        string `json:"role,omitempty"`
}

// DirectorSettings holds the per-scene production notes. Only Dialogue takes
// part in relationship analysis, the rest is carried for completeness.
type DirectorSettings struct {
	Camera   string `json:"camera,omitempty"`
	Lighting string `json:"lighting,omitempty"`
	Sound    string `json:"sound,omitempty"`
	Dialogue string `json:"dialogue,omitempty"`
}

// Scene is an ordered unit of narrative. SequenceNumber defines the canonical
// ordering of scenes inside a project. Any of the free-text fields may be
// empty.
type Scene struct {
	ID               string           `json:"id,omitempty"`
	SequenceNumber   int              `json:"sequence_number"`
	RawIdea          string           `json:"raw_idea,omitempty"`
	EnhancedPrompt   string           `json:"enhanced_prompt,omitempty"`
	ContextSummary   string           `json:"context_summary,omitempty"`
	DirectorSettings DirectorSettings `json:"director_settings"`
}

// RelationshipType classifies the nature of a relationship between two
// characters.
type RelationshipType string

const (
	RelationshipAllies   RelationshipType = "allies"
	RelationshipEnemies  RelationshipType = "enemies"
	RelationshipNeutral  RelationshipType = "neutral"
	RelationshipRomantic RelationshipType = "romantic"
	RelationshipFamily   RelationshipType = "family"
)

// Valid reports whether t is one of the known relationship types.
func (t RelationshipType) Valid() bool {
	switch t {
	case RelationshipAllies, RelationshipEnemies, RelationshipNeutral, RelationshipRomantic, RelationshipFamily:
		return true
	}
	return false
}

// AnalysisMethod tags a persisted relationship batch with the extractor that
// produced it.
type AnalysisMethod string

const (
	AnalysisKeyword AnalysisMethod = "keyword"
	AnalysisAI      AnalysisMethod = "ai"
)

// Valid reports whether m is a known analysis method.
func (m AnalysisMethod) Valid() bool {
	return m == AnalysisKeyword || m == AnalysisAI
}

// Relationship is an undirected edge between two characters.
//
// Character1 and Character2 are stored in canonical order (case-insensitive
// ascending) so the pair identity does not depend on mention order. Strength
// is the pair's interaction count relative to the most interacting pair of
// the same batch. Scenes lists the sequence numbers in which both characters
// appear, ascending and without duplicates.
type Relationship struct {
	ID          string           `json:"id,omitempty"`
	Character1  string           `json:"character1"`
	Character2  string           `json:"character2"`
	Strength    float64          `json:"strength"`
	Scenes      []int            `json:"scenes"`
	Type        RelationshipType `json:"type"`
	Description string           `json:"description,omitempty"`
}

// RelationshipBatch is the persisted analysis state of a project. It is
// replaced as a whole on every save.
type RelationshipBatch struct {
	ProjectID      int64          `json:"project_id"`
	Relationships  []Relationship `json:"relationships"`
	AnalysisMethod AnalysisMethod `json:"analysis_method"`
	AnalyzedAt     time.Time      `json:"analyzed_at"`
}
