package pgx

import (
	"time"
)

type AppLock struct {
	LockKey   string
	LockedBy  string
	ExpiresAt time.Time
}

type Character struct {
	ID          int64
	PublicID    string
	ProjectID   int64
	Name        string
	Description string
	Role        string
}

type CharacterRelationship struct {
	ID          int64
	PublicID    string
	ProjectID   int64
	Character1  string
	Character2  string
	Strength    float64
	Scenes      []byte
	Type        string
	Description string
	CreatedAt   time.Time
}

type Project struct {
	ID        int64
	PublicID  string
	Name      string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RelationshipAnalysis struct {
	ProjectID      int64
	AnalysisMethod string
	AnalyzedAt     time.Time
}

type Scene struct {
	ID               int64
	PublicID         string
	ProjectID        int64
	SequenceNumber   int32
	RawIdea          string
	EnhancedPrompt   string
	ContextSummary   string
	DirectorSettings []byte
}

type StoryContext struct {
	ProjectID int64
	Content   string
	UpdatedAt time.Time
}

type ProcessStat struct {
	ID        int64
	ProjectID int64
	Amount    int32
	Duration  int64
	StatType  string
	CreatedAt time.Time
}
