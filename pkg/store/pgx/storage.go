package pgx

import (
	"context"
	"time"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// relationshipChunk bounds the array size of a single bulk insert.
const relationshipChunk = 500

// RelationshipDBStorage implements store.ProjectStorage on PostgreSQL. Every
// save replaces the batch of a project inside a single transaction.
type RelationshipDBStorage struct {
	conn pgxIConn
	now  func() time.Time
	ids  func() (string, error)
}

type RelationshipDBStorageOption func(*RelationshipDBStorage)

// WithClock overrides the timestamp recorded for saved analyses.
func WithClock(now func() time.Time) RelationshipDBStorageOption {
	return func(s *RelationshipDBStorage) {
		s.now = now
	}
}

// WithIDGenerator overrides the generator of relationship public ids.
func WithIDGenerator(gen func() (string, error)) RelationshipDBStorageOption {
	return func(s *RelationshipDBStorage) {
		s.ids = gen
	}
}

// NewRelationshipDBStorage creates a storage on top of a pool, connection or
// transaction.
func NewRelationshipDBStorage(conn pgxIConn, opts ...RelationshipDBStorageOption) *RelationshipDBStorage {
	s := &RelationshipDBStorage{
		conn: conn,
		now:  time.Now,
		ids:  newPublicID,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}
