package pgx

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"
	"github.com/OFFIS-RIT/storyboard/backend/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.vals)
}

func assign(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return errors.New("scan arity mismatch")
	}
	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(vals[i]))
	}
	return nil
}

type fakeRows struct {
	pgxv5.Rows
	data [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.data)
}

func (r *fakeRows) Scan(dest ...any) error { return assign(dest, r.data[r.idx-1]) }
func (r *fakeRows) Close()                 {}
func (r *fakeRows) Err() error             { return nil }

type execCall struct {
	sql  string
	args []any
}

type fakeTx struct {
	pgxv5.Tx
	failOn     string
	execs      []execCall
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, execCall{sql: sql, args: args})
	if t.failOn != "" && strings.Contains(sql, t.failOn) {
		return pgconn.CommandTag{}, errors.New("insert failed")
	}
	return pgconn.NewCommandTag("OK"), nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgxv5.Row {
	t.execs = append(t.execs, execCall{sql: sql, args: args})
	return fakeRow{vals: []any{args[0].(int64), args[1].(string), args[2].(time.Time)}}
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeConn struct {
	tx      *fakeTx
	begins  int
	rows    map[string]fakeRow
	results map[string][][]any
}

func (c *fakeConn) Begin(ctx context.Context) (pgxv5.Tx, error) {
	c.begins++
	return c.tx, nil
}

func (c *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("OK"), nil
}

func (c *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgxv5.Row {
	for marker, row := range c.rows {
		if strings.Contains(sql, marker) {
			return row
		}
	}
	return fakeRow{err: pgxv5.ErrNoRows}
}

func (c *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgxv5.Rows, error) {
	for marker, data := range c.results {
		if strings.Contains(sql, marker) {
			return &fakeRows{data: data}, nil
		}
	}
	return &fakeRows{}, nil
}

func testStorage(conn *fakeConn) *RelationshipDBStorage {
	n := 0
	return NewRelationshipDBStorage(conn,
		WithClock(func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() (string, error) {
			n++
			return "rel-" + string(rune('0'+n)), nil
		}),
	)
}

func TestSave_CommitsReplacement(t *testing.T) {
	conn := &fakeConn{tx: &fakeTx{}}
	s := testStorage(conn)

	rels := []common.Relationship{
		{Character1: "Ana", Character2: "Ben", Strength: 1, Scenes: []int{1, 2}, Type: common.RelationshipEnemies},
		{Character1: "Ana", Character2: "Cleo", Strength: 0.5, Type: common.RelationshipNeutral, Description: "bad\x00byte"},
	}
	if err := s.Save(context.Background(), 9, rels, common.AnalysisKeyword); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tx := conn.tx
	if !tx.committed || tx.rolledBack {
		t.Fatalf("expected commit without rollback, committed=%v rolledBack=%v", tx.committed, tx.rolledBack)
	}
	if len(tx.execs) != 3 {
		t.Fatalf("expected delete, insert and upsert, got %d statements", len(tx.execs))
	}
	if !strings.Contains(tx.execs[0].sql, "DELETE FROM character_relationships") {
		t.Fatalf("expected delete first, got %s", tx.execs[0].sql)
	}

	insert := tx.execs[1]
	if !strings.Contains(insert.sql, "INSERT INTO character_relationships") {
		t.Fatalf("expected insert second, got %s", insert.sql)
	}
	if got := insert.args[1].([]string); !reflect.DeepEqual(got, []string{"rel-1", "rel-2"}) {
		t.Fatalf("unexpected public ids %v", got)
	}
	if got := insert.args[5].([]string); !reflect.DeepEqual(got, []string{"[1,2]", "[]"}) {
		t.Fatalf("unexpected scenes %v", got)
	}
	if got := insert.args[7].([]string); got[1] != "badbyte" {
		t.Fatalf("expected sanitised description, got %q", got[1])
	}

	upsert := tx.execs[2]
	if upsert.args[1].(string) != "keyword" {
		t.Fatalf("expected keyword method, got %v", upsert.args[1])
	}
}

func TestSave_RollsBackOnFailure(t *testing.T) {
	conn := &fakeConn{tx: &fakeTx{failOn: "INSERT INTO character_relationships"}}
	s := testStorage(conn)

	err := s.Save(context.Background(), 9, []common.Relationship{
		{Character1: "Ana", Character2: "Ben", Strength: 1, Type: common.RelationshipAllies},
	}, common.AnalysisAI)
	if !errors.Is(err, store.ErrSaveFailed) {
		t.Fatalf("expected ErrSaveFailed, got %v", err)
	}
	if conn.tx.committed || !conn.tx.rolledBack {
		t.Fatalf("expected rollback, committed=%v rolledBack=%v", conn.tx.committed, conn.tx.rolledBack)
	}
}

func TestSave_RejectsInvalidBatchBeforeBegin(t *testing.T) {
	conn := &fakeConn{tx: &fakeTx{}}
	s := testStorage(conn)

	err := s.Save(context.Background(), 9, []common.Relationship{
		{Character1: "Ana", Character2: "Ana", Type: common.RelationshipAllies},
	}, common.AnalysisKeyword)
	if !errors.Is(err, store.ErrInvalidBatch) {
		t.Fatalf("expected ErrInvalidBatch, got %v", err)
	}
	if conn.begins != 0 {
		t.Fatalf("expected no transaction, got %d", conn.begins)
	}
}

func TestSave_EmptyBatchStillTagsMethod(t *testing.T) {
	conn := &fakeConn{tx: &fakeTx{}}
	s := testStorage(conn)

	if err := s.Save(context.Background(), 9, nil, common.AnalysisKeyword); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conn.tx.execs) != 2 {
		t.Fatalf("expected delete and upsert only, got %d statements", len(conn.tx.execs))
	}
}

func TestLoad_NotAnalyzed(t *testing.T) {
	s := testStorage(&fakeConn{})
	if _, err := s.Load(context.Background(), 1); !errors.Is(err, store.ErrNotAnalyzed) {
		t.Fatalf("expected ErrNotAnalyzed, got %v", err)
	}
}

func TestLoad_ReturnsBatch(t *testing.T) {
	analyzedAt := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)
	conn := &fakeConn{
		rows: map[string]fakeRow{
			"FROM relationship_analyses": {vals: []any{int64(4), "ai", analyzedAt}},
		},
		results: map[string][][]any{
			"FROM character_relationships": {
				{int64(1), "rel-a", int64(4), "Ana", "Ben", 0.8, []byte("[1,3]"), "family", "Siblings.", analyzedAt},
			},
		},
	}
	s := testStorage(conn)

	batch, err := s.Load(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &common.RelationshipBatch{
		ProjectID: 4,
		Relationships: []common.Relationship{
			{ID: "rel-a", Character1: "Ana", Character2: "Ben", Strength: 0.8, Scenes: []int{1, 3}, Type: common.RelationshipFamily, Description: "Siblings."},
		},
		AnalysisMethod: common.AnalysisAI,
		AnalyzedAt:     analyzedAt,
	}
	if !reflect.DeepEqual(batch, want) {
		t.Fatalf("got %+v, want %+v", batch, want)
	}
}

func TestClear_DeletesBothTables(t *testing.T) {
	conn := &fakeConn{tx: &fakeTx{}}
	s := testStorage(conn)

	if err := s.Clear(context.Background(), 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conn.tx.execs) != 2 || !conn.tx.committed {
		t.Fatalf("expected two deletes and a commit, got %+v committed=%v", conn.tx.execs, conn.tx.committed)
	}
	if !strings.Contains(conn.tx.execs[1].sql, "DELETE FROM relationship_analyses") {
		t.Fatalf("expected analysis row delete, got %s", conn.tx.execs[1].sql)
	}
}
