package timing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/common"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	value int64
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.value
	return nil
}

type fakeDB struct {
	args []any
	row  fakeRow
	seen string
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgxv5.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgxv5.Row {
	f.seen = args[0].(string)
	return f.row
}

func TestAddAnalysisTime(t *testing.T) {
	db := &fakeDB{}
	r := New(db)

	if err := r.AddAnalysisTime(context.Background(), 7, 3, 1500*time.Millisecond, common.AnalysisAI); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(db.args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(db.args))
	}
	if db.args[0] != int64(7) || db.args[1] != int32(3) || db.args[2] != int64(1500) || db.args[3] != "relationships:ai" {
		t.Fatalf("unexpected args %v", db.args)
	}
}

func TestPredictAnalysisTime(t *testing.T) {
	db := &fakeDB{row: fakeRow{value: 2500}}
	r := New(db)

	got, err := r.PredictAnalysisTime(context.Background(), common.AnalysisKeyword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s, got %s", got)
	}
	if db.seen != "relationships:keyword" {
		t.Fatalf("unexpected stat type %q", db.seen)
	}
}

func TestPredictAnalysisTime_Error(t *testing.T) {
	r := New(&fakeDB{row: fakeRow{err: errors.New("boom")}})
	if _, err := r.PredictAnalysisTime(context.Background(), common.AnalysisAI); err == nil {
		t.Fatal("expected error")
	}
}
