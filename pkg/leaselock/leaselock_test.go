package leaselock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	key string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.key
	return nil
}

type fakeDB struct {
	mu       sync.Mutex
	held     map[string]string
	released []string
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, token := args[0].(string), args[1].(string)
	if owner, ok := f.held[key]; ok && owner != token {
		return fakeRow{err: pgx.ErrNoRows}
	}
	f.held[key] = token
	return fakeRow{key: key}
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key, token := args[0].(string), args[1].(string)
	if f.held[key] == token {
		delete(f.held, key)
		f.released = append(f.released, key)
	}
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func TestProjectKey(t *testing.T) {
	if got := ProjectKey(42); got != "relationships:42" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestWithProjectLock_AcquiresAndReleases(t *testing.T) {
	db := &fakeDB{held: map[string]string{}}
	locker := NewProjectLocker(&Client{db: db}, time.Minute)

	ran := false
	err := locker.WithProjectLock(context.Background(), 5, func(ctx context.Context) error {
		ran = true
		if _, ok := db.held["relationships:5"]; !ok {
			t.Fatal("expected lock row while running")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Fatal("callback did not run")
	}
	if len(db.released) != 1 || db.released[0] != "relationships:5" {
		t.Fatalf("expected lease to be released, got %v", db.released)
	}
}

func TestAcquire_BusyWithoutWait(t *testing.T) {
	db := &fakeDB{held: map[string]string{"relationships:1": "other"}}
	c := &Client{db: db}

	_, err := c.Acquire(context.Background(), ProjectKey(1), Options{TTL: time.Minute})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestWithProjectLock_NoWaitBusy(t *testing.T) {
	db := &fakeDB{held: map[string]string{"relationships:7": "other"}}
	locker := NewProjectLocker(&Client{db: db}, time.Minute).NoWait()

	ran := false
	err := locker.WithProjectLock(context.Background(), 7, func(ctx context.Context) error {
		ran = true
		return nil
	})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if ran {
		t.Fatal("callback must not run while the project is held")
	}
	if db.held["relationships:7"] != "other" {
		t.Fatal("held lease must be left untouched")
	}
}

func TestAcquire_WaitHonoursContext(t *testing.T) {
	db := &fakeDB{held: map[string]string{"relationships:1": "other"}}
	c := &Client{db: db}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := c.Acquire(ctx, ProjectKey(1), Options{TTL: time.Minute, Wait: true, WaitInterval: 5 * time.Millisecond})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestAcquire_ErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	c := &Client{db: errDB{err: boom}}
	if _, err := c.Acquire(context.Background(), "k", Options{}); !errors.Is(err, boom) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if _, err := c.Acquire(context.Background(), "", Options{}); err == nil {
		t.Fatal("expected error for empty key")
	}
}

type errDB struct {
	err error
}

func (e errDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{err: e.err}
}

func (e errDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, e.err
}
