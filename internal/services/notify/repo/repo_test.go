package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"studyhall/internal/platform/store"
	"studyhall/internal/services/notify/domain"
)

// execRecorder fails Exec with err after the first call succeeds
type execRecorder struct {
	calls int
	err   error
}

func (f *execRecorder) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	f.calls++
	if f.calls > 1 {
		return nil, f.err
	}
	return nil, nil
}
func (f *execRecorder) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *execRecorder) QueryRow(context.Context, string, ...any) store.Row       { return nil }

func TestNid_DeterministicPerEvent(t *testing.T) {
	t.Parallel()

	grant := domain.Notification{Ntype: "post-endorsed", PID: 8, FromUID: 1, ToUID: 2}
	if Nid(grant) != Nid(grant) {
		t.Fatal("same event must derive the same nid")
	}
	other := grant
	other.FromUID = 3
	if Nid(grant) == Nid(other) {
		t.Fatal("different actors must derive different nids")
	}
}

func TestInsert_DuplicateKeyMeansAlreadyDelivered(t *testing.T) {
	t.Parallel()

	q := &execRecorder{err: &pgconn.PgError{Code: "23505"}}
	st := NewPG().Bind(q)
	n := domain.Notification{Ntype: "post-endorsed", PID: 8, FromUID: 1, ToUID: 2}
	at := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	first, err := st.Insert(context.Background(), n, at)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	repeat, err := st.Insert(context.Background(), n, at)
	if err != nil {
		t.Fatalf("repeat insert must not error: %v", err)
	}
	if repeat != first {
		t.Fatalf("repeat nid = %s, want %s", repeat, first)
	}
	if q.calls != 2 {
		t.Fatalf("exec calls = %d, want 2", q.calls)
	}
}

func TestInsert_PropagatesOtherErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	q := &execRecorder{err: boom}
	st := NewPG().Bind(q)
	n := domain.Notification{Ntype: "post-endorsed", PID: 8, FromUID: 1, ToUID: 2}

	if _, err := st.Insert(context.Background(), n, time.Now()); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := st.Insert(context.Background(), n, time.Now()); !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
}
