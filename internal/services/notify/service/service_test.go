package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyhall/internal/modkit/repokit"
	perr "studyhall/internal/platform/errors"
	"studyhall/internal/platform/store"
	"studyhall/internal/services/notify/domain"
	"studyhall/internal/services/notify/repo"
)

// fakeStore records inserted notifications
type fakeStore struct {
	rows []domain.Notification
	ats  []time.Time
	err  error
}

func (f *fakeStore) Insert(_ context.Context, n domain.Notification, at time.Time) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.rows = append(f.rows, n)
	f.ats = append(f.ats, at)
	return "nid-1", nil
}

// nopTx satisfies repokit.TxRunner without a database
type nopTx struct{}

func (nopTx) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nopTx) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nopTx) QueryRow(context.Context, string, ...any) store.Row             { return nil }
func (nopTx) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	return fn(nopTx{})
}

func newSvc(fs *fakeStore) *Service {
	b := repokit.BindFunc[repo.Storage](func(repokit.Queryer) repo.Storage { return fs })
	return New(nopTx{}, b)
}

func TestDispatch_ValidatesRecipientAndType(t *testing.T) {
	t.Parallel()
	fs := &fakeStore{}
	svc := newSvc(fs)
	ctx := context.Background()

	err := svc.Dispatch(ctx, domain.Notification{Ntype: "post-endorsed"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing recipient: want invalid argument, got %v", err)
	}
	err = svc.Dispatch(ctx, domain.Notification{ToUID: 9})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing type: want invalid argument, got %v", err)
	}
	if len(fs.rows) != 0 {
		t.Fatalf("invalid notifications must not be stored: %+v", fs.rows)
	}
}

func TestDispatch_StoresRow(t *testing.T) {
	t.Parallel()
	fs := &fakeStore{}
	svc := newSvc(fs)

	n := domain.Notification{
		Ntype:     "post-endorsed",
		BodyShort: `Professor X endorsed your post in "How do I submit HW2?"`,
		PID:       8, TID: 6, FromUID: 1, ToUID: 9,
		Path: "/post/8",
	}
	if err := svc.Dispatch(context.Background(), n); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(fs.rows) != 1 || fs.rows[0] != n {
		t.Fatalf("stored row mismatch: %+v", fs.rows)
	}
	if fs.ats[0].IsZero() {
		t.Fatalf("created_at not stamped")
	}
}

func TestDispatch_PropagatesStoreFailure(t *testing.T) {
	t.Parallel()
	fs := &fakeStore{err: errors.New("insert failed")}
	svc := newSvc(fs)

	err := svc.Dispatch(context.Background(), domain.Notification{Ntype: "post-endorsed", ToUID: 9})
	if err == nil || !errors.Is(err, fs.err) {
		t.Fatalf("want store error, got %v", err)
	}
}
