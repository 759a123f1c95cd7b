package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"studyhall/internal/core/forum"
	perr "studyhall/internal/platform/errors"
	"studyhall/internal/platform/store/rd"
	roles "studyhall/internal/services/roles/domain"
	"studyhall/internal/services/views/repo"
)

const (
	adminUID   = int64(1)
	studentUID = int64(2)
	taUID      = int64(3)
	otherUID   = int64(4)
	deletedUID = int64(5)
)

type fakeRoles struct{ caps map[int64]roles.Capabilities }

func (f *fakeRoles) Resolve(_ context.Context, uid int64) (roles.Capabilities, error) {
	if uid <= 0 {
		return roles.Capabilities{}, nil
	}
	return f.caps[uid], nil
}

// fakeReader knows post 8 and every user except deletedUID
type fakeReader struct{}

func (fakeReader) TopicByID(_ context.Context, tid int64) (forum.Topic, error) {
	return forum.Topic{}, perr.ErrNotFound
}

func (fakeReader) PostByID(_ context.Context, pid int64) (forum.Post, error) {
	if pid == 8 {
		return forum.Post{PID: 8, TID: 6, UID: studentUID}, nil
	}
	return forum.Post{}, perr.ErrNotFound
}

func (fakeReader) PostExists(_ context.Context, pid int64) (bool, error) {
	return pid == 8, nil
}

func (fakeReader) UserByID(_ context.Context, uid int64) (forum.Author, error) {
	if uid == deletedUID {
		return forum.Author{}, perr.ErrNotFound
	}
	return forum.Author{UID: uid}, nil
}

func (fakeReader) UsersByIDs(_ context.Context, uids []int64) (map[int64]forum.Author, error) {
	out := map[int64]forum.Author{}
	for _, uid := range uids {
		if uid == deletedUID {
			continue
		}
		a := forum.Author{UID: uid, Username: "u" + string(rune('0'+uid)), Userslug: "u" + string(rune('0'+uid))}
		if uid == studentUID {
			a.Displayname = "Casey Student"
		}
		out[uid] = a
	}
	return out, nil
}

func newFixture(t *testing.T) (*Service, repo.Storage) {
	t.Helper()
	mr := miniredis.RunT(t)
	kv := rd.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	fr := &fakeRoles{caps: map[int64]roles.Capabilities{
		adminUID: {IsAdmin: true},
		taUID:    {IsTA: true},
	}}
	st := repo.NewRD(kv)
	return New(st, fr, fakeReader{}), st
}

func TestLog_Gates(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	if _, err := svc.Log(ctx, 0, 8); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("guest: want unauthorized, got %v", err)
	}
	if _, err := svc.Log(ctx, studentUID, 999); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing post: want invalid argument, got %v", err)
	}
}

func TestLog_FirstViewRecordedOnce(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	first, err := svc.Log(ctx, studentUID, 8)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !first.Logged || first.Timestamp == nil || first.Reason != "" {
		t.Fatalf("first view not recorded: %+v", first)
	}

	repeat, err := svc.Log(ctx, studentUID, 8)
	if err != nil {
		t.Fatalf("repeat log: %v", err)
	}
	if repeat.Logged || repeat.Reason != "already-viewed" {
		t.Fatalf("repeat view must be acknowledged without writing: %+v", repeat)
	}

	n, err := svc.Count(ctx, studentUID, 8)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestLog_StaffViewsNotRecorded(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	for _, uid := range []int64{adminUID, taUID} {
		out, err := svc.Log(ctx, uid, 8)
		if err != nil {
			t.Fatalf("uid=%d: %v", uid, err)
		}
		if out.Logged || out.Reason != "staff-view" {
			t.Fatalf("uid=%d: staff view must not be recorded: %+v", uid, out)
		}
	}

	// a student view after heavy staff traffic leaves exactly one entry
	if _, err := svc.Log(ctx, studentUID, 8); err != nil {
		t.Fatalf("student log: %v", err)
	}
	res, err := svc.Viewers(ctx, adminUID, 8)
	if err != nil {
		t.Fatalf("viewers: %v", err)
	}
	if len(res.Viewers) != 1 || res.Viewers[0].UID != studentUID || res.Count != 1 {
		t.Fatalf("roster polluted by staff views: %+v", res)
	}
}

func TestViewers_StaffOnlyInFirstViewOrder(t *testing.T) {
	t.Parallel()
	svc, st := newFixture(t)
	ctx := context.Background()

	// distinct first-view instants, viewed by otherUID first
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	if err := st.RecordView(ctx, otherUID, 8, base.UnixMilli()); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := st.RecordView(ctx, studentUID, 8, base.Add(time.Minute).UnixMilli()); err != nil {
		t.Fatalf("record: %v", err)
	}

	if _, err := svc.Viewers(ctx, studentUID, 8); !perr.IsCode(err, perr.ErrorCodeForbidden) {
		t.Fatalf("student roster access: want forbidden, got %v", err)
	}
	if _, err := svc.Viewers(ctx, 0, 8); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("guest roster access: want unauthorized, got %v", err)
	}

	res, err := svc.Viewers(ctx, taUID, 8)
	if err != nil {
		t.Fatalf("viewers: %v", err)
	}
	if len(res.Viewers) != 2 || res.Count != 2 {
		t.Fatalf("unexpected roster: %+v", res)
	}
	if res.Viewers[0].UID != otherUID || res.Viewers[1].UID != studentUID {
		t.Fatalf("roster not in first-view order: %+v", res.Viewers)
	}
	if !res.Viewers[0].ViewedAt.Equal(base) {
		t.Fatalf("ViewedAt = %v, want %v", res.Viewers[0].ViewedAt, base)
	}
	if res.Viewers[0].Displayname != "u4" || res.Viewers[1].Displayname != "Casey Student" {
		t.Fatalf("displayname must fall back to username: %+v", res.Viewers)
	}
}

func TestViewers_MissingPostRejected(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	if _, err := svc.Viewers(context.Background(), adminUID, 999); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing post: want invalid argument, got %v", err)
	}
}

func TestViewers_DeletedAccountsDropped(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	for _, uid := range []int64{studentUID, deletedUID} {
		if _, err := svc.Log(ctx, uid, 8); err != nil {
			t.Fatalf("log uid=%d: %v", uid, err)
		}
	}

	res, err := svc.Viewers(ctx, adminUID, 8)
	if err != nil {
		t.Fatalf("viewers: %v", err)
	}
	if len(res.Viewers) != 1 || res.Viewers[0].UID != studentUID {
		t.Fatalf("deleted account must be dropped from roster: %+v", res.Viewers)
	}
	if res.Count != 1 {
		t.Fatalf("count = %d, want 1 (count follows the roster, not raw views)", res.Count)
	}

	// the lightweight count still reports raw recorded views
	n, err := svc.Count(ctx, studentUID, 8)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("raw count = %d, want 2", n)
	}
}

func TestViewers_EmptyRosterIsNotNil(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	res, err := svc.Viewers(context.Background(), adminUID, 8)
	if err != nil {
		t.Fatalf("viewers: %v", err)
	}
	if res.Viewers == nil || len(res.Viewers) != 0 || res.Count != 0 {
		t.Fatalf("want empty roster, got %+v", res)
	}
}

func TestCount_RequiresLogin(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	if _, err := svc.Count(ctx, 0, 8); !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("guest count: want unauthorized, got %v", err)
	}

	if _, err := svc.Log(ctx, otherUID, 8); err != nil {
		t.Fatalf("log: %v", err)
	}
	n, err := svc.Count(ctx, studentUID, 8)
	if err != nil {
		t.Fatalf("student count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}
