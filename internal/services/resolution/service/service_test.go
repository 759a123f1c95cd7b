package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"studyhall/internal/core/forum"
	perr "studyhall/internal/platform/errors"
	"studyhall/internal/platform/store/rd"
	"studyhall/internal/services/resolution/repo"
	roles "studyhall/internal/services/roles/domain"
)

// fakeRoles resolves capabilities from a fixed map
type fakeRoles struct {
	caps map[int64]roles.Capabilities
	err  error
}

func (f *fakeRoles) Resolve(_ context.Context, uid int64) (roles.Capabilities, error) {
	if f.err != nil {
		return roles.Capabilities{}, f.err
	}
	if uid <= 0 {
		return roles.Capabilities{}, nil
	}
	return f.caps[uid], nil
}

const (
	adminUID   = int64(1)
	studentUID = int64(2)
	taUID      = int64(3)
)

func testRoles() *fakeRoles {
	return &fakeRoles{caps: map[int64]roles.Capabilities{
		adminUID: {IsAdmin: true},
		taUID:    {IsTA: true},
	}}
}

func newFixture(t *testing.T) (*Service, repo.Storage) {
	t.Helper()
	mr := miniredis.RunT(t)
	kv := rd.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	st := repo.NewRD(kv)
	return New(st, testRoles(), Config{FeedbackCID: 4}), st
}

func TestToggle_Gates(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, 0, 6)
	if !perr.IsCode(err, perr.ErrorCodeUnauthorized) {
		t.Fatalf("guest: want unauthorized, got %v", err)
	}

	_, err = svc.Toggle(ctx, studentUID, 6)
	if !perr.IsCode(err, perr.ErrorCodeForbidden) {
		t.Fatalf("student: want forbidden, got %v", err)
	}

	_, err = svc.Toggle(ctx, adminUID, 0)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("missing tid: want invalid argument, got %v", err)
	}
}

func TestToggle_InvolutionAndIndexMembership(t *testing.T) {
	t.Parallel()
	svc, st := newFixture(t)
	ctx := context.Background()

	// fresh topic: unresolved by default
	if _, err := svc.SetDefault(ctx, forum.TopicCreate{Topic: forum.Topic{TID: 6, CID: 4}}); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	assertMembership(t, st, 6, false, true)

	res, err := svc.Toggle(ctx, adminUID, 6)
	if err != nil {
		t.Fatalf("toggle 1: %v", err)
	}
	if !res.IsResolved {
		t.Fatalf("toggle 1: want resolved")
	}
	assertMembership(t, st, 6, true, false)

	res, err = svc.Toggle(ctx, adminUID, 6)
	if err != nil {
		t.Fatalf("toggle 2: %v", err)
	}
	if res.IsResolved {
		t.Fatalf("toggle 2: want unresolved again")
	}
	assertMembership(t, st, 6, false, true)
}

func TestOnReply_Matrix(t *testing.T) {
	t.Parallel()
	svc, st := newFixture(t)
	ctx := context.Background()

	// resolved topic + student reply -> forced unresolved
	mustToggleTo(t, svc, 10, true)
	if err := svc.OnReply(ctx, forum.Post{PID: 100, TID: 10, UID: studentUID}); err != nil {
		t.Fatalf("student reply: %v", err)
	}
	assertResolved(t, st, 10, false)
	assertMembership(t, st, 10, false, true)

	// resolved topic + staff reply -> unchanged
	mustToggleTo(t, svc, 11, true)
	if err := svc.OnReply(ctx, forum.Post{PID: 101, TID: 11, UID: taUID}); err != nil {
		t.Fatalf("staff reply: %v", err)
	}
	assertResolved(t, st, 11, true)
	assertMembership(t, st, 11, true, false)

	// unresolved topic + student reply -> no-op
	if _, err := svc.SetDefault(ctx, forum.TopicCreate{Topic: forum.Topic{TID: 12}}); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	if err := svc.OnReply(ctx, forum.Post{PID: 102, TID: 12, UID: studentUID}); err != nil {
		t.Fatalf("reply on unresolved: %v", err)
	}
	assertResolved(t, st, 12, false)
	assertMembership(t, st, 12, false, true)
}

func TestAnnotateAndSort_StaffFeedbackCategory(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	mustToggleTo(t, svc, 1, true)
	mustToggleTo(t, svc, 3, true)
	// tids 2 and 4 stay unresolved
	for _, tid := range []int64{2, 4} {
		if _, err := svc.SetDefault(ctx, forum.TopicCreate{Topic: forum.Topic{TID: tid}}); err != nil {
			t.Fatalf("SetDefault: %v", err)
		}
	}

	in := forum.TopicListView{ViewerUID: adminUID, Topics: []forum.Topic{
		{TID: 1, CID: 4}, {TID: 2, CID: 4}, {TID: 3, CID: 4}, {TID: 4, CID: 4},
	}}
	out, err := svc.AnnotateAndSort(ctx, in)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}

	order := make([]int64, 0, 4)
	for _, tp := range out.Topics {
		order = append(order, tp.TID)
	}
	want := []int64{2, 4, 1, 3} // unresolved first, in-group order preserved
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if !out.Topics[2].IsResolved || out.Topics[0].IsResolved {
		t.Fatalf("annotation missing: %+v", out.Topics)
	}
}

func TestAnnotateAndSort_NonStaffAnnotatesOnly(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	mustToggleTo(t, svc, 1, true)

	in := forum.TopicListView{ViewerUID: studentUID, Topics: []forum.Topic{
		{TID: 1, CID: 4}, {TID: 2, CID: 4},
	}}
	out, err := svc.AnnotateAndSort(ctx, in)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if out.Topics[0].TID != 1 || out.Topics[1].TID != 2 {
		t.Fatalf("non-staff view was reordered: %+v", out.Topics)
	}
	if !out.Topics[0].IsResolved {
		t.Fatalf("annotation missing for non-staff viewer")
	}
}

func TestAnnotateAndSort_MixedCategoriesNoSort(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	mustToggleTo(t, svc, 1, true)

	in := forum.TopicListView{ViewerUID: adminUID, Topics: []forum.Topic{
		{TID: 1, CID: 4}, {TID: 2, CID: 9},
	}}
	out, err := svc.AnnotateAndSort(context.Background(), in)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if out.Topics[0].TID != 1 || out.Topics[1].TID != 2 {
		t.Fatalf("mixed-category batch was reordered: %+v", out.Topics)
	}
}

func TestAnnotateAndSort_StorageFailureFailsSoft(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	kv := rd.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	svc := New(repo.NewRD(kv), testRoles(), Config{FeedbackCID: 4})
	mr.Close() // every fetch now fails

	in := forum.TopicListView{ViewerUID: adminUID, Topics: []forum.Topic{
		{TID: 1, CID: 4}, {TID: 2, CID: 4},
	}}
	out, err := svc.AnnotateAndSort(context.Background(), in)
	if err != nil {
		t.Fatalf("fail-soft path raised: %v", err)
	}
	if out.Topics[0].TID != 1 || out.Topics[1].TID != 2 || out.Topics[0].IsResolved {
		t.Fatalf("batch not returned as-is: %+v", out.Topics)
	}
}

// helpers

func mustToggleTo(t *testing.T, svc *Service, tid int64, resolved bool) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.SetDefault(ctx, forum.TopicCreate{Topic: forum.Topic{TID: tid}}); err != nil {
		t.Fatalf("SetDefault(%d): %v", tid, err)
	}
	if resolved {
		if _, err := svc.Toggle(ctx, adminUID, tid); err != nil {
			t.Fatalf("Toggle(%d): %v", tid, err)
		}
	}
}

func assertResolved(t *testing.T, st repo.Storage, tid int64, want bool) {
	t.Helper()
	got, err := st.IsResolved(context.Background(), tid)
	if err != nil {
		t.Fatalf("IsResolved(%d): %v", tid, err)
	}
	if got != want {
		t.Fatalf("IsResolved(%d) = %v, want %v", tid, got, want)
	}
}

func assertMembership(t *testing.T, st repo.Storage, tid int64, wantResolved, wantUnresolved bool) {
	t.Helper()
	res, unres, err := st.Membership(context.Background(), tid)
	if err != nil {
		t.Fatalf("Membership(%d): %v", tid, err)
	}
	if res != wantResolved || unres != wantUnresolved {
		t.Fatalf("Membership(%d) = resolved:%v unresolved:%v, want resolved:%v unresolved:%v",
			tid, res, unres, wantResolved, wantUnresolved)
	}
	if res && unres {
		t.Fatalf("tid %d present in both indices", tid)
	}
}
