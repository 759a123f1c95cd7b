// Package service implements first-view tracking for posts
package service

import (
	"context"
	"time"

	perr "studyhall/internal/platform/errors"
	forumdomain "studyhall/internal/services/forum/domain"
	roles "studyhall/internal/services/roles/domain"
	"studyhall/internal/services/views/domain"
	"studyhall/internal/services/views/repo"
)

// seam for tests
var now = time.Now

// Service implements domain.TrackerPort
type Service struct {
	st     repo.Storage
	roles  roles.ResolverPort
	reader forumdomain.ReaderPort
}

// New wires the tracker over its storage and collaborators
func New(st repo.Storage, r roles.ResolverPort, reader forumdomain.ReaderPort) *Service {
	if st == nil {
		panic("views: nil storage")
	}
	if r == nil {
		panic("views: nil roles resolver")
	}
	if reader == nil {
		panic("views: nil forum reader")
	}
	return &Service{st: st, roles: r, reader: reader}
}

// Log implements domain.TrackerPort. Staff views and repeat views are
// acknowledged without writing so the roster stays first-student-views only
func (s *Service) Log(ctx context.Context, viewerUID, pid int64) (domain.LogResult, error) {
	if viewerUID <= 0 {
		return domain.LogResult{}, perr.Unauthorizedf("not logged in")
	}
	if pid <= 0 {
		return domain.LogResult{}, perr.InvalidArgf("invalid pid %d", pid)
	}
	ok, err := s.reader.PostExists(ctx, pid)
	if err != nil {
		return domain.LogResult{}, err
	}
	if !ok {
		return domain.LogResult{}, perr.InvalidArgf("no such post %d", pid)
	}

	caps, err := s.roles.Resolve(ctx, viewerUID)
	if err != nil {
		return domain.LogResult{}, err
	}
	if caps.Staff() {
		return domain.LogResult{Logged: false, Reason: "staff-view"}, nil
	}

	seen, err := s.st.HasViewed(ctx, viewerUID, pid)
	if err != nil {
		return domain.LogResult{}, err
	}
	if seen {
		return domain.LogResult{Logged: false, Reason: "already-viewed"}, nil
	}

	at := now().UTC()
	if err := s.st.RecordView(ctx, viewerUID, pid, at.UnixMilli()); err != nil {
		return domain.LogResult{}, err
	}
	return domain.LogResult{Logged: true, Timestamp: &at}, nil
}

// Viewers implements domain.TrackerPort. The roster is staff only.
// Viewers whose accounts no longer resolve are dropped, and the count
// reflects the roster after dropping them
func (s *Service) Viewers(ctx context.Context, viewerUID, pid int64) (domain.ViewersResult, error) {
	if viewerUID <= 0 {
		return domain.ViewersResult{}, perr.Unauthorizedf("not logged in")
	}
	if pid <= 0 {
		return domain.ViewersResult{}, perr.InvalidArgf("invalid pid %d", pid)
	}
	caps, err := s.roles.Resolve(ctx, viewerUID)
	if err != nil {
		return domain.ViewersResult{}, err
	}
	if !caps.Staff() {
		return domain.ViewersResult{}, perr.Forbiddenf("no privileges")
	}
	ok, err := s.reader.PostExists(ctx, pid)
	if err != nil {
		return domain.ViewersResult{}, err
	}
	if !ok {
		return domain.ViewersResult{}, perr.InvalidArgf("no such post %d", pid)
	}

	recorded, err := s.st.Viewers(ctx, pid)
	if err != nil {
		return domain.ViewersResult{}, err
	}
	if len(recorded) == 0 {
		return domain.ViewersResult{Viewers: []domain.ViewerSummary{}}, nil
	}

	uids := make([]int64, 0, len(recorded))
	for _, v := range recorded {
		uids = append(uids, v.UID)
	}
	users, err := s.reader.UsersByIDs(ctx, uids)
	if err != nil {
		return domain.ViewersResult{}, err
	}

	out := make([]domain.ViewerSummary, 0, len(recorded))
	for _, v := range recorded {
		u, ok := users[v.UID]
		if !ok {
			continue
		}
		display := u.Displayname
		if display == "" {
			display = u.Username
		}
		out = append(out, domain.ViewerSummary{
			UID:         u.UID,
			Username:    u.Username,
			Userslug:    u.Userslug,
			Displayname: display,
			Picture:     u.Picture,
			ViewedAt:    time.UnixMilli(v.ViewedAtMS).UTC(),
		})
	}
	return domain.ViewersResult{Viewers: out, Count: int64(len(out))}, nil
}

// Count implements domain.TrackerPort
func (s *Service) Count(ctx context.Context, viewerUID, pid int64) (int64, error) {
	if viewerUID <= 0 {
		return 0, perr.Unauthorizedf("not logged in")
	}
	if pid <= 0 {
		return 0, perr.InvalidArgf("invalid pid %d", pid)
	}
	return s.st.Count(ctx, pid)
}
