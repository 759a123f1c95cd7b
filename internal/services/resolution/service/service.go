// Package service implements the resolution state manager
package service

import (
	"context"
	"time"

	"studyhall/internal/core/forum"
	"studyhall/internal/core/partition"
	perr "studyhall/internal/platform/errors"
	"studyhall/internal/platform/logger"
	"studyhall/internal/services/resolution/domain"
	"studyhall/internal/services/resolution/repo"
	roles "studyhall/internal/services/roles/domain"
)

// seam for tests
var now = time.Now

// Config carries resolution settings
type Config struct {
	// FeedbackCID gates the unresolved-first sort in AnnotateAndSort
	FeedbackCID int64
}

// Service owns resolution state and its indices
type Service struct {
	st    repo.Storage
	roles roles.ResolverPort
	cfg   Config
}

// New constructs the resolution service
func New(st repo.Storage, r roles.ResolverPort, cfg Config) *Service {
	if st == nil {
		panic("resolution: nil storage")
	}
	if r == nil {
		panic("resolution: nil role resolver")
	}
	return &Service{st: st, roles: r, cfg: cfg}
}

// SetDefault implements domain.StatePort
func (s *Service) SetDefault(ctx context.Context, tc forum.TopicCreate) (forum.TopicCreate, error) {
	tc.Topic.IsResolved = false
	if tc.Topic.TID > 0 {
		if err := s.st.SetResolved(ctx, tc.Topic.TID, false, now().UnixMilli()); err != nil {
			return tc, err
		}
	}
	return tc, nil
}

// Toggle implements domain.StatePort
// the field write and the index move are two commands; a crash between them
// leaves a narrow documented inconsistency window
func (s *Service) Toggle(ctx context.Context, actorUID, tid int64) (domain.ToggleResult, error) {
	if actorUID <= 0 {
		return domain.ToggleResult{}, perr.Unauthorizedf("not logged in")
	}
	if tid <= 0 {
		return domain.ToggleResult{}, perr.InvalidArgf("tid required")
	}

	caps, err := s.roles.Resolve(ctx, actorUID)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	if !caps.Staff() {
		return domain.ToggleResult{}, perr.Forbiddenf("no privileges")
	}

	cur, err := s.st.IsResolved(ctx, tid)
	if err != nil {
		return domain.ToggleResult{}, err
	}
	next := !cur
	if err := s.st.SetResolved(ctx, tid, next, now().UnixMilli()); err != nil {
		return domain.ToggleResult{}, err
	}
	return domain.ToggleResult{IsResolved: next}, nil
}

// OnReply implements domain.StatePort
// a one-way flip to unresolved, never the general toggle
func (s *Service) OnReply(ctx context.Context, post forum.Post) error {
	if post.TID <= 0 {
		return nil
	}

	resolved, err := s.st.IsResolved(ctx, post.TID)
	if err != nil {
		return err
	}
	if !resolved {
		return nil
	}

	caps, err := s.roles.Resolve(ctx, post.UID)
	if err != nil {
		return err
	}
	if caps.Staff() {
		return nil
	}

	return s.st.SetResolved(ctx, post.TID, false, now().UnixMilli())
}

// AnnotateAndSort implements domain.StatePort
// annotation is best-effort; any failure returns the batch as-is, unsorted
func (s *Service) AnnotateAndSort(ctx context.Context, view forum.TopicListView) (forum.TopicListView, error) {
	if len(view.Topics) == 0 {
		return view, nil
	}

	tids := make([]int64, 0, len(view.Topics))
	for _, t := range view.Topics {
		tids = append(tids, t.TID)
	}

	states, err := s.st.IsResolvedBatch(ctx, tids)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("resolution annotate failed, passing topics through")
		return view, nil
	}
	for i := range view.Topics {
		view.Topics[i].IsResolved = states[view.Topics[i].TID]
	}

	if !s.allFeedback(view.Topics) {
		return view, nil
	}

	caps, err := s.roles.Resolve(ctx, view.ViewerUID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("resolution sort permission check failed, skipping sort")
		return view, nil
	}
	if !caps.Staff() {
		return view, nil
	}

	view.Topics = partition.Stable(view.Topics, func(t forum.Topic) bool {
		return !t.IsResolved
	}, true)
	return view, nil
}

func (s *Service) allFeedback(topics []forum.Topic) bool {
	if s.cfg.FeedbackCID <= 0 {
		return false
	}
	for _, t := range topics {
		if t.CID != s.cfg.FeedbackCID {
			return false
		}
	}
	return true
}
