// Package service implements anonymous authorship marking and scrubbing
package service

import (
	"context"

	"studyhall/internal/core/forum"
	"studyhall/internal/platform/logger"
	"studyhall/internal/services/anonymity/repo"
	roles "studyhall/internal/services/roles/domain"
)

// Service implements domain.FilterPort
type Service struct {
	st    repo.Storage
	roles roles.ResolverPort
}

// New wires the filter over its storage and the role resolver
func New(st repo.Storage, r roles.ResolverPort) *Service {
	if st == nil {
		panic("anonymity: nil storage")
	}
	if r == nil {
		panic("anonymity: nil roles resolver")
	}
	return &Service{st: st, roles: r}
}

// MarkTopic implements domain.FilterPort. Content creation never fails
// because of this step
func (s *Service) MarkTopic(ctx context.Context, tc forum.TopicCreate) (forum.TopicCreate, error) {
	if !tc.Anonymous {
		return tc, nil
	}
	if err := s.st.SetTopicAnon(ctx, tc.Topic.TID); err != nil {
		logger.C(ctx).Warn().Err(err).Int64("tid", tc.Topic.TID).Msg("anonymity mark failed")
		return tc, nil
	}
	tc.Topic.IsAnonymous = true
	return tc, nil
}

// MarkPost implements domain.FilterPort
func (s *Service) MarkPost(ctx context.Context, pc forum.PostCreate) (forum.PostCreate, error) {
	if !pc.Anonymous {
		return pc, nil
	}
	if err := s.st.SetPostAnon(ctx, pc.Post.PID); err != nil {
		logger.C(ctx).Warn().Err(err).Int64("pid", pc.Post.PID).Msg("anonymity mark failed")
		return pc, nil
	}
	pc.Post.IsAnonymous = true
	return pc, nil
}

// ObfuscateTopic implements domain.FilterPort
func (s *Service) ObfuscateTopic(ctx context.Context, view forum.TopicView) (forum.TopicView, error) {
	flags, err := s.st.TopicAnonBatch(ctx, []int64{view.Topic.TID})
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("tid", view.Topic.TID).Msg("anonymity fetch failed, passing topic through")
		return view, nil
	}
	view.Topic.IsAnonymous = flags[view.Topic.TID]
	if !view.Topic.IsAnonymous {
		return view, nil
	}

	staff, err := s.viewerIsStaff(ctx, view.ViewerUID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("uid", view.ViewerUID).Msg("anonymity role lookup failed, passing topic through")
		return view, nil
	}
	if !staff && view.ViewerUID != view.Topic.UID {
		scrubTopic(&view.Topic)
	}
	return view, nil
}

// ObfuscateTopics implements domain.FilterPort
func (s *Service) ObfuscateTopics(ctx context.Context, view forum.TopicListView) (forum.TopicListView, error) {
	if len(view.Topics) == 0 {
		return view, nil
	}
	tids := make([]int64, 0, len(view.Topics))
	for _, t := range view.Topics {
		tids = append(tids, t.TID)
	}
	flags, err := s.st.TopicAnonBatch(ctx, tids)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("anonymity fetch failed, passing topics through")
		return view, nil
	}
	staff, err := s.viewerIsStaff(ctx, view.ViewerUID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("uid", view.ViewerUID).Msg("anonymity role lookup failed, passing topics through")
		return view, nil
	}
	for i := range view.Topics {
		t := &view.Topics[i]
		t.IsAnonymous = flags[t.TID]
		if t.IsAnonymous && !staff && view.ViewerUID != t.UID {
			scrubTopic(t)
		}
	}
	return view, nil
}

// ObfuscatePosts implements domain.FilterPort
func (s *Service) ObfuscatePosts(ctx context.Context, view forum.PostListView) (forum.PostListView, error) {
	if len(view.Posts) == 0 {
		return view, nil
	}
	pids := make([]int64, 0, len(view.Posts))
	for _, p := range view.Posts {
		pids = append(pids, p.PID)
	}
	flags, err := s.st.PostAnonBatch(ctx, pids)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("anonymity fetch failed, passing posts through")
		return view, nil
	}
	staff, err := s.viewerIsStaff(ctx, view.ViewerUID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("uid", view.ViewerUID).Msg("anonymity role lookup failed, passing posts through")
		return view, nil
	}
	for i := range view.Posts {
		p := &view.Posts[i]
		p.IsAnonymous = flags[p.PID]
		if p.IsAnonymous && !staff && view.ViewerUID != p.UID {
			scrubPost(p)
		}
	}
	return view, nil
}

// ObfuscateSummaries implements domain.FilterPort
func (s *Service) ObfuscateSummaries(ctx context.Context, view forum.SummaryListView) (forum.SummaryListView, error) {
	if len(view.Posts) == 0 {
		return view, nil
	}
	pids := make([]int64, 0, len(view.Posts))
	for _, p := range view.Posts {
		pids = append(pids, p.PID)
	}
	flags, err := s.st.PostAnonBatch(ctx, pids)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("anonymity fetch failed, passing summaries through")
		return view, nil
	}
	staff, err := s.viewerIsStaff(ctx, view.ViewerUID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("uid", view.ViewerUID).Msg("anonymity role lookup failed, passing summaries through")
		return view, nil
	}
	for i := range view.Posts {
		p := &view.Posts[i]
		p.IsAnonymous = flags[p.PID]
		if p.IsAnonymous && !staff && view.ViewerUID != p.UID {
			p.UID = 0
			p.Author = forum.Anonymous
		}
	}
	return view, nil
}

func (s *Service) viewerIsStaff(ctx context.Context, uid int64) (bool, error) {
	caps, err := s.roles.Resolve(ctx, uid)
	if err != nil {
		return false, err
	}
	return caps.Staff(), nil
}

func scrubTopic(t *forum.Topic) {
	t.UID = 0
	t.Author = forum.Anonymous
}

func scrubPost(p *forum.Post) {
	p.UID = 0
	p.Author = forum.Anonymous
}
