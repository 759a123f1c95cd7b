// Package service implements the endorsement manager
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	perr "studyhall/internal/platform/errors"
	"studyhall/internal/platform/logger"
	ptime "studyhall/internal/platform/time"

	"studyhall/internal/core/forum"
	"studyhall/internal/services/endorsement/domain"
	"studyhall/internal/services/endorsement/repo"
	forumdomain "studyhall/internal/services/forum/domain"
	notifydomain "studyhall/internal/services/notify/domain"
	roles "studyhall/internal/services/roles/domain"
)

// seam for tests
var now = time.Now

// Service owns endorsement state
type Service struct {
	st     repo.Storage
	roles  roles.ResolverPort
	reader forumdomain.ReaderPort
	notify notifydomain.NotifierPort
}

// New constructs the endorsement service
func New(st repo.Storage, r roles.ResolverPort, reader forumdomain.ReaderPort, n notifydomain.NotifierPort) *Service {
	if st == nil {
		panic("endorsement: nil storage")
	}
	if r == nil {
		panic("endorsement: nil role resolver")
	}
	if reader == nil {
		panic("endorsement: nil content reader")
	}
	return &Service{st: st, roles: r, reader: reader, notify: n}
}

// Set implements domain.ManagerPort
// the grant path is strictly admin-only
func (s *Service) Set(ctx context.Context, actorUID, pid int64, grant bool) (domain.State, error) {
	if actorUID <= 0 {
		return domain.State{}, perr.Unauthorizedf("not logged in")
	}
	if pid <= 0 {
		return domain.State{}, perr.InvalidArgf("pid required")
	}

	caps, err := s.roles.Resolve(ctx, actorUID)
	if err != nil {
		return domain.State{}, err
	}
	if !caps.IsAdmin {
		return domain.State{}, perr.Forbiddenf("no privileges")
	}

	exists, err := s.reader.PostExists(ctx, pid)
	if err != nil {
		return domain.State{}, err
	}
	if !exists {
		return domain.State{}, perr.InvalidArgf("no such post %d", pid)
	}

	if !grant {
		if err := s.st.Revoke(ctx, pid); err != nil {
			return domain.State{}, err
		}
		return domain.State{}, nil
	}

	at := now().UTC()
	if err := s.st.Grant(ctx, pid, actorUID, at.UnixMilli()); err != nil {
		return domain.State{}, err
	}

	s.notifyAuthor(ctx, actorUID, pid)

	return domain.State{IsEndorsed: true, EndorsedBy: actorUID, EndorsedAt: ptime.Ptr(at)}, nil
}

// notifyAuthor dispatches the grant notification; failures are logged only
func (s *Service) notifyAuthor(ctx context.Context, granterUID, pid int64) {
	if s.notify == nil {
		return
	}

	post, err := s.reader.PostByID(ctx, pid)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("pid", pid).Msg("endorse notification skipped, post fetch failed")
		return
	}
	if post.UID == granterUID {
		return // no self notification
	}

	topic, err := s.reader.TopicByID(ctx, post.TID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("tid", post.TID).Msg("endorse notification skipped, topic fetch failed")
		return
	}
	granter, err := s.reader.UserByID(ctx, granterUID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("uid", granterUID).Msg("endorse notification skipped, granter fetch failed")
		return
	}

	name := granter.Displayname
	if name == "" {
		name = granter.Username
	}
	n := notifydomain.Notification{
		Ntype:     "post-endorsed",
		BodyShort: fmt.Sprintf("%s endorsed your post in %q", name, topic.Title),
		PID:       pid,
		TID:       post.TID,
		FromUID:   granterUID,
		ToUID:     post.UID,
		Path:      "/post/" + strconv.FormatInt(pid, 10),
	}
	if err := s.notify.Dispatch(ctx, n); err != nil {
		logger.C(ctx).Warn().Err(err).Int64("pid", pid).Msg("endorse notification dispatch failed")
	}
}

// AutoEndorse implements domain.ManagerPort
// failures are swallowed; post creation must never break here
func (s *Service) AutoEndorse(ctx context.Context, pc forum.PostCreate) (forum.PostCreate, error) {
	caps, err := s.roles.Resolve(ctx, pc.Post.UID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("uid", pc.Post.UID).Msg("auto endorse skipped, role lookup failed")
		return pc, nil
	}
	if !caps.IsAdmin {
		return pc, nil
	}

	at := now().UTC()
	if err := s.st.Grant(ctx, pc.Post.PID, pc.Post.UID, at.UnixMilli()); err != nil {
		logger.C(ctx).Warn().Err(err).Int64("pid", pc.Post.PID).Msg("auto endorse write failed")
		return pc, nil
	}
	pc.Post.IsEndorsed = true
	pc.Post.EndorsedBy = pc.Post.UID
	pc.Post.EndorsedAt = ptime.Ptr(at)
	return pc, nil
}

// Normalize implements domain.ManagerPort
func (s *Service) Normalize(ctx context.Context, view forum.PostListView) (forum.PostListView, error) {
	if len(view.Posts) == 0 {
		return view, nil
	}

	pids := make([]int64, 0, len(view.Posts))
	for _, p := range view.Posts {
		pids = append(pids, p.PID)
	}

	states, err := s.st.GetBatch(ctx, pids)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Msg("endorsement normalize failed, passing posts through")
		return view, nil
	}
	for i := range view.Posts {
		st := states[view.Posts[i].PID]
		view.Posts[i].IsEndorsed = st.IsEndorsed
		view.Posts[i].EndorsedBy = st.EndorsedBy
		view.Posts[i].EndorsedAt = st.EndorsedAt
	}
	return view, nil
}

// MenuActions implements domain.ManagerPort
func (s *Service) MenuActions(ctx context.Context, tools forum.PostTools) (forum.PostTools, error) {
	caps, err := s.roles.Resolve(ctx, tools.ViewerUID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("uid", tools.ViewerUID).Msg("menu action role lookup failed")
		return tools, nil
	}
	if !caps.IsAdmin {
		return tools, nil
	}

	st, err := s.st.Get(ctx, tools.PID)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int64("pid", tools.PID).Msg("menu action state fetch failed")
		return tools, nil
	}

	action := forum.MenuAction{ID: "endorse", Icon: "fa-graduation-cap", Name: "Endorse"}
	if st.IsEndorsed {
		action = forum.MenuAction{ID: "unendorse", Icon: "fa-graduation-cap", Name: "Remove endorsement"}
	}
	tools.Actions = append(tools.Actions, action)
	return tools, nil
}
