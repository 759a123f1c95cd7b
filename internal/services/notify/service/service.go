// Package service implements notification dispatch
package service

import (
	"context"
	"time"

	"studyhall/internal/modkit/repokit"
	perr "studyhall/internal/platform/errors"
	"studyhall/internal/platform/logger"
	"studyhall/internal/services/notify/domain"
	"studyhall/internal/services/notify/repo"
)

// seam for tests
var now = time.Now

// Service dispatches notifications through the Postgres repo
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New constructs the notifier service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	if db == nil {
		panic("notify: nil TxRunner")
	}
	return &Service{db: db, binder: binder}
}

// Dispatch implements domain.NotifierPort
func (s *Service) Dispatch(ctx context.Context, n domain.Notification) error {
	if n.ToUID <= 0 {
		return perr.InvalidArgf("notification recipient required")
	}
	if n.Ntype == "" {
		return perr.InvalidArgf("notification type required")
	}

	nid, err := s.binder.Bind(s.db).Insert(ctx, n, now())
	if err != nil {
		return err
	}

	logger.C(ctx).Info().
		Str("nid", nid).
		Str("ntype", n.Ntype).
		Int64("to_uid", n.ToUID).
		Int64("pid", n.PID).
		Msg("notification dispatched")
	return nil
}
