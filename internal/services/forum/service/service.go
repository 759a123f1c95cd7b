// Package service implements the content store reader
package service

import (
	"context"

	"studyhall/internal/core/forum"
	"studyhall/internal/modkit/repokit"
	perr "studyhall/internal/platform/errors"
	"studyhall/internal/services/forum/repo"
)

// Service reads content fields through a bound repository
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
}

// New constructs the reader service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage]) *Service {
	if db == nil {
		panic("forum: nil TxRunner")
	}
	return &Service{db: db, binder: binder}
}

func (s *Service) storage() repo.Storage { return s.binder.Bind(s.db) }

// TopicByID implements domain.ReaderPort
func (s *Service) TopicByID(ctx context.Context, tid int64) (forum.Topic, error) {
	if tid <= 0 {
		return forum.Topic{}, perr.InvalidArgf("tid required")
	}
	return s.storage().TopicByID(ctx, tid)
}

// PostByID implements domain.ReaderPort
func (s *Service) PostByID(ctx context.Context, pid int64) (forum.Post, error) {
	if pid <= 0 {
		return forum.Post{}, perr.InvalidArgf("pid required")
	}
	return s.storage().PostByID(ctx, pid)
}

// PostExists implements domain.ReaderPort
func (s *Service) PostExists(ctx context.Context, pid int64) (bool, error) {
	if pid <= 0 {
		return false, nil
	}
	return s.storage().PostExists(ctx, pid)
}

// UserByID implements domain.ReaderPort
func (s *Service) UserByID(ctx context.Context, uid int64) (forum.Author, error) {
	if uid <= 0 {
		return forum.Author{}, perr.ErrNotFound
	}
	return s.storage().UserByID(ctx, uid)
}

// UsersByIDs implements domain.ReaderPort
func (s *Service) UsersByIDs(ctx context.Context, uids []int64) (map[int64]forum.Author, error) {
	return s.storage().UsersByIDs(ctx, uids)
}
