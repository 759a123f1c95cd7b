// Package repo provides the Postgres reader over the content store
package repo

import (
	"context"
	"fmt"
	"strings"

	"studyhall/internal/core/forum"
	"studyhall/internal/modkit/repokit"
	"studyhall/internal/platform/store"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the content store read surface
type Storage interface {
	TopicByID(ctx context.Context, tid int64) (forum.Topic, error)
	PostByID(ctx context.Context, pid int64) (forum.Post, error)
	PostExists(ctx context.Context, pid int64) (bool, error)
	UserByID(ctx context.Context, uid int64) (forum.Author, error)
	UsersByIDs(ctx context.Context, uids []int64) (map[int64]forum.Author, error)
}

func (s *pg) TopicByID(ctx context.Context, tid int64) (forum.Topic, error) {
	return store.One(ctx, s.q, func(r store.Row) (forum.Topic, error) {
		var t forum.Topic
		err := r.Scan(&t.TID, &t.CID, &t.UID, &t.Title)
		return t, err
	}, `SELECT tid, cid, uid, title FROM topics WHERE tid = $1`, tid)
}

func (s *pg) PostByID(ctx context.Context, pid int64) (forum.Post, error) {
	return store.One(ctx, s.q, func(r store.Row) (forum.Post, error) {
		var p forum.Post
		err := r.Scan(&p.PID, &p.TID, &p.UID)
		return p, err
	}, `SELECT pid, tid, uid FROM posts WHERE pid = $1`, pid)
}

func (s *pg) PostExists(ctx context.Context, pid int64) (bool, error) {
	return store.Scalar[bool](ctx, s.q,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE pid = $1)`, pid)
}

func (s *pg) UserByID(ctx context.Context, uid int64) (forum.Author, error) {
	return store.One(ctx, s.q, scanAuthor,
		`SELECT uid, username, userslug, displayname, picture FROM users WHERE uid = $1`, uid)
}

func (s *pg) UsersByIDs(ctx context.Context, uids []int64) (map[int64]forum.Author, error) {
	out := make(map[int64]forum.Author, len(uids))
	if len(uids) == 0 {
		return out, nil
	}

	ph := make([]string, len(uids))
	args := make([]any, len(uids))
	for i, uid := range uids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = uid
	}

	rows, err := store.Many(ctx, s.q, scanAuthor,
		`SELECT uid, username, userslug, displayname, picture FROM users WHERE uid IN (`+
			strings.Join(ph, ",")+`)`, args...)
	if err != nil {
		return nil, err
	}
	for _, a := range rows {
		out[a.UID] = a
	}
	return out, nil
}

func scanAuthor(r store.Row) (forum.Author, error) {
	var a forum.Author
	err := r.Scan(&a.UID, &a.Username, &a.Userslug, &a.Displayname, &a.Picture)
	return a, err
}
