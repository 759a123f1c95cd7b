// Package repo persists notifications in Postgres
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyhall/internal/modkit/repokit"
	perr "studyhall/internal/platform/errors"
	"studyhall/internal/services/notify/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage writes notification rows
type Storage interface {
	Insert(ctx context.Context, n domain.Notification, at time.Time) (string, error)
}

// Nid derives the notification id from its dedup key, so re-sending
// the same event (same type, post, and actor) maps to the same row
func Nid(n domain.Notification) string {
	key := fmt.Sprintf("%s:%d:%d", n.Ntype, n.PID, n.FromUID)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// Insert stores one notification row and returns its id.
// A duplicate key means the event was already delivered; that is not an error
func (s *pg) Insert(ctx context.Context, n domain.Notification, at time.Time) (string, error) {
	nid := Nid(n)
	_, err := s.q.Exec(ctx, `
		INSERT INTO notifications
			(nid, ntype, body_short, pid, tid, from_uid, to_uid, path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		nid, n.Ntype, n.BodyShort, n.PID, n.TID, n.FromUID, n.ToUID, n.Path, at,
	)
	if err != nil {
		if perr.IsDuplicateKey(err) {
			return nid, nil
		}
		return "", err
	}
	return nid, nil
}
