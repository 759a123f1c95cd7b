// Package service implements the role resolver
package service

import (
	"context"

	"studyhall/internal/modkit/repokit"
	"studyhall/internal/services/roles/domain"
	"studyhall/internal/services/roles/repo"
)

// globalModGroup is the content store's fixed moderator group name
const globalModGroup = "Global Moderators"

// Config carries role resolution settings
type Config struct {
	// TAGroup is the group whose members count as teaching assistants
	TAGroup string
}

// Service resolves capability vectors from the identity store
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	cfg    Config
}

// New constructs the resolver service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if db == nil {
		panic("roles: nil TxRunner")
	}
	if cfg.TAGroup == "" {
		cfg.TAGroup = "Teaching Assistants"
	}
	return &Service{db: db, binder: binder, cfg: cfg}
}

// Resolve implements domain.ResolverPort
// the three lookups are independent; any failure propagates to the caller
func (s *Service) Resolve(ctx context.Context, uid int64) (domain.Capabilities, error) {
	if uid <= 0 {
		return domain.Capabilities{}, nil
	}

	st := s.binder.Bind(s.db)

	admin, err := st.IsAdministrator(ctx, uid)
	if err != nil {
		return domain.Capabilities{}, err
	}
	gmod, err := st.InGroup(ctx, globalModGroup, uid)
	if err != nil {
		return domain.Capabilities{}, err
	}
	ta, err := st.InGroup(ctx, s.cfg.TAGroup, uid)
	if err != nil {
		return domain.Capabilities{}, err
	}

	return domain.Capabilities{IsAdmin: admin, IsGlobalMod: gmod, IsTA: ta}, nil
}
