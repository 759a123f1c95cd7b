//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"studyhall/internal/platform/store"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestCapabilityLookups_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	setup := `
create table users (
	uid bigint primary key,
	username text not null,
	userslug text not null,
	displayname text not null default '',
	picture text not null default '',
	administrator boolean not null default false
);
create table group_members (
	group_name text not null,
	uid bigint not null,
	primary key (group_name, uid)
);
insert into users (uid, username, userslug, administrator) values
	(1, 'prof', 'prof', true),
	(2, 'student2', 'student2', false),
	(3, 'ta3', 'ta3', false);
insert into group_members (group_name, uid) values
	('Teaching Assistants', 3),
	('Global Moderators', 4);
`
	if _, err := store.Exec(ctx, st.PG, setup); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := NewPG().Bind(st.PG)

	admin, err := s.IsAdministrator(ctx, 1)
	if err != nil || !admin {
		t.Fatalf("admin(1) = %v, %v", admin, err)
	}
	admin, err = s.IsAdministrator(ctx, 2)
	if err != nil || admin {
		t.Fatalf("admin(2) = %v, %v", admin, err)
	}
	// unknown uid is simply not an administrator
	admin, err = s.IsAdministrator(ctx, 999)
	if err != nil || admin {
		t.Fatalf("admin(999) = %v, %v", admin, err)
	}

	in, err := s.InGroup(ctx, "Teaching Assistants", 3)
	if err != nil || !in {
		t.Fatalf("ta(3) = %v, %v", in, err)
	}
	in, err = s.InGroup(ctx, "Teaching Assistants", 2)
	if err != nil || in {
		t.Fatalf("ta(2) = %v, %v", in, err)
	}
	// group membership rows survive even for uids missing from users
	in, err = s.InGroup(ctx, "Global Moderators", 4)
	if err != nil || !in {
		t.Fatalf("gmod(4) = %v, %v", in, err)
	}
}
