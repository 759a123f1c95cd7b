//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	perr "studyhall/internal/platform/errors"
	"studyhall/internal/platform/store"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const schema = `
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
create table topics (
	tid bigint primary key,
	cid bigint not null,
	uid bigint not null,
	title text not null
);
create table posts (
	pid bigint primary key,
	tid bigint not null references topics (tid),
	uid bigint not null
);
`

const seed = `
insert into users (uid, username, userslug, displayname, picture) values
	(1, 'prof', 'prof', 'Professor X', '/p/1.png'),
	(2, 'student2', 'student2', '', '');
insert into topics (tid, cid, uid, title) values (6, 4, 2, 'How do I submit HW2?');
insert into posts (pid, tid, uid) values (8, 6, 2);
`

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

func newSeededStorage(t *testing.T, ctx context.Context) (Storage, func()) {
	t.Helper()
	dsn, stop := startPostgres(t)

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		stop()
		t.Fatalf("store.Open: %v", err)
	}
	for _, stmt := range []string{schema, seed} {
		if _, err := store.Exec(ctx, st.PG, stmt); err != nil {
			_ = st.Close(context.Background())
			stop()
			t.Fatalf("setup: %v", err)
		}
	}
	return NewPG().Bind(st.PG), func() {
		_ = st.Close(context.Background())
		stop()
	}
}

func TestReader_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	s, done := newSeededStorage(t, ctx)
	defer done()

	topic, err := s.TopicByID(ctx, 6)
	if err != nil {
		t.Fatalf("topic: %v", err)
	}
	if topic.TID != 6 || topic.CID != 4 || topic.UID != 2 || topic.Title != "How do I submit HW2?" {
		t.Fatalf("unexpected topic: %+v", topic)
	}
	if _, err := s.TopicByID(ctx, 999); !errors.Is(err, perr.ErrNotFound) {
		t.Fatalf("missing topic err = %v", err)
	}

	post, err := s.PostByID(ctx, 8)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if post.PID != 8 || post.TID != 6 || post.UID != 2 {
		t.Fatalf("unexpected post: %+v", post)
	}

	ok, err := s.PostExists(ctx, 8)
	if err != nil || !ok {
		t.Fatalf("exists(8) = %v, %v", ok, err)
	}
	ok, err = s.PostExists(ctx, 999)
	if err != nil || ok {
		t.Fatalf("exists(999) = %v, %v", ok, err)
	}

	u, err := s.UserByID(ctx, 1)
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if u.Username != "prof" || u.Displayname != "Professor X" {
		t.Fatalf("unexpected user: %+v", u)
	}

	// missing uids are simply absent from the batch result
	users, err := s.UsersByIDs(ctx, []int64{1, 2, 999})
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 2 || users[2].Username != "student2" {
		t.Fatalf("unexpected batch: %+v", users)
	}
	if _, ok := users[999]; ok {
		t.Fatalf("deleted uid must be absent")
	}
}
