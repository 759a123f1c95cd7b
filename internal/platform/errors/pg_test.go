package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code}
}

func TestDBErrorCodeMappings(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey}, // unique violation
		{"23503", ErrorCodeValidation},   // fk violation
		{"23502", ErrorCodeValidation},   // not null
		{"23514", ErrorCodeValidation},   // check
		{"40001", ErrorCodeUnavailable},  // serialization failure
		{"40P01", ErrorCodeUnavailable},  // deadlock
		{"57P03", ErrorCodeUnavailable},  // cannot connect now
		{"XXXXX", ErrorCodeDB},           // default branch
	}
	for _, c := range cases {
		got, ok := DBErrorCode(pg(c.code))
		if !ok {
			t.Fatalf("expected ok for PgError code %s", c.code)
		}
		if got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v, want %v", c.code, got, c.want)
		}
	}

	// Non-pg error path
	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatalf("DBErrorCode should return ok=false for non-pg error")
	}
}

func TestPgPredicates(t *testing.T) {
	if !IsDuplicateKey(pg("23505")) {
		t.Fatalf("23505 should be a duplicate key")
	}
	if IsDuplicateKey(pg("23503")) {
		t.Fatalf("23503 is not a duplicate key")
	}
	if !IsForeignKeyViolation(pg("23503")) {
		t.Fatalf("23503 should be a foreign key violation")
	}
	if IsSQLState(stderrs.New("nope"), "23505") {
		t.Fatalf("non-pg error should never match a SQLSTATE")
	}
}

func TestExtractPgErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", pg("23505"))
	got, ok := ExtractPgError(wrapped)
	if !ok || got.Code != "23505" {
		t.Fatalf("ExtractPgError should find the root PgError: %v %v", got, ok)
	}
	if _, ok := ExtractPgError(stderrs.New("nope")); ok {
		t.Fatalf("ExtractPgError should return ok=false for non-pg error")
	}
}
