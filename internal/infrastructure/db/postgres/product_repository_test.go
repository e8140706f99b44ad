package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"laptop":  "laptop",
		"50%":     `50\%`,
		"a_b":     `a\_b`,
		`back\sl`: `back\\sl`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestListQuery_ScopedToOwner(t *testing.T) {
	query, args := listQuery("u-1", "")
	if !strings.Contains(query, "owner_id=$1") || strings.Contains(query, "ILIKE") {
		t.Fatalf("unexpected query %q", query)
	}
	if len(args) != 1 || args[0] != "u-1" {
		t.Fatalf("unexpected args %v", args)
	}

	query, args = listQuery("u-1", "50%")
	if !strings.Contains(query, "owner_id=$1") || !strings.Contains(query, "ILIKE $2") {
		t.Fatalf("unexpected query %q", query)
	}
	if len(args) != 2 || args[1] != `%50\%%` {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !isUniqueViolation(dup) {
		t.Fatalf("expected wrapped 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatalf("plain error is not a unique violation")
	}
}
