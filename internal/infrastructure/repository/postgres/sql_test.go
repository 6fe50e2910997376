package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get facts: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation scoring_events does not exist")) {
		t.Fatalf("expected unrelated error to not be not found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "42P01"}) {
			t.Fatalf("expected false for undefined table")
		}
		if isUniqueViolation(fakeErr("boom")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestNullableHelpers(t *testing.T) {
	if got := nullableString("  "); got != nil {
		t.Fatalf("expected nil for blank string, got %q", *got)
	}
	if got := nullableString(" KC "); got == nil || *got != "KC" {
		t.Fatalf("expected trimmed value, got %v", got)
	}

	odds := 450
	value := nullableInt(&odds)
	if !value.Valid || value.Int64 != 450 {
		t.Fatalf("unexpected nullable int: %+v", value)
	}
	if back := intFromNull(value); back == nil || *back != 450 {
		t.Fatalf("unexpected round trip: %v", back)
	}
	if intFromNull(sql.NullInt64{}) != nil {
		t.Fatalf("expected nil for null int")
	}
	if stringFromNull(sql.NullString{}) != nil {
		t.Fatalf("expected nil for null string")
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
