package postgres

import (
	"database/sql"
	"testing"
)

func TestNullConversionsRoundTrip(t *testing.T) {
	t.Parallel()

	score := 2
	if got := nullIntPtr(intPtrToNull(&score)); got == nil || *got != 2 {
		t.Fatalf("int round trip = %v, want 2", got)
	}
	if got := nullIntPtr(intPtrToNull(nil)); got != nil {
		t.Fatalf("nil int round trip = %v, want nil", *got)
	}

	avg := 1.33
	if got := nullFloat64Ptr(float64PtrToNull(&avg)); got == nil || *got != 1.33 {
		t.Fatalf("float round trip = %v, want 1.33", got)
	}
	if got := nullFloat64Ptr(sql.NullFloat64{}); got != nil {
		t.Fatalf("invalid float = %v, want nil", *got)
	}

	name := "Liverpool"
	if got := nullStringPtr(stringPtrToNull(&name)); got == nil || *got != "Liverpool" {
		t.Fatalf("string round trip = %v, want Liverpool", got)
	}

	venueID := int64(556)
	if got := nullInt64Ptr(int64PtrToNull(&venueID)); got == nil || *got != 556 {
		t.Fatalf("int64 round trip = %v, want 556", got)
	}
	if got := int64PtrToNull(nil); got.Valid {
		t.Fatal("nil int64 should map to invalid NullInt64")
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows should be not-found")
	}
	if isNotFound(sql.ErrConnDone) {
		t.Fatal("sql.ErrConnDone should not be not-found")
	}
}
