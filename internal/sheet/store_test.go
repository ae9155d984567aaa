package sheet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestStoreCreatesSheetOnFirstUse(t *testing.T) {
	st := NewStore(decimal.RequireFromString("0.01"), true, 0)
	id := uuid.New()

	err := st.With(id, func(s *OrderSheet) error {
		if len(s.Items) != 3 {
			t.Fatalf("expected seeded sheet, got %d rows", len(s.Items))
		}
		s.Items[0].Description = "renamed"
		return nil
	})
	if err != nil {
		t.Fatalf("With returned error: %v", err)
	}

	// same session sees the mutation, a different session does not
	_ = st.With(id, func(s *OrderSheet) error {
		if s.Items[0].Description != "renamed" {
			t.Fatalf("mutation did not persist within session")
		}
		return nil
	})
	_ = st.With(uuid.New(), func(s *OrderSheet) error {
		if s.Items[0].Description == "renamed" {
			t.Fatalf("sessions share state")
		}
		return nil
	})

	if st.Len() != 2 {
		t.Fatalf("expected 2 live sessions, got %d", st.Len())
	}
}

func TestStoreEvictsIdleSessions(t *testing.T) {
	st := NewStore(decimal.Zero, false, time.Hour)

	current := time.Unix(1000, 0)
	st.now = func() time.Time { return current }

	stale := uuid.New()
	_ = st.With(stale, func(*OrderSheet) error { return nil })

	current = current.Add(2 * time.Hour)
	fresh := uuid.New()
	_ = st.With(fresh, func(*OrderSheet) error { return nil })

	if st.Len() != 1 {
		t.Fatalf("expected stale session pruned, got %d live", st.Len())
	}
}

func TestStoreZeroTTLDisablesEviction(t *testing.T) {
	st := NewStore(decimal.Zero, false, 0)

	current := time.Unix(1000, 0)
	st.now = func() time.Time { return current }

	_ = st.With(uuid.New(), func(*OrderSheet) error { return nil })
	current = current.Add(1000 * time.Hour)
	_ = st.With(uuid.New(), func(*OrderSheet) error { return nil })

	if st.Len() != 2 {
		t.Fatalf("expected both sessions retained, got %d", st.Len())
	}
}
