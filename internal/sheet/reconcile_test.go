package sheet

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func sheetWithRows(t *testing.T, n int) *OrderSheet {
	t.Helper()
	s := &OrderSheet{}
	for i := 0; i < n; i++ {
		s.Items = append(s.Items, &LineItem{
			ID:          uuid.New(),
			Seq:         i + 1,
			Description: string(rune('A' + i)),
			UnitPrice:   "10",
			Quantity:    "1",
		})
	}
	return s
}

func TestReconcileRenumbersContiguously(t *testing.T) {
	s := sheetWithRows(t, 3)

	Reconcile(s, []EditRow{
		{Description: "C", UnitPrice: "30", Quantity: "1"},
		{Description: "A", UnitPrice: "10", Quantity: "1"},
		{Description: "new", UnitPrice: "5", Quantity: "2"},
		{Description: "another", UnitPrice: "1", Quantity: "1"},
	})

	if len(s.Items) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(s.Items))
	}
	for i, it := range s.Items {
		if it.Seq != i+1 {
			t.Fatalf("row %d has seq %d, want %d", i, it.Seq, i+1)
		}
		if it.ID == uuid.Nil {
			t.Fatalf("row %d left without an id", i)
		}
	}
}

func TestReconcileEmptyPayloadClearsSheet(t *testing.T) {
	s := sheetWithRows(t, 1)

	Reconcile(s, nil)

	if len(s.Items) != 0 {
		t.Fatalf("expected empty sheet, got %d rows", len(s.Items))
	}
}

func TestReconcilePreservesImageAtUnchangedPosition(t *testing.T) {
	s := sheetWithRows(t, 2)
	img := []byte{0x89, 0x50, 0x4e, 0x47}
	s.Items[1].Image = img

	// plain positional payload, same order, edited quantity
	Reconcile(s, []EditRow{
		{Description: "A", UnitPrice: "10", Quantity: "1"},
		{Description: "B", UnitPrice: "10", Quantity: "9"},
	})

	if !bytes.Equal(s.Items[1].Image, img) {
		t.Fatalf("image lost across non-reordering edit")
	}
	if s.Items[0].Image != nil {
		t.Fatalf("image leaked to another row")
	}
}

func TestReconcilePositionalPayloadKeepsImageWithSlot(t *testing.T) {
	// Payloads without ids keep the inherited behavior: the attachment
	// stays with the numeric slot, not the product.
	s := sheetWithRows(t, 2)
	img := []byte("slot-one-image")
	s.Items[0].Image = img

	Reconcile(s, []EditRow{
		{Description: "B", UnitPrice: "10", Quantity: "1"},
		{Description: "A", UnitPrice: "10", Quantity: "1"},
	})

	if !bytes.Equal(s.Items[0].Image, img) {
		t.Fatalf("expected slot 1 to keep the image under a positional payload")
	}
}

func TestReconcileIdentityPayloadKeepsImageWithRow(t *testing.T) {
	s := sheetWithRows(t, 2)
	img := []byte("row-a-image")
	s.Items[0].Image = img
	idA, idB := s.Items[0].ID, s.Items[1].ID

	// ids echoed back, rows reordered: the image must follow row A
	Reconcile(s, []EditRow{
		{ID: idB, Description: "B", UnitPrice: "10", Quantity: "1"},
		{ID: idA, Description: "A", UnitPrice: "10", Quantity: "1"},
	})

	if s.Items[0].Image != nil {
		t.Fatalf("image stuck to the slot despite identity-tracked payload")
	}
	if !bytes.Equal(s.Items[1].Image, img) {
		t.Fatalf("image did not follow its row id")
	}
	if s.Items[1].ID != idA {
		t.Fatalf("row id not preserved")
	}
}

func TestReconcileNewRowsStartWithoutImages(t *testing.T) {
	s := sheetWithRows(t, 1)
	s.Items[0].Image = []byte("existing")
	id := s.Items[0].ID

	Reconcile(s, []EditRow{
		{ID: id, Description: "A", UnitPrice: "10", Quantity: "1"},
		{Description: "fresh", UnitPrice: "2", Quantity: "3"},
	})

	if s.Items[1].Image != nil {
		t.Fatalf("new row must start without an image")
	}
	if s.Items[1].ID == uuid.Nil || s.Items[1].ID == id {
		t.Fatalf("new row must get a fresh id")
	}
}

func TestReconcileRecomputesTotals(t *testing.T) {
	s := sheetWithRows(t, 1)

	Reconcile(s, []EditRow{{Description: "A", UnitPrice: "2.50", Quantity: "4"}})

	if got := s.Items[0].Total.StringFixed(2); got != "10.00" {
		t.Fatalf("expected total 10.00 after reconcile, got %s", got)
	}
}
