package sheet

import "github.com/google/uuid"

// EditRow is one row as returned by the editing surface. The surface never
// carries image bytes. ID is optional: clients that track row identity echo
// it back, the original surface sends rows without ids.
type EditRow struct {
	ID          uuid.UUID
	Description string
	UnitPrice   string
	Quantity    string
}

// Reconcile replaces the sheet's rows with the revised set, renumbers
// sequence numbers to 1..N in display order and re-attaches each row's image.
//
// Re-attachment mode depends on the payload. When any row carries an id the
// whole payload is treated as identity-tracked: images follow their row id
// and rows without a known id start clean. A payload with no ids at all
// falls back to positional re-attachment keyed by the new sequence number,
// which preserves the inherited slot-follows-image behavior under reorders.
func Reconcile(s *OrderSheet, rows []EditRow) {
	bySeq := make(map[int][]byte, len(s.Items))
	byID := make(map[uuid.UUID][]byte, len(s.Items))
	for _, it := range s.Items {
		if it.Image != nil {
			bySeq[it.Seq] = it.Image
			byID[it.ID] = it.Image
		}
	}

	tracked := false
	for _, r := range rows {
		if r.ID != uuid.Nil {
			tracked = true
			break
		}
	}

	items := make([]*LineItem, 0, len(rows))
	for i, r := range rows {
		it := &LineItem{
			ID:          r.ID,
			Seq:         i + 1,
			Description: r.Description,
			UnitPrice:   r.UnitPrice,
			Quantity:    r.Quantity,
		}
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		if tracked {
			it.Image = byID[r.ID]
		} else {
			it.Image = bySeq[it.Seq]
		}
		items = append(items, it)
	}

	s.Items = items
	CalcTotals(s)
}
