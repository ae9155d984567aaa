package sheet

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanzi-labs/ordersheet-backend/internal/render"
	pkgerrors "github.com/tuanzi-labs/ordersheet-backend/pkg/errors"
)

type stubEngine struct {
	lastInput render.Input
	result    *render.Result
	err       error
}

func (s *stubEngine) Render(ctx context.Context, in render.Input) (*render.Result, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &render.Result{PNG: []byte("png")}, nil
}

func newTestService(t *testing.T, seed bool) (Service, *stubEngine) {
	t.Helper()
	engine := &stubEngine{}
	svc, err := NewService(NewStore(decimal.RequireFromString("0.01"), seed, 0), engine)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, engine
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	if _, err := NewService(nil, &stubEngine{}); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if _, err := NewService(NewStore(decimal.Zero, false, 0), nil); err == nil {
		t.Fatalf("expected error for nil engine")
	}
}

func TestGetReturnsSeededSheet(t *testing.T) {
	svc, _ := newTestService(t, true)

	view, err := svc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(view.Rows) != 3 {
		t.Fatalf("expected 3 seeded rows, got %d", len(view.Rows))
	}
	if view.Rows[0].Total != "345.00" {
		t.Fatalf("expected seeded total 345.00, got %s", view.Rows[0].Total)
	}
	// 345 + 295 + 445 = 1085, plus 1% tax
	if view.Summary.Subtotal != "1085.00" {
		t.Fatalf("unexpected subtotal %s", view.Summary.Subtotal)
	}
	if view.Summary.Tax != "10.85" {
		t.Fatalf("unexpected tax %s", view.Summary.Tax)
	}
}

func TestApplyEditsReplacesRows(t *testing.T) {
	svc, _ := newTestService(t, true)
	session := uuid.New()

	view, err := svc.ApplyEdits(context.Background(), session, []EditRow{
		{Description: "Widget", UnitPrice: "10.00", Quantity: "3"},
	})
	if err != nil {
		t.Fatalf("ApplyEdits: %v", err)
	}
	if len(view.Rows) != 1 || view.Rows[0].Seq != 1 {
		t.Fatalf("unexpected rows %+v", view.Rows)
	}
	if view.Summary.GrandTotal != "30.30" {
		t.Fatalf("expected grand total 30.30, got %s", view.Summary.GrandTotal)
	}
}

func TestUpdateSettingsValidates(t *testing.T) {
	svc, _ := newTestService(t, true)
	session := uuid.New()

	if _, err := svc.UpdateSettings(context.Background(), session, SettingsInput{
		ShippingFee: decimal.RequireFromString("-1"),
	}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative shipping, got %v", err)
	}

	rate := decimal.RequireFromString("1.5")
	if _, err := svc.UpdateSettings(context.Background(), session, SettingsInput{
		ShippingFee: decimal.Zero,
		TaxRate:     &rate,
	}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for tax rate above 1, got %v", err)
	}

	fee := decimal.RequireFromString("5.00")
	view, err := svc.UpdateSettings(context.Background(), session, SettingsInput{ShippingFee: fee})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if view.ShippingFee != "5.00" {
		t.Fatalf("expected shipping fee 5.00, got %s", view.ShippingFee)
	}
}

func TestProductLabelsComposeSeqAndDescription(t *testing.T) {
	svc, _ := newTestService(t, true)

	labels, err := svc.ProductLabels(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("ProductLabels: %v", err)
	}
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0] != "1. 黑色钢琴玩偶(KAKA)" {
		t.Fatalf("unexpected label %q", labels[0])
	}
}

func TestAttachImageHappyPath(t *testing.T) {
	svc, _ := newTestService(t, true)
	session := uuid.New()

	msg, err := svc.AttachImage(context.Background(), session, AttachInput{
		Label:    "1. 黑色钢琴玩偶(KAKA)",
		Filename: "photo.PNG",
		Lang:     "en",
		Data:     []byte{0x89, 0x50},
	})
	if err != nil {
		t.Fatalf("AttachImage: %v", err)
	}
	if !strings.Contains(msg, "1. 黑色钢琴玩偶(KAKA)") {
		t.Fatalf("confirmation message missing product label: %q", msg)
	}

	view, err := svc.Get(context.Background(), session)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !view.Rows[0].HasImage {
		t.Fatalf("expected row 1 to report an attached image")
	}
}

func TestAttachImageStaleLabelFailsNotFound(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.AttachImage(context.Background(), uuid.New(), AttachInput{
		Label:    "9. Gone Product",
		Filename: "photo.png",
		Data:     []byte{1},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND for stale selection, got %v", err)
	}
}

func TestAttachImageRejectsUnsupportedExtension(t *testing.T) {
	svc, _ := newTestService(t, true)

	_, err := svc.AttachImage(context.Background(), uuid.New(), AttachInput{
		Label:    "1. 黑色钢琴玩偶(KAKA)",
		Filename: "payload.exe",
		Data:     []byte{1},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnsupportedMedia {
		t.Fatalf("expected UNSUPPORTED_MEDIA, got %v", err)
	}
}

func TestAttachImageOnEmptySheetFails(t *testing.T) {
	svc, _ := newTestService(t, false)

	_, err := svc.AttachImage(context.Background(), uuid.New(), AttachInput{
		Label:    "1. anything",
		Filename: "photo.png",
		Data:     []byte{1},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error on empty sheet, got %v", err)
	}
}

func TestRenderBuildsLocalizedInput(t *testing.T) {
	svc, engine := newTestService(t, true)
	session := uuid.New()

	if _, err := svc.ApplyEdits(context.Background(), session, []EditRow{
		{Description: "Widget", UnitPrice: "10.00", Quantity: "3"},
	}); err != nil {
		t.Fatalf("ApplyEdits: %v", err)
	}
	fee := decimal.RequireFromString("5.00")
	if _, err := svc.UpdateSettings(context.Background(), session, SettingsInput{ShippingFee: fee}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	res, err := svc.Render(context.Background(), session, "en")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(res.PNG) == 0 {
		t.Fatalf("expected image bytes")
	}

	in := engine.lastInput
	if len(in.Rows) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(in.Rows))
	}
	wantCells := []string{"1", "", "Widget", "10.00", "3", "30.00"}
	for i, want := range wantCells {
		if in.Rows[0].Cells[i] != want {
			t.Fatalf("cell %d: expected %q, got %q", i, want, in.Rows[0].Cells[i])
		}
	}
	if len(in.Summary) != 3 {
		t.Fatalf("expected exactly 3 summary rows, got %d", len(in.Summary))
	}
	if in.Summary[0].Label != "Tax (1%)" || in.Summary[0].Value != "0.30" {
		t.Fatalf("unexpected tax row %+v", in.Summary[0])
	}
	if in.Summary[1].Value != "5.00" {
		t.Fatalf("unexpected shipping row %+v", in.Summary[1])
	}
	if in.Summary[2].Label != "Grand Total" || in.Summary[2].Value != "35.30" {
		t.Fatalf("unexpected grand total row %+v", in.Summary[2])
	}
}
