package sheet

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanzi-labs/ordersheet-backend/internal/render"
	pkgerrors "github.com/tuanzi-labs/ordersheet-backend/pkg/errors"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/i18n"
)

var allowedImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

// Engine rasterizes a prepared table input into an encoded image.
type Engine interface {
	Render(ctx context.Context, in render.Input) (*render.Result, error)
}

// Service exposes every order-sheet operation keyed by session.
type Service interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*View, error)
	ApplyEdits(ctx context.Context, sessionID uuid.UUID, rows []EditRow) (*View, error)
	UpdateSettings(ctx context.Context, sessionID uuid.UUID, input SettingsInput) (*View, error)
	ProductLabels(ctx context.Context, sessionID uuid.UUID) ([]string, error)
	AttachImage(ctx context.Context, sessionID uuid.UUID, input AttachInput) (string, error)
	Render(ctx context.Context, sessionID uuid.UUID, lang string) (*render.Result, error)
}

type service struct {
	store  *Store
	engine Engine
}

// NewService builds the sheet service backed by the session store and the
// table renderer.
func NewService(store *Store, engine Engine) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if engine == nil {
		return nil, fmt.Errorf("render engine required")
	}
	return &service{store: store, engine: engine}, nil
}

func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*View, error) {
	var view *View
	err := s.store.With(sessionID, func(sheet *OrderSheet) error {
		view = newView(sheet)
		return nil
	})
	return view, err
}

// ApplyEdits runs the reconciler against the revised row set and returns the
// resulting sheet.
func (s *service) ApplyEdits(ctx context.Context, sessionID uuid.UUID, rows []EditRow) (*View, error) {
	var view *View
	err := s.store.With(sessionID, func(sheet *OrderSheet) error {
		Reconcile(sheet, rows)
		view = newView(sheet)
		return nil
	})
	return view, err
}

// SettingsInput carries the two scalar sheet settings. TaxRate is optional;
// the shipping fee is always present because the numeric input reports its
// full value on every change.
type SettingsInput struct {
	ShippingFee decimal.Decimal
	TaxRate     *decimal.Decimal
}

func (s *service) UpdateSettings(ctx context.Context, sessionID uuid.UUID, input SettingsInput) (*View, error) {
	if input.ShippingFee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping fee must be non-negative")
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() || input.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must be within [0, 1]")
		}
	}

	var view *View
	err := s.store.With(sessionID, func(sheet *OrderSheet) error {
		sheet.ShippingFee = input.ShippingFee
		if input.TaxRate != nil {
			sheet.TaxRate = *input.TaxRate
		}
		view = newView(sheet)
		return nil
	})
	return view, err
}

// ProductLabels lists the upload selector options for the current sheet.
func (s *service) ProductLabels(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	var labels []string
	err := s.store.With(sessionID, func(sheet *OrderSheet) error {
		labels = make([]string, 0, len(sheet.Items))
		for _, it := range sheet.Items {
			labels = append(labels, it.Label())
		}
		return nil
	})
	return labels, err
}

// AttachInput carries one image upload: the composed product label the
// client selected, the uploaded file's name and its raw bytes.
type AttachInput struct {
	Label    string
	Filename string
	Lang     string
	Data     []byte
}

// AttachImage stores the uploaded bytes verbatim on the selected row.
// Decoding is deferred to render time. A label that no longer matches any
// row fails with NOT_FOUND instead of attaching to the wrong product.
func (s *service) AttachImage(ctx context.Context, sessionID uuid.UUID, input AttachInput) (string, error) {
	lang := i18n.Normalize(input.Lang)

	if len(input.Data) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "uploaded file is empty")
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Filename), "."))
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeUnsupportedMedia, "unsupported image type").
			WithDetails(map[string]string{"extension": ext, "allowed": "png, jpg, jpeg, gif"})
	}

	var message string
	err := s.store.With(sessionID, func(sheet *OrderSheet) error {
		if len(sheet.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, i18n.T(i18n.KeyNoProducts, lang))
		}
		for _, it := range sheet.Items {
			if it.Label() == input.Label {
				it.Image = input.Data
				message = i18n.TF(i18n.KeyUploadSuccess, lang, map[string]string{"product_name": input.Label})
				return nil
			}
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "selection not found").
			WithDetails(map[string]string{"product": input.Label})
	})
	return message, err
}

// Render produces the downloadable table image for the session's sheet.
func (s *service) Render(ctx context.Context, sessionID uuid.UUID, lang string) (*render.Result, error) {
	lang = i18n.Normalize(lang)

	var in render.Input
	if err := s.store.With(sessionID, func(sheet *OrderSheet) error {
		in = buildRenderInput(sheet, lang)
		return nil
	}); err != nil {
		return nil, err
	}

	return s.engine.Render(ctx, in)
}

func buildRenderInput(s *OrderSheet, lang string) render.Input {
	CalcTotals(s)

	rows := make([]render.Row, 0, len(s.Items))
	for _, it := range s.Items {
		rows = append(rows, render.Row{
			Cells: []string{
				strconv.Itoa(it.Seq),
				"",
				it.Description,
				CoercePrice(it.UnitPrice).StringFixed(2),
				it.Quantity,
				it.Total.StringFixed(2),
			},
			Image: it.Image,
		})
	}

	summary := Summarize(s)
	ratePercent := s.TaxRate.Mul(decimal.NewFromInt(100)).Round(0).String() + "%"

	return render.Input{
		Lang:    lang,
		Columns: render.Columns(lang),
		Rows:    rows,
		Summary: []render.SummaryRow{
			{Label: i18n.TF(i18n.KeyTax, lang, map[string]string{"rate": ratePercent}), Value: summary.Tax.StringFixed(2)},
			{Label: i18n.T(i18n.KeyShipping, lang), Value: s.ShippingFee.StringFixed(2)},
			{Label: i18n.T(i18n.KeyGrandTotal, lang), Value: render.FormatGrouped(summary.GrandTotal)},
		},
	}
}
