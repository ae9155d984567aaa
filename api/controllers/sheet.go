package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanzi-labs/ordersheet-backend/api/middleware"
	"github.com/tuanzi-labs/ordersheet-backend/api/responses"
	"github.com/tuanzi-labs/ordersheet-backend/api/validators"
	"github.com/tuanzi-labs/ordersheet-backend/internal/sheet"
	pkgerrors "github.com/tuanzi-labs/ordersheet-backend/pkg/errors"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/logger"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/types"
)

type sheetRowPayload struct {
	ID          string          `json:"id" validate:"omitempty,uuid4"`
	Description string          `json:"description"`
	UnitPrice   types.RawNumber `json:"unit_price"`
	Quantity    types.RawNumber `json:"quantity"`
}

type sheetRowsRequest struct {
	Rows []sheetRowPayload `json:"rows" validate:"dive"`
}

func (r sheetRowsRequest) toEditRows() ([]sheet.EditRow, error) {
	rows := make([]sheet.EditRow, 0, len(r.Rows))
	for _, p := range r.Rows {
		row := sheet.EditRow{
			Description: p.Description,
			UnitPrice:   p.UnitPrice.String(),
			Quantity:    p.Quantity.String(),
		}
		if strings.TrimSpace(p.ID) != "" {
			id, err := uuid.Parse(p.ID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid row id")
			}
			row.ID = id
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type sheetSettingsRequest struct {
	ShippingFee decimal.Decimal  `json:"shipping_fee"`
	TaxRate     *decimal.Decimal `json:"tax_rate"`
}

func sessionID(r *http.Request, logg *logger.Logger, w http.ResponseWriter) (uuid.UUID, bool) {
	sid := middleware.SessionIDFromContext(r.Context())
	if sid == uuid.Nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
		return uuid.Nil, false
	}
	return sid, true
}

// GetSheet returns the session's current rows and billing summary.
func GetSheet(svc sheet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := sessionID(r, logg, w)
		if !ok {
			return
		}

		view, err := svc.Get(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// PutRows reconciles a revised row set into the session's sheet.
func PutRows(svc sheet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := sessionID(r, logg, w)
		if !ok {
			return
		}

		var payload sheetRowsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := payload.toEditRows()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.ApplyEdits(r.Context(), sid, rows)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// PutSettings updates the shipping fee and, when present, the tax rate.
func PutSettings(svc sheet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := sessionID(r, logg, w)
		if !ok {
			return
		}

		var payload sheetSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.UpdateSettings(r.Context(), sid, sheet.SettingsInput{
			ShippingFee: payload.ShippingFee,
			TaxRate:     payload.TaxRate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// GetProducts lists the upload selector labels for the current sheet.
func GetProducts(svc sheet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := sessionID(r, logg, w)
		if !ok {
			return
		}

		labels, err := svc.ProductLabels(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": labels})
	}
}
