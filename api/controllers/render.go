package controllers

import (
	"net/http"
	"strconv"

	"github.com/tuanzi-labs/ordersheet-backend/api/responses"
	"github.com/tuanzi-labs/ordersheet-backend/internal/sheet"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/logger"
)

const renderFilename = "commodity_table.png"

// RenderSheet streams the sheet as a PNG download. Non-fatal render
// warnings travel in X-Render-Warning headers alongside the image.
func RenderSheet(svc sheet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := sessionID(r, logg, w)
		if !ok {
			return
		}

		res, err := svc.Render(r.Context(), sid, r.URL.Query().Get("lang"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		for _, warning := range res.Warnings {
			w.Header().Add("X-Render-Warning", warning)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(res.PNG)))
		w.Header().Set("Content-Disposition", `attachment; filename="`+renderFilename+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(res.PNG); err != nil {
			logg.Error(r.Context(), "failed to write rendered table", err)
		}
	}
}
