package controllers

import (
	"io"
	"net/http"

	"github.com/tuanzi-labs/ordersheet-backend/api/responses"
	"github.com/tuanzi-labs/ordersheet-backend/internal/sheet"
	pkgerrors "github.com/tuanzi-labs/ordersheet-backend/pkg/errors"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/logger"
)

const maxUploadBytes = 10 << 20

// UploadImage attaches a product photo to the row named by the
// multipart "product" field.
func UploadImage(svc sheet.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, ok := sessionID(r, logg, w)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		label := r.FormValue("product")
		if label == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "product field is required"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "failed to read upload"))
			return
		}

		msg, err := svc.AttachImage(r.Context(), sid, sheet.AttachInput{
			Label:    label,
			Filename: header.Filename,
			Lang:     r.FormValue("lang"),
			Data:     data,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": msg})
	}
}
