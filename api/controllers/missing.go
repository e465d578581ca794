package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openpantry/productdb-backend/api/responses"
	"github.com/openpantry/productdb-backend/api/validators"
	"github.com/openpantry/productdb-backend/internal/missing"
	pkgerrors "github.com/openpantry/productdb-backend/pkg/errors"
	"github.com/openpantry/productdb-backend/pkg/logger"
)

type missingReportRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// UserReportMissingProduct records a barcode the catalog did not resolve.
func UserReportMissingProduct(svc missing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "missing product service unavailable"))
			return
		}

		var payload missingReportRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithProductID(r.Context(), payload.ProductID)
		ack, err := svc.Report(ctx, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, ack)
	}
}

// AdminQueryMissingProducts pages through accumulated reports.
func AdminQueryMissingProducts(svc missing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "missing product service unavailable"))
			return
		}

		var payload queryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := payload.toParams()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Query(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, items)
	}
}

// AdminDeleteMissingProduct removes a report once it has been handled.
func AdminDeleteMissingProduct(svc missing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "missing product service unavailable"))
			return
		}

		id, err := validators.ParseInt64(chi.URLParam(r, "reportId"), "reportId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
