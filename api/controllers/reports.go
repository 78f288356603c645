package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mrivera-dev/carvalue-backend/api/middleware"
	"github.com/mrivera-dev/carvalue-backend/api/responses"
	"github.com/mrivera-dev/carvalue-backend/api/validators"
	"github.com/mrivera-dev/carvalue-backend/internal/reports"
	pkgerrors "github.com/mrivera-dev/carvalue-backend/pkg/errors"
	"github.com/mrivera-dev/carvalue-backend/pkg/logger"
)

// ReportCreate records a car sale owned by the signed-in user.
func ReportCreate(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		ownerID := middleware.SessionUserIDFromContext(r.Context())

		var body reports.CreateReportInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Create(r.Context(), ownerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, report)
	}
}

// ReportApprove lets an admin flip a report's approval flag.
func ReportApprove(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reports.ApproveReportInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := svc.ChangeApproval(r.Context(), id, *body.Approved); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// ReportEstimate prices a car from comparable approved sales.
func ReportEstimate(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		query, err := estimateQueryFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimate, err := svc.Estimate(r.Context(), *query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, estimate)
	}
}

func estimateQueryFromRequest(r *http.Request) (*reports.EstimateQuery, error) {
	year, err := validators.ParseQueryIntPtr(r, "year")
	if err != nil {
		return nil, err
	}
	lng, err := validators.ParseQueryFloat(r, "lng")
	if err != nil {
		return nil, err
	}
	lat, err := validators.ParseQueryFloat(r, "lat")
	if err != nil {
		return nil, err
	}
	mileage, err := validators.ParseQueryInt64(r, "mileage")
	if err != nil {
		return nil, err
	}

	query := reports.EstimateQuery{
		Make:    validators.SanitizeString(r.URL.Query().Get("make"), 100),
		Model:   validators.SanitizeString(r.URL.Query().Get("model"), 100),
		Year:    year,
		Lng:     lng,
		Lat:     lat,
		Mileage: mileage,
	}
	if err := validators.ValidateStruct(query); err != nil {
		return nil, err
	}
	return &query, nil
}
