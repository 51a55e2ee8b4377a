package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/handler/http/response"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/validator"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/service/rate"
)

// WeekReconciler is implemented by hours.AttentionReconciler.
type WeekReconciler interface {
	ReconcileWeek(ctx context.Context, workerID string, day time.Time) (shift.WeekAllocation, error)
}

// RateCards is implemented by rate.CardService.
type RateCards interface {
	ForWorker(ctx context.Context, workerID, centerID string, on time.Time) (rate.Card, error)
}

type WorkerHandler interface {
	ReconcileWeek(w http.ResponseWriter, r *http.Request)
	Rates(w http.ResponseWriter, r *http.Request)
}

type workerHandlerImpl struct {
	reconciler WeekReconciler
	rateCards  RateCards
}

func NewWorkerHandler(reconciler WeekReconciler, rateCards RateCards) WorkerHandler {
	return &workerHandlerImpl{reconciler: reconciler, rateCards: rateCards}
}

func (h *workerHandlerImpl) ReconcileWeek(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(workerID) {
		response.BadRequest(w, "Worker ID must be a valid UUID", nil)
		return
	}
	day, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "Date must be YYYY-MM-DD", nil)
		return
	}

	result, err := h.reconciler.ReconcileWeek(r.Context(), workerID, day)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week reconciled", result)
}

func (h *workerHandlerImpl) Rates(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "id")
	if !validator.IsValidUUID(workerID) {
		response.BadRequest(w, "Worker ID must be a valid UUID", nil)
		return
	}

	q := r.URL.Query()
	on := time.Now().UTC()
	if v := q.Get("date"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "Date must be YYYY-MM-DD", nil)
			return
		}
		on = d
	}

	centerID := q.Get("center_id")
	if centerID != "" && !validator.IsValidUUID(centerID) {
		response.BadRequest(w, "Center ID must be a valid UUID", nil)
		return
	}

	result, err := h.rateCards.ForWorker(r.Context(), workerID, centerID, on)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
