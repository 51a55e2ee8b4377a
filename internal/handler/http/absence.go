package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/absence"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/handler/http/response"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/validator"
)

type AbsenceHandler interface {
	Compensation(w http.ResponseWriter, r *http.Request)
}

type absenceHandlerImpl struct {
	compensationService absence.CompensationService
}

func NewAbsenceHandler(compensationService absence.CompensationService) AbsenceHandler {
	return &absenceHandlerImpl{compensationService: compensationService}
}

func (h *absenceHandlerImpl) Compensation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Absence ID must be a valid UUID", nil)
		return
	}

	result, err := h.compensationService.Calculate(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
