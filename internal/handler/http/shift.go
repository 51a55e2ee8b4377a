package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/shift"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/handler/http/response"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/validator"
)

// ShiftClassifier is implemented by hours.Classifier.
type ShiftClassifier interface {
	Classify(ctx context.Context, date time.Time, startTime, endTime string) (shift.ShiftHours, error)
}

type ShiftHandler interface {
	Classify(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	classifier ShiftClassifier
}

func NewShiftHandler(classifier ShiftClassifier) ShiftHandler {
	return &shiftHandlerImpl{classifier: classifier}
}

func (h *shiftHandlerImpl) Classify(w http.ResponseWriter, r *http.Request) {
	var req shift.ClassifyShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date, _ := validator.IsValidDate(req.Date)
	result, err := h.classifier.Classify(r.Context(), date, req.StartTime, req.EndTime)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
