package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/domain/payroll"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/handler/http/response"
	"github.com/modelaiprob-tech/Grupo-Rubio-app-sub000/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	Matrix(w http.ResponseWriter, r *http.Request)
	Nomina(w http.ResponseWriter, r *http.Request)
	ExportMatrix(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	matrixService payroll.MatrixService
}

func NewPayrollHandler(matrixService payroll.MatrixService) PayrollHandler {
	return &payrollHandlerImpl{matrixService: matrixService}
}

// parseMatrixRequest reads ?year=&month=&worker_ids=a,b. Year and month default to the current month.
func parseMatrixRequest(r *http.Request) (payroll.MatrixRequest, error) {
	q := r.URL.Query()
	now := time.Now().UTC()
	req := payroll.MatrixRequest{
		Year:      now.Year(),
		Month:     int(now.Month()),
		WorkerIDs: validator.SplitCSV(q.Get("worker_ids")),
	}

	var errs validator.ValidationErrors
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a number"})
		}
		req.Year = year
	}
	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a number"})
		}
		req.Month = month
	}
	if len(errs) > 0 {
		return payroll.MatrixRequest{}, errs
	}
	return req, nil
}

func (h *payrollHandlerImpl) Matrix(w http.ResponseWriter, r *http.Request) {
	h.build(w, r, false)
}

func (h *payrollHandlerImpl) Nomina(w http.ResponseWriter, r *http.Request) {
	h.build(w, r, true)
}

func (h *payrollHandlerImpl) build(w http.ResponseWriter, r *http.Request, withAmounts bool) {
	req, err := parseMatrixRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.WithAmounts = withAmounts

	result, err := h.matrixService.Build(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ExportMatrix(w http.ResponseWriter, r *http.Request) {
	req, err := parseMatrixRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.WithAmounts = r.URL.Query().Get("with_amounts") == "true"

	data, err := h.matrixService.ExportXLSX(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("matriz_%04d_%02d.xlsx", req.Year, req.Month)
	response.Attachment(w, xlsxContentType, filename, data)
}
