package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	payrollService "github.com/cmlabs-hris/payroll-backend-go/internal/service/payroll"
)

type PayrollHandler struct {
	payrollService *payrollService.Service
}

func NewPayrollHandler(service *payrollService.Service) PayrollHandler {
	return PayrollHandler{payrollService: service}
}

func (h PayrollHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req payroll.EstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	estimate, err := h.payrollService.Estimate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, estimate)
}

func (h PayrollHandler) Stage(w http.ResponseWriter, r *http.Request) {
	var req payroll.StageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	staged, err := h.payrollService.Stage(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll staged", staged)
}

func (h PayrollHandler) Staged(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	listing, err := h.payrollService.Staged(r.Context(), offset, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, listing.Payrolls, listing.Meta)
}

func (h PayrollHandler) Push(w http.ResponseWriter, r *http.Request) {
	pushed, err := h.payrollService.Push(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll pushed", pushed)
}
