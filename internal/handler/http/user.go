package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	userService "github.com/cmlabs-hris/payroll-backend-go/internal/service/user"
)

type UserHandler struct {
	userService *userService.Service
}

func NewUserHandler(service *userService.Service) UserHandler {
	return UserHandler{userService: service}
}

// parseUnitFilter reads the optional business-unit filter from the query
// string: business_units is a comma separated id list, units_mode switches
// between membership and exact matching.
func parseUnitFilter(r *http.Request) *user.UnitFilter {
	raw := r.URL.Query().Get("business_units")
	if raw == "" {
		return nil
	}

	var unitIDs []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		unitIDs = append(unitIDs, id)
	}
	if len(unitIDs) == 0 {
		return nil
	}

	mode := user.UnitFilterMember
	if r.URL.Query().Get("units_mode") == "exact" {
		mode = user.UnitFilterExact
	}

	return &user.UnitFilter{UnitIDs: unitIDs, Mode: mode}
}

func (h UserHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := user.ListFilter{
		Order: r.URL.Query().Get("order"),
		By:    r.URL.Query().Get("by"),
		Units: parseUnitFilter(r),
	}

	users, err := h.userService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

func (h UserHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	details, err := h.userService.Details(r.Context(), id, parseUnitFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, details)
}

func (h UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.userService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", created)
}

func (h UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	if err := h.userService.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", nil)
}

func (h UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	if err := h.userService.Deactivate(r.Context(), id, parseUnitFilter(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deactivated", nil)
}

func (h UserHandler) SetSalary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user id", nil)
		return
	}

	var req salary.SetSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.UserID = id

	updated, err := h.userService.SetSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary updated", updated)
}

func (h UserHandler) ListPaymentPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.userService.ListPaymentPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, periods)
}
