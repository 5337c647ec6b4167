package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
)

type AuthHandler struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return AuthHandler{authService: authService}
}

// Login issues an access token. The wire shapes are fixed: 200 with the
// bare token object, 401 with a bare message object. No envelope.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	if err := req.Validate(); err != nil {
		response.JSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.JSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"token": result.Token})
}
