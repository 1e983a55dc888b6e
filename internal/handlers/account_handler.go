package handlers

import (
	"net/http"

	"smartbiz-backend/internal/middleware"
	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/services"
	"smartbiz-backend/pkg/utils"
)

type AccountHandler struct {
	Service *services.UserService
}

func NewAccountHandler(s *services.UserService) *AccountHandler {
	return &AccountHandler{Service: s}
}

// ChangePassword handles PUT /api/account/password for the signed-in user.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.GetEmailFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.Service.ChangePassword(r.Context(), email, &req); err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
