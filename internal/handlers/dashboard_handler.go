package handlers

import (
	"net/http"

	"smartbiz-backend/internal/repositories"
	"smartbiz-backend/internal/services"
	"smartbiz-backend/pkg/utils"
)

type DashboardHandler struct {
	Service         *services.DashboardService
	PendingPayments *repositories.PendingPaymentRepository
}

func NewDashboardHandler(s *services.DashboardService, pending *repositories.PendingPaymentRepository) *DashboardHandler {
	return &DashboardHandler{Service: s, PendingPayments: pending}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// PendingTotal handles GET /api/payments/pending/total
func (h *DashboardHandler) PendingTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.PendingPayments.Total(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]float64{"total": total})
}
