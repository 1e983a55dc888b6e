package handlers

import (
	"net/http"
	"strconv"

	"smartbiz-backend/internal/models"
	"smartbiz-backend/internal/services"
	"smartbiz-backend/pkg/utils"
)

type SalesHandler struct {
	Service *services.SalesService
}

func NewSalesHandler(s *services.SalesService) *SalesHandler {
	return &SalesHandler{Service: s}
}

// ListSales handles GET /api/sales?limit=N
func (h *SalesHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.Error(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	sales, err := h.Service.ListSales(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusOK, sales)
}

func (h *SalesHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSaleRequest
	if !decode(w, r, &req) {
		return
	}

	sale, err := h.Service.CreateSale(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.JSON(w, http.StatusCreated, sale)
}
