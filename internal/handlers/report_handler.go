package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"smartbiz-backend/internal/services"
	"smartbiz-backend/internal/timeutil"
	"smartbiz-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

type reportFunc func(ctx context.Context) ([]byte, error)

// serve runs one report generator and sends the result as a dated download.
func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, generate reportFunc, name, ext, contentType string) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	data, err := generate(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.%s", name, timeutil.Now().Format("2006-01-02"), ext)
	utils.Attachment(w, contentType, filename, data)
}

// InventoryPDF handles GET /api/reports/inventory.pdf
func (h *ReportHandler) InventoryPDF(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.Service.InventoryPDF, "inventory", "pdf", "application/pdf")
}

// SalesPDF handles GET /api/reports/sales.pdf
func (h *ReportHandler) SalesPDF(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.Service.SalesPDF, "sales", "pdf", "application/pdf")
}

// InventoryCSV handles GET /api/reports/inventory.csv
func (h *ReportHandler) InventoryCSV(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.Service.InventoryCSV, "inventory", "csv", "text/csv")
}

// SalesCSV handles GET /api/reports/sales.csv
func (h *ReportHandler) SalesCSV(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.Service.SalesCSV, "sales", "csv", "text/csv")
}

// Bundle handles GET /api/reports/bundle.zip
func (h *ReportHandler) Bundle(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.Service.Bundle, "reports", "zip", "application/zip")
}
