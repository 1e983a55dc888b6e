package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartbiz-backend/internal/events"
	"smartbiz-backend/internal/handlers"
	"smartbiz-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	inventoryHandler *handlers.InventoryHandler,
	customerHandler *handlers.CustomerHandler,
	salesHandler *handlers.SalesHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	backupHandler *handlers.BackupHandler,
	healthHandler *handlers.HealthHandler,
	hub *events.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/account/password", accountHandler.ChangePassword).Methods("PUT")

	api.HandleFunc("/inventory", inventoryHandler.ListItems).Methods("GET")
	api.HandleFunc("/inventory", inventoryHandler.CreateItem).Methods("POST")
	api.HandleFunc("/inventory/low-stock", inventoryHandler.LowStock).Methods("GET")
	api.HandleFunc("/inventory/{id}", inventoryHandler.UpdateItem).Methods("PUT")
	api.HandleFunc("/inventory/{id}", inventoryHandler.DeleteItem).Methods("DELETE")

	api.HandleFunc("/customers", customerHandler.ListCustomers).Methods("GET")
	api.HandleFunc("/customers", customerHandler.CreateCustomer).Methods("POST")
	api.HandleFunc("/customers/{id}", customerHandler.UpdateCustomer).Methods("PUT")

	api.HandleFunc("/sales", salesHandler.ListSales).Methods("GET")
	api.HandleFunc("/sales", salesHandler.CreateSale).Methods("POST")

	api.HandleFunc("/payments/pending/total", dashboardHandler.PendingTotal).Methods("GET")
	api.HandleFunc("/dashboard", dashboardHandler.Summary).Methods("GET")

	api.HandleFunc("/reports/inventory.pdf", reportHandler.InventoryPDF).Methods("GET")
	api.HandleFunc("/reports/sales.pdf", reportHandler.SalesPDF).Methods("GET")
	api.HandleFunc("/reports/inventory.csv", reportHandler.InventoryCSV).Methods("GET")
	api.HandleFunc("/reports/sales.csv", reportHandler.SalesCSV).Methods("GET")
	api.HandleFunc("/reports/bundle.zip", reportHandler.Bundle).Methods("GET")

	api.HandleFunc("/backups", backupHandler.ListBackups).Methods("GET")
	api.HandleFunc("/backups", backupHandler.CreateBackup).Methods("POST")
	api.HandleFunc("/backups/{key:.+}", backupHandler.GetBackup).Methods("GET")

	// Live change feed; browsers pass the token as ?token= on upgrade
	ws := r.PathPrefix("/ws").Subrouter()
	ws.Use(authMiddleware.Authenticate)
	ws.HandleFunc("/events", hub.ServeWS).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})

	return r
}
