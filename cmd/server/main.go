package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartbiz-backend/internal/auth"
	"smartbiz-backend/internal/cache"
	"smartbiz-backend/internal/config"
	"smartbiz-backend/internal/events"
	h "smartbiz-backend/internal/http"
	"smartbiz-backend/internal/handlers"
	"smartbiz-backend/internal/health"
	"smartbiz-backend/internal/middleware"
	"smartbiz-backend/internal/repositories"
	"smartbiz-backend/internal/services"
	"smartbiz-backend/internal/sheets"
	"smartbiz-backend/internal/sheets/memsheet"
)

// connectSheets returns the spreadsheet backend named in config. The memory
// backend starts with empty sheets and is lost on restart.
func connectSheets(ctx context.Context, cfg *config.Config, layout repositories.Layout) (sheets.ValuesAPI, error) {
	switch cfg.Sheets.Backend {
	case "memory":
		mem := memsheet.New()
		for sheet, rows := range layout.Headers() {
			mem.Seed(sheet, rows...)
		}
		log.Println("[Sheets] Using in-memory spreadsheet (data is not persisted)")
		return mem, nil
	case "google", "":
		client, err := sheets.NewGoogleClient(ctx, sheets.Options{
			SpreadsheetID:       cfg.Sheets.SpreadsheetID,
			CredentialsFile:     cfg.Sheets.CredentialsFile,
			CredentialsJSON:     cfg.Sheets.CredentialsJSON,
			ServiceAccountEmail: cfg.Sheets.ServiceAccountEmail,
			PrivateKey:          cfg.Sheets.PrivateKey,
			ValueRenderOption:   cfg.Sheets.ValueRenderOption,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("[Sheets] Connected to spreadsheet %s", cfg.Sheets.SpreadsheetID)
		return client, nil
	default:
		return nil, fmt.Errorf("unknown sheets backend %q", cfg.Sheets.Backend)
	}
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	layout := repositories.LayoutFromConfig(cfg)
	api, err := connectSheets(ctx, cfg, layout)
	if err != nil {
		log.Fatalf("[Sheets] Failed to connect: %v", err)
	}
	timeout := time.Duration(cfg.Sheets.TimeoutSeconds) * time.Second
	store := repositories.NewSpreadsheetStore(sheets.NewInstrumented(api, timeout), layout, nil)

	// Redis is optional; logins fall back to the credentials sheet without it
	var authCache *cache.Cache
	if cfg.Redis.Enabled {
		authCache, err = cache.Connect(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("[Redis] Unavailable at %s, continuing without cache: %v", cfg.Redis.Addr, err)
			authCache = nil
		} else {
			log.Printf("[Redis] Connected to %s", cfg.Redis.Addr)
			defer authCache.Close()
		}
	}

	hub := events.NewHub()
	go hub.Run(ctx)

	// Initialize services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(store.Credentials, jwtManager, authCache)
	inventoryService := services.NewInventoryService(store.Inventory, hub)
	customerService := services.NewCustomerService(store.Customers, hub)
	salesService := services.NewSalesService(store.Sales, hub)
	dashboardService := services.NewDashboardService(store)
	reportService := services.NewReportService(dashboardService, cfg.Business.Name)

	backupService := services.NewBackupService(dashboardService, nil, "", cfg.Backup.Prefix)
	if cfg.Backup.Enabled {
		s3Client, err := services.NewS3Client(ctx, cfg)
		if err != nil {
			log.Printf("[Backup] Disabled: %v", err)
		} else {
			backupService = services.NewBackupService(dashboardService, s3Client, cfg.Backup.Bucket, cfg.Backup.Prefix)
			go backupService.RunSchedule(ctx, time.Duration(cfg.Backup.IntervalHours)*time.Hour)
			log.Printf("[Backup] Snapshots go to bucket %s", cfg.Backup.Bucket)
		}
	}

	var cacheProbe health.CacheProbe
	if authCache != nil {
		cacheProbe = authCache
	}
	healthChecker := health.NewHealthChecker(store, cacheProbe)

	// Initialize handlers
	router := h.NewRouter(
		handlers.NewAuthHandler(userService),
		handlers.NewAccountHandler(userService),
		handlers.NewInventoryHandler(inventoryService),
		handlers.NewCustomerHandler(customerService),
		handlers.NewSalesHandler(salesService),
		handlers.NewDashboardHandler(dashboardService, store.PendingPayments),
		handlers.NewReportHandler(reportService),
		handlers.NewBackupHandler(backupService),
		handlers.NewHealthHandler(healthChecker),
		hub,
		middleware.NewAuthMiddleware(jwtManager),
	)

	// Wrap with panic recovery and CORS
	handler := middleware.PanicRecovery(middleware.NewCORS(cfg)(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server running on %s (business: %s)", addr, cfg.Business.Name)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed to start: %v", err)
	}
}
