package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"smartbiz-backend/internal/config"
)

// NewCORS allows the dashboard front end to call the API. Content-Disposition
// is exposed so report downloads keep their file names.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	})

	return c.Handler
}
