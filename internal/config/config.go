package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Sheets struct {
		// Backend is "google" or "memory".
		Backend             string `mapstructure:"backend"`
		SpreadsheetID       string `mapstructure:"spreadsheet_id"`
		CredentialsFile     string `mapstructure:"credentials_file"`
		CredentialsJSON     string `mapstructure:"credentials_json"`
		ServiceAccountEmail string `mapstructure:"service_account_email"`
		PrivateKey          string `mapstructure:"private_key"`
		ValueRenderOption   string `mapstructure:"value_render_option"`
		TimeoutSeconds      int    `mapstructure:"timeout_seconds"`
	} `mapstructure:"sheets"`

	Tables struct {
		HeaderRows            int    `mapstructure:"header_rows"`
		Inventory             string `mapstructure:"inventory"`
		Customers             string `mapstructure:"customers"`
		Sales                 string `mapstructure:"sales"`
		Credentials           string `mapstructure:"credentials"`
		PendingPayments       string `mapstructure:"pending_payments"`
		PendingPaymentsColumn int    `mapstructure:"pending_payments_column"`
	} `mapstructure:"tables"`

	JWT struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"jwt"`

	Redis struct {
		Enabled  bool   `mapstructure:"enabled"`
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Backup struct {
		Enabled   bool   `mapstructure:"enabled"`
		Endpoint  string `mapstructure:"endpoint"`
		Region    string `mapstructure:"region"`
		Bucket    string `mapstructure:"bucket"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Prefix    string `mapstructure:"prefix"`
		// IntervalHours schedules automatic snapshots; 0 disables them.
		IntervalHours int `mapstructure:"interval_hours"`
	} `mapstructure:"backup"`

	Business struct {
		Name     string `mapstructure:"name"`
		Currency string `mapstructure:"currency"`
	} `mapstructure:"business"`
}

func Load() *Config {
	return LoadFrom("configs/config.yaml")
}

// Read loads .env and the given file without requiring auth settings. Used by
// offline tools.
func Read(path string) (*Config, error) {
	godotenv.Load()
	return read(path)
}

// LoadFrom reads the given YAML file if it exists, then applies environment
// overrides. A missing JWT secret is fatal.
func LoadFrom(path string) *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	cfg, err := read(path)
	if err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET not found in environment or config file")
	}
	return cfg
}

func read(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	// Auto bind environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Authorization", "Content-Type"})
	v.SetDefault("sheets.backend", "google")
	v.SetDefault("sheets.value_render_option", "UNFORMATTED_VALUE")
	v.SetDefault("sheets.timeout_seconds", 30)
	v.SetDefault("tables.header_rows", 1)
	v.SetDefault("tables.inventory", "Inventory")
	v.SetDefault("tables.customers", "Customers")
	v.SetDefault("tables.sales", "Sales")
	v.SetDefault("tables.credentials", "credentials")
	v.SetDefault("tables.pending_payments", "pendingPayments")
	v.SetDefault("tables.pending_payments_column", 1)
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("jwt.issuer", "smartbiz-backend")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("backup.region", "auto")
	v.SetDefault("backup.prefix", "snapshots/")
	v.SetDefault("backup.interval_hours", 0)
	v.SetDefault("business.name", "SmartBiz")
	v.SetDefault("business.currency", "BDT")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv maps the variable names used by existing deployments onto the
// config fields.
func applyEnv(cfg *Config) {
	if id := os.Getenv("GOOGLE_SHEET_ID"); id != "" {
		cfg.Sheets.SpreadsheetID = id
	}
	if email := os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"); email != "" {
		cfg.Sheets.ServiceAccountEmail = email
	}
	if key := os.Getenv("GOOGLE_PRIVATE_KEY"); key != "" {
		cfg.Sheets.PrivateKey = key
	}
	if file := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); file != "" {
		cfg.Sheets.CredentialsFile = file
	}
	if backend := os.Getenv("SHEETS_BACKEND"); backend != "" {
		cfg.Sheets.Backend = backend
	}

	// Override JWT secret from environment if not set
	if cfg.JWT.Secret == "" || cfg.JWT.Secret == "${JWT_SECRET}" {
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	} else if host := os.Getenv("REDIS_SERVICE_HOST"); host != "" {
		// K8s sets REDIS_SERVICE_HOST and REDIS_SERVICE_PORT for services
		port := os.Getenv("REDIS_SERVICE_PORT")
		if port == "" {
			port = "6379"
		}
		cfg.Redis.Addr = host + ":" + port
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil && n >= 0 {
			cfg.Redis.DB = n
		}
	}

	if v := os.Getenv("BACKUP_ENABLED"); v != "" {
		cfg.Backup.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("BACKUP_ENDPOINT"); v != "" {
		cfg.Backup.Endpoint = v
	}
	if v := os.Getenv("BACKUP_REGION"); v != "" {
		cfg.Backup.Region = v
	}
	if v := os.Getenv("BACKUP_BUCKET"); v != "" {
		cfg.Backup.Bucket = v
	}
	if v := os.Getenv("BACKUP_ACCESS_KEY"); v != "" {
		cfg.Backup.AccessKey = v
	}
	if v := os.Getenv("BACKUP_SECRET_KEY"); v != "" {
		cfg.Backup.SecretKey = v
	}
}
