package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates runtime configuration for the memorial API.
type Config struct {
	Server  ServerConfig
	MinIO   MinIOConfig
	Media   MediaConfig
	Auth    AuthConfig
	Ledger  LedgerConfig
	Metrics MetricsConfig
	Log     LogConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MinIOConfig carries MinIO connection and bucket information.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
}

// MediaConfig scopes listings and uploads to folders of the media store.
type MediaConfig struct {
	GalleryFolder   string
	TributeFolder   string
	GalleryPageSize int
	TributePageSize int
	MaxUploadBytes  int64
	// DeliveryBaseURL fronts the bucket with the transformation edge.
	DeliveryBaseURL string
}

// AuthConfig groups operator authentication settings.
type AuthConfig struct {
	OperatorEmail        string
	OperatorPasswordHash string
	AccessTokenSecret    string
	AccessTokenTTL       time.Duration
	BcryptCost           int
}

// LedgerConfig controls the optional Postgres upload ledger.
type LedgerConfig struct {
	Enabled  bool
	Postgres PostgresConfig
}

// PostgresConfig contains PostgreSQL connection details.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the PostgreSQL DSN string.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// LogConfig selects the logger level.
type LogConfig struct {
	Level string
}

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:         getString("MEMORIAL_API_HOST", "0.0.0.0"),
			Port:         getInt("MEMORIAL_API_PORT", 8080),
			ReadTimeout:  getDuration("MEMORIAL_API_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("MEMORIAL_API_WRITE_TIMEOUT", 120*time.Second),
			IdleTimeout:  getDuration("MEMORIAL_API_IDLE_TIMEOUT", 60*time.Second),
		},
		MinIO: MinIOConfig{
			Endpoint:        getString("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getString("MINIO_ROOT_USER", "memorial"),
			SecretAccessKey: getString("MINIO_ROOT_PASSWORD", "change-me-strong-password"),
			Bucket:          getString("MINIO_BUCKET", "memorial"),
			UseSSL:          getBool("MINIO_USE_SSL", false),
			Region:          getString("MINIO_REGION", ""),
		},
		Media: MediaConfig{
			GalleryFolder:   strings.Trim(getString("MEMORIAL_GALLERY_FOLDER", "gallery"), "/"),
			TributeFolder:   strings.Trim(getString("MEMORIAL_TRIBUTE_FOLDER", "stories"), "/"),
			GalleryPageSize: getInt("MEMORIAL_GALLERY_PAGE_SIZE", 500),
			TributePageSize: getInt("MEMORIAL_TRIBUTE_PAGE_SIZE", 100),
			MaxUploadBytes:  getInt64("MEMORIAL_MAX_UPLOAD_BYTES", 100*1024*1024),
			DeliveryBaseURL: strings.TrimRight(getString("MEMORIAL_DELIVERY_BASE_URL", "http://localhost:8081"), "/"),
		},
		Auth: loadAuthConfig(),
		Ledger: LedgerConfig{
			Enabled: getBool("MEMORIAL_LEDGER_ENABLED", false),
			Postgres: PostgresConfig{
				Host:     getString("POSTGRES_HOST", "localhost"),
				Port:     getInt("POSTGRES_PORT", 5432),
				User:     getString("POSTGRES_USER", "memorial_app"),
				Password: getString("POSTGRES_PASSWORD", "change-me"),
				Database: getString("POSTGRES_DB", "memorial"),
				SSLMode:  strings.ToLower(getString("POSTGRES_SSL_MODE", "disable")),
			},
		},
		Metrics: MetricsConfig{
			PrometheusPath: getString("MEMORIAL_METRICS_PATH", "/metrics"),
		},
		Log: LogConfig{
			Level: strings.ToLower(getString("LOG_LEVEL", "info")),
		},
	}

	if err := cfg.Media.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that would break listing or delivery URLs.
func (m MediaConfig) Validate() error {
	u, err := url.Parse(m.DeliveryBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("delivery base url %q must be an absolute http(s) url", m.DeliveryBaseURL)
	}
	if m.GalleryFolder == "" || m.TributeFolder == "" {
		return errors.New("gallery and tribute folders are required")
	}
	if m.GalleryFolder == m.TributeFolder {
		return fmt.Errorf("gallery and tribute folders must differ (both %q)", m.GalleryFolder)
	}
	if m.GalleryPageSize <= 0 || m.TributePageSize <= 0 {
		return errors.New("page sizes must be positive")
	}
	if m.MaxUploadBytes <= 0 {
		return errors.New("max upload bytes must be positive")
	}
	return nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func loadAuthConfig() AuthConfig {
	cost := getInt("MEMORIAL_AUTH_BCRYPT_COST", 12)
	if cost < 4 || cost > 31 {
		cost = 12
	}

	return AuthConfig{
		OperatorEmail:        strings.ToLower(getString("MEMORIAL_OPERATOR_EMAIL", "operator@localhost")),
		OperatorPasswordHash: getString("MEMORIAL_OPERATOR_PASSWORD_HASH", ""),
		AccessTokenSecret:    getString("MEMORIAL_JWT_SECRET", "change-me-to-a-32-byte-secret"),
		AccessTokenTTL:       getDuration("MEMORIAL_AUTH_ACCESS_TOKEN_TTL", 12*time.Hour),
		BcryptCost:           cost,
	}
}
