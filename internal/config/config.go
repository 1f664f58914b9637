package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL settings for the generated-file manifest.
// The manifest is disabled when Host is empty.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	ConnectAttempts    int
}

// Enabled reports whether a manifest database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// DocumentConfig holds the defaults applied to generation requests.
type DocumentConfig struct {
	DefaultTitle      string
	DefaultAuthor     string
	AuthorAffiliation []string
}

// StorageConfig selects and tunes the generated-file backend.
type StorageConfig struct {
	Driver             string
	TempDir            string
	FileTTLSec         int
	CleanupIntervalSec int
	UniqueFilenames    bool
	WatchTempDir       bool
}

// DefaultFileTTLSec is used when FILE_TTL_SEC is unset or not positive.
const DefaultFileTTLSec = 3600

// FileTTL is the sweep age threshold. It is never zero so a sweep cannot remove files just written.
func (c StorageConfig) FileTTL() time.Duration {
	if c.FileTTLSec <= 0 {
		return DefaultFileTTLSec * time.Second
	}
	return time.Duration(c.FileTTLSec) * time.Second
}

// CleanupInterval is the janitor period; zero disables it.
func (c StorageConfig) CleanupInterval() time.Duration {
	return time.Duration(c.CleanupIntervalSec) * time.Second
}

const (
	StorageDriverLocal = "local"
	StorageDriverMinIO = "minio"
)

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppEnv           string
	Port             string
	Timezone         string
	StaticDir        string
	CORSAllowOrigins string
	Document         DocumentConfig
	Storage          StorageConfig
	Database         DatabaseConfig
	MinIO            MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "5000"),
		Timezone:         getEnv("TZ_NAME", "Local"),
		StaticDir:        getEnv("STATIC_DIR", "."),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		Document: DocumentConfig{
			DefaultTitle:      getEnv("DEFAULT_TITLE", "Documento Científico"),
			DefaultAuthor:     getEnv("DEFAULT_AUTHOR", "Ismael Antonio Cárdenas López"),
			AuthorAffiliation: getEnvList("AUTHOR_AFFILIATION", []string{"Licenciado en Matemática", "UNAN León"}),
		},
		Storage: StorageConfig{
			Driver:             strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverLocal)),
			TempDir:            getEnv("TEMP_DIR", "temp"),
			FileTTLSec:         getEnvInt("FILE_TTL_SEC", DefaultFileTTLSec),
			CleanupIntervalSec: getEnvInt("CLEANUP_INTERVAL_SEC", 0),
			UniqueFilenames:    getEnvBool("UNIQUE_FILENAMES", true),
			WatchTempDir:       getEnvBool("WATCH_TEMP_DIR", true),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectAttempts:    getEnvInt("DB_CONNECT_ATTEMPTS", 3),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			Prefix:    getEnv("MINIO_PREFIX", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// IsProduction reports whether production logging and behavior are selected.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production") || strings.EqualFold(c.AppEnv, "prod")
}

// Location resolves the configured timezone, falling back to the process local zone.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a semicolon separated value, dropping blank items.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
