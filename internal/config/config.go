package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	Log     LogConfig
	CORS    CORSConfig
	Scanner ScannerConfig
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScannerConfig holds limits for batch parsing and spreadsheet import.
type ScannerConfig struct {
	MaxBatchSize  int   `mapstructure:"max_batch_size"`
	Workers       int   `mapstructure:"workers"`
	MaxUploadMB   int64 `mapstructure:"max_upload_mb"`
	ArchiveUpload bool  `mapstructure:"archive_uploads"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s *ScannerConfig) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds operator token signing settings.
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// StorageConfig holds spreadsheet archive settings. Provider is "noop" or "s3".
type StorageConfig struct {
	Provider  string `mapstructure:"provider"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the JEWELSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JEWELSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "jewelscan")
	v.SetDefault("db.password", "jewelscan_secret")
	v.SetDefault("db.name", "jewelscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expiry", "12h")
	v.SetDefault("jwt.issuer", "jewelscan")

	// Storage defaults
	v.SetDefault("storage.provider", "noop")
	v.SetDefault("storage.region", "ap-south-1")
	v.SetDefault("storage.bucket", "jewelscan-imports")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.prefix", "imports")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Scanner defaults
	v.SetDefault("scanner.max_batch_size", 5000)
	v.SetDefault("scanner.workers", 8)
	v.SetDefault("scanner.max_upload_mb", 10)
	v.SetDefault("scanner.archive_uploads", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "JEWELSCAN_SERVER_PORT",
		"server.read_timeout":     "JEWELSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "JEWELSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":      "JEWELSCAN_SERVER_ENVIRONMENT",
		"db.host":                 "JEWELSCAN_DB_HOST",
		"db.port":                 "JEWELSCAN_DB_PORT",
		"db.user":                 "JEWELSCAN_DB_USER",
		"db.password":             "JEWELSCAN_DB_PASSWORD",
		"db.name":                 "JEWELSCAN_DB_NAME",
		"db.sslmode":              "JEWELSCAN_DB_SSLMODE",
		"db.max_open":             "JEWELSCAN_DB_MAX_OPEN",
		"db.max_idle":             "JEWELSCAN_DB_MAX_IDLE",
		"jwt.secret":              "JEWELSCAN_JWT_SECRET",
		"jwt.expiry":              "JEWELSCAN_JWT_EXPIRY",
		"jwt.issuer":              "JEWELSCAN_JWT_ISSUER",
		"storage.provider":        "JEWELSCAN_STORAGE_PROVIDER",
		"storage.region":          "JEWELSCAN_STORAGE_REGION",
		"storage.bucket":          "JEWELSCAN_STORAGE_BUCKET",
		"storage.endpoint":        "JEWELSCAN_STORAGE_ENDPOINT",
		"storage.access_key":      "JEWELSCAN_STORAGE_ACCESS_KEY",
		"storage.secret_key":      "JEWELSCAN_STORAGE_SECRET_KEY",
		"storage.prefix":          "JEWELSCAN_STORAGE_PREFIX",
		"log.level":               "JEWELSCAN_LOG_LEVEL",
		"log.format":              "JEWELSCAN_LOG_FORMAT",
		"cors.allowed_origins":    "JEWELSCAN_CORS_ALLOWED_ORIGINS",
		"scanner.max_batch_size":  "JEWELSCAN_SCANNER_MAX_BATCH_SIZE",
		"scanner.workers":         "JEWELSCAN_SCANNER_WORKERS",
		"scanner.max_upload_mb":   "JEWELSCAN_SCANNER_MAX_UPLOAD_MB",
		"scanner.archive_uploads": "JEWELSCAN_SCANNER_ARCHIVE_UPLOADS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if JEWELSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("JEWELSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Expiry: v.GetDuration("jwt.expiry"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.Storage = StorageConfig{
		Provider:  strings.ToLower(v.GetString("storage.provider")),
		Region:    v.GetString("storage.region"),
		Bucket:    v.GetString("storage.bucket"),
		Endpoint:  v.GetString("storage.endpoint"),
		AccessKey: v.GetString("storage.access_key"),
		SecretKey: v.GetString("storage.secret_key"),
		Prefix:    strings.Trim(v.GetString("storage.prefix"), "/"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitOrigins(v.GetString("cors.allowed_origins")),
	}
	cfg.Scanner = ScannerConfig{
		MaxBatchSize:  v.GetInt("scanner.max_batch_size"),
		Workers:       v.GetInt("scanner.workers"),
		MaxUploadMB:   v.GetInt64("scanner.max_upload_mb"),
		ArchiveUpload: v.GetBool("scanner.archive_uploads"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitOrigins parses a comma-separated origin list.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) validate() error {
	switch c.Storage.Provider {
	case "noop", "s3":
	default:
		return fmt.Errorf("config: unknown storage provider %q", c.Storage.Provider)
	}
	if c.Scanner.MaxBatchSize <= 0 {
		return fmt.Errorf("config: scanner.max_batch_size must be positive, got %d", c.Scanner.MaxBatchSize)
	}
	if c.Scanner.Workers <= 0 {
		c.Scanner.Workers = 1
	}
	return nil
}
