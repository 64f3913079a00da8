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
	Server     ServerConfig
	DB         DBConfig
	JWT        JWTConfig
	S3         S3Config
	Log        LogConfig
	Recognizer RecognizerConfig
	Ledger     LedgerConfig
	History    HistoryConfig
	Synth      SynthConfig
	CORS       CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the scan audit log.
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

// JWTConfig holds JWT validation settings. Tokens are issued by the
// surrounding app's identity service; this core only validates them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds capture-archive object storage settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RecognizerConfig holds the OCR recognition service settings.
type RecognizerConfig struct {
	FuelURL         string `mapstructure:"fuel_url"`
	GenericURL      string `mapstructure:"generic_url"`
	PassTimeoutSecs int    `mapstructure:"pass_timeout_secs"`
}

// PassTimeout returns the bounded per-pass recognition timeout.
func (r *RecognizerConfig) PassTimeout() time.Duration {
	return time.Duration(r.PassTimeoutSecs) * time.Second
}

// LedgerConfig holds ledger destination client settings.
type LedgerConfig struct {
	BaseURL                 string  `mapstructure:"base_url"`
	TimeoutSecs             int     `mapstructure:"timeout_secs"`
	BreakerMinRequests      uint32  `mapstructure:"breaker_min_requests"`
	BreakerFailureRatio     float64 `mapstructure:"breaker_failure_ratio"`
	BreakerOpenTimeoutSecs  int     `mapstructure:"breaker_open_timeout_secs"`
	BreakerHalfOpenMaxCalls uint32  `mapstructure:"breaker_half_open_max_calls"`
}

// HistoryConfig holds recent-scan history settings.
type HistoryConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// SynthConfig holds fallback synthesizer settings. A zero seed means
// time-seeded; tests set a fixed seed for reproducibility.
type SynthConfig struct {
	Seed int64 `mapstructure:"seed"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the SCANSTATION_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SCANSTATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SCANSTATION_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SCANSTATION_SERVER_PORT") == "" {
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
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Recognizer = RecognizerConfig{
		FuelURL:         v.GetString("recognizer.fuel_url"),
		GenericURL:      v.GetString("recognizer.generic_url"),
		PassTimeoutSecs: v.GetInt("recognizer.pass_timeout_secs"),
	}
	cfg.Ledger = LedgerConfig{
		BaseURL:                 v.GetString("ledger.base_url"),
		TimeoutSecs:             v.GetInt("ledger.timeout_secs"),
		BreakerMinRequests:      uint32(v.GetInt("ledger.breaker_min_requests")),
		BreakerFailureRatio:     v.GetFloat64("ledger.breaker_failure_ratio"),
		BreakerOpenTimeoutSecs:  v.GetInt("ledger.breaker_open_timeout_secs"),
		BreakerHalfOpenMaxCalls: uint32(v.GetInt("ledger.breaker_half_open_max_calls")),
	}
	cfg.History = HistoryConfig{
		Capacity: v.GetInt("history.capacity"),
	}
	cfg.Synth = SynthConfig{
		Seed: v.GetInt64("synth.seed"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "scanstation")
	v.SetDefault("db.password", "scanstation_secret")
	v.SetDefault("db.name", "scanstation_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "scanstation")

	// S3 defaults
	v.SetDefault("s3.region", "ap-northeast-1")
	v.SetDefault("s3.bucket", "scanstation-captures")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Recognizer defaults
	v.SetDefault("recognizer.fuel_url", "http://localhost:9100/api/ocr/fuel-receipt")
	v.SetDefault("recognizer.generic_url", "http://localhost:9100/api/ocr/document")
	v.SetDefault("recognizer.pass_timeout_secs", 20)

	// Ledger defaults
	v.SetDefault("ledger.base_url", "http://localhost:9200")
	v.SetDefault("ledger.timeout_secs", 15)
	v.SetDefault("ledger.breaker_min_requests", 5)
	v.SetDefault("ledger.breaker_failure_ratio", 0.6)
	v.SetDefault("ledger.breaker_open_timeout_secs", 30)
	v.SetDefault("ledger.breaker_half_open_max_calls", 2)

	// History defaults
	v.SetDefault("history.capacity", 10)

	// Synth defaults (0 = seed from wall clock)
	v.SetDefault("synth.seed", 0)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")
}

// bindEnvs binds environment variables explicitly for nested keys.
func bindEnvs(v *viper.Viper) {
	envBindings := map[string]string{
		"server.port":                        "SCANSTATION_SERVER_PORT",
		"server.read_timeout":                "SCANSTATION_SERVER_READ_TIMEOUT",
		"server.write_timeout":               "SCANSTATION_SERVER_WRITE_TIMEOUT",
		"server.environment":                 "SCANSTATION_SERVER_ENVIRONMENT",
		"db.host":                            "SCANSTATION_DB_HOST",
		"db.port":                            "SCANSTATION_DB_PORT",
		"db.user":                            "SCANSTATION_DB_USER",
		"db.password":                        "SCANSTATION_DB_PASSWORD",
		"db.name":                            "SCANSTATION_DB_NAME",
		"db.sslmode":                         "SCANSTATION_DB_SSLMODE",
		"db.max_open":                        "SCANSTATION_DB_MAX_OPEN",
		"db.max_idle":                        "SCANSTATION_DB_MAX_IDLE",
		"jwt.secret":                         "SCANSTATION_JWT_SECRET",
		"jwt.issuer":                         "SCANSTATION_JWT_ISSUER",
		"s3.region":                          "SCANSTATION_S3_REGION",
		"s3.bucket":                          "SCANSTATION_S3_BUCKET",
		"s3.endpoint":                        "SCANSTATION_S3_ENDPOINT",
		"s3.access_key":                      "SCANSTATION_S3_ACCESS_KEY",
		"s3.secret_key":                      "SCANSTATION_S3_SECRET_KEY",
		"s3.max_file_size_mb":                "SCANSTATION_S3_MAX_FILE_SIZE_MB",
		"log.level":                          "SCANSTATION_LOG_LEVEL",
		"log.format":                         "SCANSTATION_LOG_FORMAT",
		"recognizer.fuel_url":                "SCANSTATION_RECOGNIZER_FUEL_URL",
		"recognizer.generic_url":             "SCANSTATION_RECOGNIZER_GENERIC_URL",
		"recognizer.pass_timeout_secs":       "SCANSTATION_RECOGNIZER_PASS_TIMEOUT_SECS",
		"ledger.base_url":                    "SCANSTATION_LEDGER_BASE_URL",
		"ledger.timeout_secs":                "SCANSTATION_LEDGER_TIMEOUT_SECS",
		"ledger.breaker_min_requests":        "SCANSTATION_LEDGER_BREAKER_MIN_REQUESTS",
		"ledger.breaker_failure_ratio":       "SCANSTATION_LEDGER_BREAKER_FAILURE_RATIO",
		"ledger.breaker_open_timeout_secs":   "SCANSTATION_LEDGER_BREAKER_OPEN_TIMEOUT_SECS",
		"ledger.breaker_half_open_max_calls": "SCANSTATION_LEDGER_BREAKER_HALF_OPEN_MAX_CALLS",
		"history.capacity":                   "SCANSTATION_HISTORY_CAPACITY",
		"synth.seed":                         "SCANSTATION_SYNTH_SEED",
		"cors.allowed_origins":               "SCANSTATION_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}
