package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	Sequence SequenceConfig
	Ledger   LedgerConfig
	JWT      JWTConfig
	S3       S3Config
	Email    EmailConfig
	Export   ExportConfig
	Log      LogConfig
	CORS     CORSConfig
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

// RedisConfig holds Redis connection settings. Redis is only used when the
// sequence backend is "redis".
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Sequence backends.
const (
	SequenceBackendPostgres = "postgres"
	SequenceBackendRedis    = "redis"
)

// SequenceConfig selects the invoice counter store.
type SequenceConfig struct {
	Backend    string `mapstructure:"backend"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// LedgerConfig holds invoice numbering and business calendar settings.
type LedgerConfig struct {
	DefaultSeries      string `mapstructure:"default_series"`
	UTCOffsetMinutes   int    `mapstructure:"utc_offset_minutes"`
	DefaultPageSize    int    `mapstructure:"default_page_size"`
	MaxPageSize        int    `mapstructure:"max_page_size"`
	DefaultCompanyName string `mapstructure:"default_company_name"`
}

// JWTConfig holds the settings used to verify bearer tokens.
type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings for export archives.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether an archive bucket is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// ExportConfig holds export settings.
type ExportConfig struct {
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the KHATA_ prefix.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("KHATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "khata")
	v.SetDefault("db.password", "khata_secret")
	v.SetDefault("db.name", "khata_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Sequence defaults
	v.SetDefault("sequence.backend", SequenceBackendPostgres)
	v.SetDefault("sequence.max_retries", 5)

	// Ledger defaults
	v.SetDefault("ledger.default_series", "MAIN")
	v.SetDefault("ledger.utc_offset_minutes", 330)
	v.SetDefault("ledger.default_page_size", 20)
	v.SetDefault("ledger.max_page_size", 100)
	v.SetDefault("ledger.default_company_name", "My Company")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "khata")
	v.SetDefault("jwt.audience", "khata-api")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@khata.local")
	v.SetDefault("email.from_name", "Khata")

	// Export defaults
	v.SetDefault("export.key_prefix", "exports")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:4200,http://127.0.0.1:4200")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "KHATA_SERVER_PORT",
		"server.read_timeout":         "KHATA_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "KHATA_SERVER_WRITE_TIMEOUT",
		"server.environment":          "KHATA_SERVER_ENVIRONMENT",
		"db.host":                     "KHATA_DB_HOST",
		"db.port":                     "KHATA_DB_PORT",
		"db.user":                     "KHATA_DB_USER",
		"db.password":                 "KHATA_DB_PASSWORD",
		"db.name":                     "KHATA_DB_NAME",
		"db.sslmode":                  "KHATA_DB_SSLMODE",
		"db.max_open":                 "KHATA_DB_MAX_OPEN",
		"db.max_idle":                 "KHATA_DB_MAX_IDLE",
		"redis.addr":                  "KHATA_REDIS_ADDR",
		"redis.password":              "KHATA_REDIS_PASSWORD",
		"redis.db":                    "KHATA_REDIS_DB",
		"sequence.backend":            "KHATA_SEQUENCE_BACKEND",
		"sequence.max_retries":        "KHATA_SEQUENCE_MAX_RETRIES",
		"ledger.default_series":       "KHATA_LEDGER_DEFAULT_SERIES",
		"ledger.utc_offset_minutes":   "KHATA_LEDGER_UTC_OFFSET_MINUTES",
		"ledger.default_page_size":    "KHATA_LEDGER_DEFAULT_PAGE_SIZE",
		"ledger.max_page_size":        "KHATA_LEDGER_MAX_PAGE_SIZE",
		"ledger.default_company_name": "KHATA_LEDGER_DEFAULT_COMPANY_NAME",
		"jwt.secret":                  "KHATA_JWT_SECRET",
		"jwt.issuer":                  "KHATA_JWT_ISSUER",
		"jwt.audience":                "KHATA_JWT_AUDIENCE",
		"s3.region":                   "KHATA_S3_REGION",
		"s3.bucket":                   "KHATA_S3_BUCKET",
		"s3.endpoint":                 "KHATA_S3_ENDPOINT",
		"s3.access_key":               "KHATA_S3_ACCESS_KEY",
		"s3.secret_key":               "KHATA_S3_SECRET_KEY",
		"s3.presign_expiry":           "KHATA_S3_PRESIGN_EXPIRY",
		"email.provider":              "KHATA_EMAIL_PROVIDER",
		"email.region":                "KHATA_EMAIL_REGION",
		"email.from_address":          "KHATA_EMAIL_FROM_ADDRESS",
		"email.from_name":             "KHATA_EMAIL_FROM_NAME",
		"export.key_prefix":           "KHATA_EXPORT_KEY_PREFIX",
		"log.level":                   "KHATA_LOG_LEVEL",
		"log.format":                  "KHATA_LOG_FORMAT",
		"cors.allowed_origins":        "KHATA_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platform hosts set a PORT env var. Use it if KHATA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("KHATA_SERVER_PORT") == "" {
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
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.Sequence = SequenceConfig{
		Backend:    strings.ToLower(v.GetString("sequence.backend")),
		MaxRetries: v.GetInt("sequence.max_retries"),
	}
	cfg.Ledger = LedgerConfig{
		DefaultSeries:      v.GetString("ledger.default_series"),
		UTCOffsetMinutes:   v.GetInt("ledger.utc_offset_minutes"),
		DefaultPageSize:    v.GetInt("ledger.default_page_size"),
		MaxPageSize:        v.GetInt("ledger.max_page_size"),
		DefaultCompanyName: v.GetString("ledger.default_company_name"),
	}
	cfg.JWT = JWTConfig{
		Secret:   v.GetString("jwt.secret"),
		Issuer:   v.GetString("jwt.issuer"),
		Audience: v.GetString("jwt.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Export = ExportConfig{
		KeyPrefix: strings.Trim(v.GetString("export.key_prefix"), "/"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Sequence.Backend {
	case SequenceBackendPostgres, SequenceBackendRedis:
	default:
		return fmt.Errorf("config: unknown sequence backend %q", c.Sequence.Backend)
	}
	if c.Ledger.UTCOffsetMinutes < -12*60 || c.Ledger.UTCOffsetMinutes > 14*60 {
		return fmt.Errorf("config: utc offset %d minutes out of range", c.Ledger.UTCOffsetMinutes)
	}
	if strings.TrimSpace(c.Ledger.DefaultSeries) == "" {
		return fmt.Errorf("config: default series must not be empty")
	}
	return nil
}
