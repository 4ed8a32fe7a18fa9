package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/data/db"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/observability"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/envutil"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

// Config is read once at startup. Values come from the optional CONFIG_FILE
// YAML document first; environment variables override it.
type Config struct {
	// LogMode also gates development fallbacks such as the default JWT secret.
	LogMode        string   `yaml:"log_mode"`
	Port           string   `yaml:"port"`
	JWTSecretKey   string   `yaml:"jwt_secret_key"`
	AllowedOrigins []string `yaml:"cors_allowed_origins"`

	DB DBConfig `yaml:"db"`

	Storage StorageConfig `yaml:"storage"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	StatsCacheTTL time.Duration `yaml:"-"`

	Otel OtelFileConfig `yaml:"otel"`
}

type DBConfig struct {
	Driver       string `yaml:"driver"`
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	SSLMode      string `yaml:"sslmode"`
	SQLitePath   string `yaml:"sqlite_path"`
	QueryTimeout int    `yaml:"query_timeout_ms"`
}

type StorageConfig struct {
	Mode          string `yaml:"mode"`
	Bucket        string `yaml:"bucket"`
	CDNDomain     string `yaml:"cdn_domain"`
	EmulatorHost  string `yaml:"emulator_host"`
	PublicBaseURL string `yaml:"public_base_url"`
	Credentials   string `yaml:"credentials"`
}

type OtelFileConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

func defaultConfig() Config {
	return Config{
		LogMode: "development",
		Port:    "8080",
		DB: DBConfig{
			Driver: db.DriverPostgres,
			Host:   "localhost",
			Port:   "5432",
			User:   "postgres",
			Name:   "smarthustle",
		},
		StatsCacheTTL: 30 * time.Second,
		Otel: OtelFileConfig{
			ServiceName: "smarthustle-cms",
			SampleRatio: 1,
		},
	}
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read CONFIG_FILE: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse CONFIG_FILE %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	applyEnv(&cfg)

	if strings.TrimSpace(cfg.JWTSecretKey) == "" {
		if !cfg.devMode() {
			return Config{}, fmt.Errorf("JWT_SECRET_KEY is required when LOG_MODE is %q", cfg.LogMode)
		}
		cfg.JWTSecretKey = devJWTSecret
		if log != nil {
			log.Warn("JWT_SECRET_KEY not set; using an insecure default", "log_mode", cfg.LogMode)
		}
	}
	return cfg, nil
}

const devJWTSecret = "defaultsecret"

func (c Config) devMode() bool {
	switch strings.ToLower(strings.TrimSpace(c.LogMode)) {
	case "development", "test":
		return true
	default:
		return false
	}
}

func applyEnv(cfg *Config) {
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)

	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.Host = envutil.String("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envutil.String("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envutil.String("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = envutil.String("POSTGRES_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath)
	cfg.DB.QueryTimeout = envutil.Int("DB_QUERY_TIMEOUT_MS", cfg.DB.QueryTimeout)

	cfg.Storage.Mode = envutil.String("OBJECT_STORAGE_MODE", cfg.Storage.Mode)
	cfg.Storage.Bucket = envutil.String("COURSE_IMAGE_GCS_BUCKET_NAME", cfg.Storage.Bucket)
	cfg.Storage.CDNDomain = envutil.String("COURSE_IMAGE_CDN_DOMAIN", cfg.Storage.CDNDomain)
	cfg.Storage.EmulatorHost = envutil.String("STORAGE_EMULATOR_HOST", cfg.Storage.EmulatorHost)
	cfg.Storage.PublicBaseURL = envutil.String("OBJECT_STORAGE_PUBLIC_BASE_URL", cfg.Storage.PublicBaseURL)
	cfg.Storage.Credentials = envutil.String("GOOGLE_APPLICATION_CREDENTIALS_JSON", cfg.Storage.Credentials)

	cfg.RedisAddr = envutil.String("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = envutil.String("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = envutil.Int("REDIS_DB", cfg.RedisDB)
	ttl := envutil.Int("STATS_CACHE_TTL_SECONDS", int(cfg.StatsCacheTTL/time.Second))
	if ttl < 0 {
		ttl = 0
	}
	cfg.StatsCacheTTL = time.Duration(ttl) * time.Second

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_TRACES_SAMPLER_ARG", cfg.Otel.SampleRatio)
}

func (c Config) dbConfig() db.Config {
	return db.Config{
		Driver:       c.DB.Driver,
		Host:         c.DB.Host,
		Port:         c.DB.Port,
		User:         c.DB.User,
		Password:     c.DB.Password,
		Name:         c.DB.Name,
		SSLMode:      c.DB.SSLMode,
		SQLitePath:   c.DB.SQLitePath,
		QueryTimeout: time.Duration(c.DB.QueryTimeout) * time.Millisecond,
	}
}

func (c Config) otelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.Otel.ServiceName,
		Environment: c.Otel.Environment,
		Endpoint:    c.Otel.Endpoint,
		Headers:     observability.ParseOTLPHeaders(c.Otel.Headers),
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}
