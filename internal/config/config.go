package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN         string `yaml:"url"`
		AutoMigrate bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	Notifier struct {
		// Минимум отправок, после которого breaker размыкается при 60%+ ошибок
		MaxFailures uint32        `yaml:"max_failures"`
		OpenTimeout time.Duration `yaml:"open_timeout"`
	} `yaml:"notifier"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Tracing struct {
		CollectorHost string `yaml:"collector_host"` // пусто = трейсинг выключен
		ServiceName   string `yaml:"service_name"`
	} `yaml:"tracing"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

var AppConfig *Config

var ErrMissingJWTSecret = errors.New("jwt secret is not configured")

// Validate проверяет параметры, без которых сервис запускать нельзя
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func LoadConfig() {
	// .env необязателен: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}
		log.Printf("Loading configuration from %s", configPath)

		parsed, err := LoadFile(configPath)
		if err != nil {
			log.Fatalf("Failed to load config file at %s: %v", configPath, err)
		}
		cfg = *parsed
	} else {
		log.Println("Loading configuration from environment variables")
		cfg = *FromEnv()
	}

	// Учётка первого админа всегда может прийти из окружения
	if v := os.Getenv("FIRST_ADMIN_EMAIL"); v != "" {
		cfg.FirstAdminEmail = v
	}
	if v := os.Getenv("FIRST_ADMIN_PASSWORD"); v != "" {
		cfg.FirstAdminPassword = v
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	AppConfig = &cfg
}

// LoadFile читает YAML конфиг
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv собирает конфиг из переменных окружения
func FromEnv() *Config {
	var cfg Config

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Database.AutoMigrate = envBool("DATABASE_AUTO_MIGRATE", false)
	cfg.Server.Host = os.Getenv("SERVER_HOST")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL, _ = strconv.Atoi(os.Getenv("JWT_TTL"))

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("MAIL_FROM_EMAIL")
	cfg.Email.FromName = os.Getenv("MAIL_FROM_NAME")
	cfg.Email.TemplatesDir = os.Getenv("TEMPLATES_DIR")

	cfg.Tracing.CollectorHost = os.Getenv("OTEL_COLLECTOR_HOST")
	cfg.Tracing.ServiceName = os.Getenv("OTEL_SERVICE_NAME")
	cfg.Metrics.Enabled = envBool("METRICS_ENABLED", true)

	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "ITI Jobs"
	}
	if cfg.Notifier.MaxFailures == 0 {
		cfg.Notifier.MaxFailures = 3
	}
	if cfg.Notifier.OpenTimeout == 0 {
		cfg.Notifier.OpenTimeout = 30 * time.Second
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = "itijobs-admin"
	}
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
