package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"usersvc/lib/validate"
)

// Config holds everything the service reads at startup.
type Config struct {
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123|ip"`
	Port     string `yaml:"port" validate:"required,numeric"`
	Env      string `yaml:"env" validate:"oneof=development production test"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	Metrics  MetricsConfig  `yaml:"metrics"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MetricsConfig selects the metrics backend and the optional OTLP collector.
type MetricsConfig struct {
	Backend      string `yaml:"backend" validate:"oneof=prometheus otel none"`
	OtelEndpoint string `yaml:"otel_endpoint"`
	ServiceName  string `yaml:"service_name" validate:"required"`
}

// PostgresConfig holds connection and pool settings.
type PostgresConfig struct {
	URL      string `yaml:"url" validate:"omitempty,url"`
	Host     string `yaml:"host" validate:"required_without=URL"`
	Port     string `yaml:"port" validate:"required_without=URL,omitempty,numeric"`
	DB       string `yaml:"db" validate:"required_without=URL"`
	User     string `yaml:"user" validate:"required_without=URL"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`

	MaxOpenConns    int           `yaml:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `yaml:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:     "8080",
		Env:      "production",
		LogLevel: "info",
		Metrics: MetricsConfig{
			Backend:     "prometheus",
			ServiceName: "usersvc",
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            "5432",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 2 * time.Minute,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, a
// .env file in the working directory and the process environment, in that
// order of increasing precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validate.New("yaml").Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"API_HOST":          &c.Host,
		"API_PORT":          &c.Port,
		"APP_ENV":           &c.Env,
		"LOG_FILE":          &c.LogFile,
		"LOG_LEVEL":         &c.LogLevel,
		"METRICS_BACKEND":   &c.Metrics.Backend,
		"OTEL_ENDPOINT":     &c.Metrics.OtelEndpoint,
		"OTEL_SERVICE_NAME": &c.Metrics.ServiceName,
		"DATABASE_URL":      &c.Postgres.URL,
		"POSTGRES_HOST":     &c.Postgres.Host,
		"POSTGRES_PORT":     &c.Postgres.Port,
		"POSTGRES_DB":       &c.Postgres.DB,
		"POSTGRES_USER":     &c.Postgres.User,
		"POSTGRES_PASSWORD": &c.Postgres.Password,
		"POSTGRES_SSLMODE":  &c.Postgres.SSLMode,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"POSTGRES_MAX_OPEN_CONNS": &c.Postgres.MaxOpenConns,
		"POSTGRES_MAX_IDLE_CONNS": &c.Postgres.MaxIdleConns,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
	}
	return nil
}

// Address is the listen address for the HTTP server.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// DSN returns the connection string for lib/pq. DATABASE_URL wins over the
// individual settings.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}

	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.DB,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	return u.String()
}
