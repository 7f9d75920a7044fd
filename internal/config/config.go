package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/kadcom/pphc/internal/breakdown"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Auth    AuthConfig
	Calc    CalcConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
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

// AuthConfig enables the bearer-token guard on /api/v1 when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// Enabled reports whether requests must carry a signed token.
func (a AuthConfig) Enabled() bool { return a.JWTSecret != "" }

// CalcConfig tunes the calculation engines.
type CalcConfig struct {
	// TextPolicy is one of truncate, reject or unbounded.
	TextPolicy string `mapstructure:"text_policy"`
	// MaxRows caps row storage held by in-flight calculations; 0 is unlimited.
	MaxRows int `mapstructure:"max_rows"`
	// TablesFile replaces the statutory tables with a YAML table set.
	TablesFile string `mapstructure:"tables_file"`
}

// MetricsConfig holds prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from environment variables with the PPHC_ prefix
// and, when PPHC_CONFIG_FILE names one, a YAML file underneath them.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PPHC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_body_bytes", 1<<20)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Auth defaults: guard disabled
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "pphc")

	// Calc defaults
	v.SetDefault("calc.text_policy", string(breakdown.Truncate))
	v.SetDefault("calc.max_rows", 0)
	v.SetDefault("calc.tables_file", "")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "PPHC_SERVER_PORT",
		"server.read_timeout":     "PPHC_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "PPHC_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout": "PPHC_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":      "PPHC_SERVER_ENVIRONMENT",
		"server.max_body_bytes":   "PPHC_SERVER_MAX_BODY_BYTES",
		"log.level":               "PPHC_LOG_LEVEL",
		"log.format":              "PPHC_LOG_FORMAT",
		"cors.allowed_origins":    "PPHC_CORS_ALLOWED_ORIGINS",
		"auth.jwt_secret":         "PPHC_AUTH_JWT_SECRET",
		"auth.issuer":             "PPHC_AUTH_ISSUER",
		"calc.text_policy":        "PPHC_CALC_TEXT_POLICY",
		"calc.max_rows":           "PPHC_CALC_MAX_ROWS",
		"calc.tables_file":        "PPHC_CALC_TABLES_FILE",
		"metrics.enabled":         "PPHC_METRICS_ENABLED",
		"metrics.path":            "PPHC_METRICS_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if file := os.Getenv("PPHC_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{}

	// Platforms that set PORT win unless PPHC_SERVER_PORT is explicit.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PPHC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
		MaxBodyBytes:    v.GetInt64("server.max_body_bytes"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Auth = AuthConfig{
		JWTSecret: v.GetString("auth.jwt_secret"),
		Issuer:    v.GetString("auth.issuer"),
	}
	cfg.Calc = CalcConfig{
		TextPolicy: v.GetString("calc.text_policy"),
		MaxRows:    v.GetInt("calc.max_rows"),
		TablesFile: v.GetString("calc.tables_file"),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	if _, err := breakdown.ParseTextPolicy(cfg.Calc.TextPolicy); err != nil {
		return nil, fmt.Errorf("calc.text_policy: %w", err)
	}
	if cfg.Calc.MaxRows < 0 {
		return nil, fmt.Errorf("calc.max_rows must not be negative, got %d", cfg.Calc.MaxRows)
	}
	return cfg, nil
}

// splitList parses a comma-separated setting.
func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
