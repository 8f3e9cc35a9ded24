package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/claims-report/pkg/models/domain"
	"github.com/spf13/viper"
)

const envPrefix = "CLAIMS"

type Config struct {
	APIURL          string        `mapstructure:"api_url"`
	Timezone        string        `mapstructure:"timezone"`
	TimezoneOffset  string        `mapstructure:"timezone_offset"`
	PageLimit       int           `mapstructure:"page_limit"`
	MaxPages        int           `mapstructure:"max_pages"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	Retry           RetryConfig   `mapstructure:"retry"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	ClaimSecrets    []string      `mapstructure:"claim_secrets"`
	Clients         []string      `mapstructure:"clients"`
	Monthly         MonthlyConfig `mapstructure:"monthly"`
	Cache           CacheConfig   `mapstructure:"cache"`
	Server          ServerConfig  `mapstructure:"server"`
	Export          ExportConfig  `mapstructure:"export"`
	LogLevel        string        `mapstructure:"log_level"`
}

type RetryConfig struct {
	Attempts  int           `mapstructure:"attempts"`
	BaseDelay time.Duration `mapstructure:"base_delay"`
	MaxDelay  time.Duration `mapstructure:"max_delay"`
}

type MonthlyConfig struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type CacheConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	WarmModes     []string      `mapstructure:"warm_modes"`
	WarmInterval  time.Duration `mapstructure:"warm_interval"` // 0 disables warming
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ExportConfig struct {
	S3Region   string `mapstructure:"s3_region"`
	S3Bucket   string `mapstructure:"s3_bucket"`
	S3Profile  string `mapstructure:"s3_profile"`
	S3Endpoint string `mapstructure:"s3_endpoint"` // e.g. localstack
}

var defaults = map[string]any{
	"api_url":                 "",
	"timezone":                "America/Lima",
	"timezone_offset":         "-05:00",
	"page_limit":              1000,
	"max_pages":               1000,
	"request_timeout":         "30s",
	"retry.attempts":          3,
	"retry.base_delay":        "500ms",
	"retry.max_delay":         "10s",
	"credentials_file":        "",
	"claim_secrets":           []string{},
	"clients":                 []string{},
	"monthly.start":           "",
	"monthly.end":             "",
	"cache.ttl":               "30m",
	"cache.redis_addr":        "",
	"cache.redis_password":    "",
	"cache.redis_db":          0,
	"cache.warm_modes":        []string{},
	"cache.warm_interval":     "0s",
	"server.host":             "127.0.0.1",
	"server.port":             "8080",
	"server.shutdown_timeout": "10s",
	"export.s3_region":        "us-east-1",
	"export.s3_bucket":        "",
	"export.s3_profile":       "",
	"export.s3_endpoint":      "",
	"log_level":               "info",
}

// Load reads the config file at path (or ./claims.yaml when path is empty and
// the file exists) and overlays CLAIMS_* environment variables, e.g.
// CLAIMS_API_URL or CLAIMS_CACHE_REDIS_ADDR.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("claims")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse claims config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not an absolute url", c.APIURL)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if c.PageLimit <= 0 {
		return fmt.Errorf("page_limit must be positive")
	}
	if c.Retry.Attempts <= 0 {
		return fmt.Errorf("retry.attempts must be positive")
	}
	if c.CredentialsFile != "" && len(c.ClaimSecrets) > 0 {
		return fmt.Errorf("credentials_file and claim_secrets are mutually exclusive")
	}
	if c.CredentialsFile == "" && len(c.ClaimSecrets) != len(c.Clients) {
		return fmt.Errorf("got %d claim secrets but %d client names", len(c.ClaimSecrets), len(c.Clients))
	}
	for _, m := range c.Cache.WarmModes {
		if _, err := domain.ParseMode(m); err != nil {
			return fmt.Errorf("invalid cache.warm_modes entry: %w", err)
		}
	}
	return nil
}

// WarmModes returns the parsed cache.warm_modes.
func (c *Config) WarmModes() []domain.ReportMode {
	modes := make([]domain.ReportMode, 0, len(c.Cache.WarmModes))
	for _, m := range c.Cache.WarmModes {
		if mode, err := domain.ParseMode(m); err == nil {
			modes = append(modes, mode)
		}
	}
	return modes
}

// Registry builds the credential registry described by the config.
func (c *Config) Registry() (CredentialRegistry, error) {
	if c.CredentialsFile != "" {
		return NewCredentialRegistry(c.CredentialsFile)
	}
	return NewStaticRegistry(c.ClaimSecrets, c.Clients)
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
