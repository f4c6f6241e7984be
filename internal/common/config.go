package common

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment" validate:"omitempty,oneof=development production dev prod test"`
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Provider    ProviderConfig `toml:"provider"`
	Retry       RetryConfig    `toml:"retry"`
	Static      StaticConfig   `toml:"static"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=trace debug info warn error fatal"`
	Output     []string `toml:"output" validate:"min=1,dive,oneof=stdout console file"`
	TimeFormat string   `toml:"time_format"` // Time format for log lines (default: "15:04:05")
	Dir        string   `toml:"dir"`         // Directory for the log file and crash reports (default: "logs" next to the executable)
}

// ProviderConfig configures the Sina finance data client
type ProviderConfig struct {
	FinanceURL        string `toml:"finance_url" validate:"required,url"`
	MarketURL         string `toml:"market_url" validate:"required,url"`
	Timeout           string `toml:"timeout"` // HTTP timeout as a duration string, e.g. "30s"
	UserAgent         string `toml:"user_agent"`
	RateLimit         int    `toml:"rate_limit" validate:"min=1"`          // Requests per second
	ReportPageSize    int    `toml:"report_page_size" validate:"min=2"`    // Reporting periods requested per statement
	DirectoryPageSize int    `toml:"directory_page_size" validate:"min=1"` // Companies requested per directory page
	DirectoryMaxPages int    `toml:"directory_max_pages" validate:"min=1"` // Directory paging cap
}

// RetryConfig configures provider call retries
type RetryConfig struct {
	MaxAttempts  int    `toml:"max_attempts" validate:"min=1,max=10"`
	PreCallDelay string `toml:"pre_call_delay"` // Wait before every attempt, e.g. "500ms"
	Backoff      string `toml:"backoff"`        // Wait after a failed attempt, e.g. "1s"
}

// StaticConfig locates the front-end page
type StaticConfig struct {
	Dir   string `toml:"dir" validate:"required"`
	Index string `toml:"index" validate:"required"`
}

// NewDefaultConfig returns the configuration used when no file overrides it.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 5000,
			Host: "0.0.0.0",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Provider: ProviderConfig{
			FinanceURL:        "https://quotes.sina.cn/cn/api/openapi.php",
			MarketURL:         "https://vip.stock.finance.sina.com.cn/quotes_service/api/json_v2.php",
			Timeout:           "30s",
			RateLimit:         5,
			ReportPageSize:    20,
			DirectoryPageSize: 100,
			DirectoryMaxPages: 80,
		},
		Retry: RetryConfig{
			MaxAttempts:  3,
			PreCallDelay: "500ms",
			Backoff:      "1s",
		},
		Static: StaticConfig{
			Dir:   ".",
			Index: "supplier-finance.html",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// CLI flags are applied afterwards with ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal merges with existing values, later files override
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINHEALTH_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration; bare PORT is honoured for platform deployments
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if port := os.Getenv("FINHEALTH_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FINHEALTH_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("FINHEALTH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("FINHEALTH_LOG_OUTPUT"); output != "" {
		var outputs []string
		for _, o := range strings.Split(output, ",") {
			if o = strings.TrimSpace(o); o != "" {
				outputs = append(outputs, o)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
	if timeFormat := os.Getenv("FINHEALTH_LOG_TIME_FORMAT"); timeFormat != "" {
		config.Logging.TimeFormat = timeFormat
	}
	if dir := os.Getenv("FINHEALTH_LOG_DIR"); dir != "" {
		config.Logging.Dir = dir
	}

	// Provider configuration
	if u := os.Getenv("FINHEALTH_PROVIDER_FINANCE_URL"); u != "" {
		config.Provider.FinanceURL = u
	}
	if u := os.Getenv("FINHEALTH_PROVIDER_MARKET_URL"); u != "" {
		config.Provider.MarketURL = u
	}
	if timeout := os.Getenv("FINHEALTH_PROVIDER_TIMEOUT"); timeout != "" {
		config.Provider.Timeout = timeout
	}
	if ua := os.Getenv("FINHEALTH_PROVIDER_USER_AGENT"); ua != "" {
		config.Provider.UserAgent = ua
	}
	setIntFromEnv("FINHEALTH_PROVIDER_RATE_LIMIT", &config.Provider.RateLimit)
	setIntFromEnv("FINHEALTH_PROVIDER_REPORT_PAGE_SIZE", &config.Provider.ReportPageSize)
	setIntFromEnv("FINHEALTH_PROVIDER_DIRECTORY_PAGE_SIZE", &config.Provider.DirectoryPageSize)
	setIntFromEnv("FINHEALTH_PROVIDER_DIRECTORY_MAX_PAGES", &config.Provider.DirectoryMaxPages)

	// Retry configuration
	setIntFromEnv("FINHEALTH_RETRY_MAX_ATTEMPTS", &config.Retry.MaxAttempts)
	if delay := os.Getenv("FINHEALTH_RETRY_PRE_CALL_DELAY"); delay != "" {
		config.Retry.PreCallDelay = delay
	}
	if backoff := os.Getenv("FINHEALTH_RETRY_BACKOFF"); backoff != "" {
		config.Retry.Backoff = backoff
	}

	// Static configuration
	if dir := os.Getenv("FINHEALTH_STATIC_DIR"); dir != "" {
		config.Static.Dir = dir
	}
	if index := os.Getenv("FINHEALTH_STATIC_INDEX"); index != "" {
		config.Static.Index = index
	}
}

func setIntFromEnv(name string, target *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks field constraints and that every duration string parses.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	durations := map[string]string{
		"provider.timeout":     c.Provider.Timeout,
		"retry.pre_call_delay": c.Retry.PreCallDelay,
		"retry.backoff":        c.Retry.Backoff,
	}
	for name, value := range durations {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid configuration: %s: %w", name, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid configuration: %s must not be negative", name)
		}
	}

	if c.IsProduction() {
		for name, value := range map[string]string{
			"provider.finance_url": c.Provider.FinanceURL,
			"provider.market_url":  c.Provider.MarketURL,
		} {
			if isLoopbackURL(value) {
				return fmt.Errorf("invalid configuration: %s points at a local address in production: %s", name, value)
			}
		}
	}
	return nil
}

func isLoopbackURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// ProviderTimeout returns the parsed provider timeout.
func (c *Config) ProviderTimeout() time.Duration {
	return parseDurationOr(c.Provider.Timeout, 30*time.Second)
}

// RetryPreCallDelay returns the parsed pre-call delay.
func (c *Config) RetryPreCallDelay() time.Duration {
	return parseDurationOr(c.Retry.PreCallDelay, 500*time.Millisecond)
}

// RetryBackoff returns the parsed retry backoff.
func (c *Config) RetryBackoff() time.Duration {
	return parseDurationOr(c.Retry.Backoff, time.Second)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
