package common

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/banner"
)

// PrintBanner displays the application banner and logs the effective settings.
func PrintBanner(config *Config, logger arbor.ILogger) {
	banner.PrintSimple("FinHealth", GetVersion())

	logger.Info().
		Str("version", GetFullVersion()).
		Str("environment", config.Environment).
		Str("host", config.Server.Host).
		Int("port", config.Server.Port).
		Str("finance_url", config.Provider.FinanceURL).
		Str("market_url", config.Provider.MarketURL).
		Int("retry_attempts", config.Retry.MaxAttempts).
		Msg("Configuration loaded")
}
