// Package sina provides a client for the Sina finance open API, used for
// A-share financial statements and the listed company directory.
package sina

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/finhealth/internal/models"
)

var (
	// ErrUnknownStatementType is returned for a statement type the provider does not serve.
	ErrUnknownStatementType = errors.New("unknown statement type")
	// ErrInvalidCode is returned for an empty company code.
	ErrInvalidCode = errors.New("invalid company code")
	// ErrMalformedResponse is returned when a response lacks the expected structure.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// statementSources maps statement types to the provider's report source keys.
var statementSources = map[models.StatementType]string{
	models.StatementBalanceSheet: "fzb",
	models.StatementIncome:       "lrb",
	models.StatementCashFlow:     "llb",
}

// sourceFor returns the report source key for a statement type.
func sourceFor(t models.StatementType) (string, error) {
	src, ok := statementSources[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatementType, string(t))
	}
	return src, nil
}

// PaperCode returns the exchange-prefixed code the provider expects:
// sh for 6/9 codes, bj for 4/8 codes and sz otherwise. A code that already
// carries a prefix is returned lower-cased.
func PaperCode(code string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	if c == "" {
		return "", ErrInvalidCode
	}
	for _, prefix := range []string{"sh", "sz", "bj"} {
		if strings.HasPrefix(c, prefix) {
			return c, nil
		}
	}
	if strings.HasPrefix(c, "92") {
		return "bj" + c, nil
	}
	switch c[0] {
	case '6', '9':
		return "sh" + c, nil
	case '4', '8':
		return "bj" + c, nil
	default:
		return "sz" + c, nil
	}
}

// APIError represents an error from the provider.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sina API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError is returned when waiting on the client's limiter fails.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("sina rate limit wait failed: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}
