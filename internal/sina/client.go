package sina

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
)

const (
	// DefaultFinanceURL serves the financial statement reports.
	DefaultFinanceURL = "https://quotes.sina.cn/cn/api/openapi.php"

	// DefaultMarketURL serves the market center node listings.
	DefaultMarketURL = "https://vip.stock.finance.sina.com.cn/quotes_service/api/json_v2.php"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// DefaultUserAgent is sent with every request; the provider rejects empty agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	// DefaultReportPageSize is the number of reporting periods requested per statement.
	DefaultReportPageSize = 20

	// DefaultDirectoryPageSize is the number of companies requested per directory page.
	DefaultDirectoryPageSize = 100

	// DefaultDirectoryMaxPages caps directory paging.
	DefaultDirectoryMaxPages = 80
)

// Client is a Sina finance API client.
type Client struct {
	financeURL        string
	marketURL         string
	userAgent         string
	reportPageSize    int
	directoryPageSize int
	directoryMaxPages int
	timeout           time.Duration
	httpClient        *http.Client
	logger            arbor.ILogger
	limiter           *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithFinanceURL sets the statement report endpoint.
func WithFinanceURL(u string) ClientOption {
	return func(c *Client) {
		c.financeURL = u
	}
}

// WithMarketURL sets the directory endpoint.
func WithMarketURL(u string) ClientOption {
	return func(c *Client) {
		c.marketURL = u
	}
}

// WithHTTPClient sets a custom HTTP client. Its timeout is left as is.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP timeout of the default client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithReportPageSize sets how many periods are requested per statement.
func WithReportPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.reportPageSize = n
		}
	}
}

// WithDirectoryPaging sets the directory page size and page cap.
func WithDirectoryPaging(pageSize, maxPages int) ClientOption {
	return func(c *Client) {
		if pageSize > 0 {
			c.directoryPageSize = pageSize
		}
		if maxPages > 0 {
			c.directoryMaxPages = maxPages
		}
	}
}

// NewClient creates a new Sina API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		financeURL:        DefaultFinanceURL,
		marketURL:         DefaultMarketURL,
		userAgent:         DefaultUserAgent,
		reportPageSize:    DefaultReportPageSize,
		directoryPageSize: DefaultDirectoryPageSize,
		directoryMaxPages: DefaultDirectoryMaxPages,
		timeout:           DefaultTimeout,
		limiter:           rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c
}

// get performs a GET request and returns the raw body.
func (c *Client) get(ctx context.Context, baseURL, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{Err: err}
	}

	reqURL := baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("url", baseURL+path).
			Str("query", params.Encode()).
			Msg("Sina API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	return body, nil
}
