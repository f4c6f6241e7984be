package sina

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/ternarybob/finhealth/internal/models"
)

const (
	directoryPath = "/Market_Center.getHQNodeData"
	// directoryNode is the market center node holding all A-shares.
	directoryNode = "hs_a"
)

// ListCompanies pages through the A-share node until an empty page or the
// page cap. Companies keep the provider's symbol order.
func (c *Client) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company

	for page := 1; page <= c.directoryMaxPages; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		params.Set("num", strconv.Itoa(c.directoryPageSize))
		params.Set("sort", "symbol")
		params.Set("asc", "1")
		params.Set("node", directoryNode)

		body, err := c.get(ctx, c.marketURL, directoryPath, params)
		if err != nil {
			return nil, fmt.Errorf("fetch company directory page %d: %w", page, err)
		}

		batch, err := parseDirectoryPage(body)
		if err != nil {
			return nil, fmt.Errorf("parse company directory page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}
		companies = append(companies, batch...)

		if len(batch) < c.directoryPageSize {
			break
		}
	}

	if c.logger != nil {
		c.logger.Debug().
			Int("companies", len(companies)).
			Msg("Fetched company directory")
	}

	return companies, nil
}

// parseDirectoryPage reads code and name from one page. The provider answers
// past the last page with null or an empty array.
func parseDirectoryPage(body []byte) ([]models.Company, error) {
	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return nil, nil
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: expected array", ErrMalformedResponse)
	}

	var out []models.Company
	root.ForEach(func(_, entry gjson.Result) bool {
		code := entry.Get("code").String()
		if code == "" {
			return true
		}
		out = append(out, models.Company{
			Code: code,
			Name: entry.Get("name").String(),
		})
		return true
	})
	return out, nil
}
