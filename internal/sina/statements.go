package sina

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/ternarybob/finhealth/internal/models"
)

const reportPath = "/CompanyFinanceService.getFinanceReport2022"

// GetStatement fetches one statement of a company. Periods keep the provider's
// most-recent-first order and null values are left as absent cells.
func (c *Client) GetStatement(ctx context.Context, code string, statementType models.StatementType) (*models.Table, error) {
	src, err := sourceFor(statementType)
	if err != nil {
		return nil, err
	}
	paperCode, err := PaperCode(code)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("paperCode", paperCode)
	params.Set("source", src)
	params.Set("type", "0")
	params.Set("page", "1")
	params.Set("num", strconv.Itoa(c.reportPageSize))

	body, err := c.get(ctx, c.financeURL, reportPath, params)
	if err != nil {
		return nil, fmt.Errorf("fetch %s for %s: %w", statementType, code, err)
	}

	table, err := parseStatement(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s for %s: %w", statementType, code, err)
	}
	table.Code = code
	table.Type = statementType

	if c.logger != nil {
		c.logger.Debug().
			Str("code", code).
			Str("statement", string(statementType)).
			Int("periods", len(table.Periods)).
			Int("rows", len(table.Rows)).
			Msg("Fetched statement")
	}

	return table, nil
}

// parseStatement lays the per-period item lists out as rows. A label repeated
// within a period maps to its own row, matched by occurrence across periods.
func parseStatement(body []byte) (*models.Table, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	root := gjson.ParseBytes(body)

	if status := root.Get("result.status.code"); status.Exists() && status.Int() != 0 {
		return nil, &APIError{
			StatusCode: int(status.Int()),
			Message:    root.Get("result.status.msg").String(),
			Endpoint:   reportPath,
		}
	}

	data := root.Get("result.data")
	if !data.IsObject() {
		return nil, fmt.Errorf("%w: missing result.data", ErrMalformedResponse)
	}

	table := &models.Table{}
	for _, d := range data.Get("report_date.#.date_value").Array() {
		if period := d.String(); period != "" {
			table.Periods = append(table.Periods, period)
		}
	}

	reports := make(map[string]gjson.Result)
	data.Get("report_list").ForEach(func(key, value gjson.Result) bool {
		reports[key.String()] = value
		return true
	})

	rowIndex := make(map[string][]int)
	for _, period := range table.Periods {
		seen := make(map[string]int)
		reports[period].Get("data").ForEach(func(_, item gjson.Result) bool {
			label := item.Get("item_title").String()
			if label == "" {
				return true
			}

			occurrence := seen[label]
			seen[label]++
			if occurrence >= len(rowIndex[label]) {
				table.Rows = append(table.Rows, models.Row{Label: label, Cells: make(map[string]*string)})
				rowIndex[label] = append(rowIndex[label], len(table.Rows)-1)
			}

			value := item.Get("item_value")
			if value.Exists() && value.Type != gjson.Null {
				s := value.String()
				table.Rows[rowIndex[label][occurrence]].Cells[period] = &s
			}
			return true
		})
	}

	return table, nil
}
