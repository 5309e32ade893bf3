package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/altinukshini/runner-select/internal/model"
)

// maxRunnersPerPage is the API's page size ceiling. Only the first page is read.
const maxRunnersPerPage = 100

// RunnersPage is one page of the repository's runners plus the rate limit
// reported alongside it.
type RunnersPage struct {
	model.RunnersResponse
	RateLimit RateLimit
}

// ListRunners returns the repository's self-hosted GitHub Actions runners.
func (c *Client) ListRunners(ctx context.Context) (*RunnersPage, error) {
	endpoint := fmt.Sprintf("actions/runners?per_page=%d", maxRunnersPerPage)
	resp, err := c.RawRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, classify("runners", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Resource: "runners", StatusCode: resp.StatusCode}
	}

	page := &RunnersPage{RateLimit: ParseRateLimit(resp)}
	if err := json.NewDecoder(resp.Body).Decode(&page.RunnersResponse); err != nil {
		return nil, decodeError(err)
	}
	// Labels are only read for runners that could take a job.
	for i, r := range page.Runners {
		if r.Status == model.RunnerStatusIdle && !r.Busy && r.Labels == nil {
			return nil, &DataError{Reason: fmt.Sprintf("runner %d (%q) has no labels", i, r.Name)}
		}
	}
	return page, nil
}
