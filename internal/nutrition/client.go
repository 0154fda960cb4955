// Package nutrition wraps the external Nutritionix natural-nutrients API.
// Any transport error, non-200 status or timeout degrades to
// errors.ErrLookupUnavailable; callers persist null calories and carry on.
package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	apperrors "caltrack/internal/errors"
)

// Lookup resolves free-text food descriptions into a calorie count.
type Lookup interface {
	ResolveCalories(ctx context.Context, text string) (int, error)
}

// Client calls the Nutritionix API over HTTP.
type Client struct {
	url        string
	appID      string
	appKey     string
	httpClient *http.Client
}

// NewClient creates a lookup client. The timeout bounds every call; the
// external service is not under our control.
func NewClient(url, appID, appKey string, timeout time.Duration) *Client {
	return &Client{
		url:    url,
		appID:  appID,
		appKey: appKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type lookupRequest struct {
	Query string `json:"query"`
}

type lookupResponse struct {
	Foods []struct {
		Calories float64 `json:"nf_calories"`
	} `json:"foods"`
}

// ResolveCalories posts the food text to the nutrients endpoint and extracts
// the calorie count of the first matched food.
func (c *Client) ResolveCalories(ctx context.Context, text string) (int, error) {
	payload, err := json.Marshal(lookupRequest{Query: text})
	if err != nil {
		return 0, apperrors.ErrLookupUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, apperrors.ErrLookupUnavailable
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, apperrors.ErrLookupUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, apperrors.ErrLookupUnavailable
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, apperrors.ErrLookupUnavailable
	}
	if len(result.Foods) == 0 {
		return 0, apperrors.ErrLookupUnavailable
	}

	return int(math.Round(result.Foods[0].Calories)), nil
}
