package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient is the HTTP client for the profile-matching service.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
}

// NewClient creates a new matching-service client. The timeout bounds the
// whole call; a slow matcher must never stall a registration.
func NewClient(baseURL, apiKey string) MatcherClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		BaseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Ensure APIClient implements the MatcherClient interface.
var _ MatcherClient = (*APIClient)(nil)

// FindMatchingProfiles asks the matching service for ranked candidates.
func (c *APIClient) FindMatchingProfiles(ctx context.Context, params *SearchParams) ([]Candidate, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal match request: %w", err)
	}

	url := c.BaseURL + "/v1/match"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build match request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("match request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("Matching service returned non-OK status", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("matching service returned status %d", resp.StatusCode)
	}

	var parsed matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode match response: %w", err)
	}

	log.Debug("Matching service returned candidates", "count", len(parsed.Candidates))
	return parsed.Candidates, nil
}
