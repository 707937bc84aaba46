package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/repshape/internal/composition"
	"github.com/claude/repshape/internal/models"
)

// HTTPClient implements DataSource by calling the repshape REST API.
// Used when the MCP binary runs locally (stdio) but the log lives on a
// server elsewhere.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) Workouts(ctx context.Context) ([]models.Workout, error) {
	var out []models.Workout
	if err := c.get(ctx, "/api/v1/workouts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Settings(ctx context.Context) (models.Settings, error) {
	var out models.Settings
	if err := c.get(ctx, "/api/v1/settings", &out); err != nil {
		return models.Settings{}, err
	}
	return out, nil
}

func (c *HTTPClient) Scenarios(ctx context.Context) ([]composition.Scenario, error) {
	var out []composition.Scenario
	if err := c.get(ctx, "/api/v1/scenarios", &out); err != nil {
		return nil, err
	}
	return out, nil
}
