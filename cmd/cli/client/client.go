package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dbcalc/dbcalc/internal/api"
	"github.com/dbcalc/dbcalc/internal/database"
)

// Client wraps HTTP calls to the dbcalc API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client targeting the given base URL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// ListHardware fetches GET /api/v1/hardware.
func (c *Client) ListHardware(ctx context.Context) ([]database.HardwarePreset, error) {
	var presets []database.HardwarePreset
	if err := c.doGet(ctx, c.baseURL+"/api/v1/hardware", &presets); err != nil {
		return nil, err
	}
	return presets, nil
}

// GetHardware fetches GET /api/v1/hardware/{name}.
func (c *Client) GetHardware(ctx context.Context, name string) (*database.HardwarePreset, error) {
	var hw database.HardwarePreset
	if err := c.doGet(ctx, c.baseURL+"/api/v1/hardware/"+url.PathEscape(name), &hw); err != nil {
		return nil, err
	}
	return &hw, nil
}

// ListEngines fetches GET /api/v1/engines.
func (c *Client) ListEngines(ctx context.Context) ([]database.Engine, error) {
	var engines []database.Engine
	if err := c.doGet(ctx, c.baseURL+"/api/v1/engines", &engines); err != nil {
		return nil, err
	}
	return engines, nil
}

// GetEngine fetches GET /api/v1/engines/{name}.
func (c *Client) GetEngine(ctx context.Context, name string) (*database.Engine, error) {
	var e database.Engine
	if err := c.doGet(ctx, c.baseURL+"/api/v1/engines/"+url.PathEscape(name), &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListWorkloads fetches GET /api/v1/workloads.
func (c *Client) ListWorkloads(ctx context.Context) ([]database.Workload, error) {
	var workloads []database.Workload
	if err := c.doGet(ctx, c.baseURL+"/api/v1/workloads", &workloads); err != nil {
		return nil, err
	}
	return workloads, nil
}

// GetWorkload fetches GET /api/v1/workloads/{name}.
func (c *Client) GetWorkload(ctx context.Context, name string) (*database.Workload, error) {
	var w database.Workload
	if err := c.doGet(ctx, c.baseURL+"/api/v1/workloads/"+url.PathEscape(name), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Calculate submits POST /api/v1/calculate.
func (c *Client) Calculate(ctx context.Context, req api.CalculateRequest) (*api.CalculateResponse, error) {
	var resp api.CalculateResponse
	if err := c.doPost(ctx, c.baseURL+"/api/v1/calculate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Compare submits POST /api/v1/compare.
func (c *Client) Compare(ctx context.Context, req api.CompareRequest) (*api.CompareResponse, error) {
	var resp api.CompareResponse
	if err := c.doPost(ctx, c.baseURL+"/api/v1/compare", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doPost(ctx context.Context, rawURL string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) doGet(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.readError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) readError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var apiErr struct {
		Error  string `json:"error"`
		Fields []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"fields"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		msg := apiErr.Error
		for i, f := range apiErr.Fields {
			if i == 3 {
				msg += fmt.Sprintf("; and %d more", len(apiErr.Fields)-i)
				break
			}
			msg += fmt.Sprintf("; %s: %s", f.Field, f.Reason)
		}
		return fmt.Errorf("API error %d: %s", resp.StatusCode, msg)
	}
	return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
}
