// Package ollama is a minimal client for the local model server's inventory
// endpoint. It exists for best-effort diagnostics during deploy; inference
// itself goes through the agent, not through this tool.
package ollama

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"
)

const probeTimeout = 5 * time.Second

// Model is one entry from the server's inventory.
type Model struct {
    Name         string
    Size         int64
    Quantization string
}

// SizeGB renders the model size the way the agent logs it.
func (m Model) SizeGB() string {
    return fmt.Sprintf("%.2f GB", float64(m.Size)/1e9)
}

type Client struct {
    BaseURL string
    HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
    return &Client{
        BaseURL: strings.TrimRight(baseURL, "/"),
        HTTP:    &http.Client{Timeout: probeTimeout},
    }
}

type tagsResponse struct {
    Models []struct {
        Name    string `json:"name"`
        Size    int64  `json:"size"`
        Details struct {
            QuantizationLevel string `json:"quantization_level"`
        } `json:"details"`
    } `json:"models"`
}

// List fetches the server's model inventory.
func (c *Client) List(ctx context.Context) ([]Model, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/tags", nil)
    if err != nil { return nil, err }
    resp, err := c.HTTP.Do(req)
    if err != nil {
        return nil, fmt.Errorf("ollama server unreachable at %s: %w", c.BaseURL, err)
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("ollama server returned %s", resp.Status)
    }
    var tr tagsResponse
    if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
        return nil, fmt.Errorf("decode inventory: %w", err)
    }
    models := make([]Model, 0, len(tr.Models))
    for _, m := range tr.Models {
        q := m.Details.QuantizationLevel
        if q == "" { q = "unknown" }
        models = append(models, Model{Name: m.Name, Size: m.Size, Quantization: q})
    }
    return models, nil
}

// Verify reports whether name is present in the inventory.
func (c *Client) Verify(ctx context.Context, name string) (bool, error) {
    models, err := c.List(ctx)
    if err != nil { return false, err }
    for _, m := range models {
        if m.Name == name { return true, nil }
    }
    return false, nil
}
