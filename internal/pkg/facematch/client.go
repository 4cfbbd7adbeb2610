package facematch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable means the face service could not produce a judgment at all:
// unreachable, timed out, or answered with a non-200 status. Distinct from a
// negative judgment, which is returned as verified=false without error.
var ErrUnavailable = errors.New("face service unavailable")

type verifyRequest struct {
	EmployeeID int64  `json:"employee_id"`
	ImageB64   string `json:"image_b64"`
}

type verifyResponse struct {
	Verified bool    `json:"verified"`
	Score    float64 `json:"score"`
}

// Client calls the face recognition service's /verify endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Verify submits the captured image and the claimed employee ID and returns
// the service's judgment.
func (c *Client) Verify(ctx context.Context, employeeID int64, imageB64 string) (bool, error) {
	body, err := json.Marshal(verifyRequest{
		EmployeeID: employeeID,
		ImageB64:   imageB64,
	})
	if err != nil {
		return false, fmt.Errorf("marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}

	return result.Verified, nil
}
