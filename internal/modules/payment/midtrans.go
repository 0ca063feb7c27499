package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"travia/internal/config"
)

// Client talks to the Midtrans Snap and transaction-status APIs. Auth is
// HTTP Basic with the server key as username and an empty password.
type Client struct {
	cfg  config.MidtransConfig
	http *http.Client
}

func NewClient(cfg config.MidtransConfig) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) authHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.cfg.ServerKey+":"))
}

func (c *Client) CreateTransaction(ctx context.Context, snapReq SnapRequest) (*SnapResponse, error) {
	payload, err := json.Marshal(snapReq)
	if err != nil {
		return nil, fmt.Errorf("marshal snap request: %w", err)
	}

	endpoint := c.cfg.SnapBaseURL + "/snap/v1/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader())

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("midtrans request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read midtrans response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: res.StatusCode, Body: string(body)}
	}

	var out SnapResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode snap response: %w", err)
	}
	return &out, nil
}

func (c *Client) TransactionStatus(ctx context.Context, orderID string) (map[string]interface{}, error) {
	endpoint := c.cfg.APIBaseURL + "/v2/" + url.PathEscape(orderID) + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authHeader())

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("midtrans request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read midtrans response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: res.StatusCode, Body: string(body)}
	}

	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return out, nil
}
