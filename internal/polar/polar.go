// Package polar is a thin client for the parts of the Polar API this
// service calls. Checkout sessions are the only surface: hand Polar a
// product and a customer, get back a hosted checkout URL.
package polar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.polar.sh"

type Config struct {
	AccessToken string
	BaseURL     string // override for the sandbox environment
	SuccessURL  string
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type checkoutRequest struct {
	Products           []string          `json:"products"`
	ExternalCustomerID string            `json:"external_customer_id,omitempty"`
	SuccessURL         string            `json:"success_url,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
}

type checkoutResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession asks Polar for a hosted checkout session for the
// product and returns its URL. The customer identity travels as Polar's
// external customer id so webhook events reconcile back to the same key the
// ledger uses.
func (c *Client) CreateCheckoutSession(ctx context.Context, productID, customerID string) (string, error) {
	payload, err := json.Marshal(checkoutRequest{
		Products:           []string{productID},
		ExternalCustomerID: customerID,
		SuccessURL:         c.cfg.SuccessURL,
		Metadata:           map[string]string{"reference": uuid.NewString()},
	})
	if err != nil {
		return "", fmt.Errorf("marshal checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/checkouts/", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call polar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("polar returned status %d", resp.StatusCode)
	}

	var session checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", fmt.Errorf("decode checkout response: %w", err)
	}
	if session.URL == "" {
		return "", fmt.Errorf("polar checkout %s has no url", session.ID)
	}
	return session.URL, nil
}
