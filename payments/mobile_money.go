package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// InitiationRequest is the payload every carrier accepts: an amount, the
// customer's number in international form, and an order reference the
// carrier echoes back on settlement callbacks.
type InitiationRequest struct {
	Amount         int64  `json:"amount"`
	PhoneNumber    string `json:"phone_number"`
	OrderReference string `json:"order_reference"`
	Description    string `json:"description,omitempty"`
}

// InitiationResult is a carrier's acknowledgment that the payment prompt
// was pushed to the customer's phone. It is not a settlement.
type InitiationResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
	Error         string `json:"error,omitempty"`
}

// MobileMoneyClient initiates a charge on one carrier's rail.
type MobileMoneyClient interface {
	Initiate(ctx context.Context, req InitiationRequest) (*InitiationResult, error)
}

// CarrierClient is an HTTP MobileMoneyClient. One instance per carrier,
// differing only in name and endpoint.
type CarrierClient struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewCarrierClient(name, baseURL, apiKey string, timeout time.Duration) *CarrierClient {
	return &CarrierClient{
		name:       name,
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CarrierClient) Initiate(ctx context.Context, req InitiationRequest) (*InitiationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", c.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", c.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", c.name, err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%s error %s: %s", c.name, resp.Status, string(respBody))
	}

	var result InitiationResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("invalid %s response: %w", c.name, err)
	}
	return &result, nil
}
