// Package payment implements the outbound payment-processor gateway over
// the processor's HTTP API. Sessions carry the order id in their metadata
// so that webhook events can be matched back to the order by session,
// never by amount.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flowershop/internal/core/domain/model/kernel"
	"flowershop/internal/core/ports"
)

// Client talks to the payment processor's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a payment gateway client for the given API endpoint.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type createSessionRequest struct {
	Amount   string            `json:"amount"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

type sessionResponse struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   string `json:"amount_total"`
}

// CreateCheckoutSession creates a checkout session for the order.
func (c *Client) CreateCheckoutSession(
	ctx context.Context, orderID kernel.UUID, amount kernel.Money,
) (ports.CheckoutSession, error) {
	payload := createSessionRequest{
		Amount:   amount.String(),
		Currency: "idr",
		Metadata: map[string]string{"order_id": orderID.String()},
	}

	var resp sessionResponse
	if err := c.post(ctx, "/v1/checkout/sessions", payload, &resp); err != nil {
		return ports.CheckoutSession{}, fmt.Errorf("create checkout session: %w", err)
	}

	return ports.CheckoutSession{ID: resp.ID, URL: resp.URL}, nil
}

// GetSessionStatus re-queries the processor for a session's current state.
func (c *Client) GetSessionStatus(ctx context.Context, sessionID string) (ports.PaymentSessionStatus, error) {
	var resp sessionResponse
	if err := c.get(ctx, "/v1/checkout/sessions/"+sessionID, &resp); err != nil {
		return ports.PaymentSessionStatus{}, fmt.Errorf("get session status: %w", err)
	}

	status := ports.PaymentSessionStatus{Paid: resp.PaymentStatus == "paid"}
	if status.Paid {
		amount, err := kernel.MoneyFromString(resp.AmountTotal)
		if err != nil {
			return ports.PaymentSessionStatus{}, fmt.Errorf("get session status: %w", err)
		}
		status.AmountTotal = amount
	}

	return status, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("payment provider returned %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
