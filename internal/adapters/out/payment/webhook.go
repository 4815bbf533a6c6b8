package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
)

// ErrInvalidSignature is returned when a webhook payload's signature does
// not match the shared secret.
var ErrInvalidSignature = errors.New("webhook signature mismatch")

// WebhookVerifier authenticates incoming webhook payloads with HMAC-SHA256
// over the raw request body.
type WebhookVerifier struct {
	secret []byte
}

// NewWebhookVerifier creates a verifier for the given shared secret.
func NewWebhookVerifier(secret string) WebhookVerifier {
	return WebhookVerifier{secret: []byte(secret)}
}

// Verify checks the hex-encoded signature against the raw body.
func (v WebhookVerifier) Verify(body []byte, signature string) error {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// WebhookEvent is the payload of a processor webhook call.
type WebhookEvent struct {
	Type    string `json:"type"`
	Session struct {
		ID            string `json:"id"`
		PaymentStatus string `json:"payment_status"`
		AmountTotal   string `json:"amount_total"`
	} `json:"session"`
}

// ParseEvent decodes a verified webhook body.
func ParseEvent(body []byte) (WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return WebhookEvent{}, err
	}
	return event, nil
}
