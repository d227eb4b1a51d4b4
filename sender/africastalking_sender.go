package sender

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const africasTalkingURL = "https://api.africastalking.com/version1/messaging"

// AfricasTalkingSender sends SMS through the AfricasTalking messaging API.
type AfricasTalkingSender struct {
	username   string
	apiKey     string
	from       string
	httpClient *http.Client
}

func NewAfricasTalkingSender(username, apiKey, from string) (*AfricasTalkingSender, error) {
	if username == "" {
		return nil, fmt.Errorf("SMS_USERNAME not set")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("SMS_API_KEY not set")
	}

	return &AfricasTalkingSender{
		username:   username,
		apiKey:     apiKey,
		from:       from,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *AfricasTalkingSender) SendSMS(ctx context.Context, to, msg string) (SendResult, error) {
	formData := url.Values{}
	formData.Set("username", s.username)
	formData.Set("to", to)
	formData.Set("message", msg)
	if s.from != "" {
		formData.Set("from", s.from)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, africasTalkingURL,
		strings.NewReader(formData.Encode()))
	if err != nil {
		return SendResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apiKey", s.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return SendResult{}, fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return SendResult{}, fmt.Errorf("sms error %s: %s", resp.Status, string(respBody))
	}

	return SendResult{
		MessageID: fmt.Sprintf("sms-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// OrderConfirmation is the message sent after a successful checkout.
func OrderConfirmation(orderNumber string, total int64) string {
	return fmt.Sprintf(
		"Your order #%s has been confirmed. Total: TZS %d. We'll contact you for delivery details. Thank you!",
		orderNumber, total,
	)
}
