package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the Brevo transactional email API.
const DefaultEndpoint = "https://api.brevo.com/v3/smtp/email"

const senderName = "Waste Bin Monitor"

// BrevoMailer sends mail through the Brevo HTTP API. The client timeout is
// the hard ceiling on how long one send can stall the monitor loop.
type BrevoMailer struct {
	Endpoint  string
	APIKey    string
	Sender    string
	Recipient string
	Client    *http.Client
}

// NewBrevoMailer creates a mailer for the given credentials and addresses.
func NewBrevoMailer(apiKey, sender, recipient string) *BrevoMailer {
	return &BrevoMailer{
		Endpoint:  DefaultEndpoint,
		APIKey:    apiKey,
		Sender:    sender,
		Recipient: recipient,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// Send posts the message. The API reports acceptance with 201 Created;
// anything else is a failed attempt.
func (m *BrevoMailer) Send(msg Message) error {
	payload := brevoRequest{
		Sender:      brevoAddress{Email: m.Sender, Name: senderName},
		To:          []brevoAddress{{Email: m.Recipient, Name: "Recipient"}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", m.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("send alert: status %s: %s", resp.Status, bytes.TrimSpace(detail))
	}
	return nil
}
