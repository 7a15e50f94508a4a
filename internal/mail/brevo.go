package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const brevoTimeout = 10 * time.Second

type brevoParty struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type brevoPayload struct {
	Sender      brevoParty   `json:"sender"`
	To          []brevoParty `json:"to"`
	Subject     string       `json:"subject"`
	TextContent string       `json:"textContent,omitempty"`
	HTMLContent string       `json:"htmlContent,omitempty"`
}

// BrevoSender delivers through the Brevo transactional HTTP API.
type BrevoSender struct {
	client    *http.Client
	endpoint  string
	apiKey    string
	fromEmail string
	fromName  string
}

func NewBrevoSender(endpoint, apiKey, fromEmail, fromName string) *BrevoSender {
	return &BrevoSender{
		client:    &http.Client{Timeout: brevoTimeout},
		endpoint:  endpoint,
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *BrevoSender) Send(ctx context.Context, msg Message) error {
	payload := brevoPayload{
		Sender:      brevoParty{Email: s.fromEmail, Name: s.fromName},
		To:          []brevoParty{{Email: msg.To}},
		Subject:     msg.Subject,
		TextContent: msg.TextBody,
		HTMLContent: msg.HTMLBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("brevo api responded %d: %s", resp.StatusCode, detail)
	}

	return nil
}
