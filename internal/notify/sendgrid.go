package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sendgridBaseURL = "https://api.sendgrid.com"

// SendgridChannel sends email through the SendGrid v3 Mail Send API.
type SendgridChannel struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

// NewSendgridChannel returns a SendgridChannel sending from the given address.
func NewSendgridChannel(apiKey, from string) *SendgridChannel {
	return &SendgridChannel{
		apiKey:  apiKey,
		from:    from,
		baseURL: sendgridBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SendgridChannel) Send(ctx context.Context, msg Message) error {
	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": msg.To}}},
		},
		"from":    map[string]string{"email": s.from},
		"subject": msg.Subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": msg.Body},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	return nil
}
