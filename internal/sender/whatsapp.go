package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// chatRequest is the JSON body posted to the WhatsApp gateway.
type chatRequest struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

// WhatsAppGateway delivers chat messages by POSTing to an HTTP gateway
// that fronts the actual WhatsApp session. The base URL is injected
// from config so tests can point to a local mock.
type WhatsAppGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewWhatsAppGateway(baseURL string, timeout time.Duration) *WhatsAppGateway {
	return &WhatsAppGateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SendChat posts the message to the gateway and expects a 2xx response.
func (g *WhatsAppGateway) SendChat(ctx context.Context, number, body string) error {
	payload, err := json.Marshal(chatRequest{Number: number, Message: body})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected gateway status: %d", resp.StatusCode)
	}
	return nil
}

// compile-time check that WhatsAppGateway implements ChatSender
var _ ChatSender = (*WhatsAppGateway)(nil)
