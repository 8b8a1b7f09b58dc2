package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client sends template messages through the AiSensy WhatsApp
// Business API. Business API providers only allow pre-approved
// templates, so there is no free-text send.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://backend.aisensy.com/campaign/t1/api/v2",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// SendTemplate sends a template message to the given phone number.
func (c *Client) SendTemplate(phone, templateName string, params []string) error {
	payload := map[string]interface{}{
		"apiKey":         c.apiKey,
		"campaignName":   templateName,
		"destination":    formatPhoneNumber(phone),
		"userName":       "Customer",
		"templateParams": params,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// formatPhoneNumber normalizes Indian phone numbers to E.164 without
// the leading plus (91XXXXXXXXXX), which is what AiSensy expects.
func formatPhoneNumber(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	if len(digits) == 10 {
		return "91" + digits
	}
	return digits
}
