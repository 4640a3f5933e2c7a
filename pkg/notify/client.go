package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client posts shop alerts to an operator-configured webhook. An empty
// webhook URL disables it.
type Client struct {
	WebhookURL string
	Token      string
	HTTPClient *http.Client
}

type LowStockAlert struct {
	Item           string `json:"item"`
	AvailableStock int    `json:"available_stock"`
	Threshold      int    `json:"threshold"`
}

type alertPayload struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Alert   *LowStockAlert `json:"alert"`
}

func NewClient(webhookURL, token string) *Client {
	return &Client{
		WebhookURL: webhookURL,
		Token:      token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Enabled() bool {
	return c.WebhookURL != ""
}

// SendLowStockAlert notifies the operator that an item dropped to or below
// the configured threshold.
func (c *Client) SendLowStockAlert(alert *LowStockAlert) error {
	payload := alertPayload{
		Type:    "low_stock",
		Message: fmt.Sprintf("低庫存警告：「%s」剩餘庫存 %d", alert.Item, alert.AvailableStock),
		Alert:   alert,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	req, err := http.NewRequest("POST", c.WebhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
