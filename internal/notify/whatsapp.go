// Package notify sends best-effort outbound notifications. Delivery failures
// are reported to the caller as ordinary errors and must never fail the
// operation that triggered them.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when WhatsApp credentials are missing.
var ErrNotConfigured = errors.New("whatsapp credentials not configured")

const (
	graphAPIBase    = "https://graph.facebook.com/v19.0"
	dispatchTimeout = 10 * time.Second
	templateName    = "task_assigned"
)

// Notifier dispatches a task-assignment message to an employee.
type Notifier interface {
	TaskAssigned(ctx context.Context, toNumber, employeeName, taskTitle, dueDate string) error
}

// WhatsAppNotifier sends WhatsApp template messages through the Graph API.
type WhatsAppNotifier struct {
	client  *http.Client
	baseURL string
	token   string
	phoneID string
}

// NewWhatsAppNotifier creates a notifier. Empty credentials are allowed; every
// send then returns ErrNotConfigured.
func NewWhatsAppNotifier(token, phoneID string) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		client:  &http.Client{Timeout: dispatchTimeout},
		baseURL: graphAPIBase,
		token:   token,
		phoneID: phoneID,
	}
}

type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type templateMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Template         struct {
		Name     string `json:"name"`
		Language struct {
			Code string `json:"code"`
		} `json:"language"`
		Components []templateComponent `json:"components"`
	} `json:"template"`
}

// TaskAssigned sends the task_assigned template message.
func (n *WhatsAppNotifier) TaskAssigned(ctx context.Context, toNumber, employeeName, taskTitle, dueDate string) error {
	if n.token == "" || n.phoneID == "" {
		return ErrNotConfigured
	}

	msg := templateMessage{
		MessagingProduct: "whatsapp",
		To:               toNumber,
		Type:             "template",
	}
	msg.Template.Name = templateName
	msg.Template.Language.Code = "en_US"
	msg.Template.Components = []templateComponent{{
		Type: "body",
		Parameters: []templateParameter{
			{Type: "text", Text: employeeName},
			{Type: "text", Text: taskTitle},
			{Type: "text", Text: dueDate},
		},
	}}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal template message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", n.baseURL, n.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp api responded %d", res.StatusCode)
	}
	return nil
}
