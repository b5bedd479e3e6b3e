package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

// TransitionEvent is the payload pushed to the CRM webhook after a
// successful status change.
type TransitionEvent struct {
	Entity     string `json:"entity"`
	ID         string `json:"id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	OperatorID string `json:"operator_id,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Notifier delivers transition events to downstream systems.
type Notifier interface {
	NotifyTransition(ctx context.Context, event TransitionEvent) error
}

// WebhookNotifier posts events to an HTTP endpoint, authenticating with a
// Google ID token when the environment provides credentials.
type WebhookNotifier struct {
	client  *http.Client
	baseURL string
}

// NewWebhookNotifier builds a notifier, auto-configuring an ID token client
// when possible and falling back to a plain client otherwise.
func NewWebhookNotifier(client *http.Client, webhookURL string) *WebhookNotifier {
	webhookURL = strings.TrimRight(strings.TrimSpace(webhookURL), "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), webhookURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &WebhookNotifier{client: client, baseURL: webhookURL}
}

// NotifyTransition posts the event as JSON.
func (n *WebhookNotifier) NotifyTransition(ctx context.Context, event TransitionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal transition event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

var _ Notifier = (*WebhookNotifier)(nil)

// noopNotifier is used when no webhook is configured.
type noopNotifier struct{}

func (noopNotifier) NotifyTransition(context.Context, TransitionEvent) error { return nil }

// NotifierFromConfig returns a webhook notifier when a URL is configured and
// a noop otherwise. Delivery failures are logged, never surfaced to the
// operator; the status change already committed.
func NotifierFromConfig(webhookURL string, logger *zap.Logger) Notifier {
	if strings.TrimSpace(webhookURL) == "" {
		return noopNotifier{}
	}
	return &loggingNotifier{next: NewWebhookNotifier(nil, webhookURL), logger: logger}
}

type loggingNotifier struct {
	next   Notifier
	logger *zap.Logger
}

func (l *loggingNotifier) NotifyTransition(ctx context.Context, event TransitionEvent) error {
	if err := l.next.NotifyTransition(ctx, event); err != nil {
		l.logger.Warn("transition webhook delivery failed",
			zap.String("entity", event.Entity),
			zap.String("id", event.ID),
			zap.String("to_status", event.ToStatus),
			zap.Error(err),
		)
		return err
	}
	return nil
}
