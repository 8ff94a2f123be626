package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Sink delivers one event somewhere. A nil error means the receiver
// acknowledged the event.
type Sink interface {
	Send(ctx context.Context, event Event) error
}

// WebhookSink POSTs events as JSON to the club's webhook endpoint. Any
// response outside 2xx counts as a failed delivery.
type WebhookSink struct {
	url    string
	client *http.Client
}

func NewWebhookSink(url string, opts ...WebhookOption) *WebhookSink {
	s := &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type WebhookOption func(s *WebhookSink)

func WithHTTPClient(client *http.Client) WebhookOption {
	return func(s *WebhookSink) {
		if client != nil {
			s.client = client
		}
	}
}

func (s *WebhookSink) Send(ctx context.Context, event Event) error {
	ctx, span := otel.Tracer("turnero/notification").Start(ctx, "webhook.send",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("event_type", string(event.Type)),
		attribute.String("session_id", event.SessionID.String()),
	)

	body, err := json.Marshal(payload{
		EventType: event.Type,
		User:      event.User,
		Training:  event.Training,
	})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		return fmt.Errorf("webhook responded %s", resp.Status)
	}
	return nil
}
