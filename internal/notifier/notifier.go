// Package notifier delivers analysis alerts to Telegram.
package notifier

import "context"

// Notifier sends alert messages.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// NoopNotifier is used when Telegram is not configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (NoopNotifier) SendWithRetry(_ context.Context, _ string, _ int) error { return nil }
