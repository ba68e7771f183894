package payment

import (
	"encoding/json"
	"errors"
	"fmt"

	"staybook/internal/domain"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

var (
	// ErrInvalidSignature means the payload did not come from the processor.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrUnhandledEvent is returned for event types reconciliation ignores.
	ErrUnhandledEvent = errors.New("unhandled webhook event")
)

const (
	eventSessionCompleted             stripe.EventType = "checkout.session.completed"
	eventSessionExpired               stripe.EventType = "checkout.session.expired"
	eventSessionAsyncPaymentSucceeded stripe.EventType = "checkout.session.async_payment_succeeded"
	eventSessionAsyncPaymentFailed    stripe.EventType = "checkout.session.async_payment_failed"
)

// WebhookParser verifies Stripe-Signature headers and reduces checkout
// session events to domain.PaymentEvent.
type WebhookParser struct {
	secret string
}

func NewWebhookParser(secret string) *WebhookParser {
	return &WebhookParser{secret: secret}
}

// Parse returns ErrInvalidSignature or ErrUnhandledEvent (both wrapped) for
// payloads that must not reach the reconciler.
func (p *WebhookParser) Parse(payload []byte, signature string) (domain.PaymentEvent, error) {
	if p.secret == "" {
		return domain.PaymentEvent{}, fmt.Errorf("%w: webhook secret is not configured", ErrInvalidSignature)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, p.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return domain.PaymentEvent{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	var kind domain.PaymentEventKind
	switch event.Type {
	case eventSessionCompleted, eventSessionAsyncPaymentSucceeded:
		kind = domain.PaymentCompleted
	case eventSessionExpired:
		kind = domain.PaymentExpired
	case eventSessionAsyncPaymentFailed:
		kind = domain.PaymentFailedAsync
	default:
		return domain.PaymentEvent{ID: event.ID}, fmt.Errorf("%w: %s", ErrUnhandledEvent, event.Type)
	}

	if event.Data == nil {
		return domain.PaymentEvent{}, fmt.Errorf("event %s has no data", event.ID)
	}
	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return domain.PaymentEvent{}, fmt.Errorf("decode checkout session: %w", err)
	}
	if s.ID == "" {
		return domain.PaymentEvent{}, fmt.Errorf("event %s has no session id", event.ID)
	}
	// отложенные методы (SEPA, ACH) завершают сессию без денег, ждём async_payment_succeeded
	if kind == domain.PaymentCompleted && !settled(s.PaymentStatus) {
		return domain.PaymentEvent{ID: event.ID}, fmt.Errorf("%w: %s with payment_status %q", ErrUnhandledEvent, event.Type, s.PaymentStatus)
	}

	return domain.PaymentEvent{
		ID:        event.ID,
		Kind:      kind,
		SessionID: s.ID,
		Metadata:  s.Metadata,
	}, nil
}

func settled(status stripe.CheckoutSessionPaymentStatus) bool {
	return status == stripe.CheckoutSessionPaymentStatusPaid ||
		status == stripe.CheckoutSessionPaymentStatusNoPaymentRequired
}
