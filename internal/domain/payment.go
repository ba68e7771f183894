package domain

import (
	"context"
	"time"
)

type PaymentEventKind string

const (
	PaymentCompleted   PaymentEventKind = "payment_completed"
	PaymentExpired     PaymentEventKind = "payment_expired"
	PaymentFailedAsync PaymentEventKind = "payment_failed_async"
)

// Metadata keys echoed back by the processor.
const (
	MetaReservationID       = "reservation_id"
	MetaGroupReservationIDs = "group_reservation_ids"
	MetaIsGroup             = "is_group"
	MetaGroupReference      = "group_reference"
)

// PaymentEvent is a processor notification reduced to what reconciliation needs.
type PaymentEvent struct {
	ID        string
	Kind      PaymentEventKind
	SessionID string
	Metadata  map[string]string
}

type ReconcileOutcome string

const (
	OutcomeConfirmed            ReconcileOutcome = "confirmed"
	OutcomeCompensationRequired ReconcileOutcome = "compensation_required"
	OutcomeExpired              ReconcileOutcome = "expired"
	OutcomeNoop                 ReconcileOutcome = "noop"
	OutcomeDuplicate            ReconcileOutcome = "duplicate"
	OutcomeIgnored              ReconcileOutcome = "ignored"
)

type CheckoutLineItem struct {
	Name     string
	Amount   int64
	Quantity int64
}

type CheckoutRequest struct {
	Currency      string
	LineItems     []CheckoutLineItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
	ExpiresAt     time.Time
}

type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentProcessor opens hosted checkout sessions.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

// CheckoutResult is what the guest is sent to.
type CheckoutResult struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}
