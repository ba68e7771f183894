package events

import (
	"encoding/json"
	"sync"
	"time"

	"staybook/internal/models"
)

const (
	EventInquiryCreated         = "reservation_inquiry_created"
	EventPendingCreated         = "reservation_pending_created"
	EventReservationConfirmed   = "reservation_confirmed"
	EventReservationCancelled   = "reservation_cancelled"
	EventReservationCompleted   = "reservation_completed"
	EventCompensationRequired   = "reservation_compensation_required"
	EventPaymentExpired         = "reservation_payment_expired"
	EventPaymentSessionAttached = "reservation_payment_session_attached"
)

// ReservationEventPayload describes the reservation snapshot for event consumers
// (notifications, invoicing, calendar sync).
type ReservationEventPayload struct {
	ReservationID    int64      `json:"reservation_id"`
	GroupReference   string     `json:"group_reference,omitempty"`
	UnitID           int64      `json:"unit_id"`
	GuestName        string     `json:"guest_name"`
	GuestEmail       string     `json:"guest_email"`
	CheckIn          models.Day `json:"check_in"`
	CheckOut         models.Day `json:"check_out"`
	GuestCount       int        `json:"guest_count"`
	TotalPrice       int64      `json:"total_price"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentSessionID string     `json:"payment_session_id,omitempty"`
	RefundRequired   bool       `json:"refund_required,omitempty"`
	Reason           string     `json:"reason,omitempty"`
}

// PayloadFor snapshots r. reason is optional context such as a conflict cause.
func PayloadFor(r *models.Reservation, reason string) ReservationEventPayload {
	return ReservationEventPayload{
		ReservationID:    r.ID,
		GroupReference:   r.GroupReference,
		UnitID:           r.UnitID,
		GuestName:        r.GuestName,
		GuestEmail:       r.GuestEmail,
		CheckIn:          r.CheckIn,
		CheckOut:         r.CheckOut,
		GuestCount:       r.GuestCount,
		TotalPrice:       r.TotalPrice,
		Currency:         r.Currency,
		Status:           r.Status,
		PaymentStatus:    r.PaymentStatus,
		PaymentSessionID: r.PaymentSessionID,
		RefundRequired:   r.RefundRequired,
		Reason:           reason,
	}
}

// Event represents a lightweight domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	onError     func(event *Event, err error)
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// OnError installs a callback for handler failures. Handlers never affect
// the publisher.
func (b *EventBus) OnError(fn func(event *Event, err error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onError = fn
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	onError := b.onError
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		if err := handler(event); err != nil && onError != nil {
			onError(event, err)
		}
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	event, err := NewJSONEvent(eventType, payload)
	if err != nil {
		return err
	}

	b.Publish(&event)
	return nil
}

// NewJSONEvent builds an Event with JSON payload for manual publishing.
func NewJSONEvent(eventType string, payload interface{}) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}

	return Event{Type: eventType, Payload: raw, CreatedAt: time.Now()}, nil
}
