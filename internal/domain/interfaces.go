package domain

import (
	"context"
	"time"

	"staybook/internal/models"
)

type UnitRepository interface {
	GetUnit(ctx context.Context, id int64) (*models.Unit, error)
	ListUnits(ctx context.Context) ([]*models.Unit, error)
	GetOverrides(ctx context.Context, unitID int64, from, to models.Day) ([]*models.DateOverride, error)
	GetSeasons(ctx context.Context, unitID int64, from, to models.Day) ([]*models.Season, error)
}

// StatusTransition is a conditional bulk update. Rows whose status is not in
// From are left alone.
type StatusTransition struct {
	From           []string
	To             string
	PaymentStatus  string
	AppendNote     string
	RefundRequired bool
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, r *models.Reservation) error
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	GetReservationsByGroup(ctx context.Context, groupRef string) ([]*models.Reservation, error)
	GetReservationsBySession(ctx context.Context, sessionID, status string) ([]*models.Reservation, error)
	FindOverlapping(ctx context.Context, unitID int64, checkIn, checkOut models.Day, excludeIDs []int64) ([]*models.Reservation, error)
	SetPaymentSession(ctx context.Context, ids []int64, sessionID string) (int64, error)
	TransitionStatus(ctx context.Context, ids []int64, t StatusTransition) (int64, error)
	SetPaymentStatus(ctx context.Context, ids []int64, whereStatus, paymentStatus string) (int64, error)
	DeletePending(ctx context.Context, ids []int64) (int64, error)
	ListRefundRequired(ctx context.Context) ([]*models.Reservation, error)
}

// Store is the persistent store. RunInTx hands fn a Store bound to one
// transaction; calling RunInTx on that Store reuses it.
type Store interface {
	UnitRepository
	ReservationRepository
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Ping(ctx context.Context) error
}

// PaymentStateRepository keeps short-lived payment state outside the store.
type PaymentStateRepository interface {
	PlaceHold(ctx context.Context, hold models.Hold, ttl time.Duration) error
	ReleaseHolds(ctx context.Context, holds []models.Hold) error
	ActiveHolds(ctx context.Context, unitID int64) ([]models.Hold, error)
	IsEventProcessed(ctx context.Context, eventID string) (bool, error)
	MarkEventProcessed(ctx context.Context, eventID string, ttl time.Duration) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type AvailabilityService interface {
	ListUnits(ctx context.Context) ([]*models.Unit, error)
	Quote(ctx context.Context, q models.AvailabilityQuery) (*models.AvailabilityResult, error)
}

type GroupAllocator interface {
	Allocate(ctx context.Context, checkIn, checkOut models.Day, guests int) (*models.GroupOption, error)
}

type ReservationService interface {
	CreateInquiry(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error)
	CreatePending(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error)
	CreateGroup(ctx context.Context, req models.GroupReservationRequest) ([]*models.Reservation, error)
	Cancel(ctx context.Context, id int64) ([]*models.Reservation, error)
	Complete(ctx context.Context, id int64) (*models.Reservation, error)
	Get(ctx context.Context, id int64) (*models.Reservation, error)
	ListGroup(ctx context.Context, groupRef string) ([]*models.Reservation, error)
	ListRefundRequired(ctx context.Context) ([]*models.Reservation, error)
}

type PaymentGateway interface {
	StartCheckout(ctx context.Context, reservations []*models.Reservation, successURL, cancelURL string) (*CheckoutResult, error)
}

type PaymentReconciler interface {
	HandleEvent(ctx context.Context, event PaymentEvent) (ReconcileOutcome, error)
}
