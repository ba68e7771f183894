package service

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"staybook/internal/database"
	"staybook/internal/domain"
	"staybook/internal/events"
	"staybook/internal/models"
	"staybook/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testLogger = zerolog.New(io.Discard)

// fixedNow is well before every stay used in tests.
var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func day(s string) models.Day {
	return models.MustParseDay(s)
}

func setupStore(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "staybook.db"), &testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUnits(t *testing.T, db *database.DB, units ...models.Unit) {
	t.Helper()
	require.NoError(t, db.SeedCatalog(context.Background(), &models.Catalog{Units: units}))
}

func cabin(id int64, capacity int, price int64) models.Unit {
	return models.Unit{
		ID:        id,
		Name:      "Cabin " + string(rune('A'+id-1)),
		Capacity:  capacity,
		BasePrice: price,
		Currency:  "eur",
		MinStay:   1,
		SortOrder: id,
	}
}

// recorder collects published events by type.
type recorder struct {
	mu     sync.Mutex
	events map[string][]events.ReservationEventPayload
}

func newRecorder(bus *events.EventBus, types ...string) *recorder {
	r := &recorder{events: make(map[string][]events.ReservationEventPayload)}
	for _, typ := range types {
		bus.Subscribe(typ, func(e *events.Event) error {
			var p events.ReservationEventPayload
			if err := json.Unmarshal(e.Payload, &p); err != nil {
				return err
			}
			r.mu.Lock()
			defer r.mu.Unlock()
			r.events[e.Type] = append(r.events[e.Type], p)
			return nil
		})
	}
	return r
}

func (r *recorder) count(typ string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events[typ])
}

var allEventTypes = []string{
	events.EventInquiryCreated,
	events.EventPendingCreated,
	events.EventReservationConfirmed,
	events.EventReservationCancelled,
	events.EventReservationCompleted,
	events.EventCompensationRequired,
	events.EventPaymentExpired,
	events.EventPaymentSessionAttached,
}

// env wires every service over one store, the way cmd/api does.
type env struct {
	db           *database.DB
	bus          *events.EventBus
	rec          *recorder
	state        *repository.MemoryPaymentStateRepository
	availability *AvailabilityService
	allocator    *GroupAllocator
	reservations *ReservationService
	processor    *mockProcessor
	gateway      *PaymentGateway
	reconciler   *PaymentReconciler
}

type envOptions struct {
	groups bool
	holds  bool
}

func newEnv(t *testing.T, opts envOptions, units ...models.Unit) *env {
	t.Helper()
	e := &env{
		db:        setupStore(t),
		bus:       events.NewEventBus(),
		state:     repository.NewMemoryPaymentStateRepository(),
		processor: new(mockProcessor),
	}
	seedUnits(t, e.db, units...)
	e.rec = newRecorder(e.bus, allEventTypes...)

	var holds domain.PaymentStateRepository
	holdTTL := time.Duration(0)
	if opts.holds {
		holds = e.state
		holdTTL = 30 * time.Minute
	}

	e.availability = NewAvailabilityService(e.db, holds, &testLogger)
	e.allocator = NewGroupAllocator(e.availability, opts.groups, &testLogger)
	e.reservations = NewReservationService(e.db, e.availability, e.allocator, holds, e.bus,
		ReservationConfig{MaxAdvanceDays: 540, HoldTTL: holdTTL}, &testLogger)
	e.reservations.now = func() time.Time { return fixedNow }
	e.gateway = NewPaymentGateway(e.db, e.processor, holds, e.bus, "eur", time.Hour, &testLogger)
	e.gateway.now = func() time.Time { return fixedNow }
	e.reconciler = NewPaymentReconciler(e.db, e.availability, e.state, time.Hour, e.bus, &testLogger)
	return e
}

func request(unitID int64, in, out string, guests int) models.ReservationRequest {
	return models.ReservationRequest{
		UnitID:     unitID,
		CheckIn:    day(in),
		CheckOut:   day(out),
		GuestName:  "Anna Petrova",
		GuestEmail: "anna@example.test",
		Guests:     guests,
	}
}

// insert writes a reservation directly, bypassing the lifecycle rules.
func insert(t *testing.T, db *database.DB, unitID int64, in, out, status string) *models.Reservation {
	t.Helper()
	r := &models.Reservation{
		UnitID:        unitID,
		GuestName:     "Existing Guest",
		GuestEmail:    "existing@example.test",
		CheckIn:       day(in),
		CheckOut:      day(out),
		GuestCount:    1,
		TotalPrice:    100,
		Currency:      "eur",
		Status:        status,
		PaymentStatus: models.PaymentPending,
	}
	require.NoError(t, db.CreateReservation(context.Background(), r))
	return r
}

func attachSession(t *testing.T, db *database.DB, sessionID string, rs ...*models.Reservation) {
	t.Helper()
	n, err := db.SetPaymentSession(context.Background(), models.IDs(rs), sessionID)
	require.NoError(t, err)
	require.Equal(t, int64(len(rs)), n)
	for _, r := range rs {
		r.PaymentSessionID = sessionID
	}
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}
