package api

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"staybook/internal/config"
	"staybook/internal/database"
	"staybook/internal/events"
	"staybook/internal/models"
	"staybook/internal/payment"
	"staybook/internal/repository"
	"staybook/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_api_test"

var testLogger = zerolog.New(io.Discard)

type testStack struct {
	db           *database.DB
	availability *service.AvailabilityService
	allocator    *service.GroupAllocator
	server       *HTTPServer
	ts           *httptest.Server
}

type stackOptions struct {
	groups bool
	cfg    *config.APIConfig
}

// newTestStack wires the real services over a temp SQLite file and the
// local payment processor.
func newTestStack(t *testing.T, opts stackOptions, units ...models.Unit) *testStack {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "api.db"), &testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.SeedCatalog(context.Background(), &models.Catalog{Units: units}))

	bus := events.NewEventBus()
	state := repository.NewMemoryPaymentStateRepository()
	availability := service.NewAvailabilityService(db, nil, &testLogger)
	allocator := service.NewGroupAllocator(availability, opts.groups, &testLogger)
	reservations := service.NewReservationService(db, availability, allocator, nil, bus,
		service.ReservationConfig{MaxAdvanceDays: 540}, &testLogger)
	gateway := service.NewPaymentGateway(db, payment.NewLocalProcessor(&testLogger), nil, bus, "eur", time.Hour, &testLogger)
	reconciler := service.NewPaymentReconciler(db, availability, state, time.Hour, bus, &testLogger)

	cfg := opts.cfg
	if cfg == nil {
		cfg = &config.APIConfig{Enabled: true, HTTP: config.APIHTTPConfig{Enabled: true}}
	}
	server := NewHTTPServer(cfg, Services{
		Availability: availability,
		Groups:       allocator,
		Reservations: reservations,
		Payments:     gateway,
		Reconciler:   reconciler,
		Webhooks:     payment.NewWebhookParser(testWebhookSecret),
		Store:        db,
		SuccessURL:   "https://stay.example.test/success",
		CancelURL:    "https://stay.example.test/cancel",
	}, &testLogger)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return &testStack{db: db, availability: availability, allocator: allocator, server: server, ts: ts}
}

func cabin(id int64, capacity int, price int64) models.Unit {
	return models.Unit{
		ID:        id,
		Name:      fmt.Sprintf("Cabin %d", id),
		Capacity:  capacity,
		BasePrice: price,
		Currency:  "eur",
		MinStay:   1,
		SortOrder: id,
	}
}

// stay returns dates offset from today so requests pass the booking horizon.
func stay(fromToday, nights int) (models.Day, models.Day) {
	in := models.DayOf(time.Now()).AddDays(fromToday)
	return in, in.AddDays(nights)
}

func (s *testStack) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(s.ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testStack) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(s.ts.URL+path, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testStack) webhook(t *testing.T, payload []byte, signature string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, s.ts.URL+"/api/v1/payments/webhook", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Stripe-Signature", signature)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// complete delivers a signed checkout.session.completed event for a paid session.
func (s *testStack) complete(t *testing.T, eventID, sessionID string) string {
	t.Helper()
	return s.deliver(t, eventID, "checkout.session.completed", sessionID, "paid")
}

// deliver sends a signed checkout session event and returns the reported outcome.
func (s *testStack) deliver(t *testing.T, eventID, eventType, sessionID, paymentStatus string) string {
	t.Helper()
	payload := checkoutEvent(eventID, eventType, sessionID, paymentStatus)
	resp := s.webhook(t, payload, sign(t, payload, testWebhookSecret, time.Now()))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decode(t, resp, &body)
	return body["outcome"]
}

func (s *testStack) book(t *testing.T, body map[string]any) createReservationResponse {
	t.Helper()
	resp := s.postJSON(t, "/api/v1/reservations", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out createReservationResponse
	decode(t, resp, &out)
	return out
}

func bookingBody(unitID int64, in, out models.Day, guests int) map[string]any {
	return map[string]any{
		"mode":        "book",
		"unit_id":     unitID,
		"check_in":    in,
		"check_out":   out,
		"guest_name":  "Anna Petrova",
		"guest_email": "anna@example.test",
		"guests":      guests,
	}
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func sign(t *testing.T, payload []byte, secret string, ts time.Time) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	_, err := fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	require.NoError(t, err)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func checkoutEvent(id, eventType, sessionID, paymentStatus string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"object": "event",
		"type": %q,
		"data": {"object": {"id": %q, "object": "checkout.session", "payment_status": %q, "metadata": {}}}
	}`, id, eventType, sessionID, paymentStatus))
}
