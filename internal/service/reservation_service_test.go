package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/domain"
	"staybook/internal/events"
	"staybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInquiry(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
	insert(t, e.db, 1, "2024-06-01", "2024-06-10", models.StatusConfirmed)

	// the calendar is not consulted for inquiries
	r, err := e.reservations.CreateInquiry(ctx, request(1, "2024-06-02", "2024-06-04", 2))
	require.NoError(t, err)
	assert.Equal(t, models.StatusInquiry, r.Status)
	assert.Equal(t, int64(20000), r.TotalPrice)
	assert.Equal(t, models.SourceAPI, r.Source)
	assert.Equal(t, 1, e.rec.count(events.EventInquiryCreated))

	_, err = e.reservations.CreateInquiry(ctx, request(1, "2024-06-02", "2024-06-04", 5))
	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, domain.ReasonCapacity, conflict.Reason)
}

func TestCreatePending(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		r, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)
		assert.NotZero(t, r.ID)
		assert.Equal(t, models.StatusPending, r.Status)
		assert.Equal(t, models.PaymentPending, r.PaymentStatus)
		assert.Equal(t, int64(30000), r.TotalPrice)
		assert.Equal(t, 1, e.rec.count(events.EventPendingCreated))

		stored, err := e.reservations.Get(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, r.TotalPrice, stored.TotalPrice)
	})

	t.Run("ConflictWithConfirmed", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		insert(t, e.db, 1, "2024-06-03", "2024-06-05", models.StatusConfirmed)

		_, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
		var conflict *domain.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, domain.ReasonOverlap, conflict.Reason)
		assert.ErrorIs(t, err, domain.ErrAvailabilityConflict)
	})

	t.Run("MinStayConflictCarriesMinimum", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		require.NoError(t, e.db.UpsertOverride(ctx, &models.DateOverride{UnitID: 1, Day: day("2024-06-01"), MinStay: ptr(5)}))

		_, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
		var conflict *domain.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, domain.ReasonMinStay, conflict.Reason)
		assert.Equal(t, 5, conflict.MinStay)
	})

	t.Run("PendingDoesNotBlockPending", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		_, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)
		_, err = e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)
	})

	t.Run("HoldBlocksSecondPending", func(t *testing.T) {
		e := newEnv(t, envOptions{holds: true}, cabin(1, 4, 10000))
		first, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)

		_, err = e.reservations.CreatePending(ctx, request(1, "2024-06-02", "2024-06-05", 2))
		assert.ErrorIs(t, err, domain.ErrAvailabilityConflict)

		_, err = e.reservations.Cancel(ctx, first.ID)
		require.NoError(t, err)
		_, err = e.reservations.CreatePending(ctx, request(1, "2024-06-02", "2024-06-05", 2))
		assert.NoError(t, err)
	})
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))

	tests := []struct {
		name  string
		edit  func(r *models.ReservationRequest)
		field string
	}{
		{"MissingName", func(r *models.ReservationRequest) { r.GuestName = "" }, "guest_name"},
		{"BadEmail", func(r *models.ReservationRequest) { r.GuestEmail = "not-an-email" }, "guest_email"},
		{"CheckOutBeforeCheckIn", func(r *models.ReservationRequest) { r.CheckOut = r.CheckIn - 1 }, "check_out"},
		{"SameDay", func(r *models.ReservationRequest) { r.CheckOut = r.CheckIn }, "check_out"},
		{"NoGuests", func(r *models.ReservationRequest) { r.Guests = 0 }, "guests"},
		{"NegativeChildren", func(r *models.ReservationRequest) { r.Children = -1 }, "children"},
		{"BadSource", func(r *models.ReservationRequest) { r.Source = "fax" }, "source"},
		{"PastCheckIn", func(r *models.ReservationRequest) {
			r.CheckIn, r.CheckOut = day("2024-04-01"), day("2024-04-03")
		}, "check_in"},
		{"TooFarAhead", func(r *models.ReservationRequest) {
			r.CheckIn = models.DayOf(fixedNow).AddDays(600)
			r.CheckOut = r.CheckIn.AddDays(2)
		}, "check_in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(1, "2024-06-01", "2024-06-04", 2)
			tt.edit(&req)
			_, err := e.reservations.CreatePending(ctx, req)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	_, err := e.reservations.CreatePending(ctx, request(99, "2024-06-01", "2024-06-04", 2))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func groupRequest(in, out string, guests int) models.GroupReservationRequest {
	return models.GroupReservationRequest{
		CheckIn:    day(in),
		CheckOut:   day(out),
		GuestName:  "Team Offsite",
		GuestEmail: "team@example.test",
		Guests:     guests,
	}
}

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("SiblingsShareReference", func(t *testing.T) {
		e := newEnv(t, envOptions{groups: true}, cabin(1, 4, 10000), cabin(2, 3, 8000), cabin(3, 2, 6000))
		set, err := e.reservations.CreateGroup(ctx, groupRequest("2024-06-01", "2024-06-03", 6))
		require.NoError(t, err)
		require.Len(t, set, 2)

		ref := set[0].GroupReference
		assert.NotEmpty(t, ref)
		for _, r := range set {
			assert.Equal(t, ref, r.GroupReference)
			assert.Equal(t, models.StatusPending, r.Status)
		}
		assert.Equal(t, 4, set[0].GuestCount)
		assert.Equal(t, 2, set[1].GuestCount)
		assert.Equal(t, int64(16000), set[1].TotalPrice)

		listed, err := e.reservations.ListGroup(ctx, ref)
		require.NoError(t, err)
		assert.Len(t, listed, 2)
		assert.Equal(t, 2, e.rec.count(events.EventPendingCreated))
	})

	t.Run("NoCoverage", func(t *testing.T) {
		e := newEnv(t, envOptions{groups: true}, cabin(1, 2, 100), cabin(2, 2, 100))
		_, err := e.reservations.CreateGroup(ctx, groupRequest("2024-06-01", "2024-06-03", 6))
		assert.ErrorIs(t, err, domain.ErrAvailabilityConflict)

		units, _ := e.db.ListUnits(ctx)
		for _, u := range units {
			overlap, err := e.availability.HasOverlap(ctx, u.ID, day("2024-06-01"), day("2024-06-03"), nil)
			require.NoError(t, err)
			assert.False(t, overlap)
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 2, 100), cabin(2, 2, 100))
		_, err := e.reservations.CreateGroup(ctx, groupRequest("2024-06-01", "2024-06-03", 3))
		assert.ErrorIs(t, err, domain.ErrGroupBookingDisabled)
	})

	t.Run("UnknownGroup", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 2, 100))
		_, err := e.reservations.ListGroup(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("WholeGroup", func(t *testing.T) {
		e := newEnv(t, envOptions{groups: true}, cabin(1, 4, 10000), cabin(2, 3, 8000))
		set, err := e.reservations.CreateGroup(ctx, groupRequest("2024-06-01", "2024-06-03", 6))
		require.NoError(t, err)

		cancelled, err := e.reservations.Cancel(ctx, set[1].ID)
		require.NoError(t, err)
		require.Len(t, cancelled, 2)
		for _, r := range cancelled {
			assert.Equal(t, models.StatusCancelled, r.Status)
			assert.Greater(t, r.Version, int64(1))
		}
		assert.Equal(t, 2, e.rec.count(events.EventReservationCancelled))
	})

	t.Run("Idempotent", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		r, err := e.reservations.CreateInquiry(ctx, request(1, "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)

		_, err = e.reservations.Cancel(ctx, r.ID)
		require.NoError(t, err)
		again, err := e.reservations.Cancel(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, again[0].Status)
		assert.Equal(t, 1, e.rec.count(events.EventReservationCancelled))
	})

	t.Run("ConfirmedIsInvalid", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		r := insert(t, e.db, 1, "2024-06-01", "2024-06-04", models.StatusConfirmed)
		_, err := e.reservations.Cancel(ctx, r.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("NotFound", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		_, err := e.reservations.Cancel(ctx, 12345)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestComplete(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))

	confirmed := insert(t, e.db, 1, "2024-06-01", "2024-06-04", models.StatusConfirmed)
	r, err := e.reservations.Complete(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, r.Status)
	assert.Equal(t, 1, e.rec.count(events.EventReservationCompleted))

	r, err = e.reservations.Complete(ctx, confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, r.Status)

	pending := insert(t, e.db, 1, "2024-07-01", "2024-07-04", models.StatusPending)
	_, err = e.reservations.Complete(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestValidateStayDates(t *testing.T) {
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
	today := models.DayOf(fixedNow)

	assert.NoError(t, e.reservations.ValidateStayDates(today, today+1))
	assert.NoError(t, e.reservations.ValidateStayDates(today.AddDays(540), today.AddDays(541)))
	assert.ErrorIs(t, e.reservations.ValidateStayDates(today-1, today+1), domain.ErrValidation)
	assert.ErrorIs(t, e.reservations.ValidateStayDates(today.AddDays(541), today.AddDays(542)), domain.ErrValidation)

	e.reservations.now = func() time.Time { return fixedNow.Add(24 * time.Hour) }
	assert.ErrorIs(t, e.reservations.ValidateStayDates(today, today+1), domain.ErrValidation)
}
