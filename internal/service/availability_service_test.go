package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/domain"
	"staybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote(unitID int64, in, out string, guests int) models.AvailabilityQuery {
	return models.AvailabilityQuery{UnitID: unitID, CheckIn: day(in), CheckOut: day(out), Guests: guests}
}

func TestQuote_Scenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("AvailableAndPriced", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		res, err := e.availability.Quote(ctx, quote(1, "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)
		assert.True(t, res.Available)
		require.NotNil(t, res.Price)
		assert.Equal(t, int64(30000), *res.Price)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, "eur", res.Currency)
	})

	t.Run("BlockedDay", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		require.NoError(t, e.db.UpsertOverride(ctx, &models.DateOverride{UnitID: 1, Day: day("2024-06-02"), Blocked: true}))

		res, err := e.availability.Quote(ctx, quote(1, "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, domain.ReasonBlocked, res.Reason)
		assert.Nil(t, res.Price)
	})

	t.Run("MinStayFromCheckInOverride", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		require.NoError(t, e.db.UpsertOverride(ctx, &models.DateOverride{UnitID: 1, Day: day("2024-06-01"), MinStay: ptr(5)}))

		res, err := e.availability.Quote(ctx, quote(1, "2024-06-01", "2024-06-04", 2))
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, domain.ReasonMinStay, res.Reason)
		assert.Equal(t, 5, res.MinStay)

		// a min-stay override on a later night does not apply
		res, err = e.availability.Quote(ctx, quote(1, "2024-05-31", "2024-06-02", 2))
		require.NoError(t, err)
		assert.True(t, res.Available)
	})

	t.Run("UnitDefaultMinStay", func(t *testing.T) {
		u := cabin(1, 4, 10000)
		u.MinStay = 2
		e := newEnv(t, envOptions{}, u)
		res, err := e.availability.Quote(ctx, quote(1, "2024-06-01", "2024-06-02", 1))
		require.NoError(t, err)
		assert.Equal(t, domain.ReasonMinStay, res.Reason)
		assert.Equal(t, 2, res.MinStay)
	})

	t.Run("Capacity", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		q := quote(1, "2024-06-01", "2024-06-04", 3)
		q.Children = 2
		res, err := e.availability.Quote(ctx, q)
		require.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, domain.ReasonCapacity, res.Reason)
	})
}

func TestCheckAvailability_Overlap(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
	insert(t, e.db, 1, "2024-06-10", "2024-06-15", models.StatusConfirmed)
	insert(t, e.db, 1, "2024-06-20", "2024-06-22", models.StatusPending)
	insert(t, e.db, 1, "2024-06-25", "2024-06-27", models.StatusCancelled)

	tests := []struct {
		name      string
		in, out   string
		available bool
	}{
		{"EndsOnCheckIn", "2024-06-08", "2024-06-10", true},
		{"StartsOnCheckOut", "2024-06-15", "2024-06-18", true},
		{"Inside", "2024-06-11", "2024-06-12", false},
		{"Covering", "2024-06-09", "2024-06-16", false},
		{"TailOverlap", "2024-06-14", "2024-06-16", false},
		{"PendingDoesNotBlock", "2024-06-20", "2024-06-22", true},
		{"CancelledDoesNotBlock", "2024-06-25", "2024-06-27", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.availability.CheckAvailability(ctx, 1, day(tt.in), day(tt.out))
			require.NoError(t, err)
			assert.Equal(t, tt.available, res.Available)
			if !tt.available {
				assert.Equal(t, domain.ReasonOverlap, res.Reason)
			}
		})
	}
}

func TestCheckAvailability_ReasonOrder(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
	insert(t, e.db, 1, "2024-06-01", "2024-06-03", models.StatusCompleted)
	require.NoError(t, e.db.UpsertOverride(ctx, &models.DateOverride{UnitID: 1, Day: day("2024-06-02"), Blocked: true, MinStay: ptr(7)}))

	res, err := e.availability.CheckAvailability(ctx, 1, day("2024-06-01"), day("2024-06-03"))
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonOverlap, res.Reason)

	res, err = e.availability.CheckAvailability(ctx, 1, day("2024-06-03"), day("2024-06-05"))
	require.NoError(t, err)
	assert.True(t, res.Available)

	res, err = e.availability.CheckAvailability(ctx, 1, day("2024-05-30"), day("2024-06-01"))
	require.NoError(t, err)
	assert.True(t, res.Available)
}

func TestQuote_Validation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))

	_, err := e.availability.Quote(ctx, quote(1, "2024-06-04", "2024-06-04", 2))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.availability.Quote(ctx, quote(1, "2024-06-01", "2024-06-04", 0))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = e.availability.Quote(ctx, quote(99, "2024-06-01", "2024-06-04", 2))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.availability.CheckAvailability(ctx, 1, day("2024-06-04"), day("2024-06-01"))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "check_out", verr.Field)
}

func TestComputeStayPrice(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
	require.NoError(t, e.db.UpsertSeason(ctx, &models.Season{Name: "summer", Start: day("2024-07-01"), End: day("2024-09-01"), Price: 14000}))

	p, err := e.availability.ComputeStayPrice(ctx, 1, day("2024-06-30"), day("2024-07-02"), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(10000+14000), p)
}

func TestCheckForPending_Holds(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{holds: true}, cabin(1, 4, 10000))
	require.NoError(t, e.state.PlaceHold(ctx, models.Hold{ReservationID: 42, UnitID: 1, CheckIn: day("2024-06-01"), CheckOut: day("2024-06-05")}, time.Minute))

	u, err := e.db.GetUnit(ctx, 1)
	require.NoError(t, err)

	res, err := e.availability.checkForPending(ctx, u, day("2024-06-03"), day("2024-06-06"))
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonOverlap, res.Reason)

	res, err = e.availability.checkForPending(ctx, u, day("2024-06-05"), day("2024-06-06"))
	require.NoError(t, err)
	assert.True(t, res.Available)

	// plain availability ignores holds
	res, err = e.availability.CheckAvailability(ctx, 1, day("2024-06-03"), day("2024-06-06"))
	require.NoError(t, err)
	assert.True(t, res.Available)
}
