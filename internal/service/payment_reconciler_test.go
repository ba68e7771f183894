package service

import (
	"context"
	"strings"
	"testing"

	"staybook/internal/domain"
	"staybook/internal/events"
	"staybook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completed(id, sessionID string) domain.PaymentEvent {
	return domain.PaymentEvent{ID: id, Kind: domain.PaymentCompleted, SessionID: sessionID}
}

func TestReconcile_Confirm(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
	r, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
	require.NoError(t, err)
	attachSession(t, e.db, "cs_1", r)

	outcome, err := e.reconciler.HandleEvent(ctx, completed("evt_1", "cs_1"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeConfirmed, outcome)

	stored, err := e.db.GetReservation(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
	assert.Equal(t, 1, e.rec.count(events.EventReservationConfirmed))
}

func TestReconcile_ConcurrentPendingsOnlyOneConfirms(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))

	first, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
	require.NoError(t, err)
	second, err := e.reservations.CreatePending(ctx, request(1, "2024-06-02", "2024-06-05", 2))
	require.NoError(t, err)
	attachSession(t, e.db, "cs_first", first)
	attachSession(t, e.db, "cs_second", second)

	outcome, err := e.reconciler.HandleEvent(ctx, completed("evt_a", "cs_first"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeConfirmed, outcome)

	outcome, err = e.reconciler.HandleEvent(ctx, completed("evt_b", "cs_second"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompensationRequired, outcome)

	loser, err := e.db.GetReservation(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, loser.Status)
	assert.Equal(t, models.PaymentFailed, loser.PaymentStatus)
	assert.True(t, loser.RefundRequired)
	assert.True(t, strings.Contains(loser.Notes, "[compensation]"))

	refunds, err := e.reservations.ListRefundRequired(ctx)
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	assert.Equal(t, second.ID, refunds[0].ID)
	assert.Equal(t, 1, e.rec.count(events.EventCompensationRequired))

	winner, err := e.db.GetReservation(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, winner.Status)
}

func TestReconcile_GroupCompensatesEveryMember(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{groups: true}, cabin(1, 4, 10000), cabin(2, 3, 8000))
	set, err := e.reservations.CreateGroup(ctx, groupRequest("2024-06-01", "2024-06-03", 6))
	require.NoError(t, err)
	attachSession(t, e.db, "cs_group", set...)

	// someone else's stay on the second unit gets confirmed first
	rival := insert(t, e.db, 2, "2024-06-02", "2024-06-04", models.StatusPending)
	attachSession(t, e.db, "cs_rival", rival)
	_, err = e.reconciler.HandleEvent(ctx, completed("evt_rival", "cs_rival"))
	require.NoError(t, err)

	outcome, err := e.reconciler.HandleEvent(ctx, completed("evt_group", "cs_group"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompensationRequired, outcome)

	for _, r := range set {
		stored, err := e.db.GetReservation(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, stored.Status, "unit %d", r.UnitID)
		assert.Equal(t, models.PaymentFailed, stored.PaymentStatus)
		assert.True(t, stored.RefundRequired)
	}
}

func TestReconcile_GroupConfirmsTogether(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{groups: true}, cabin(1, 4, 10000), cabin(2, 3, 8000))
	set, err := e.reservations.CreateGroup(ctx, groupRequest("2024-06-01", "2024-06-03", 6))
	require.NoError(t, err)
	attachSession(t, e.db, "cs_group", set...)

	outcome, err := e.reconciler.HandleEvent(ctx, domain.PaymentEvent{
		ID:        "evt_g",
		Kind:      domain.PaymentCompleted,
		SessionID: "cs_group",
		Metadata:  checkoutMetadata(set),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeConfirmed, outcome)

	listed, err := e.reservations.ListGroup(ctx, set[0].GroupReference)
	require.NoError(t, err)
	for _, r := range listed {
		assert.Equal(t, models.StatusConfirmed, r.Status)
		assert.Equal(t, models.PaymentPaid, r.PaymentStatus)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
	r, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
	require.NoError(t, err)
	attachSession(t, e.db, "cs_1", r)

	outcome, err := e.reconciler.HandleEvent(ctx, completed("evt_1", "cs_1"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeConfirmed, outcome)
	after, _ := e.db.GetReservation(ctx, r.ID)

	// exact redelivery hits the marker
	outcome, err = e.reconciler.HandleEvent(ctx, completed("evt_1", "cs_1"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeDuplicate, outcome)

	// a different event for the same session finds nothing pending
	outcome, err = e.reconciler.HandleEvent(ctx, completed("evt_1_retry", "cs_1"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoop, outcome)

	final, _ := e.db.GetReservation(ctx, r.ID)
	assert.Equal(t, after.Version, final.Version)
	assert.Equal(t, models.StatusConfirmed, final.Status)
	assert.Equal(t, 1, e.rec.count(events.EventReservationConfirmed))
}

func TestReconcile_Expired(t *testing.T) {
	ctx := context.Background()

	for _, kind := range []domain.PaymentEventKind{domain.PaymentExpired, domain.PaymentFailedAsync} {
		t.Run(string(kind), func(t *testing.T) {
			e := newEnv(t, envOptions{holds: true}, cabin(1, 4, 10000))
			r, err := e.reservations.CreatePending(ctx, request(1, "2024-06-01", "2024-06-04", 2))
			require.NoError(t, err)
			attachSession(t, e.db, "cs_1", r)

			outcome, err := e.reconciler.HandleEvent(ctx, domain.PaymentEvent{ID: "evt_x", Kind: kind, SessionID: "cs_1"})
			require.NoError(t, err)
			assert.Equal(t, domain.OutcomeExpired, outcome)

			stored, err := e.db.GetReservation(ctx, r.ID)
			require.NoError(t, err)
			assert.Equal(t, models.StatusPending, stored.Status)
			assert.Equal(t, models.PaymentFailed, stored.PaymentStatus)
			assert.Equal(t, 1, e.rec.count(events.EventPaymentExpired))

			holds, _ := e.state.ActiveHolds(ctx, 1)
			assert.Empty(t, holds)
		})
	}

	t.Run("ConfirmedUntouched", func(t *testing.T) {
		e := newEnv(t, envOptions{}, cabin(1, 4, 10000))
		r := insert(t, e.db, 1, "2024-06-01", "2024-06-04", models.StatusPending)
		attachSession(t, e.db, "cs_1", r)
		_, err := e.reconciler.HandleEvent(ctx, completed("evt_1", "cs_1"))
		require.NoError(t, err)

		outcome, err := e.reconciler.HandleEvent(ctx, domain.PaymentEvent{ID: "evt_2", Kind: domain.PaymentExpired, SessionID: "cs_1"})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeNoop, outcome)

		stored, _ := e.db.GetReservation(ctx, r.ID)
		assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
	})
}

func TestReconcile_UnknownSessionAndKind(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, envOptions{}, cabin(1, 4, 10000))

	outcome, err := e.reconciler.HandleEvent(ctx, completed("evt_1", "cs_missing"))
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNoop, outcome)

	outcome, err = e.reconciler.HandleEvent(ctx, domain.PaymentEvent{ID: "evt_2", Kind: "refund_created", SessionID: "cs_1"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeIgnored, outcome)
}

func TestMetadataIDs(t *testing.T) {
	ids, err := metadataIDs(map[string]string{domain.MetaIsGroup: "true", domain.MetaGroupReservationIDs: "3, 4,5"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, ids)

	ids, err = metadataIDs(map[string]string{domain.MetaIsGroup: "false", domain.MetaReservationID: "9"})
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids)

	_, err = metadataIDs(map[string]string{domain.MetaReservationID: "x"})
	assert.Error(t, err)

	ids, err = metadataIDs(nil)
	require.NoError(t, err)
	assert.Nil(t, ids)
}
