package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"staybook/internal/domain"
	"staybook/internal/events"
	"staybook/internal/logging"
	"staybook/internal/metrics"
	"staybook/internal/models"

	"github.com/rs/zerolog"
)

// PaymentReconciler applies processor events to reservations. Every write is
// conditional on the current status, so redelivered events are harmless.
type PaymentReconciler struct {
	store        domain.Store
	availability *AvailabilityService
	state        domain.PaymentStateRepository
	markerTTL    time.Duration
	eventBus     domain.EventPublisher
	logger       *zerolog.Logger
}

func NewPaymentReconciler(
	store domain.Store,
	availability *AvailabilityService,
	state domain.PaymentStateRepository,
	markerTTL time.Duration,
	eventBus domain.EventPublisher,
	logger *zerolog.Logger,
) *PaymentReconciler {
	if markerTTL <= 0 {
		markerTTL = models.DefaultEventMarkerTTL * time.Second
	}
	return &PaymentReconciler{
		store:        store,
		availability: availability,
		state:        state,
		markerTTL:    markerTTL,
		eventBus:     eventBus,
		logger:       logging.Component(logger, "payment-reconciler"),
	}
}

func (p *PaymentReconciler) HandleEvent(ctx context.Context, ev domain.PaymentEvent) (domain.ReconcileOutcome, error) {
	log := p.logger.With().
		Str("event_id", ev.ID).
		Str("kind", string(ev.Kind)).
		Str("session_id", ev.SessionID).
		Logger()

	if p.alreadyProcessed(ctx, ev.ID, &log) {
		log.Info().Msg("Payment event already processed")
		metrics.IncPaymentEvent(string(ev.Kind), string(domain.OutcomeDuplicate))
		return domain.OutcomeDuplicate, nil
	}

	var (
		outcome domain.ReconcileOutcome
		err     error
	)
	switch ev.Kind {
	case domain.PaymentCompleted:
		outcome, err = p.handleCompleted(ctx, ev, &log)
	case domain.PaymentExpired, domain.PaymentFailedAsync:
		outcome, err = p.handleExpired(ctx, ev, &log)
	default:
		outcome = domain.OutcomeIgnored
	}
	if err != nil {
		log.Error().Err(err).Msg("Payment event processing failed")
		return "", err
	}

	p.markProcessed(ctx, ev.ID, &log)
	metrics.IncPaymentEvent(string(ev.Kind), string(outcome))
	log.Info().Str("outcome", string(outcome)).Msg("Payment event reconciled")
	return outcome, nil
}

func (p *PaymentReconciler) handleCompleted(ctx context.Context, ev domain.PaymentEvent, log *zerolog.Logger) (domain.ReconcileOutcome, error) {
	var (
		outcome domain.ReconcileOutcome
		set     []*models.Reservation
		reason  string
	)

	err := p.store.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
		outcome, set, reason = domain.OutcomeNoop, nil, ""

		pending, err := tx.GetReservationsBySession(ctx, ev.SessionID, models.StatusPending)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}
		p.checkCorrelation(ev, pending, log)

		ids := models.IDs(pending)
		avail := p.availability.WithStore(tx)
		for _, r := range pending {
			overlap, err := avail.HasOverlap(ctx, r.UnitID, r.CheckIn, r.CheckOut, ids)
			if err != nil {
				return err
			}
			if overlap {
				reason = fmt.Sprintf("unit %d is no longer free for %s - %s", r.UnitID, r.CheckIn, r.CheckOut)
				break
			}
		}

		t := domain.StatusTransition{
			From:          []string{models.StatusPending},
			To:            models.StatusConfirmed,
			PaymentStatus: models.PaymentPaid,
		}
		outcome = domain.OutcomeConfirmed
		if reason != "" {
			t = domain.StatusTransition{
				From:           []string{models.StatusPending},
				To:             models.StatusCancelled,
				PaymentStatus:  models.PaymentFailed,
				AppendNote:     compensationNote(ev.SessionID, reason),
				RefundRequired: true,
			}
			outcome = domain.OutcomeCompensationRequired
		}

		n, err := tx.TransitionStatus(ctx, ids, t)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return domain.ErrConcurrentModification
		}

		set, err = reload(ctx, tx, pending)
		return err
	})
	if err != nil {
		return "", err
	}

	switch outcome {
	case domain.OutcomeNoop:
		log.Info().Err(domain.ErrPaymentCorrelation).Msg("No pending reservations for session")
	case domain.OutcomeConfirmed:
		for _, r := range set {
			publish(p.eventBus, p.logger, events.EventReservationConfirmed, r, "")
		}
	case domain.OutcomeCompensationRequired:
		metrics.AddCompensations(len(set))
		log.Warn().Err(domain.ErrCompensationRequired).
			Ints64("reservation_ids", models.IDs(set)).
			Str("reason", reason).
			Msg("Paid reservations cancelled, refund required")
		for _, r := range set {
			publish(p.eventBus, p.logger, events.EventCompensationRequired, r, reason)
		}
	}
	releaseHolds(ctx, p.state, set, p.logger)
	return outcome, nil
}

func (p *PaymentReconciler) handleExpired(ctx context.Context, ev domain.PaymentEvent, log *zerolog.Logger) (domain.ReconcileOutcome, error) {
	var set []*models.Reservation
	err := p.store.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
		set = nil
		pending, err := tx.GetReservationsBySession(ctx, ev.SessionID, models.StatusPending)
		if err != nil || len(pending) == 0 {
			return err
		}
		p.checkCorrelation(ev, pending, log)

		// статус не меняем, бронь остаётся pending
		if _, err := tx.SetPaymentStatus(ctx, models.IDs(pending), models.StatusPending, models.PaymentFailed); err != nil {
			return err
		}
		set, err = reload(ctx, tx, pending)
		return err
	})
	if err != nil {
		return "", err
	}
	if len(set) == 0 {
		log.Info().Err(domain.ErrPaymentCorrelation).Msg("No pending reservations for session")
		return domain.OutcomeNoop, nil
	}

	releaseHolds(ctx, p.state, set, p.logger)
	for _, r := range set {
		publish(p.eventBus, p.logger, events.EventPaymentExpired, r, string(ev.Kind))
	}
	return domain.OutcomeExpired, nil
}

// checkCorrelation logs when the echoed metadata disagrees with the session's
// reservations. The session id stays authoritative.
func (p *PaymentReconciler) checkCorrelation(ev domain.PaymentEvent, set []*models.Reservation, log *zerolog.Logger) {
	ids, err := metadataIDs(ev.Metadata)
	if err != nil {
		log.Warn().Err(err).Msg("Unreadable payment metadata")
		return
	}
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		if !slices.Contains(models.IDs(set), id) {
			log.Warn().Ints64("metadata_ids", ids).Ints64("session_ids", models.IDs(set)).Msg("Payment metadata does not match session reservations")
			return
		}
	}
}

func (p *PaymentReconciler) alreadyProcessed(ctx context.Context, eventID string, log *zerolog.Logger) bool {
	if p.state == nil || eventID == "" {
		return false
	}
	done, err := p.state.IsEventProcessed(ctx, eventID)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read event marker")
		return false
	}
	return done
}

func (p *PaymentReconciler) markProcessed(ctx context.Context, eventID string, log *zerolog.Logger) {
	if p.state == nil || eventID == "" {
		return
	}
	if err := p.state.MarkEventProcessed(ctx, eventID, p.markerTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to write event marker")
	}
}

func compensationNote(sessionID, reason string) string {
	return fmt.Sprintf("[compensation] payment %s captured but %s; manual refund required", sessionID, reason)
}

var _ domain.PaymentReconciler = (*PaymentReconciler)(nil)
