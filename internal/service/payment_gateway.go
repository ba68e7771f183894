package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"staybook/internal/domain"
	"staybook/internal/events"
	"staybook/internal/logging"
	"staybook/internal/models"

	"github.com/rs/zerolog"
)

// PaymentGateway hands pending reservations to the payment processor.
type PaymentGateway struct {
	store      domain.Store
	processor  domain.PaymentProcessor
	holds      domain.PaymentStateRepository
	eventBus   domain.EventPublisher
	currency   string
	sessionTTL time.Duration
	now        func() time.Time
	logger     *zerolog.Logger
}

func NewPaymentGateway(
	store domain.Store,
	processor domain.PaymentProcessor,
	holds domain.PaymentStateRepository,
	eventBus domain.EventPublisher,
	currency string,
	sessionTTL time.Duration,
	logger *zerolog.Logger,
) *PaymentGateway {
	if currency == "" {
		currency = models.DefaultCurrency
	}
	if sessionTTL <= 0 {
		sessionTTL = models.DefaultSessionTTL * time.Second
	}
	return &PaymentGateway{
		store:      store,
		processor:  processor,
		holds:      holds,
		eventBus:   eventBus,
		currency:   currency,
		sessionTTL: sessionTTL,
		now:        time.Now,
		logger:     logging.Component(logger, "payment-gateway"),
	}
}

// StartCheckout opens one session for the reservation set and stores its id
// on every member. On failure the pending set is deleted so no reservation is
// left without a way to pay.
func (g *PaymentGateway) StartCheckout(ctx context.Context, reservations []*models.Reservation, successURL, cancelURL string) (*domain.CheckoutResult, error) {
	if len(reservations) == 0 {
		return nil, domain.NewValidationError("reservations", "nothing to pay for")
	}
	for _, r := range reservations {
		if r.Status != models.StatusPending {
			return nil, fmt.Errorf("%w: reservation %d is %s", domain.ErrInvalidTransition, r.ID, r.Status)
		}
	}

	currency, err := g.currencyOf(reservations)
	if err != nil {
		g.abandon(ctx, reservations, "mixed currencies")
		return nil, err
	}

	req := domain.CheckoutRequest{
		Currency:      currency,
		SuccessURL:    successURL,
		CancelURL:     cancelURL,
		CustomerEmail: reservations[0].GuestEmail,
		Metadata:      checkoutMetadata(reservations),
		ExpiresAt:     g.now().Add(g.sessionTTL),
	}
	for _, r := range reservations {
		u, err := g.store.GetUnit(ctx, r.UnitID)
		if err != nil {
			g.abandon(ctx, reservations, "unit lookup failed")
			return nil, fmt.Errorf("resolve unit %d: %w", r.UnitID, err)
		}
		req.LineItems = append(req.LineItems, domain.CheckoutLineItem{
			Name:     lineItemName(u, r),
			Amount:   r.TotalPrice,
			Quantity: 1,
		})
	}

	session, err := g.processor.CreateCheckoutSession(ctx, req)
	if err != nil {
		g.abandon(ctx, reservations, "processor call failed")
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	ids := models.IDs(reservations)
	n, err := g.store.SetPaymentSession(ctx, ids, session.ID)
	if err != nil {
		g.abandon(ctx, reservations, "session not persisted")
		return nil, err
	}
	if n != int64(len(ids)) {
		g.abandon(ctx, reservations, "reservations changed during checkout")
		return nil, domain.ErrConcurrentModification
	}

	for _, r := range reservations {
		r.PaymentSessionID = session.ID
		publish(g.eventBus, g.logger, events.EventPaymentSessionAttached, r, "")
	}
	g.logger.Info().
		Str("session_id", session.ID).
		Ints64("reservation_ids", ids).
		Msg("Payment session opened")

	return &domain.CheckoutResult{SessionID: session.ID, RedirectURL: session.URL}, nil
}

// abandon deletes the still-pending set and frees its holds.
func (g *PaymentGateway) abandon(ctx context.Context, reservations []*models.Reservation, why string) {
	ctx = context.WithoutCancel(ctx)
	ids := models.IDs(reservations)
	n, err := g.store.DeletePending(ctx, ids)
	if err != nil {
		g.logger.Error().Err(err).Ints64("reservation_ids", ids).Msg("Failed to delete orphaned pending reservations")
	} else {
		g.logger.Warn().Ints64("reservation_ids", ids).Int64("deleted", n).Str("cause", why).Msg("Pending reservations deleted")
	}
	releaseHolds(ctx, g.holds, reservations, g.logger)
}

// currencyOf returns the single currency the whole set is billed in.
func (g *PaymentGateway) currencyOf(reservations []*models.Reservation) (string, error) {
	currency := ""
	for _, r := range reservations {
		c := strings.ToLower(r.Currency)
		if c == "" {
			c = strings.ToLower(g.currency)
		}
		if currency != "" && c != currency {
			return "", domain.NewValidationError("currency", fmt.Sprintf("reservations mix %s and %s", currency, c))
		}
		currency = c
	}
	return currency, nil
}

func checkoutMetadata(reservations []*models.Reservation) map[string]string {
	first := reservations[0]
	meta := map[string]string{
		domain.MetaIsGroup: strconv.FormatBool(first.IsGroup()),
	}
	if !first.IsGroup() {
		meta[domain.MetaReservationID] = strconv.FormatInt(first.ID, 10)
		return meta
	}
	ids := make([]string, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, strconv.FormatInt(r.ID, 10))
	}
	meta[domain.MetaGroupReservationIDs] = strings.Join(ids, ",")
	meta[domain.MetaGroupReference] = first.GroupReference
	return meta
}

// metadataIDs reads reservation ids back from processor metadata.
func metadataIDs(meta map[string]string) ([]int64, error) {
	raw := meta[domain.MetaReservationID]
	if meta[domain.MetaIsGroup] == "true" {
		raw = meta[domain.MetaGroupReservationIDs]
	}
	if raw == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errors.New("malformed reservation id in metadata")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func lineItemName(u *models.Unit, r *models.Reservation) string {
	return fmt.Sprintf("%s, %d night(s)", u.Name, r.Nights())
}

var _ domain.PaymentGateway = (*PaymentGateway)(nil)
