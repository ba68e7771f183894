package payment

import (
	"context"
	"errors"
	"fmt"

	"staybook/internal/domain"
	"staybook/internal/logging"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripeProcessor opens Stripe Checkout sessions in payment mode.
type StripeProcessor struct {
	client *session.Client
	logger *zerolog.Logger
}

// NewStripeProcessor builds a processor on the given backend. A nil backend
// means the live Stripe API.
func NewStripeProcessor(secretKey string, backend stripe.Backend, logger *zerolog.Logger) *StripeProcessor {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeProcessor{
		client: &session.Client{B: backend, Key: secretKey},
		logger: logging.Component(logger, "stripe"),
	}
}

func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	if len(req.LineItems) == 0 {
		return nil, errors.New("checkout session needs at least one line item")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx

	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(req.Currency),
				UnitAmount: stripe.Int64(item.Amount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	if !req.ExpiresAt.IsZero() {
		params.ExpiresAt = stripe.Int64(req.ExpiresAt.Unix())
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := p.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}

	p.logger.Debug().Str("session_id", s.ID).Msg("Stripe checkout session created")
	return &domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

var _ domain.PaymentProcessor = (*StripeProcessor)(nil)
