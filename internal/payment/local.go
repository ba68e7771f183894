package payment

import (
	"context"
	"net/url"

	"staybook/internal/domain"
	"staybook/internal/logging"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalProcessor выдает фиктивные сессии для разработки без Stripe.
// Завершение оплаты эмулируется подписанным вебхуком.
type LocalProcessor struct {
	logger *zerolog.Logger
}

func NewLocalProcessor(logger *zerolog.Logger) *LocalProcessor {
	return &LocalProcessor{logger: logging.Component(logger, "local-payments")}
}

func (p *LocalProcessor) CreateCheckoutSession(_ context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	id := "local_" + uuid.NewString()

	redirect := req.SuccessURL
	if u, err := url.Parse(req.SuccessURL); err == nil {
		q := u.Query()
		q.Set("session_id", id)
		u.RawQuery = q.Encode()
		redirect = u.String()
	}

	p.logger.Info().Str("session_id", id).Interface("metadata", req.Metadata).Msg("Local checkout session created")
	return &domain.CheckoutSession{ID: id, URL: redirect}, nil
}

var _ domain.PaymentProcessor = (*LocalProcessor)(nil)
