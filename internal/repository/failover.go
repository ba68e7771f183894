package repository

import (
	"context"
	"sync/atomic"
	"time"

	"staybook/internal/domain"
	"staybook/internal/logging"
	"staybook/internal/models"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverPaymentStateRepository пишет в primary (Redis), а при ошибке
// переключается на fallback (память) и раз в минуту пробует вернуться.
type FailoverPaymentStateRepository struct {
	primary   domain.PaymentStateRepository
	fallback  domain.PaymentStateRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
}

func NewFailoverPaymentStateRepository(primary, fallback domain.PaymentStateRepository, logger *zerolog.Logger) *FailoverPaymentStateRepository {
	return &FailoverPaymentStateRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logging.Component(logger, "payment-state"),
	}
}

func (r *FailoverPaymentStateRepository) markDown(op string, err error) {
	r.logger.Error().Err(err).Str("op", op).Msg("Primary payment state repository failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

// call runs fn against primary while it is healthy, retries primary after
// recoveryInterval, and otherwise uses fallback.
func (r *FailoverPaymentStateRepository) call(op string, fn func(domain.PaymentStateRepository) error) error {
	if !r.isDown.Load() {
		err := fn(r.primary)
		if err == nil {
			return nil
		}
		r.markDown(op, err)
	} else if time.Since(time.Unix(0, r.lastCheck.Load())) > recoveryInterval {
		if err := fn(r.primary); err == nil {
			r.isDown.Store(false)
			r.logger.Info().Str("op", op).Msg("Primary payment state repository recovered")
			return nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return fn(r.fallback)
}

func (r *FailoverPaymentStateRepository) PlaceHold(ctx context.Context, hold models.Hold, ttl time.Duration) error {
	return r.call("place_hold", func(repo domain.PaymentStateRepository) error {
		return repo.PlaceHold(ctx, hold, ttl)
	})
}

func (r *FailoverPaymentStateRepository) ReleaseHolds(ctx context.Context, holds []models.Hold) error {
	return r.call("release_holds", func(repo domain.PaymentStateRepository) error {
		return repo.ReleaseHolds(ctx, holds)
	})
}

func (r *FailoverPaymentStateRepository) ActiveHolds(ctx context.Context, unitID int64) ([]models.Hold, error) {
	var holds []models.Hold
	err := r.call("active_holds", func(repo domain.PaymentStateRepository) error {
		var err error
		holds, err = repo.ActiveHolds(ctx, unitID)
		return err
	})
	return holds, err
}

func (r *FailoverPaymentStateRepository) IsEventProcessed(ctx context.Context, eventID string) (bool, error) {
	var processed bool
	err := r.call("is_event_processed", func(repo domain.PaymentStateRepository) error {
		var err error
		processed, err = repo.IsEventProcessed(ctx, eventID)
		return err
	})
	return processed, err
}

func (r *FailoverPaymentStateRepository) MarkEventProcessed(ctx context.Context, eventID string, ttl time.Duration) error {
	return r.call("mark_event_processed", func(repo domain.PaymentStateRepository) error {
		return repo.MarkEventProcessed(ctx, eventID, ttl)
	})
}

var (
	_ domain.PaymentStateRepository = (*RedisPaymentStateRepository)(nil)
	_ domain.PaymentStateRepository = (*MemoryPaymentStateRepository)(nil)
	_ domain.PaymentStateRepository = (*FailoverPaymentStateRepository)(nil)
)
