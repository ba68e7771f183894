package service

import (
	"context"
	"fmt"
	"slices"

	"staybook/internal/domain"
	"staybook/internal/logging"
	"staybook/internal/metrics"
	"staybook/internal/models"

	"github.com/rs/zerolog"
)

// AvailabilityService answers "can this unit host this stay" and prices it.
type AvailabilityService struct {
	store  domain.Store
	holds  domain.PaymentStateRepository // nil when holds are disabled
	logger *zerolog.Logger
}

func NewAvailabilityService(store domain.Store, holds domain.PaymentStateRepository, logger *zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{store: store, holds: holds, logger: logging.Component(logger, "availability")}
}

// WithStore returns a copy that reads through st, typically a transaction.
func (s *AvailabilityService) WithStore(st domain.Store) *AvailabilityService {
	c := *s
	c.store = st
	return &c
}

type checkOptions struct {
	exclude       []int64
	considerHolds bool
}

func (s *AvailabilityService) ListUnits(ctx context.Context) ([]*models.Unit, error) {
	return s.store.ListUnits(ctx)
}

// CheckAvailability runs the calendar checks against confirmed and completed
// stays. Reasons come in the order overlap, blocked, min_stay.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, unitID int64, checkIn, checkOut models.Day) (*models.AvailabilityResult, error) {
	if err := validateRange(checkIn, checkOut); err != nil {
		return nil, err
	}
	u, err := s.store.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, u, checkIn, checkOut, checkOptions{})
}

// checkForPending is CheckAvailability plus other reservations' active holds.
func (s *AvailabilityService) checkForPending(ctx context.Context, u *models.Unit, checkIn, checkOut models.Day) (*models.AvailabilityResult, error) {
	return s.evaluate(ctx, u, checkIn, checkOut, checkOptions{considerHolds: s.holds != nil})
}

func (s *AvailabilityService) evaluate(ctx context.Context, u *models.Unit, checkIn, checkOut models.Day, opts checkOptions) (*models.AvailabilityResult, error) {
	res := &models.AvailabilityResult{
		UnitID:   u.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Nights:   int(checkOut - checkIn),
		Currency: u.Currency,
	}

	overlap, err := s.HasOverlap(ctx, u.ID, checkIn, checkOut, opts.exclude)
	if err != nil {
		return nil, err
	}
	if !overlap && opts.considerHolds {
		overlap = s.heldByOther(ctx, u.ID, checkIn, checkOut, opts.exclude)
	}
	if overlap {
		res.Reason = domain.ReasonOverlap
		return res, nil
	}

	overrides, err := s.store.GetOverrides(ctx, u.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	minStay := u.MinStay
	for _, o := range overrides {
		if o.Blocked {
			res.Reason = domain.ReasonBlocked
			return res, nil
		}
		if o.Day == checkIn && o.MinStay != nil {
			minStay = *o.MinStay
		}
	}
	if minStay < 1 {
		minStay = 1
	}
	if res.Nights < minStay {
		res.Reason = domain.ReasonMinStay
		res.MinStay = minStay
		return res, nil
	}

	res.Available = true
	return res, nil
}

// HasOverlap reports whether a confirmed or completed reservation, other than
// those in exclude, intersects [checkIn, checkOut) on the unit.
func (s *AvailabilityService) HasOverlap(ctx context.Context, unitID int64, checkIn, checkOut models.Day, exclude []int64) (bool, error) {
	clashes, err := s.store.FindOverlapping(ctx, unitID, checkIn, checkOut, exclude)
	if err != nil {
		return false, err
	}
	return len(clashes) > 0, nil
}

func (s *AvailabilityService) heldByOther(ctx context.Context, unitID int64, checkIn, checkOut models.Day, exclude []int64) bool {
	holds, err := s.holds.ActiveHolds(ctx, unitID)
	if err != nil {
		// холды вспомогательные, календарь остаётся источником правды
		s.logger.Warn().Err(err).Int64("unit_id", unitID).Msg("Failed to read holds")
		return false
	}
	for _, h := range holds {
		if slices.Contains(exclude, h.ReservationID) {
			continue
		}
		if models.Overlaps(h.CheckIn, h.CheckOut, checkIn, checkOut) {
			return true
		}
	}
	return false
}

// ComputeStayPrice prices the stay for guests occupants. No side effects.
func (s *AvailabilityService) ComputeStayPrice(ctx context.Context, unitID int64, checkIn, checkOut models.Day, guests int) (int64, error) {
	u, err := s.store.GetUnit(ctx, unitID)
	if err != nil {
		return 0, err
	}
	return s.price(ctx, u, checkIn, checkOut, guests)
}

func (s *AvailabilityService) price(ctx context.Context, u *models.Unit, checkIn, checkOut models.Day, occupants int) (int64, error) {
	overrides, err := s.store.GetOverrides(ctx, u.ID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	seasons, err := s.store.GetSeasons(ctx, u.ID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	return StayPrice(u, checkIn, checkOut, occupants, overrides, seasons), nil
}

// Quote is the availability query: calendar checks, then capacity, then price.
func (s *AvailabilityService) Quote(ctx context.Context, q models.AvailabilityQuery) (*models.AvailabilityResult, error) {
	if err := validateRange(q.CheckIn, q.CheckOut); err != nil {
		return nil, err
	}
	if err := validateOccupancy(q.Guests, q.Children); err != nil {
		return nil, err
	}

	u, err := s.store.GetUnit(ctx, q.UnitID)
	if err != nil {
		return nil, err
	}

	res, err := s.evaluate(ctx, u, q.CheckIn, q.CheckOut, checkOptions{})
	if err != nil {
		return nil, err
	}
	if res.Available && q.Guests+q.Children > u.Capacity {
		res.Available = false
		res.Reason = domain.ReasonCapacity
	}
	if res.Available {
		p, err := s.price(ctx, u, q.CheckIn, q.CheckOut, q.Guests+q.Children)
		if err != nil {
			return nil, err
		}
		res.Price = &p
	}

	result := "available"
	if !res.Available {
		result = res.Reason
	}
	metrics.IncAvailability(result)
	s.logger.Debug().
		Int64("unit_id", u.ID).
		Str("check_in", q.CheckIn.String()).
		Str("check_out", q.CheckOut.String()).
		Str("result", result).
		Msg("Availability quoted")

	return res, nil
}

func validateRange(checkIn, checkOut models.Day) error {
	if checkOut <= checkIn {
		return domain.NewValidationError("check_out", fmt.Sprintf("must be after check_in (%s)", checkIn))
	}
	return nil
}

func validateOccupancy(guests, children int) error {
	if guests < 1 {
		return domain.NewValidationError("guests", "must be at least 1")
	}
	if children < 0 {
		return domain.NewValidationError("children", "must not be negative")
	}
	if guests+children > models.MaxGuestsPerRequest {
		return domain.NewValidationError("guests", fmt.Sprintf("at most %d people per request", models.MaxGuestsPerRequest))
	}
	return nil
}

var _ domain.AvailabilityService = (*AvailabilityService)(nil)
