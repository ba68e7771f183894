package service

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/domain"
	"staybook/internal/events"
	"staybook/internal/logging"
	"staybook/internal/metrics"
	"staybook/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReservationConfig holds the booking policy knobs.
type ReservationConfig struct {
	MaxAdvanceDays int
	// HoldTTL is how long a pending reservation holds its dates. Zero disables holds.
	HoldTTL time.Duration
}

type ReservationService struct {
	store          domain.Store
	availability   *AvailabilityService
	allocator      *GroupAllocator
	holds          domain.PaymentStateRepository
	holdTTL        time.Duration
	eventBus       domain.EventPublisher
	maxAdvanceDays int
	now            func() time.Time
	logger         *zerolog.Logger
}

func NewReservationService(
	store domain.Store,
	availability *AvailabilityService,
	allocator *GroupAllocator,
	holds domain.PaymentStateRepository,
	eventBus domain.EventPublisher,
	cfg ReservationConfig,
	logger *zerolog.Logger,
) *ReservationService {
	if cfg.MaxAdvanceDays <= 0 {
		cfg.MaxAdvanceDays = models.DefaultMaxAdvanceDays
	}
	if cfg.HoldTTL <= 0 {
		holds = nil
	}
	return &ReservationService{
		store:          store,
		availability:   availability,
		allocator:      allocator,
		holds:          holds,
		holdTTL:        cfg.HoldTTL,
		eventBus:       eventBus,
		maxAdvanceDays: cfg.MaxAdvanceDays,
		now:            time.Now,
		logger:         logging.Component(logger, "reservations"),
	}
}

// ValidateStayDates отклоняет заезд в прошлом и дальше горизонта бронирования.
func (s *ReservationService) ValidateStayDates(checkIn, checkOut models.Day) error {
	if err := validateRange(checkIn, checkOut); err != nil {
		return err
	}
	today := models.DayOf(s.now())
	if checkIn < today {
		return domain.NewValidationError("check_in", "must not be in the past")
	}
	if checkIn > today.AddDays(s.maxAdvanceDays) {
		return domain.NewValidationError("check_in", fmt.Sprintf("must be within %d days", s.maxAdvanceDays))
	}
	return nil
}

func (s *ReservationService) validateRequest(req models.ReservationRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if err := validateOccupancy(req.Guests, req.Children); err != nil {
		return err
	}
	return s.ValidateStayDates(req.CheckIn, req.CheckOut)
}

func newReservation(req models.ReservationRequest, u *models.Unit, status string, price int64) *models.Reservation {
	source := req.Source
	if source == "" {
		source = models.SourceAPI
	}
	return &models.Reservation{
		UnitID:        u.ID,
		GuestName:     req.GuestName,
		GuestEmail:    req.GuestEmail,
		GuestPhone:    req.GuestPhone,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		GuestCount:    req.Guests,
		ChildrenCount: req.Children,
		TotalPrice:    price,
		Currency:      u.Currency,
		Status:        status,
		PaymentStatus: models.PaymentPending,
		Source:        source,
		Notes:         req.Notes,
	}
}

func capacityConflict(u *models.Unit, occupants int) error {
	if occupants > u.Capacity {
		return &domain.ConflictError{UnitID: u.ID, Reason: domain.ReasonCapacity}
	}
	return nil
}

// CreateInquiry records a request that is not gated on payment. The calendar
// is not consulted.
func (s *ReservationService) CreateInquiry(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	u, err := s.store.GetUnit(ctx, req.UnitID)
	if err != nil {
		return nil, err
	}
	if err := capacityConflict(u, req.Guests+req.Children); err != nil {
		return nil, err
	}
	price, err := s.availability.price(ctx, u, req.CheckIn, req.CheckOut, req.Guests+req.Children)
	if err != nil {
		return nil, err
	}

	r := newReservation(req, u, models.StatusInquiry, price)
	if err := s.store.CreateReservation(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("reservation_id", r.ID).Int64("unit_id", r.UnitID).Msg("Inquiry created")
	s.afterCreate(events.EventInquiryCreated, models.StatusInquiry, r)
	return r, nil
}

// CreatePending checks the calendar against confirmed and completed stays and
// inserts a pending reservation awaiting payment. Other pending reservations
// for the same dates do not block it.
func (s *ReservationService) CreatePending(ctx context.Context, req models.ReservationRequest) (*models.Reservation, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	var r *models.Reservation
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
		u, err := tx.GetUnit(ctx, req.UnitID)
		if err != nil {
			return err
		}
		if err := capacityConflict(u, req.Guests+req.Children); err != nil {
			return err
		}

		avail := s.availability.WithStore(tx)
		res, err := avail.checkForPending(ctx, u, req.CheckIn, req.CheckOut)
		if err != nil {
			return err
		}
		if !res.Available {
			return &domain.ConflictError{UnitID: u.ID, Reason: res.Reason, MinStay: res.MinStay}
		}

		price, err := avail.price(ctx, u, req.CheckIn, req.CheckOut, req.Guests+req.Children)
		if err != nil {
			return err
		}
		r = newReservation(req, u, models.StatusPending, price)
		return tx.CreateReservation(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.placeHolds(ctx, []*models.Reservation{r})
	s.logger.Info().Int64("reservation_id", r.ID).Int64("unit_id", r.UnitID).Msg("Pending reservation created")
	s.afterCreate(events.EventPendingCreated, models.StatusPending, r)
	return r, nil
}

// CreateGroup allocates units for the party and inserts one pending
// reservation per unit under a shared group reference, all in one transaction.
func (s *ReservationService) CreateGroup(ctx context.Context, req models.GroupReservationRequest) ([]*models.Reservation, error) {
	if s.allocator == nil || !s.allocator.enabled {
		return nil, domain.ErrGroupBookingDisabled
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if err := validateOccupancy(req.Guests, 0); err != nil {
		return nil, err
	}
	if err := s.ValidateStayDates(req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}

	groupRef := uuid.NewString()
	var created []*models.Reservation
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
		created = nil
		option, err := s.allocator.allocate(ctx, s.availability.WithStore(tx), req.CheckIn, req.CheckOut, req.Guests, true)
		if err != nil {
			return err
		}
		if option == nil {
			return &domain.ConflictError{Reason: domain.ReasonCapacity}
		}

		for _, a := range option.Allocations {
			u, err := tx.GetUnit(ctx, a.UnitID)
			if err != nil {
				return err
			}
			r := newReservation(models.ReservationRequest{
				UnitID:     a.UnitID,
				CheckIn:    req.CheckIn,
				CheckOut:   req.CheckOut,
				GuestName:  req.GuestName,
				GuestEmail: req.GuestEmail,
				GuestPhone: req.GuestPhone,
				Guests:     a.AssignedGuests,
				Source:     req.Source,
				Notes:      req.Notes,
			}, u, models.StatusPending, a.Price)
			r.GroupReference = groupRef
			if err := tx.CreateReservation(ctx, r); err != nil {
				return err
			}
			created = append(created, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.placeHolds(ctx, created)
	s.logger.Info().
		Str("group_reference", groupRef).
		Int("units", len(created)).
		Int("guests", req.Guests).
		Msg("Group reservation created")
	s.afterCreate(events.EventPendingCreated, models.StatusPending, created...)
	return created, nil
}

func (s *ReservationService) afterCreate(eventType, status string, rs ...*models.Reservation) {
	metrics.IncReservations(status, len(rs))
	for _, r := range rs {
		s.publish(eventType, r, "")
	}
}

// siblings returns r's whole group, or r alone.
func siblings(ctx context.Context, st domain.Store, r *models.Reservation) ([]*models.Reservation, error) {
	if !r.IsGroup() {
		return []*models.Reservation{r}, nil
	}
	return st.GetReservationsByGroup(ctx, r.GroupReference)
}

// Cancel cancels an inquiry or pending reservation together with its group
// siblings. Cancelling a cancelled reservation is a no-op.
func (s *ReservationService) Cancel(ctx context.Context, id int64) ([]*models.Reservation, error) {
	var set []*models.Reservation
	var changed bool
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
		changed = false
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		set, err = siblings(ctx, tx, r)
		if err != nil {
			return err
		}

		open := 0
		for _, sib := range set {
			switch sib.Status {
			case models.StatusInquiry, models.StatusPending:
				open++
			case models.StatusCancelled:
			default:
				return fmt.Errorf("%w: reservation %d is %s", domain.ErrInvalidTransition, sib.ID, sib.Status)
			}
		}
		if open == 0 {
			return nil
		}

		n, err := tx.TransitionStatus(ctx, models.IDs(set), domain.StatusTransition{
			From: []string{models.StatusInquiry, models.StatusPending},
			To:   models.StatusCancelled,
		})
		if err != nil {
			return err
		}
		if n != int64(open) {
			return domain.ErrConcurrentModification
		}
		changed = true
		set, err = reload(ctx, tx, set)
		return err
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.releaseHolds(ctx, set)
		for _, r := range set {
			s.publish(events.EventReservationCancelled, r, "")
		}
		s.logger.Info().Int64("reservation_id", id).Int("count", len(set)).Msg("Reservation cancelled")
	}
	return set, nil
}

// Complete marks a confirmed stay (and its siblings) completed.
func (s *ReservationService) Complete(ctx context.Context, id int64) (*models.Reservation, error) {
	var result *models.Reservation
	var set []*models.Reservation
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
		r, err := tx.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		result = r
		set = nil
		if r.Status == models.StatusCompleted {
			return nil
		}
		if r.Status != models.StatusConfirmed {
			return fmt.Errorf("%w: reservation %d is %s", domain.ErrInvalidTransition, r.ID, r.Status)
		}

		sibs, err := siblings(ctx, tx, r)
		if err != nil {
			return err
		}
		expected := 0
		for _, sib := range sibs {
			if sib.Status == models.StatusConfirmed {
				expected++
			}
		}
		n, err := tx.TransitionStatus(ctx, models.IDs(sibs), domain.StatusTransition{
			From: []string{models.StatusConfirmed},
			To:   models.StatusCompleted,
		})
		if err != nil {
			return err
		}
		if n != int64(expected) {
			return domain.ErrConcurrentModification
		}

		set, err = reload(ctx, tx, sibs)
		if err != nil {
			return err
		}
		result, err = tx.GetReservation(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, r := range set {
		s.publish(events.EventReservationCompleted, r, "")
	}
	return result, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	return s.store.GetReservation(ctx, id)
}

func (s *ReservationService) ListGroup(ctx context.Context, groupRef string) ([]*models.Reservation, error) {
	set, err := s.store.GetReservationsByGroup(ctx, groupRef)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("group %s: %w", groupRef, domain.ErrNotFound)
	}
	return set, nil
}

func (s *ReservationService) ListRefundRequired(ctx context.Context) ([]*models.Reservation, error) {
	return s.store.ListRefundRequired(ctx)
}

func (s *ReservationService) placeHolds(ctx context.Context, rs []*models.Reservation) {
	if s.holds == nil {
		return
	}
	for _, r := range rs {
		hold := models.Hold{ReservationID: r.ID, UnitID: r.UnitID, CheckIn: r.CheckIn, CheckOut: r.CheckOut}
		if err := s.holds.PlaceHold(ctx, hold, s.holdTTL); err != nil {
			s.logger.Warn().Err(err).Int64("reservation_id", r.ID).Msg("Failed to place hold")
		}
	}
}

func (s *ReservationService) releaseHolds(ctx context.Context, rs []*models.Reservation) {
	releaseHolds(ctx, s.holds, rs, s.logger)
}

func (s *ReservationService) publish(eventType string, r *models.Reservation, reason string) {
	publish(s.eventBus, s.logger, eventType, r, reason)
}

func releaseHolds(ctx context.Context, holds domain.PaymentStateRepository, rs []*models.Reservation, logger *zerolog.Logger) {
	if holds == nil || len(rs) == 0 {
		return
	}
	list := make([]models.Hold, 0, len(rs))
	for _, r := range rs {
		list = append(list, models.Hold{ReservationID: r.ID, UnitID: r.UnitID, CheckIn: r.CheckIn, CheckOut: r.CheckOut})
	}
	if err := holds.ReleaseHolds(ctx, list); err != nil {
		logger.Warn().Err(err).Int("count", len(list)).Msg("Failed to release holds")
	}
}

func publish(bus domain.EventPublisher, logger *zerolog.Logger, eventType string, r *models.Reservation, reason string) {
	if bus == nil {
		return
	}
	if err := bus.PublishJSON(eventType, events.PayloadFor(r, reason)); err != nil {
		logger.Error().Err(err).Str("event", eventType).Int64("reservation_id", r.ID).Msg("Failed to publish event")
	}
}

// reload re-reads the rows after an update so callers see the new version.
func reload(ctx context.Context, st domain.Store, rs []*models.Reservation) ([]*models.Reservation, error) {
	out := make([]*models.Reservation, 0, len(rs))
	for _, r := range rs {
		fresh, err := st.GetReservation(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, fresh)
	}
	return out, nil
}

var _ domain.ReservationService = (*ReservationService)(nil)
