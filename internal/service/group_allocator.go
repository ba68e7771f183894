package service

import (
	"context"
	"sort"
	"strings"

	"staybook/internal/domain"
	"staybook/internal/logging"
	"staybook/internal/models"

	"github.com/rs/zerolog"
)

// GroupAllocator spreads a party over several units when none fits it alone.
type GroupAllocator struct {
	availability *AvailabilityService
	enabled      bool
	logger       *zerolog.Logger
}

func NewGroupAllocator(availability *AvailabilityService, enabled bool, logger *zerolog.Logger) *GroupAllocator {
	return &GroupAllocator{availability: availability, enabled: enabled, logger: logging.Component(logger, "group-allocator")}
}

// Allocate returns nil without error when no full-coverage option exists or
// when a single available unit can host the whole party.
func (g *GroupAllocator) Allocate(ctx context.Context, checkIn, checkOut models.Day, guests int) (*models.GroupOption, error) {
	if !g.enabled {
		return nil, domain.ErrGroupBookingDisabled
	}
	if err := validateRange(checkIn, checkOut); err != nil {
		return nil, err
	}
	if err := validateOccupancy(guests, 0); err != nil {
		return nil, err
	}
	return g.allocate(ctx, g.availability, checkIn, checkOut, guests, false)
}

func (g *GroupAllocator) allocate(ctx context.Context, avail *AvailabilityService, checkIn, checkOut models.Day, guests int, pending bool) (*models.GroupOption, error) {
	units, err := avail.ListUnits(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*models.Unit
	for _, u := range units {
		var res *models.AvailabilityResult
		if pending {
			res, err = avail.checkForPending(ctx, u, checkIn, checkOut)
		} else {
			res, err = avail.evaluate(ctx, u, checkIn, checkOut, checkOptions{})
		}
		if err != nil {
			return nil, err
		}
		if !res.Available {
			continue
		}
		if u.Capacity >= guests {
			g.logger.Debug().Int64("unit_id", u.ID).Int("guests", guests).Msg("Single unit fits the party, no group option")
			return nil, nil
		}
		candidates = append(candidates, u)
	}

	// ListUnits отдаёт юниты в стабильном порядке, равные по вместимости его сохраняют
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Capacity > candidates[j].Capacity
	})

	// один счёт - одна валюта: берём валюту самого вместительного юнита
	covered := 0
	currency := ""
	var selected []*models.Unit
	for _, u := range candidates {
		if covered >= guests {
			break
		}
		if currency != "" && !strings.EqualFold(u.Currency, currency) {
			continue
		}
		currency = u.Currency
		selected = append(selected, u)
		covered += u.Capacity
	}
	if covered < guests {
		g.logger.Debug().Int("guests", guests).Int("capacity", covered).Msg("Available units cannot cover the party")
		return nil, nil
	}

	option := &models.GroupOption{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
		Currency: currency,
	}
	remaining := guests
	for _, u := range selected {
		assigned := min(remaining, u.Capacity)
		if assigned == 0 {
			continue
		}
		remaining -= assigned

		price, err := avail.price(ctx, u, checkIn, checkOut, assigned)
		if err != nil {
			return nil, err
		}
		option.Allocations = append(option.Allocations, models.GroupAllocation{
			UnitID:         u.ID,
			UnitName:       u.Name,
			Capacity:       u.Capacity,
			AssignedGuests: assigned,
			Price:          price,
		})
		option.TotalPrice += price
	}

	return option, nil
}

var _ domain.GroupAllocator = (*GroupAllocator)(nil)
