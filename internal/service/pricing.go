package service

import "staybook/internal/models"

// StayPrice prices the nights [checkIn, checkOut) of u for the given number of
// occupants. Seasons are expected unit-specific first; the first covering
// season wins. The result depends only on its arguments.
func StayPrice(u *models.Unit, checkIn, checkOut models.Day, occupants int, overrides []*models.DateOverride, seasons []*models.Season) int64 {
	byDay := make(map[models.Day]*models.DateOverride, len(overrides))
	for _, o := range overrides {
		byDay[o.Day] = o
	}

	var total int64
	for d := checkIn; d < checkOut; d++ {
		night := nightlyPrice(u, d, byDay[d], seasons)
		total += night + surcharge(u, night, occupants)
	}
	return total
}

// override > season > base
func nightlyPrice(u *models.Unit, d models.Day, o *models.DateOverride, seasons []*models.Season) int64 {
	if o != nil && o.Price != nil {
		return *o.Price
	}
	for _, s := range seasons {
		if s.Covers(d) && (s.UnitID == 0 || s.UnitID == u.ID) {
			return s.Price
		}
	}
	return u.BasePrice
}

func surcharge(u *models.Unit, night int64, occupants int) int64 {
	if u.PricingMode != models.PricingPerPerson {
		return 0
	}
	extra := occupants - u.BaseGuests
	if extra <= 0 {
		return 0
	}
	per := u.SurchargeAmount
	if u.SurchargeKind == models.SurchargePercent {
		// округление вниз до минимальной единицы валюты
		per = night * u.SurchargeAmount / 100
	}
	return per * int64(extra)
}
