package models

import "time"

type PricingMode string

const (
	PricingPerNight  PricingMode = "per_night"
	PricingPerPerson PricingMode = "per_person"
)

type SurchargeKind string

const (
	SurchargeFixed   SurchargeKind = "fixed"
	SurchargePercent SurchargeKind = "percent"
)

// Unit is a rentable space. Prices are minor currency units per night.
type Unit struct {
	ID              int64         `yaml:"id" json:"id"`
	Name            string        `yaml:"name" json:"name"`
	Description     string        `yaml:"description" json:"description,omitempty"`
	Capacity        int           `yaml:"capacity" json:"capacity"`
	BasePrice       int64         `yaml:"base_price" json:"base_price"`
	Currency        string        `yaml:"currency" json:"currency"`
	PricingMode     PricingMode   `yaml:"pricing_mode" json:"pricing_mode"`
	BaseGuests      int           `yaml:"base_guests" json:"base_guests,omitempty"`
	SurchargeKind   SurchargeKind `yaml:"surcharge_kind" json:"surcharge_kind,omitempty"`
	SurchargeAmount int64         `yaml:"surcharge_amount" json:"surcharge_amount,omitempty"`
	MinStay         int           `yaml:"min_stay" json:"min_stay"`
	SortOrder       int64         `yaml:"sort_order" json:"sort_order"`
	CreatedAt       time.Time     `yaml:"-" json:"created_at"`
	UpdatedAt       time.Time     `yaml:"-" json:"updated_at"`
}

// DateOverride adjusts a single day of a unit's calendar.
type DateOverride struct {
	UnitID  int64  `yaml:"unit_id" json:"unit_id"`
	Day     Day    `yaml:"day" json:"day"`
	Price   *int64 `yaml:"price" json:"price,omitempty"`
	Blocked bool   `yaml:"blocked" json:"blocked"`
	MinStay *int   `yaml:"min_stay" json:"min_stay,omitempty"`
	Notes   string `yaml:"notes" json:"notes,omitempty"`
}

// Season sets a nightly price for [Start, End). UnitID 0 applies to every unit.
type Season struct {
	ID     int64  `yaml:"id" json:"id"`
	UnitID int64  `yaml:"unit_id" json:"unit_id"`
	Name   string `yaml:"name" json:"name"`
	Start  Day    `yaml:"start" json:"start"`
	End    Day    `yaml:"end" json:"end"`
	Price  int64  `yaml:"price" json:"price"`
}

func (s Season) Covers(d Day) bool {
	return d >= s.Start && d < s.End
}

// Catalog is the operator-owned seed data.
type Catalog struct {
	Units     []Unit         `yaml:"units"`
	Overrides []DateOverride `yaml:"overrides"`
	Seasons   []Season       `yaml:"seasons"`
}
