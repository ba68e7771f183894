package models

// AvailabilityQuery asks whether one unit can host a stay.
type AvailabilityQuery struct {
	UnitID   int64
	CheckIn  Day
	CheckOut Day
	Guests   int
	Children int
}

type AvailabilityResult struct {
	UnitID    int64  `json:"unit_id"`
	CheckIn   Day    `json:"check_in"`
	CheckOut  Day    `json:"check_out"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	MinStay   int    `json:"min_stay,omitempty"`
	Nights    int    `json:"nights"`
	Price     *int64 `json:"price,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// GroupAllocation is one unit's share of a party.
type GroupAllocation struct {
	UnitID         int64  `json:"unit_id"`
	UnitName       string `json:"unit_name"`
	Capacity       int    `json:"capacity"`
	AssignedGuests int    `json:"assigned_guests"`
	Price          int64  `json:"price"`
}

type GroupOption struct {
	CheckIn     Day               `json:"check_in"`
	CheckOut    Day               `json:"check_out"`
	Guests      int               `json:"guests"`
	Allocations []GroupAllocation `json:"allocations"`
	TotalPrice  int64             `json:"total_price"`
	Currency    string            `json:"currency"`
}

// ReservationRequest is the validated input for creating one reservation.
type ReservationRequest struct {
	UnitID     int64  `validate:"required,gt=0"`
	CheckIn    Day    `validate:"required"`
	CheckOut   Day    `validate:"required,gtfield=CheckIn"`
	GuestName  string `validate:"required,max=200"`
	GuestEmail string `validate:"required,email"`
	GuestPhone string `validate:"omitempty,max=40"`
	Guests     int    `validate:"required,gte=1,lte=64"`
	Children   int    `validate:"gte=0,lte=64"`
	Source     string `validate:"omitempty,oneof=web api grpc"`
	Notes      string `validate:"max=2000"`
}

// GroupReservationRequest lets the allocator pick the units.
type GroupReservationRequest struct {
	CheckIn    Day    `validate:"required"`
	CheckOut   Day    `validate:"required,gtfield=CheckIn"`
	GuestName  string `validate:"required,max=200"`
	GuestEmail string `validate:"required,email"`
	GuestPhone string `validate:"omitempty,max=40"`
	Guests     int    `validate:"required,gte=2,lte=64"`
	Source     string `validate:"omitempty,oneof=web api grpc"`
	Notes      string `validate:"max=2000"`
}
