package models

import "time"

type Reservation struct {
	ID               int64     `json:"id"`
	GroupReference   string    `json:"group_reference,omitempty"`
	UnitID           int64     `json:"unit_id"`
	GuestName        string    `json:"guest_name"`
	GuestEmail       string    `json:"guest_email"`
	GuestPhone       string    `json:"guest_phone,omitempty"`
	CheckIn          Day       `json:"check_in"`
	CheckOut         Day       `json:"check_out"`
	GuestCount       int       `json:"guest_count"`
	ChildrenCount    int       `json:"children_count"`
	TotalPrice       int64     `json:"total_price"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`         // inquiry, pending, confirmed, cancelled, completed
	PaymentStatus    string    `json:"payment_status"` // pending, paid, failed, refunded
	PaymentSessionID string    `json:"payment_session_id,omitempty"`
	Source           string    `json:"source,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	RefundRequired   bool      `json:"refund_required"`
	Version          int64     `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (r *Reservation) Nights() int {
	return int(r.CheckOut - r.CheckIn)
}

func (r *Reservation) Occupants() int {
	return r.GuestCount + r.ChildrenCount
}

// IsGroup reports whether the reservation has siblings.
func (r *Reservation) IsGroup() bool {
	return r.GroupReference != ""
}

// Hold marks a pending reservation's dates while its payment session is open.
type Hold struct {
	ReservationID int64 `json:"reservation_id"`
	UnitID        int64 `json:"unit_id"`
	CheckIn       Day   `json:"check_in"`
	CheckOut      Day   `json:"check_out"`
}

// IDs collects reservation ids in order.
func IDs(reservations []*Reservation) []int64 {
	ids := make([]int64, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}
	return ids
}
