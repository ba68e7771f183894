package repository

import (
	"context"
	"sync"
	"time"

	"staybook/internal/models"
)

type expiring struct {
	hold      models.Hold
	expiresAt time.Time
}

// MemoryPaymentStateRepository is the single-process fallback used when Redis
// is unavailable. Entries expire lazily on read.
type MemoryPaymentStateRepository struct {
	holds  sync.Map // holdKey -> expiring
	events sync.Map // eventID -> time.Time
	now    func() time.Time
}

func NewMemoryPaymentStateRepository() *MemoryPaymentStateRepository {
	return &MemoryPaymentStateRepository{now: time.Now}
}

func (r *MemoryPaymentStateRepository) PlaceHold(_ context.Context, hold models.Hold, ttl time.Duration) error {
	r.holds.Store(holdKey(hold.UnitID, hold.ReservationID), expiring{hold: hold, expiresAt: r.now().Add(ttl)})
	return nil
}

func (r *MemoryPaymentStateRepository) ReleaseHolds(_ context.Context, holds []models.Hold) error {
	for _, h := range holds {
		r.holds.Delete(holdKey(h.UnitID, h.ReservationID))
	}
	return nil
}

func (r *MemoryPaymentStateRepository) ActiveHolds(_ context.Context, unitID int64) ([]models.Hold, error) {
	now := r.now()
	var holds []models.Hold
	r.holds.Range(func(key, val any) bool {
		e := val.(expiring)
		if !now.Before(e.expiresAt) {
			r.holds.Delete(key)
			return true
		}
		if e.hold.UnitID == unitID {
			holds = append(holds, e.hold)
		}
		return true
	})
	return holds, nil
}

func (r *MemoryPaymentStateRepository) IsEventProcessed(_ context.Context, eventID string) (bool, error) {
	val, ok := r.events.Load(eventID)
	if !ok {
		return false, nil
	}
	if !r.now().Before(val.(time.Time)) {
		r.events.Delete(eventID)
		return false, nil
	}
	return true, nil
}

func (r *MemoryPaymentStateRepository) MarkEventProcessed(_ context.Context, eventID string, ttl time.Duration) error {
	r.events.LoadOrStore(eventID, r.now().Add(ttl))
	return nil
}
