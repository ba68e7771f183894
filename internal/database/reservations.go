package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"staybook/internal/domain"
	"staybook/internal/models"
)

const reservationColumns = `id, group_reference, unit_id, guest_name, guest_email, guest_phone,
	check_in, check_out, guest_count, children_count, total_price, currency, status,
	payment_status, payment_session_id, source, notes, refund_required, version, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*models.Reservation, error) {
	var r models.Reservation
	var in, out int64
	err := row.Scan(
		&r.ID, &r.GroupReference, &r.UnitID, &r.GuestName, &r.GuestEmail, &r.GuestPhone,
		&in, &out, &r.GuestCount, &r.ChildrenCount, &r.TotalPrice, &r.Currency, &r.Status,
		&r.PaymentStatus, &r.PaymentSessionID, &r.Source, &r.Notes, &r.RefundRequired, &r.Version,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.CheckIn, r.CheckOut = models.Day(in), models.Day(out)
	return &r, nil
}

func (db *DB) queryReservations(ctx context.Context, query string, args ...any) ([]*models.Reservation, error) {
	rows, err := db.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var out []*models.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReservation вставляет бронирование и заполняет ID, версию и даты
func (db *DB) CreateReservation(ctx context.Context, r *models.Reservation) error {
	if r.PaymentStatus == "" {
		r.PaymentStatus = models.PaymentPending
	}

	query := `INSERT INTO reservations (
                group_reference, unit_id, guest_name, guest_email, guest_phone,
                check_in, check_out, guest_count, children_count, total_price, currency, status,
                payment_status, payment_session_id, source, notes, refund_required, version, created_at, updated_at
              ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.q.ExecContext(ctx, query,
		r.GroupReference, r.UnitID, r.GuestName, r.GuestEmail, r.GuestPhone,
		int64(r.CheckIn), int64(r.CheckOut), r.GuestCount, r.ChildrenCount, r.TotalPrice, r.Currency, r.Status,
		r.PaymentStatus, r.PaymentSessionID, r.Source, r.Notes, r.RefundRequired, 1, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	r.ID = id
	r.Version = 1
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}

func (db *DB) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	r, err := scanReservation(row)
	if err != nil {
		return nil, notFound(err, "reservation", id)
	}
	return r, nil
}

func (db *DB) GetReservationsByGroup(ctx context.Context, groupRef string) ([]*models.Reservation, error) {
	return db.queryReservations(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE group_reference = ? ORDER BY id`, groupRef)
}

// GetReservationsBySession returns the reservations tied to a payment session.
// An empty status matches any status.
func (db *DB) GetReservationsBySession(ctx context.Context, sessionID, status string) ([]*models.Reservation, error) {
	if sessionID == "" {
		return nil, nil
	}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE payment_session_id = ?`
	args := []any{sessionID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	return db.queryReservations(ctx, query+` ORDER BY id`, args...)
}

// FindOverlapping returns confirmed or completed reservations on the unit
// whose stay intersects [checkIn, checkOut), skipping excludeIDs.
func (db *DB) FindOverlapping(ctx context.Context, unitID int64, checkIn, checkOut models.Day, excludeIDs []int64) ([]*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
              WHERE unit_id = ?
                AND check_in < ? AND check_out > ?
                AND status IN (` + inClause(len(models.BlockingStatuses)) + `)`
	args := []any{unitID, int64(checkOut), int64(checkIn)}
	args = append(args, stringArgs(models.BlockingStatuses)...)
	if len(excludeIDs) > 0 {
		query += ` AND id NOT IN (` + inClause(len(excludeIDs)) + `)`
		args = append(args, int64Args(excludeIDs)...)
	}
	return db.queryReservations(ctx, query+` ORDER BY check_in`, args...)
}

// SetPaymentSession attaches the session id to reservations that are still pending.
func (db *DB) SetPaymentSession(ctx context.Context, ids []int64, sessionID string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE reservations
              SET payment_session_id = ?, version = version + 1, updated_at = ?
              WHERE status = ? AND id IN (` + inClause(len(ids)) + `)`
	args := append([]any{sessionID, time.Now(), models.StatusPending}, int64Args(ids)...)
	result, err := db.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to set payment session: %w", err)
	}
	return result.RowsAffected()
}

// TransitionStatus applies t to every listed reservation whose current status
// is in t.From and returns how many rows changed.
func (db *DB) TransitionStatus(ctx context.Context, ids []int64, t domain.StatusTransition) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if len(t.From) == 0 || t.To == "" {
		return 0, fmt.Errorf("transition needs source and target statuses")
	}

	sets := []string{"status = ?", "version = version + 1", "updated_at = ?"}
	args := []any{t.To, time.Now()}
	if t.PaymentStatus != "" {
		sets = append(sets, "payment_status = ?")
		args = append(args, t.PaymentStatus)
	}
	if t.AppendNote != "" {
		sets = append(sets, "notes = CASE WHEN notes = '' THEN ? ELSE notes || char(10) || ? END")
		args = append(args, t.AppendNote, t.AppendNote)
	}
	if t.RefundRequired {
		sets = append(sets, "refund_required = 1")
	}

	query := `UPDATE reservations SET ` + strings.Join(sets, ", ") +
		` WHERE status IN (` + inClause(len(t.From)) + `) AND id IN (` + inClause(len(ids)) + `)`
	args = append(args, stringArgs(t.From)...)
	args = append(args, int64Args(ids)...)

	result, err := db.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to transition reservations to %s: %w", t.To, err)
	}
	return result.RowsAffected()
}

// SetPaymentStatus changes payment_status only where status still equals whereStatus.
func (db *DB) SetPaymentStatus(ctx context.Context, ids []int64, whereStatus, paymentStatus string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE reservations
              SET payment_status = ?, version = version + 1, updated_at = ?
              WHERE status = ? AND id IN (` + inClause(len(ids)) + `)`
	args := append([]any{paymentStatus, time.Now(), whereStatus}, int64Args(ids)...)
	result, err := db.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to set payment status: %w", err)
	}
	return result.RowsAffected()
}

// DeletePending removes reservations that never got a payment path.
func (db *DB) DeletePending(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM reservations WHERE status = ? AND id IN (` + inClause(len(ids)) + `)`
	args := append([]any{models.StatusPending}, int64Args(ids)...)
	result, err := db.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pending reservations: %w", err)
	}
	return result.RowsAffected()
}

func (db *DB) ListRefundRequired(ctx context.Context) ([]*models.Reservation, error) {
	return db.queryReservations(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE refund_required = 1 ORDER BY updated_at DESC, id`)
}
