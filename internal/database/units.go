package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"staybook/internal/domain"
	"staybook/internal/models"
)

const unitColumns = `id, name, description, capacity, base_price, currency, pricing_mode,
	base_guests, surcharge_kind, surcharge_amount, min_stay, sort_order, created_at, updated_at`

func scanUnit(row interface{ Scan(...any) error }) (*models.Unit, error) {
	var u models.Unit
	var mode, kind string
	err := row.Scan(
		&u.ID, &u.Name, &u.Description, &u.Capacity, &u.BasePrice, &u.Currency, &mode,
		&u.BaseGuests, &kind, &u.SurchargeAmount, &u.MinStay, &u.SortOrder, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.PricingMode = models.PricingMode(mode)
	u.SurchargeKind = models.SurchargeKind(kind)
	return &u, nil
}

// UpsertUnit создает или обновляет юнит по ID
func (db *DB) UpsertUnit(ctx context.Context, u *models.Unit) error {
	if u.PricingMode == "" {
		u.PricingMode = models.PricingPerNight
	}
	if u.Currency == "" {
		u.Currency = models.DefaultCurrency
	}
	if u.MinStay <= 0 {
		u.MinStay = 1
	}

	query := `INSERT INTO units (` + unitColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
              ON CONFLICT(id) DO UPDATE SET
                name = excluded.name,
                description = excluded.description,
                capacity = excluded.capacity,
                base_price = excluded.base_price,
                currency = excluded.currency,
                pricing_mode = excluded.pricing_mode,
                base_guests = excluded.base_guests,
                surcharge_kind = excluded.surcharge_kind,
                surcharge_amount = excluded.surcharge_amount,
                min_stay = excluded.min_stay,
                sort_order = excluded.sort_order,
                updated_at = excluded.updated_at`
	now := time.Now()
	_, err := db.q.ExecContext(ctx, query,
		u.ID, u.Name, u.Description, u.Capacity, u.BasePrice, u.Currency, string(u.PricingMode),
		u.BaseGuests, string(u.SurchargeKind), u.SurchargeAmount, u.MinStay, u.SortOrder, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert unit %d: %w", u.ID, err)
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (db *DB) GetUnit(ctx context.Context, id int64) (*models.Unit, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM units WHERE id = ?`, id)
	u, err := scanUnit(row)
	if err != nil {
		return nil, notFound(err, "unit", id)
	}
	return u, nil
}

func (db *DB) ListUnits(ctx context.Context) ([]*models.Unit, error) {
	rows, err := db.q.QueryContext(ctx, `SELECT `+unitColumns+` FROM units ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	var units []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// UpsertOverride записывает переопределение дня
func (db *DB) UpsertOverride(ctx context.Context, o *models.DateOverride) error {
	query := `INSERT INTO date_overrides (unit_id, day, price, blocked, min_stay, notes)
              VALUES (?, ?, ?, ?, ?, ?)
              ON CONFLICT(unit_id, day) DO UPDATE SET
                price = excluded.price,
                blocked = excluded.blocked,
                min_stay = excluded.min_stay,
                notes = excluded.notes`

	var price, minStay sql.NullInt64
	if o.Price != nil {
		price = sql.NullInt64{Int64: *o.Price, Valid: true}
	}
	if o.MinStay != nil {
		minStay = sql.NullInt64{Int64: int64(*o.MinStay), Valid: true}
	}

	_, err := db.q.ExecContext(ctx, query, o.UnitID, int64(o.Day), price, o.Blocked, minStay, o.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert override for unit %d on %s: %w", o.UnitID, o.Day, err)
	}
	return nil
}

// GetOverrides returns the unit's overrides for days in [from, to).
func (db *DB) GetOverrides(ctx context.Context, unitID int64, from, to models.Day) ([]*models.DateOverride, error) {
	query := `SELECT unit_id, day, price, blocked, min_stay, notes
              FROM date_overrides
              WHERE unit_id = ? AND day >= ? AND day < ?
              ORDER BY day`
	rows, err := db.q.QueryContext(ctx, query, unitID, int64(from), int64(to))
	if err != nil {
		return nil, fmt.Errorf("failed to get overrides: %w", err)
	}
	defer rows.Close()

	var out []*models.DateOverride
	for rows.Next() {
		var o models.DateOverride
		var day int64
		var price, minStay sql.NullInt64
		if err := rows.Scan(&o.UnitID, &day, &price, &o.Blocked, &minStay, &o.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		o.Day = models.Day(day)
		if price.Valid {
			p := price.Int64
			o.Price = &p
		}
		if minStay.Valid {
			m := int(minStay.Int64)
			o.MinStay = &m
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

func (db *DB) UpsertSeason(ctx context.Context, s *models.Season) error {
	query := `INSERT INTO seasons (id, unit_id, name, start_day, end_day, price)
              VALUES (?, ?, ?, ?, ?, ?)
              ON CONFLICT(id) DO UPDATE SET
                unit_id = excluded.unit_id,
                name = excluded.name,
                start_day = excluded.start_day,
                end_day = excluded.end_day,
                price = excluded.price`
	var id any
	if s.ID != 0 {
		id = s.ID
	}
	result, err := db.q.ExecContext(ctx, query, id, s.UnitID, s.Name, int64(s.Start), int64(s.End), s.Price)
	if err != nil {
		return fmt.Errorf("failed to upsert season %q: %w", s.Name, err)
	}
	if s.ID == 0 {
		if s.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
	}
	return nil
}

// GetSeasons returns seasons for the unit (or for all units) that intersect [from, to).
func (db *DB) GetSeasons(ctx context.Context, unitID int64, from, to models.Day) ([]*models.Season, error) {
	query := `SELECT id, unit_id, name, start_day, end_day, price
              FROM seasons
              WHERE unit_id IN (0, ?) AND start_day < ? AND end_day > ?
              ORDER BY unit_id DESC, start_day, id`
	rows, err := db.q.QueryContext(ctx, query, unitID, int64(to), int64(from))
	if err != nil {
		return nil, fmt.Errorf("failed to get seasons: %w", err)
	}
	defer rows.Close()

	var out []*models.Season
	for rows.Next() {
		var s models.Season
		var start, end int64
		if err := rows.Scan(&s.ID, &s.UnitID, &s.Name, &start, &end, &s.Price); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		s.Start, s.End = models.Day(start), models.Day(end)
		out = append(out, &s)
	}
	return out, rows.Err()
}

// SeedCatalog loads units, overrides and seasons in one transaction.
func (db *DB) SeedCatalog(ctx context.Context, c *models.Catalog) error {
	return db.RunInTx(ctx, func(ctx context.Context, tx domain.Store) error {
		txDB := tx.(*DB)
		for i := range c.Units {
			if err := txDB.UpsertUnit(ctx, &c.Units[i]); err != nil {
				return err
			}
		}
		for i := range c.Overrides {
			if err := txDB.UpsertOverride(ctx, &c.Overrides[i]); err != nil {
				return err
			}
		}
		for i := range c.Seasons {
			if err := txDB.UpsertSeason(ctx, &c.Seasons[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
