package repository

import (
	"database/sql"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

// CreatePeriod registers a period. Adding an existing period is a no-op, so
// the call is idempotent; a fresh period starts with the form closed.
func (r *Repository) CreatePeriod(period string) error {
	query := `
		INSERT INTO periods (period) VALUES ($1)
		ON CONFLICT (period) DO NOTHING
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, period); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetPeriod(period string) (*domain.PeriodInfo, error) {
	query := `
		SELECT form_open, is_current, created_at, version
		FROM periods WHERE period = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	info := &domain.PeriodInfo{
		Period: period,
	}

	dst := []any{&info.FormOpen, &info.Current, &info.CreatedAt, &info.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, period).Scan(dst...); err != nil {
		return nil, err
	}

	return info, nil
}

func (r *Repository) GetAllPeriods() ([]*domain.PeriodInfo, error) {
	query := `
		SELECT period, form_open, is_current, created_at, version
		FROM periods ORDER BY period
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]*domain.PeriodInfo, 0)
	for rows.Next() {
		info := &domain.PeriodInfo{}
		dst := []any{&info.Period, &info.FormOpen, &info.Current, &info.CreatedAt, &info.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		periods = append(periods, info)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

func (r *Repository) GetCurrentPeriod() (*domain.PeriodInfo, error) {
	query := `
		SELECT period, form_open, is_current, created_at, version
		FROM periods WHERE is_current
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	info := &domain.PeriodInfo{}
	dst := []any{&info.Period, &info.FormOpen, &info.Current, &info.CreatedAt, &info.Version}
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(dst...); err != nil {
		return nil, err
	}

	return info, nil
}

// SetCurrentPeriod marks the given period current, clearing any previous
// mark. Returns sql.ErrNoRows if the period was never registered.
func (r *Repository) SetCurrentPeriod(period string) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE periods SET is_current = FALSE, version = version + 1 WHERE is_current`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return err
	}

	query = `UPDATE periods SET is_current = TRUE, version = version + 1 WHERE period = $1`
	res, err := tx.ExecContext(ctx, query, period)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func (r *Repository) SetPeriodOpen(period string, open bool) error {
	query := `
		UPDATE periods SET form_open = $1, version = version + 1 WHERE period = $2
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, open, period)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeletePeriod removes a period and, via the schema's cascades, its cooks,
// cooking dates, availability, preferences and assignments. Deleting the
// current period simply clears the current pointer with the row.
func (r *Repository) DeletePeriod(period string) error {
	query := `
		DELETE FROM periods WHERE period = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, period)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
