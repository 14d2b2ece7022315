package repository

import (
	"database/sql"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

func (r *Repository) GetAssignment(date string) (*domain.Assignment, error) {
	query := `
		SELECT lead_kerb, assistant_kerb, solo_kerb, pinned, created_at, version
		FROM assignments WHERE date = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	a := &domain.Assignment{
		Date: date,
	}

	dst := []any{&a.Lead, &a.Assistant, &a.Solo, &a.Pinned, &a.CreatedAt, &a.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, date).Scan(dst...); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *Repository) GetAssignmentsByPeriod(period string) ([]*domain.Assignment, error) {
	query := `
		SELECT date, lead_kerb, assistant_kerb, solo_kerb, pinned, created_at, version
		FROM assignments WHERE period = $1 ORDER BY date
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a := &domain.Assignment{}
		dst := []any{&a.Date, &a.Lead, &a.Assistant, &a.Solo, &a.Pinned, &a.CreatedAt, &a.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// SaveAssignment inserts or updates the assignment row for a date. Manual
// edits go through here after constraint validation.
func (r *Repository) SaveAssignment(period string, a *domain.Assignment) error {
	query := `
		INSERT INTO assignments (date, period, lead_kerb, assistant_kerb, solo_kerb, pinned)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date) DO UPDATE
		SET
			lead_kerb = EXCLUDED.lead_kerb,
			assistant_kerb = EXCLUDED.assistant_kerb,
			solo_kerb = EXCLUDED.solo_kerb,
			pinned = EXCLUDED.pinned,
			version = assignments.version + 1
		RETURNING created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{a.Date, period, a.Lead, a.Assistant, a.Solo, a.Pinned}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.Version); err != nil {
		return err
	}

	return nil
}

// DeleteAssignment clears both slots for a date unconditionally, pinned or
// not. Returns sql.ErrNoRows if the date carried no assignment.
func (r *Repository) DeleteAssignment(date string) error {
	query := `
		DELETE FROM assignments WHERE date = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	res, err := r.dbpool.ExecContext(ctx, query, date)
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

// ClearAssignments wipes a period's assignments. Pins survive unless the
// caller explicitly asks for them too.
func (r *Repository) ClearAssignments(period string, includePinned bool) error {
	query := `
		DELETE FROM assignments WHERE period = $1 AND (NOT pinned OR $2)
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, period, includePinned); err != nil {
		return err
	}

	return nil
}

// ReplaceGeneratedAssignments commits a generation run in one transaction:
// every non-pinned row of the period is dropped and the freshly generated
// assignments written. Pinned rows are untouched; the generation result
// carries them through, so they are skipped on insert.
func (r *Repository) ReplaceGeneratedAssignments(period string, assignments []*domain.Assignment) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM assignments WHERE period = $1 AND NOT pinned`
	if _, err := tx.ExecContext(ctx, query, period); err != nil {
		return err
	}

	query = `
		INSERT INTO assignments (date, period, lead_kerb, assistant_kerb, solo_kerb, pinned)
		VALUES ($1, $2, $3, $4, $5, FALSE)
	`
	for _, a := range assignments {
		if a.Pinned {
			continue
		}
		if _, err := tx.ExecContext(ctx, query, a.Date, period, a.Lead, a.Assistant, a.Solo); err != nil {
			return err
		}
	}

	return tx.Commit()
}
