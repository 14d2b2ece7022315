package repository

import (
	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

// UpsertPreference stores a cook's preference tuple for a period, fully
// replacing any earlier submission.
func (r *Repository) UpsertPreference(pref *domain.Preference) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM preferences WHERE kerb = $1 AND period = $2`
	if _, err := tx.ExecContext(ctx, query, pref.Kerb, pref.Period); err != nil {
		return err
	}

	query = `
		INSERT INTO preferences (kerb, period, can_solo, can_lead, can_assist, max_cooking_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version
	`
	args := []any{pref.Kerb, pref.Period, pref.CanSolo, pref.CanLead, pref.CanAssist, pref.MaxCookingDays}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&pref.CreatedAt, &pref.Version); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetPreference(kerb string, period string) (*domain.Preference, error) {
	query := `
		SELECT can_solo, can_lead, can_assist, max_cooking_days, created_at, version
		FROM preferences WHERE kerb = $1 AND period = $2
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	pref := &domain.Preference{
		Kerb:   kerb,
		Period: period,
	}

	dst := []any{&pref.CanSolo, &pref.CanLead, &pref.CanAssist, &pref.MaxCookingDays, &pref.CreatedAt, &pref.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, kerb, period).Scan(dst...); err != nil {
		return nil, err
	}

	return pref, nil
}

func (r *Repository) GetPreferencesByPeriod(period string) ([]*domain.Preference, error) {
	query := `
		SELECT kerb, can_solo, can_lead, can_assist, max_cooking_days, created_at, version
		FROM preferences WHERE period = $1 ORDER BY kerb
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prefs := make([]*domain.Preference, 0)
	for rows.Next() {
		pref := &domain.Preference{
			Period: period,
		}
		dst := []any{&pref.Kerb, &pref.CanSolo, &pref.CanLead, &pref.CanAssist, &pref.MaxCookingDays, &pref.CreatedAt, &pref.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		prefs = append(prefs, pref)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prefs, nil
}
