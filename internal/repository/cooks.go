package repository

// AddCook registers a cook for a period. Registering an already-registered
// cook is a no-op. Foreign keys reject unknown periods and kerbs; the
// handler maps those constraint violations to domain errors.
func (r *Repository) AddCook(period string, kerb string) error {
	query := `
		INSERT INTO period_cooks (period, kerb) VALUES ($1, $2)
		ON CONFLICT (period, kerb) DO NOTHING
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, period, kerb); err != nil {
		return err
	}

	return nil
}

// RemoveCook drops a cook from a period's roster; the schema cascades the
// cook's availability and preference for that period.
func (r *Repository) RemoveCook(period string, kerb string) error {
	query := `
		DELETE FROM period_cooks WHERE period = $1 AND kerb = $2
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, period, kerb); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCooks(period string) ([]string, error) {
	query := `
		SELECT kerb FROM period_cooks WHERE period = $1 ORDER BY kerb
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	kerbs := make([]string, 0)
	for rows.Next() {
		var kerb string
		if err := rows.Scan(&kerb); err != nil {
			return nil, err
		}
		kerbs = append(kerbs, kerb)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return kerbs, nil
}

func (r *Repository) IsRegisteredCook(period string, kerb string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM period_cooks WHERE period = $1 AND kerb = $2)
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	var registered bool
	if err := r.dbpool.QueryRowContext(ctx, query, period, kerb).Scan(&registered); err != nil {
		return false, err
	}

	return registered, nil
}

// PeriodExists distinguishes "period not registered" from other lookups
// without loading the whole row.
func (r *Repository) PeriodExists(period string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM periods WHERE period = $1)
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, period).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
