package repository

// AddCookingDate marks a date as requiring staffing. Idempotent; the foreign
// key on period rejects dates whose month was never registered.
func (r *Repository) AddCookingDate(period string, date string) error {
	query := `
		INSERT INTO cooking_dates (date, period) VALUES ($1, $2)
		ON CONFLICT (date) DO NOTHING
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, date, period); err != nil {
		return err
	}

	return nil
}

// RemoveCookingDate drops a cooking date; its assignment, if any, cascades
// away with it.
func (r *Repository) RemoveCookingDate(date string) error {
	query := `
		DELETE FROM cooking_dates WHERE date = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, date); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetCookingDates(period string) ([]string, error) {
	query := `
		SELECT date FROM cooking_dates WHERE period = $1 ORDER BY date
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}

func (r *Repository) IsCookingDate(date string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM cooking_dates WHERE date = $1)
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, date).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
