package repository

// AddAvailability records that a cook is willing to cook on a date.
// Idempotent set-insert; the composite foreign key on (period, kerb) rejects
// cooks who are not on the period's roster.
func (r *Repository) AddAvailability(kerb string, period string, date string) error {
	query := `
		INSERT INTO availabilities (kerb, period, date) VALUES ($1, $2, $3)
		ON CONFLICT (kerb, date) DO NOTHING
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, kerb, period, date); err != nil {
		return err
	}

	return nil
}

func (r *Repository) RemoveAvailability(kerb string, date string) error {
	query := `
		DELETE FROM availabilities WHERE kerb = $1 AND date = $2
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, kerb, date); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAvailability(kerb string, period string) ([]string, error) {
	query := `
		SELECT date FROM availabilities WHERE kerb = $1 AND period = $2 ORDER BY date
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, kerb, period)
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

// GetAvailabilityByPeriod loads every cook's declared dates for a period in
// one query, keyed by kerb. Used to snapshot the engine input.
func (r *Repository) GetAvailabilityByPeriod(period string) (map[string][]string, error) {
	query := `
		SELECT kerb, date FROM availabilities WHERE period = $1 ORDER BY kerb, date
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availability := make(map[string][]string)
	for rows.Next() {
		var kerb, date string
		if err := rows.Scan(&kerb, &date); err != nil {
			return nil, err
		}
		availability[kerb] = append(availability[kerb], date)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availability, nil
}
