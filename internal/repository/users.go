package repository

import (
	"database/sql"

	"github.com/mit-pika/cook-roster/backend/internal/domain"
)

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT kerb, password_hash, email, role, food_stud_seat, is_active, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Kerb, &user.PasswordHash, &user.Email, &user.Role, &user.FoodStudSeat, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByKerb(kerb string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, email, role, food_stud_seat, is_active, created_at, version
		FROM users WHERE kerb = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	user := &domain.User{
		Kerb: kerb,
	}

	dst := []any{&user.ID, &user.PasswordHash, &user.Email, &user.Role, &user.FoodStudSeat, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, kerb).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (kerb, password_hash, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{user.Kerb, user.PasswordHash, user.Email, user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING kerb, created_at, version
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	args := []any{user.PasswordHash, user.Email, user.Role, user.IsActive, user.ID, user.Version}
	dst := []any{&user.Kerb, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `
		SELECT id, kerb, password_hash, email, role, food_stud_seat, is_active, created_at, version FROM users
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Kerb, &user.PasswordHash, &user.Email, &user.Role, &user.FoodStudSeat, &user.IsActive, &user.CreatedAt, &user.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) DeleteUser(id int64) error {
	query := `
		DELETE FROM users WHERE id = $1
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// SetFoodStudSeat hands a food-stud seat to the given user, demoting whoever
// held it before. The seat holder gets the foodstud role.
func (r *Repository) SetFoodStudSeat(seat string, kerb string) error {
	ctx, cancel := r.txCtx()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE users
		SET role = $1, food_stud_seat = NULL, version = version + 1
		WHERE food_stud_seat = $2
	`
	if _, err := tx.ExecContext(ctx, query, domain.RoleCook, seat); err != nil {
		return err
	}

	query = `
		UPDATE users
		SET role = $1, food_stud_seat = $2, version = version + 1
		WHERE kerb = $3 AND role <> $4
	`
	res, err := tx.ExecContext(ctx, query, domain.RoleFoodStud, seat, kerb, domain.RoleAdmin)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the kerb does not exist or it belongs to an admin.
		return sql.ErrNoRows
	}

	return tx.Commit()
}
