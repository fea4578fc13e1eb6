package store

import (
	"context"

	"appointment-booking-api/internal/model"
)

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role) VALUES ($1,$2,$3,$4,$5)`,
		u.ID, u.Email, u.PasswordHash, u.Name, string(u.Role),
	)
	return classify(err)
}

const userColumns = `id, email, password_hash, name, role, created_at, updated_at`

func (s *Store) scanUser(ctx context.Context, where string, arg any) (*model.User, error) {
	u := &model.User{}
	var role string
	err := s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where+` = $1`, arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, classify(err)
	}
	u.Role = model.Role(role)
	return u, nil
}

func (s *Store) UserRole(ctx context.Context, id string) (model.Role, error) {
	var role string
	err := s.pool.QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, id).Scan(&role)
	if err != nil {
		return "", classify(err)
	}
	return model.Role(role), nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(ctx, "email", email)
}
