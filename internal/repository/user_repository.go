package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Email, u.PasswordHash, u.FullName,
	)
	if database.IsUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `WHERE email = $1`, email)
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName *string) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET full_name = $1, updated_at = now() WHERE id = $2`, fullName, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) getOne(ctx context.Context, where string, arg any) (user.User, error) {
	var u user.User
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, full_name, created_at, updated_at FROM users `+where,
		arg,
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
