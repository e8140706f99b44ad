package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	const op = "postgres.UserRepository.Create"

	query := fmt.Sprintf(`INSERT INTO %s(id, username, email, password_hash, role, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`, usersTable)

	_, err := r.db.Exec(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	const op = "postgres.UserRepository.FindByEmail"

	query := fmt.Sprintf(`SELECT id, username, email, password_hash, role, created_at FROM %s WHERE email=$1`, usersTable)

	var u domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return &u, true, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

// exists is only called with fixed column names.
func (r *UserRepository) exists(ctx context.Context, column, value string) (bool, error) {
	const op = "postgres.UserRepository.exists"

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s=$1)`, usersTable, column)

	var found bool
	if err := r.db.QueryRow(ctx, query, value).Scan(&found); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return found, nil
}
