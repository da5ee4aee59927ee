package user

import (
	"context"
	"database/sql"
	"errors"

	"dtr/internal/store"
)

// Repository is the persistence contract for users. Implementations must
// enforce uniqueness of email on Insert.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Insert(ctx context.Context, u User) error
	ListByRole(ctx context.Context, role string) ([]User, error)
	UpdateApproval(ctx context.Context, email, approval string) error
}

// PostgresRepository persists users in Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a repo.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByEmail returns the user for email, or nil when absent.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, surname, role, password, approval, created_at
		FROM users WHERE email = $1
	`, email)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Surname, &u.Role, &u.PasswordHash, &u.Approval, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Insert writes a new user. A duplicate email surfaces as ErrEmailTaken.
func (r *PostgresRepository) Insert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, surname, role, password, approval, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Email, u.Name, u.Surname, u.Role, u.PasswordHash, u.Approval, u.CreatedAt)
	if store.IsUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// ListByRole returns all users with the given role.
func (r *PostgresRepository) ListByRole(ctx context.Context, role string) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, name, surname, role, password, approval, created_at
		FROM users WHERE role = $1
		ORDER BY email
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Surname, &u.Role, &u.PasswordHash, &u.Approval, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateApproval overwrites the approval field for the user with this email.
func (r *PostgresRepository) UpdateApproval(ctx context.Context, email, approval string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET approval = $2 WHERE email = $1`, email, approval)
	return err
}
