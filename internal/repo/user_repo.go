package repo

import (
	"context"
	"time"

	dom "Tracker/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides user persistence.
type UserRepo interface {
	Create(ctx context.Context, username, passwordHash, email string) (dom.User, error)
	GetByUsername(ctx context.Context, username string) (dom.User, error)
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error
	GetByIDWithValidResetToken(ctx context.Context, userID int64, token string, now time.Time) (dom.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

const userColumns = `id, username, password_hash, email, reset_token, reset_token_expiry, created_at`

// Create inserts a new user and returns it. Uniqueness of username and email is
// enforced by the corresponding constraints, surfacing as pg error 23505.
func (r *PGUserRepo) Create(ctx context.Context, username, passwordHash, email string) (dom.User, error) {
	query := `
		INSERT INTO users (username, password_hash, email)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	var u dom.User
	err := r.db.QueryRow(ctx, query, username, passwordHash, email).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt,
	)
	return u, err
}

// GetByUsername returns the user by username.
func (r *PGUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt)
	return u, err
}

// GetByEmail returns the user by email.
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt)
	return u, err
}

// SetResetToken stores a pending reset token and its expiry on the user row.
func (r *PGUserRepo) SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET reset_token = $2, reset_token_expiry = $3 WHERE id = $1`,
		userID, token, expiry,
	)
	return err
}

// GetByIDWithValidResetToken returns the user only when id and token match and
// the stored expiry is still in the future.
func (r *PGUserRepo) GetByIDWithValidResetToken(ctx context.Context, userID int64, token string, now time.Time) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND reset_token = $2 AND reset_token_expiry > $3`,
		userID, token, now,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.ResetToken, &u.ResetTokenExpiry, &u.CreatedAt)
	return u, err
}

// UpdatePassword replaces the password hash and clears any pending reset token.
func (r *PGUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, reset_token = NULL, reset_token_expiry = NULL WHERE id = $1`,
		userID, passwordHash,
	)
	return err
}
