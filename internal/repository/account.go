package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/pixelboard/internal/domain"
)

const userColumns = "id, username, role, login, signup_ip, created_at"

// AccountRepository is the Postgres-backed account store. Signup tokens and
// sessions live in their own tables; token single-use is enforced by the
// SignUp transaction, not by callers.
type AccountRepository struct {
	db         *sqlx.DB
	signupTTL  time.Duration
	sessionTTL time.Duration
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sqlx.DB, signupTTL, sessionTTL time.Duration) *AccountRepository {
	return &AccountRepository{db: db, signupTTL: signupTTL, sessionTTL: sessionTTL}
}

// GetByLogin retrieves a user by login key.
func (r *AccountRepository) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE login = $1`, login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by login: %w", err)
	}
	return &user, nil
}

// GetByToken retrieves the user owning an unexpired session token.
func (r *AccountRepository) GetByToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		`SELECT u.id, u.username, u.role, u.login, u.signup_ip, u.created_at
		 FROM users u
		 JOIN sessions s ON s.user_id = u.id
		 WHERE s.token = $1 AND s.expires_at > now()`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by session token: %w", err)
	}
	return &user, nil
}

// GenerateSignupToken mints a single-use token bound to the given login key.
func (r *AccountRepository) GenerateSignupToken(ctx context.Context, login string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO signup_tokens (token, login, expires_at) VALUES ($1, $2, $3)`,
		token, login, time.Now().Add(r.signupTTL))
	if err != nil {
		return "", fmt.Errorf("insert signup token: %w", err)
	}
	return token, nil
}

// IsValidSignupToken reports whether token is unconsumed and unexpired.
func (r *AccountRepository) IsValidSignupToken(ctx context.Context, token string) (bool, error) {
	var valid bool
	err := r.db.GetContext(ctx, &valid,
		`SELECT EXISTS (
		   SELECT 1 FROM signup_tokens
		   WHERE token = $1 AND NOT used AND expires_at > now()
		 )`, token)
	if err != nil {
		return false, fmt.Errorf("check signup token: %w", err)
	}
	return valid, nil
}

// SignUp consumes the signup token and creates the user it was minted for,
// in one transaction. A name conflict rolls back so the token stays
// redeemable; a consumed or expired token returns domain.ErrInvalidToken.
func (r *AccountRepository) SignUp(ctx context.Context, name, token, ip string) (*domain.User, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin signup tx: %w", err)
	}
	defer tx.Rollback()

	var login string
	err = tx.GetContext(ctx, &login,
		`UPDATE signup_tokens SET used = TRUE
		 WHERE token = $1 AND NOT used AND expires_at > now()
		 RETURNING login`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("consume signup token: %w", err)
	}

	var user domain.User
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO users (username, role, login, signup_ip)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT DO NOTHING
		 RETURNING `+userColumns, name, domain.RoleUser, login, ip).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit signup tx: %w", err)
	}
	return &user, nil
}

// LogIn mints a session token for the user, bound to ip for audit.
func (r *AccountRepository) LogIn(ctx context.Context, user *domain.User, ip string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, ip, expires_at) VALUES ($1, $2, $3, $4)`,
		token, user.ID, ip, time.Now().Add(r.sessionTTL))
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return token, nil
}

// LogOut deletes the session. Deleting an unknown token is a no-op.
func (r *AccountRepository) LogOut(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
