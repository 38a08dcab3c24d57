package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Tracker/internal/auth"
	dom "Tracker/internal/domain"
	"Tracker/internal/notify"
	"Tracker/internal/repo"
	"Tracker/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailNotFound      = errors.New("email not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// UserService handles registration, credential checks and the password-reset flow.
type UserService struct {
	repo         repo.UserRepo
	tokens       *auth.Tokens
	notifier     *notify.Dispatcher
	resetURLBase string
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, tokens *auth.Tokens, notifier *notify.Dispatcher, resetURLBase string) *UserService {
	return &UserService{repo: r, tokens: tokens, notifier: notifier, resetURLBase: resetURLBase}
}

// Register creates a new user with a hashed password. The insert is atomic:
// a concurrent duplicate surfaces as a unique violation, never a partial write.
func (s *UserService) Register(ctx context.Context, username, password, email string) (dom.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || password == "" || email == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, username, string(hash), email)
	if err != nil {
		if name, ok := utils.UniqueViolationConstraint(err); ok {
			if strings.Contains(name, "email") {
				return dom.User{}, ErrEmailTaken
			}
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// ValidateCredentials checks username and password; returns the user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// RequestPasswordReset issues a reset token for the account behind email,
// persists it on the user row and emails the reset link.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEmailNotFound
		}
		return err
	}
	token, expiry, err := s.tokens.IssueReset(u.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	if err := s.repo.SetResetToken(ctx, u.ID, token, expiry); err != nil {
		return err
	}
	link := strings.TrimRight(s.resetURLBase, "/") + "/" + token
	if err := s.notifier.SendPasswordReset(ctx, u.Email, link); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// UpdatePassword consumes a reset token and sets a new password. The token must
// verify, match the one stored for its user and not be past its stored expiry;
// any mismatch is reported as ErrInvalidResetToken. On success the stored token
// is cleared, so a second use fails.
func (s *UserService) UpdatePassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidCredentials
	}
	claims, err := s.tokens.Verify(token)
	if err != nil || claims.Kind != auth.KindReset {
		return ErrInvalidResetToken
	}
	u, err := s.repo.GetByIDWithValidResetToken(ctx, claims.UserID, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, u.ID, string(hash))
}
