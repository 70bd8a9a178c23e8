package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"workspace_backend/internal/feature/auth/domain/entity"
	"workspace_backend/internal/platform/mail"
	"workspace_backend/internal/platform/token"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// defaultSessionTTL is the refresh session lifetime.
	defaultSessionTTL = 30 * 24 * time.Hour

	// defaultMaxSessions caps concurrent refresh sessions per user.
	defaultMaxSessions = 5
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists when the
	// email is taken; the check is a store constraint, not an application
	// pre-check, so two concurrent registrations cannot both win.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by (lower-cased) email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByVerificationToken retrieves the unique holder of a verification
	// token value. Returns ErrUserNotFound when no user holds it.
	FindByVerificationToken(ctx context.Context, tokenValue string) (*entity.User, error)

	// FindByResetToken retrieves the unique holder of a reset token value.
	FindByResetToken(ctx context.Context, tokenValue string) (*entity.User, error)

	// SetVerificationToken stores a new verification token pair, replacing
	// any outstanding one.
	SetVerificationToken(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error

	// ConsumeVerificationToken atomically clears the token pair and sets
	// EmailVerifiedAt, guarded on the token still being present. It reports
	// false when no row matched, i.e. the token was already consumed or
	// never existed.
	ConsumeVerificationToken(ctx context.Context, tokenValue string, verifiedAt time.Time) (bool, error)

	// SetResetToken stores a new password reset token pair, replacing any
	// outstanding one.
	SetResetToken(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error

	// ConsumeResetToken atomically clears the reset token pair and
	// overwrites the password hash, guarded on the token still being
	// present. It reports false when no row matched.
	ConsumeResetToken(ctx context.Context, tokenValue, passwordHash string) (bool, error)
}

// TokenIssuer mints opaque single-use tokens with per-kind TTLs.
type TokenIssuer interface {
	Issue(kind token.Kind) (string, time.Time, error)
}

// JWTGenerator creates signed access tokens.
type JWTGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// AuthUsecase implements registration, verification, password reset and
// session lifecycle.
type AuthUsecase struct {
	users       UserRepository
	sessions    SessionRepository
	tokens      TokenIssuer
	jwt         JWTGenerator
	mailer      mail.Dispatcher
	sessionTTL  time.Duration
	maxSessions int
	now         func() time.Time
}

// Option configures an AuthUsecase.
type Option func(*AuthUsecase)

// WithSessionTTL overrides the refresh session lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(u *AuthUsecase) {
		if ttl > 0 {
			u.sessionTTL = ttl
		}
	}
}

// WithMaxSessions overrides the per-user session cap.
func WithMaxSessions(n int) Option {
	return func(u *AuthUsecase) {
		if n > 0 {
			u.maxSessions = n
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(u *AuthUsecase) {
		if now != nil {
			u.now = now
		}
	}
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenIssuer,
	jwtGenerator JWTGenerator, mailer mail.Dispatcher, opts ...Option) *AuthUsecase {
	u := &AuthUsecase{
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		jwt:         jwtGenerator,
		mailer:      mailer,
		sessionTTL:  defaultSessionTTL,
		maxSessions: defaultMaxSessions,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// validatePassword checks that a password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new user and starts email verification.
// The verification email is dispatched best-effort: a delivery failure does
// not roll the account back.
func (u *AuthUsecase) Signup(ctx context.Context, email, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := u.beginVerification(ctx, user); err != nil {
		// The account exists; the user can request a fresh email later.
		slog.Warn("verification dispatch failed after signup", "error", err, "user_id", user.ID)
	}
	return user, nil
}

// beginVerification mints a verification token, persists it and dispatches
// the email.
func (u *AuthUsecase) beginVerification(ctx context.Context, user *entity.User) error {
	value, expiresAt, err := u.tokens.Issue(token.KindVerification)
	if err != nil {
		return fmt.Errorf("failed to issue verification token: %w", err)
	}
	if err := u.users.SetVerificationToken(ctx, user.ID, value, expiresAt); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}
	return u.mailer.Send(ctx, mail.Message{
		Kind:      mail.KindVerification,
		Recipient: user.Email,
		Token:     value,
	})
}

// ResendVerification issues a fresh verification token for an unverified
// user, superseding any outstanding one.
func (u *AuthUsecase) ResendVerification(ctx context.Context, userID uint) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Verified() {
		return ErrAlreadyVerified
	}
	return u.beginVerification(ctx, user)
}

// CompleteVerification validates and consumes a verification token, marking
// the email verified. Consumption is a guarded update: of any number of
// concurrent calls with the same token, exactly one succeeds and the rest
// observe ErrTokenInvalid.
func (u *AuthUsecase) CompleteVerification(ctx context.Context, tokenValue string) error {
	if tokenValue == "" {
		return ErrTokenInvalid
	}
	user, err := u.users.FindByVerificationToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrTokenInvalid
		}
		return err
	}
	if user.VerificationExpired(u.now()) {
		return ErrTokenExpired
	}

	ok, err := u.users.ConsumeVerificationToken(ctx, tokenValue, u.now())
	if err != nil {
		return err
	}
	if !ok {
		// Lost a race: the token was consumed between the read and the update.
		return ErrTokenInvalid
	}
	slog.Info("email verified", "user_id", user.ID)
	return nil
}

// BeginPasswordReset starts the forgot-password flow. It always returns a
// success-shaped result for unknown emails and performs the same token work
// either way, so neither the response nor its timing reveals whether an
// account exists.
func (u *AuthUsecase) BeginPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	value, expiresAt, err := u.tokens.Issue(token.KindPasswordReset)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}

	if err := u.users.SetResetToken(ctx, user.ID, value, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if err := u.mailer.Send(ctx, mail.Message{
		Kind:      mail.KindPasswordReset,
		Recipient: user.Email,
		Token:     value,
	}); err != nil {
		slog.Warn("password reset dispatch failed", "error", err, "user_id", user.ID)
	}
	return nil
}

// CompletePasswordReset validates and consumes a reset token, overwriting
// the password hash in the same guarded update. All refresh sessions of the
// user are revoked afterwards.
func (u *AuthUsecase) CompletePasswordReset(ctx context.Context, tokenValue, newPassword string) error {
	if tokenValue == "" {
		return ErrTokenInvalid
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByResetToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrTokenInvalid
		}
		return err
	}
	if user.ResetExpired(u.now()) {
		return ErrTokenExpired
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ok, err := u.users.ConsumeResetToken(ctx, tokenValue, string(hashed))
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenInvalid
	}

	if err := u.sessions.RevokeAllByUserID(ctx, user.ID); err != nil {
		slog.Warn("failed to revoke sessions after password reset", "error", err, "user_id", user.ID)
	}
	slog.Info("password reset completed", "user_id", user.ID)
	return nil
}

// Login authenticates a user and returns an access token plus a refresh
// session ID. A bcrypt comparison runs even for unknown emails to keep
// response timing uniform.
func (u *AuthUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (string, string, error) {
	email = NormalizeEmail(email)
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the path even when
	// the user does not exist.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", "", errors.New("invalid email or password")
	}

	refresh, err := u.createSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return "", "", err
	}

	access, err := u.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	return access, refresh, nil
}

// Refresh rotates a refresh session and returns a new token pair.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (string, string, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}
	if session.IsRevoked() {
		return "", "", ErrSessionRevoked
	}
	if session.IsExpired() {
		return "", "", ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return "", "", err
	}

	// Rotate: the presented token is single-use.
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return "", "", err
	}
	refresh, err := u.createSession(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return "", "", err
	}

	access, err := u.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	return access, refresh, nil
}

// Logout revokes the presented refresh session.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	err := u.sessions.Revoke(ctx, refreshToken)
	if errors.Is(err, ErrSessionNotFound) {
		// Logging out an unknown session is a no-op.
		return nil
	}
	return err
}

// createSession stores a new refresh session, evicting the oldest one when
// the per-user cap is reached.
func (u *AuthUsecase) createSession(ctx context.Context, userID uint, userAgent, ipAddress string) (string, error) {
	count, err := u.sessions.CountByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if count >= int64(u.maxSessions) {
		if err := u.sessions.DeleteOldestByUserID(ctx, userID); err != nil {
			return "", err
		}
	}

	id, err := token.NewValue()
	if err != nil {
		return "", err
	}
	now := u.now()
	session := &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return id, nil
}
