package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"workspace_backend/internal/feature/auth/domain/entity"
	"workspace_backend/internal/platform/mail"
	"workspace_backend/internal/platform/token"
)

// mockUserRepository is a function-field mock for UserRepository.
type mockUserRepository struct {
	createFunc                  func(ctx context.Context, user *entity.User) error
	findByEmailFunc             func(ctx context.Context, email string) (*entity.User, error)
	findByIDFunc                func(ctx context.Context, id uint) (*entity.User, error)
	findByVerificationTokenFunc func(ctx context.Context, tokenValue string) (*entity.User, error)
	findByResetTokenFunc        func(ctx context.Context, tokenValue string) (*entity.User, error)
	setVerificationTokenFunc    func(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error
	consumeVerificationFunc     func(ctx context.Context, tokenValue string, verifiedAt time.Time) (bool, error)
	setResetTokenFunc           func(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error
	consumeResetFunc            func(ctx context.Context, tokenValue, passwordHash string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.createFunc(ctx, user)
}
func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.findByEmailFunc(ctx, email)
}
func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	return m.findByIDFunc(ctx, id)
}
func (m *mockUserRepository) FindByVerificationToken(ctx context.Context, tokenValue string) (*entity.User, error) {
	return m.findByVerificationTokenFunc(ctx, tokenValue)
}
func (m *mockUserRepository) FindByResetToken(ctx context.Context, tokenValue string) (*entity.User, error) {
	return m.findByResetTokenFunc(ctx, tokenValue)
}
func (m *mockUserRepository) SetVerificationToken(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error {
	return m.setVerificationTokenFunc(ctx, userID, tokenValue, expiresAt)
}
func (m *mockUserRepository) ConsumeVerificationToken(ctx context.Context, tokenValue string, verifiedAt time.Time) (bool, error) {
	return m.consumeVerificationFunc(ctx, tokenValue, verifiedAt)
}
func (m *mockUserRepository) SetResetToken(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error {
	return m.setResetTokenFunc(ctx, userID, tokenValue, expiresAt)
}
func (m *mockUserRepository) ConsumeResetToken(ctx context.Context, tokenValue, passwordHash string) (bool, error) {
	return m.consumeResetFunc(ctx, tokenValue, passwordHash)
}

// mockSessionRepository is a function-field mock for SessionRepository.
type mockSessionRepository struct {
	createFunc             func(ctx context.Context, session *entity.Session) error
	findByIDFunc           func(ctx context.Context, id string) (*entity.Session, error)
	findByUserIDFunc       func(ctx context.Context, userID uint) ([]*entity.Session, error)
	revokeFunc             func(ctx context.Context, id string) error
	revokeAllByUserIDFunc  func(ctx context.Context, userID uint) error
	deleteExpiredFunc      func(ctx context.Context) (int64, error)
	countByUserIDFunc      func(ctx context.Context, userID uint) (int64, error)
	deleteOldestByUserFunc func(ctx context.Context, userID uint) error
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return m.createFunc(ctx, session)
}
func (m *mockSessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	return m.findByIDFunc(ctx, id)
}
func (m *mockSessionRepository) FindByUserID(ctx context.Context, userID uint) ([]*entity.Session, error) {
	return m.findByUserIDFunc(ctx, userID)
}
func (m *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	return m.revokeFunc(ctx, id)
}
func (m *mockSessionRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return m.revokeAllByUserIDFunc(ctx, userID)
}
func (m *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return m.deleteExpiredFunc(ctx)
}
func (m *mockSessionRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	return m.countByUserIDFunc(ctx, userID)
}
func (m *mockSessionRepository) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	return m.deleteOldestByUserFunc(ctx, userID)
}

// mockTokenIssuer mints predictable token values.
type mockTokenIssuer struct {
	issueFunc func(kind token.Kind) (string, time.Time, error)
}

func (m *mockTokenIssuer) Issue(kind token.Kind) (string, time.Time, error) {
	return m.issueFunc(kind)
}

// mockJWTGenerator returns a fixed access token.
type mockJWTGenerator struct {
	generateFunc func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	return m.generateFunc(userID, email)
}

// mockDispatcher records dispatched mail messages.
type mockDispatcher struct {
	sent    []mail.Message
	sendErr error
}

func (m *mockDispatcher) Send(_ context.Context, msg mail.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func defaultIssuer() *mockTokenIssuer {
	return &mockTokenIssuer{
		issueFunc: func(kind token.Kind) (string, time.Time, error) {
			return "issued-" + string(kind), time.Now().Add(time.Hour), nil
		},
	}
}

func defaultJWT() *mockJWTGenerator {
	return &mockJWTGenerator{
		generateFunc: func(userID uint, email string) (string, error) {
			return "access-token", nil
		},
	}
}

// idleSessions is a session repository for flows that never touch sessions.
func idleSessions() *mockSessionRepository {
	return &mockSessionRepository{
		countByUserIDFunc: func(ctx context.Context, userID uint) (int64, error) { return 0, nil },
		createFunc:        func(ctx context.Context, session *entity.Session) error { return nil },
		revokeAllByUserIDFunc: func(ctx context.Context, userID uint) error {
			return nil
		},
	}
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("creates user with hashed password and dispatches verification", func(t *testing.T) {
		var storedToken string
		users := &mockUserRepository{
			createFunc: func(ctx context.Context, user *entity.User) error {
				user.ID = 1
				return nil
			},
			setVerificationTokenFunc: func(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error {
				storedToken = tokenValue
				return nil
			},
		}
		mailer := &mockDispatcher{}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), mailer)

		user, err := uc.Signup(context.Background(), "  New@Example.COM ", "password123")

		require.NoError(t, err, "signup should succeed")
		assert.Equal(t, "new@example.com", user.Email, "email must be canonicalized")
		assert.NotEqual(t, "password123", user.Password, "password must not be stored raw")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))

		require.Len(t, mailer.sent, 1, "one verification mail should be sent")
		assert.Equal(t, mail.KindVerification, mailer.sent[0].Kind)
		assert.Equal(t, "new@example.com", mailer.sent[0].Recipient)
		assert.Equal(t, storedToken, mailer.sent[0].Token, "mail must carry the stored token")
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{})

		_, err := uc.Signup(context.Background(), "a@example.com", "short")

		assert.Error(t, err, "short passwords must be rejected")
	})

	t.Run("duplicate email surfaces ErrEmailAlreadyExists", func(t *testing.T) {
		users := &mockUserRepository{
			createFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{})

		_, err := uc.Signup(context.Background(), "dup@example.com", "password123")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("mail failure does not roll back the account", func(t *testing.T) {
		users := &mockUserRepository{
			createFunc: func(ctx context.Context, user *entity.User) error {
				user.ID = 7
				return nil
			},
			setVerificationTokenFunc: func(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error {
				return nil
			},
		}
		mailer := &mockDispatcher{sendErr: errors.New("smtp down")}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), mailer)

		user, err := uc.Signup(context.Background(), "mail@example.com", "password123")

		require.NoError(t, err, "delivery failure must not fail signup")
		assert.Equal(t, uint(7), user.ID)
	})
}

func TestAuthUsecase_CompleteVerification(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	holder := func(expiresAt time.Time) *entity.User {
		tok := "tok-v"
		return &entity.User{ID: 3, Email: "v@example.com", VerificationToken: &tok, VerificationTokenExpiresAt: &expiresAt}
	}

	t.Run("valid token verifies exactly once", func(t *testing.T) {
		consumed := false
		users := &mockUserRepository{
			findByVerificationTokenFunc: func(ctx context.Context, tokenValue string) (*entity.User, error) {
				return holder(now.Add(time.Hour)), nil
			},
			consumeVerificationFunc: func(ctx context.Context, tokenValue string, verifiedAt time.Time) (bool, error) {
				if consumed {
					return false, nil
				}
				consumed = true
				assert.Equal(t, now, verifiedAt, "verification timestamp comes from the clock")
				return true, nil
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{}, WithClock(clock))

		require.NoError(t, uc.CompleteVerification(context.Background(), "tok-v"))
		assert.ErrorIs(t, uc.CompleteVerification(context.Background(), "tok-v"), ErrTokenInvalid,
			"second presentation of a consumed token must fail")
	})

	t.Run("unknown token returns ErrTokenInvalid", func(t *testing.T) {
		users := &mockUserRepository{
			findByVerificationTokenFunc: func(ctx context.Context, tokenValue string) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{}, WithClock(clock))

		assert.ErrorIs(t, uc.CompleteVerification(context.Background(), "ghost"), ErrTokenInvalid)
	})

	t.Run("empty token returns ErrTokenInvalid", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{})

		assert.ErrorIs(t, uc.CompleteVerification(context.Background(), ""), ErrTokenInvalid)
	})

	t.Run("token expired exactly at the boundary", func(t *testing.T) {
		users := &mockUserRepository{
			findByVerificationTokenFunc: func(ctx context.Context, tokenValue string) (*entity.User, error) {
				return holder(now), nil
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{}, WithClock(clock))

		assert.ErrorIs(t, uc.CompleteVerification(context.Background(), "tok-v"), ErrTokenExpired,
			"expiry time itself is already expired")
	})

	t.Run("token valid one instant before expiry", func(t *testing.T) {
		users := &mockUserRepository{
			findByVerificationTokenFunc: func(ctx context.Context, tokenValue string) (*entity.User, error) {
				return holder(now.Add(time.Nanosecond)), nil
			},
			consumeVerificationFunc: func(ctx context.Context, tokenValue string, verifiedAt time.Time) (bool, error) {
				return true, nil
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{}, WithClock(clock))

		assert.NoError(t, uc.CompleteVerification(context.Background(), "tok-v"))
	})
}

func TestAuthUsecase_ResendVerification(t *testing.T) {
	t.Run("already verified returns ErrAlreadyVerified", func(t *testing.T) {
		verifiedAt := time.Now()
		users := &mockUserRepository{
			findByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, Email: "done@example.com", EmailVerifiedAt: &verifiedAt}, nil
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{})

		assert.ErrorIs(t, uc.ResendVerification(context.Background(), 1), ErrAlreadyVerified)
	})

	t.Run("unverified user gets a fresh token", func(t *testing.T) {
		var storedToken string
		users := &mockUserRepository{
			findByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, Email: "again@example.com"}, nil
			},
			setVerificationTokenFunc: func(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error {
				storedToken = tokenValue
				return nil
			},
		}
		mailer := &mockDispatcher{}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), mailer)

		require.NoError(t, uc.ResendVerification(context.Background(), 1))
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, storedToken, mailer.sent[0].Token)
	})
}

func TestAuthUsecase_BeginPasswordReset(t *testing.T) {
	t.Run("known email stores token and dispatches mail", func(t *testing.T) {
		var storedToken string
		users := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				assert.Equal(t, "reset@example.com", email, "lookup uses the canonical email")
				return &entity.User{ID: 5, Email: email}, nil
			},
			setResetTokenFunc: func(ctx context.Context, userID uint, tokenValue string, expiresAt time.Time) error {
				storedToken = tokenValue
				return nil
			},
		}
		mailer := &mockDispatcher{}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), mailer)

		require.NoError(t, uc.BeginPasswordReset(context.Background(), "Reset@Example.com"))
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, mail.KindPasswordReset, mailer.sent[0].Kind)
		assert.Equal(t, storedToken, mailer.sent[0].Token)
	})

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		issued := false
		issuer := &mockTokenIssuer{
			issueFunc: func(kind token.Kind) (string, time.Time, error) {
				issued = true
				return "tok", time.Now().Add(time.Hour), nil
			},
		}
		users := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
		}
		mailer := &mockDispatcher{}
		uc := NewAuthUsecase(users, idleSessions(), issuer, defaultJWT(), mailer)

		err := uc.BeginPasswordReset(context.Background(), "nobody@example.com")

		assert.NoError(t, err, "unknown emails must look like success")
		assert.Empty(t, mailer.sent, "no mail for unknown accounts")
		assert.True(t, issued, "token work happens before the lookup so timing stays uniform")
	})
}

func TestAuthUsecase_CompletePasswordReset(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	holder := func(expiresAt time.Time) *entity.User {
		tok := "tok-r"
		return &entity.User{ID: 9, Email: "r@example.com", ResetPasswordToken: &tok, ResetPasswordTokenExpiresAt: &expiresAt}
	}

	t.Run("valid token replaces password and revokes sessions", func(t *testing.T) {
		var newHash string
		users := &mockUserRepository{
			findByResetTokenFunc: func(ctx context.Context, tokenValue string) (*entity.User, error) {
				return holder(now.Add(time.Hour)), nil
			},
			consumeResetFunc: func(ctx context.Context, tokenValue, passwordHash string) (bool, error) {
				newHash = passwordHash
				return true, nil
			},
		}
		revokedUser := uint(0)
		sessions := idleSessions()
		sessions.revokeAllByUserIDFunc = func(ctx context.Context, userID uint) error {
			revokedUser = userID
			return nil
		}
		uc := NewAuthUsecase(users, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{}, WithClock(clock))

		require.NoError(t, uc.CompletePasswordReset(context.Background(), "tok-r", "newpassword1"))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpassword1")))
		assert.Equal(t, uint(9), revokedUser, "all sessions of the user are revoked")
	})

	t.Run("consumed token returns ErrTokenInvalid", func(t *testing.T) {
		users := &mockUserRepository{
			findByResetTokenFunc: func(ctx context.Context, tokenValue string) (*entity.User, error) {
				return holder(now.Add(time.Hour)), nil
			},
			consumeResetFunc: func(ctx context.Context, tokenValue, passwordHash string) (bool, error) {
				return false, nil
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{}, WithClock(clock))

		assert.ErrorIs(t, uc.CompletePasswordReset(context.Background(), "tok-r", "newpassword1"), ErrTokenInvalid)
	})

	t.Run("expired token returns ErrTokenExpired", func(t *testing.T) {
		users := &mockUserRepository{
			findByResetTokenFunc: func(ctx context.Context, tokenValue string) (*entity.User, error) {
				return holder(now.Add(-time.Minute)), nil
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{}, WithClock(clock))

		assert.ErrorIs(t, uc.CompletePasswordReset(context.Background(), "tok-r", "newpassword1"), ErrTokenExpired)
	})

	t.Run("weak replacement password is rejected before any lookup", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{})

		assert.Error(t, uc.CompletePasswordReset(context.Background(), "tok-r", "tiny"))
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	password := "password123"

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		hash := hashPassword(t, password)
		users := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email, Password: hash}, nil
			},
		}
		var created *entity.Session
		sessions := idleSessions()
		sessions.createFunc = func(ctx context.Context, session *entity.Session) error {
			created = session
			return nil
		}
		uc := NewAuthUsecase(users, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{})

		access, refresh, err := uc.Login(context.Background(), "Login@Example.com", password, "agent", "10.0.0.1")

		require.NoError(t, err, "login should succeed")
		assert.Equal(t, "access-token", access)
		require.NotNil(t, created, "a refresh session must be stored")
		assert.Equal(t, created.ID, refresh, "returned refresh token is the session ID")
		assert.Len(t, refresh, 64, "refresh token is a 64-character hex value")
		assert.Equal(t, "agent", created.UserAgent)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash := hashPassword(t, password)
		users := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email, Password: hash}, nil
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{})

		_, _, err := uc.Login(context.Background(), "login@example.com", "wrong-password", "", "")

		assert.Error(t, err, "wrong password must fail")
	})

	t.Run("unknown email fails with the same error shape", func(t *testing.T) {
		users := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
		}
		uc := NewAuthUsecase(users, idleSessions(), defaultIssuer(), defaultJWT(), &mockDispatcher{})

		_, _, err := uc.Login(context.Background(), "ghost@example.com", password, "", "")

		require.Error(t, err)
		assert.Equal(t, "invalid email or password", err.Error(), "no account enumeration through the error")
	})

	t.Run("session cap evicts the oldest session", func(t *testing.T) {
		hash := hashPassword(t, password)
		users := &mockUserRepository{
			findByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email, Password: hash}, nil
			},
		}
		evicted := false
		sessions := idleSessions()
		sessions.countByUserIDFunc = func(ctx context.Context, userID uint) (int64, error) { return 2, nil }
		sessions.deleteOldestByUserFunc = func(ctx context.Context, userID uint) error {
			evicted = true
			return nil
		}
		uc := NewAuthUsecase(users, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{}, WithMaxSessions(2))

		_, _, err := uc.Login(context.Background(), "cap@example.com", password, "", "")

		require.NoError(t, err)
		assert.True(t, evicted, "the oldest session is evicted at the cap")
	})
}

func TestAuthUsecase_Refresh(t *testing.T) {
	activeSession := func(id string) *entity.Session {
		return &entity.Session{
			ID:        id,
			UserID:    1,
			CreatedAt: time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	t.Run("rotates the presented session", func(t *testing.T) {
		users := &mockUserRepository{
			findByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
				return &entity.User{ID: id, Email: "r@example.com"}, nil
			},
		}
		var revoked string
		var created *entity.Session
		sessions := idleSessions()
		sessions.findByIDFunc = func(ctx context.Context, id string) (*entity.Session, error) {
			return activeSession(id), nil
		}
		sessions.revokeFunc = func(ctx context.Context, id string) error {
			revoked = id
			return nil
		}
		sessions.createFunc = func(ctx context.Context, session *entity.Session) error {
			created = session
			return nil
		}
		uc := NewAuthUsecase(users, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{})

		access, refresh, err := uc.Refresh(context.Background(), "old-refresh", "agent", "10.0.0.1")

		require.NoError(t, err)
		assert.Equal(t, "access-token", access)
		assert.Equal(t, "old-refresh", revoked, "the presented token is revoked")
		require.NotNil(t, created)
		assert.Equal(t, created.ID, refresh)
		assert.NotEqual(t, "old-refresh", refresh, "rotation issues a new token")
	})

	t.Run("revoked session returns ErrSessionRevoked", func(t *testing.T) {
		sessions := idleSessions()
		sessions.findByIDFunc = func(ctx context.Context, id string) (*entity.Session, error) {
			s := activeSession(id)
			revokedAt := time.Now()
			s.RevokedAt = &revokedAt
			return s, nil
		}
		uc := NewAuthUsecase(&mockUserRepository{}, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{})

		_, _, err := uc.Refresh(context.Background(), "revoked", "", "")

		assert.ErrorIs(t, err, ErrSessionRevoked)
	})

	t.Run("expired session returns ErrSessionExpired", func(t *testing.T) {
		sessions := idleSessions()
		sessions.findByIDFunc = func(ctx context.Context, id string) (*entity.Session, error) {
			s := activeSession(id)
			s.ExpiresAt = time.Now().Add(-time.Minute)
			return s, nil
		}
		uc := NewAuthUsecase(&mockUserRepository{}, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{})

		_, _, err := uc.Refresh(context.Background(), "stale", "", "")

		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("unknown session returns ErrSessionNotFound", func(t *testing.T) {
		sessions := idleSessions()
		sessions.findByIDFunc = func(ctx context.Context, id string) (*entity.Session, error) {
			return nil, ErrSessionNotFound
		}
		uc := NewAuthUsecase(&mockUserRepository{}, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{})

		_, _, err := uc.Refresh(context.Background(), "missing", "", "")

		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestAuthUsecase_Logout(t *testing.T) {
	t.Run("revokes the session", func(t *testing.T) {
		var revoked string
		sessions := idleSessions()
		sessions.revokeFunc = func(ctx context.Context, id string) error {
			revoked = id
			return nil
		}
		uc := NewAuthUsecase(&mockUserRepository{}, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{})

		require.NoError(t, uc.Logout(context.Background(), "sess-x"))
		assert.Equal(t, "sess-x", revoked)
	})

	t.Run("unknown session is a no-op", func(t *testing.T) {
		sessions := idleSessions()
		sessions.revokeFunc = func(ctx context.Context, id string) error {
			return ErrSessionNotFound
		}
		uc := NewAuthUsecase(&mockUserRepository{}, sessions, defaultIssuer(), defaultJWT(), &mockDispatcher{})

		assert.NoError(t, uc.Logout(context.Background(), "missing"))
	})
}
