package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lmercat/productivity-api/internal/models"
	"github.com/lmercat/productivity-api/internal/repository"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	parts := strings.Split(hash, ":")
	require.Len(t, parts, 3)
	require.Equal(t, "120000", parts[1])

	require.True(t, VerifyPassword("correct horse battery", hash))
	require.False(t, VerifyPassword("wrong password", hash))
	require.False(t, VerifyPassword("correct horse battery", "garbage"))

	// Same password, fresh salt, different hash.
	other, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, hash, other)
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewAuthService(repository.NewUserRepository(db), repository.NewSessionRepository(db)), db
}

func TestSignupAndLogin(t *testing.T) {
	service, _ := newAuthService(t)

	user, err := service.Signup(SignupInput{
		Email:    "Lea@Example.com",
		Username: "lea",
		Password: "longenough",
	})
	require.NoError(t, err)
	require.Equal(t, "lea@example.com", user.Email)
	require.NotContains(t, user.PasswordHash, "longenough")

	loggedIn, session, err := service.Login(LoginInput{Email: "lea@example.com", Password: "longenough"})
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)
	require.NotEmpty(t, session.Token)
	require.True(t, session.ExpiresAt.After(time.Now()))

	_, _, err = service.Login(LoginInput{Email: "lea@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login(LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupConflictsAndValidation(t *testing.T) {
	service, _ := newAuthService(t)

	_, err := service.Signup(SignupInput{Email: "a@example.com", Username: "alice", Password: "longenough"})
	require.NoError(t, err)

	_, err = service.Signup(SignupInput{Email: "a@example.com", Username: "other", Password: "longenough"})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = service.Signup(SignupInput{Email: "b@example.com", Username: "alice", Password: "longenough"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = service.Signup(SignupInput{Email: "c@example.com", Username: "carol", Password: "short"})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthenticateDeletesExpiredSession(t *testing.T) {
	service, db := newAuthService(t)

	user, err := service.Signup(SignupInput{Email: "d@example.com", Username: "dora", Password: "longenough"})
	require.NoError(t, err)

	_, session, err := service.Login(LoginInput{Email: "d@example.com", Password: "longenough"})
	require.NoError(t, err)

	got, err := service.Authenticate(session.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	// Force the session into the past; the next read must remove it.
	require.NoError(t, db.Model(&models.Session{}).
		Where("token = ?", session.Token).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = service.Authenticate(session.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)

	var count int64
	db.Model(&models.Session{}).Where("token = ?", session.Token).Count(&count)
	require.Zero(t, count)
}

func TestLogoutRemovesSession(t *testing.T) {
	service, _ := newAuthService(t)

	_, err := service.Signup(SignupInput{Email: "e@example.com", Username: "eli", Password: "longenough"})
	require.NoError(t, err)
	_, session, err := service.Login(LoginInput{Email: "e@example.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, service.Logout(session.Token))

	_, err = service.Authenticate(session.Token)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
