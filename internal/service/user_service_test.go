package service

import (
	"testing"

	"inkwell/internal/form"
	"inkwell/internal/pkg"
	rdb "inkwell/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func startRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, rdb.Init(mr.Addr(), "", 0))
}

func signupForm(t *testing.T, username string) *form.SignupForm {
	t.Helper()
	f := form.NewSignupForm(username, username+"@example.com", "longenough")
	require.True(t, f.Valid())
	return f
}

func TestSignupCreatesUserWithHashedPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, pkg.SMTPConfig{})

	user, err := svc.Signup(signupForm(t, "alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "longenough", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("longenough")))
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, pkg.SMTPConfig{})

	_, err := svc.Signup(signupForm(t, "alice"))
	require.NoError(t, err)
	_, err = svc.Signup(signupForm(t, "alice"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, pkg.SMTPConfig{})

	_, err := svc.Signup(signupForm(t, "alice"))
	require.NoError(t, err)

	f := form.NewSignupForm("alice2", "alice@example.com", "longenough")
	require.True(t, f.Valid())
	_, err = svc.Signup(f)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginStoresSingleActiveSession(t *testing.T) {
	db := newTestDB(t)
	startRedis(t)
	svc := NewUserService(db, pkg.SMTPConfig{})

	_, err := svc.Signup(signupForm(t, "alice"))
	require.NoError(t, err)

	token, user, err := svc.Login("alice", "longenough")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sessions := &rdb.SessionRepository{}
	stored, err := sessions.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, token, stored)

	// A second login displaces the first session.
	token2, _, err := svc.Login("alice", "longenough")
	require.NoError(t, err)
	stored, err = sessions.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, token2, stored)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	startRedis(t)
	svc := NewUserService(db, pkg.SMTPConfig{})

	_, err := svc.Signup(signupForm(t, "alice"))
	require.NoError(t, err)

	_, _, err = svc.Login("alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("ghost", "longenough")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginSurfacesStorageErrors(t *testing.T) {
	db := newTestDB(t)
	startRedis(t)
	svc := NewUserService(db, pkg.SMTPConfig{})

	_, err := svc.Signup(signupForm(t, "alice"))
	require.NoError(t, err)

	// A broken database must not look like a wrong password.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, _, err = svc.Login("alice", "longenough")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutDeletesSession(t *testing.T) {
	db := newTestDB(t)
	startRedis(t)
	svc := NewUserService(db, pkg.SMTPConfig{})

	_, err := svc.Signup(signupForm(t, "alice"))
	require.NoError(t, err)
	_, user, err := svc.Login("alice", "longenough")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID))
	sessions := &rdb.SessionRepository{}
	_, err = sessions.Get(user.ID)
	assert.ErrorIs(t, err, rdb.ErrSessionNotFound)
}

func TestGetByUsernameUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, pkg.SMTPConfig{})
	_, err := svc.GetByUsername("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
