package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"allot/internal/core/apperror"
	"allot/internal/core/id"
)

type fakeUserRepo struct {
	byUsername map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: make(map[string]*User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *User) error {
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	for _, u := range f.byUsername {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID)
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", username)
}

func (f *fakeUserRepo) Exists(ctx context.Context, username string) (bool, error) {
	_, ok := f.byUsername[username]
	return ok, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range f.byUsername {
		out = append(out, *u)
	}
	return out, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, jwtSvc, DefaultServiceConfig()), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := NewUser(username, string(hash))
	repo.byUsername[username] = user
	return user
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "admin")

	token, user, err := svc.Authenticate(context.Background(), Credentials{
		Username: "admin",
		Password: "admin",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
	assert.NotNil(t, user.LastLoginAt)

	// Round-trip through validation.
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	uc, err := jwtSvc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, "admin", uc.Username)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, "admin", "admin")

	_, _, err := svc.Authenticate(context.Background(), Credentials{
		Username: "admin",
		Password: "wrong",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	assert.Equal(t, 1, user.FailedLoginAttempts)
}

func TestAuthenticateLockout(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "admin")

	for i := 0; i < 5; i++ {
		_, _, err := svc.Authenticate(context.Background(), Credentials{
			Username: "admin",
			Password: "wrong",
		})
		require.Error(t, err)
	}

	// Correct password is rejected while locked.
	_, _, err := svc.Authenticate(context.Background(), Credentials{
		Username: "admin",
		Password: "admin",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Authenticate(context.Background(), Credentials{
		Username: "ghost",
		Password: "whatever",
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestChangePassword(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, "admin", "admin")

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "admin", "newpass"))

	// Old password no longer works.
	_, _, err := svc.Authenticate(context.Background(), Credentials{
		Username: "admin",
		Password: "admin",
	})
	require.Error(t, err)

	_, _, err = svc.Authenticate(context.Background(), Credentials{
		Username: "admin",
		Password: "newpass",
	})
	require.NoError(t, err)
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo, "admin", "admin")

	err := svc.ChangePassword(context.Background(), user.ID, "wrong", "newpass")
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	svc, repo := newTestService(t)
	seedUser(t, repo, "admin", "admin")

	_, err := svc.Register(context.Background(), "admin", "password", "", false)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}
