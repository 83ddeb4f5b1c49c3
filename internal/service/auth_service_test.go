package service_test

import (
	"context"
	"testing"

	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository/postgres"
	"github.com/streamhive/streamhive/internal/service"
	"github.com/streamhive/streamhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*service.AuthService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewAuthService(repos.User, testutil.TestConfig()), testDB
}

func TestAuthService_Register(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		input      service.RegisterInput
		setup      func()
		wantStatus int
		check      func(*testing.T, *domain.User)
	}{
		{
			name: "successful registration",
			input: service.RegisterInput{
				Username: "NewUser",
				Email:    "newuser@example.com",
				FullName: "New User",
				Password: "password123",
				Avatar:   "http://media.test/uploads/a.png",
			},
			check: func(t *testing.T, user *domain.User) {
				assert.Equal(t, "newuser", user.Username, "username is lowered")
				assert.Empty(t, user.PasswordHash, "returned user carries no credentials")
			},
		},
		{
			name: "duplicate email",
			input: service.RegisterInput{
				Username: "different",
				Email:    "existing@example.com",
				FullName: "Different",
				Password: "password123",
				Avatar:   "http://media.test/uploads/a.png",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, testDB.DB)
			},
			wantStatus: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			user, err := authService.Register(ctx, tt.input)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				appErr, ok := domain.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantStatus, appErr.Status)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, user)
			}
		})
	}
}

func TestAuthService_RefreshRotation(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)

	login, err := authService.Login(ctx, service.LoginInput{
		Username: user.Username,
		Password: password,
	})
	require.NoError(t, err)

	first := login.Tokens.RefreshToken
	require.NotEmpty(t, first)

	// The login stores the refresh token on the user row.
	stored := &domain.User{}
	require.NoError(t, testDB.DB.First(stored, "id = ?", user.ID).Error)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, first, *stored.RefreshToken)

	// Refreshing rotates the stored value.
	rotated, err := authService.Refresh(ctx, first)
	require.NoError(t, err)
	assert.NotEqual(t, first, rotated.Tokens.RefreshToken)

	// The replaced token is now rejected with the reuse message.
	_, err = authService.Refresh(ctx, first)
	require.Error(t, err)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "refresh token expired or used", appErr.Message)

	// The rotated token still refreshes.
	_, err = authService.Refresh(ctx, rotated.Tokens.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_RefreshAfterLogout(t *testing.T) {
	authService, testDB := newAuthService(t)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)

	login, err := authService.Login(ctx, service.LoginInput{
		Username: user.Username,
		Password: password,
	})
	require.NoError(t, err)

	require.NoError(t, authService.Logout(ctx, user.ID))

	_, err = authService.Refresh(ctx, login.Tokens.RefreshToken)
	require.Error(t, err)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "refresh token expired or used", appErr.Message)
}

func TestAuthService_RefreshRejectsForeignTokens(t *testing.T) {
	authService, _ := newAuthService(t)
	ctx := context.Background()

	// A syntactically invalid token fails verification.
	_, err := authService.Refresh(ctx, "garbage")
	require.Error(t, err)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)
}
