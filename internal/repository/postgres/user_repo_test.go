package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/repository/postgres"
	"github.com/streamhive/streamhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_UniqueConstraints(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("taken").
		WithEmail("taken@example.com").
		Build(t, testDB.DB)

	repo := postgres.NewUserRepository(testDB.DB)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "taken", "fresh@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "fresh", "taken@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "fresh", "fresh@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := repo.GetByUsernameOrEmail(ctx, "", "taken@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRepository_GetPublicByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	repo := postgres.NewUserRepository(testDB.DB)

	token := "some-refresh-token"
	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, &token))

	public, err := repo.GetPublicByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, public.Username)
	assert.Empty(t, public.PasswordHash, "public projection must not carry the password hash")
	assert.Nil(t, public.RefreshToken, "public projection must not carry the refresh token")

	// The full row still has both.
	full, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, full.PasswordHash)
	require.NotNil(t, full.RefreshToken)
	assert.Equal(t, token, *full.RefreshToken)
}

func TestUserRepository_TargetedUpdates(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	repo := postgres.NewUserRepository(testDB.DB)
	originalHash := user.PasswordHash

	// Account updates leave the password hash alone.
	require.NoError(t, repo.UpdateAccount(ctx, user.ID, "New Name", "newmail@example.com"))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.FullName)
	assert.Equal(t, "newmail@example.com", got.Email)
	assert.Equal(t, originalHash, got.PasswordHash)

	// Watch history persists in order.
	first := uuid.New().String()
	second := uuid.New().String()
	require.NoError(t, repo.UpdateWatchHistory(ctx, user.ID, []string{second, first}))

	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{second, first}, []string(got.WatchHistory))

	// Clearing the refresh token stores NULL.
	require.NoError(t, repo.UpdateRefreshToken(ctx, user.ID, nil))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RefreshToken)
}
