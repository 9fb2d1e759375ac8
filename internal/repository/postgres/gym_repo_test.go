package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/repository/postgres"
	"github.com/jvmedeiros/gym-checkin-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGymRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewGymRepository(testDB.DB)
	ctx := context.Background()

	gym := testutil.NewGymBuilder().WithTitle("Iron Temple").Build(t, testDB.DB)

	got, err := repo.GetByID(ctx, gym.ID)
	require.NoError(t, err)
	assert.Equal(t, "Iron Temple", got.Title)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGymRepository_Search(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewGymRepository(testDB.DB)
	ctx := context.Background()

	for i := 1; i <= 21; i++ {
		testutil.NewGymBuilder().
			WithTitle(fmt.Sprintf("CrossFit Box %02d", i)).
			Build(t, testDB.DB)
	}
	testutil.NewGymBuilder().WithTitle("Yoga Studio").Build(t, testDB.DB)

	page1, err := repo.Search(ctx, "crossfit", 1)
	require.NoError(t, err)
	assert.Len(t, page1, 20)

	page2, err := repo.Search(ctx, "crossfit", 2)
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	yoga, err := repo.Search(ctx, "Yoga", 1)
	require.NoError(t, err)
	require.Len(t, yoga, 1)
	assert.Equal(t, "Yoga Studio", yoga[0].Title)
}

func TestGymRepository_FindNearby(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewGymRepository(testDB.DB)
	ctx := context.Background()

	near := testutil.NewGymBuilder().
		WithTitle("Near Gym").
		WithCoordinates(-27.2092052, -49.6401091).
		Build(t, testDB.DB)
	testutil.NewGymBuilder().
		WithTitle("Far Gym").
		WithCoordinates(-27.0610928, -49.5229501).
		Build(t, testDB.DB)

	gyms, err := repo.FindNearby(ctx, -27.2092052, -49.6401091, 10)
	require.NoError(t, err)
	require.Len(t, gyms, 1)
	assert.Equal(t, near.ID, gyms[0].ID)
}
