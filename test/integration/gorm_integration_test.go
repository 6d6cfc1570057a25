package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/repository/specification"
	"winetour-be/internal/repository/unitofwork"
	"winetour-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.TripRepository())
	assert.NotNil(t, uow.VineyardRepository())
	assert.NotNil(t, uow.RestaurantRepository())
	assert.NotNil(t, uow.PaymentOrderRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Trip Round Trip", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:       uuid.New(),
			Email:    "integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     entity.UserRoleUser,
			Status:   entity.UserStatusActive,
		}
		require.NoError(t, uow.UserRepository().Create(ctx, user))

		trip := &entity.Trip{
			Id:     uuid.New(),
			UserId: user.Id,
			Title:  "Integration Trip",
			Vineyards: []entity.VineyardStop{
				{VineyardId: uuid.New(), Snapshot: entity.VineyardSnapshot{Name: "Test Vineyard", Region: "provence"}},
			},
			CustomOrder: []entity.OrderEntry{
				{ItemId: "vineyard-0", Kind: entity.ItemKindVineyard},
			},
			Status:    entity.TripStatusDraft,
			IsActive:  true,
			Version:   1,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}
		require.NoError(t, uow.TripRepository().Create(ctx, trip))

		loaded, err := uow.TripRepository().FindOne(ctx,
			specification.ByID{ID: trip.Id},
			specification.OwnedBy{UserID: user.Id},
		)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "Integration Trip", loaded.Title)
		assert.Len(t, loaded.Vineyards, 1)
		assert.Equal(t, "vineyard-0", loaded.CustomOrder[0].ItemId)

		// Conditional write bumps the version
		loaded.Title = "Integration Trip (renamed)"
		require.NoError(t, uow.TripRepository().Save(ctx, loaded))
		assert.Equal(t, 2, loaded.Version)

		// Cleanup
		assert.NoError(t, uow.TripRepository().Delete(ctx, trip.Id))
		assert.NoError(t, uow.UserRepository().Delete(ctx, user.Id))
	})
}
