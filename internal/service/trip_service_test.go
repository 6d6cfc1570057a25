package service

import (
	"context"
	"testing"
	"time"

	"winetour-be/internal/dto"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) createTrip(t *testing.T, userId uuid.UUID, req *dto.CreateTripRequest) uuid.UUID {
	t.Helper()
	resp, err := f.trips.CreateTrip(context.Background(), userId, req)
	require.NoError(t, err)
	return resp.Id
}

// forceExpire rewrites the stored trip's deadline into the past, simulating
// the wall clock passing without sleeping.
func (f *fixture) forceExpire(t *testing.T, tripId uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	trip, err := f.repos.Trips.FindOne(ctx, specification.ByID{ID: tripId})
	require.NoError(t, err)
	require.NotNil(t, trip)
	trip.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, f.repos.Trips.Save(ctx, trip))
}

func TestCreateTripBuildsDefaultOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "order@example.com")
	v1 := f.seedVineyard(t, "Clos du Val", "rhone", "Grand Tasting")
	v2 := f.seedVineyard(t, "Domaine Nord", "rhone")
	rest := f.seedRestaurant(t, "La Table", "rhone")

	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title: "Rhone weekend",
		Vineyards: []dto.TripStopRequest{
			{VineyardId: v1.Id, OfferId: &v1.Offers[0].Id},
			{VineyardId: v2.Id},
		},
		RestaurantId: &rest.Id,
	})

	trip, err := f.trips.GetTrip(ctx, user.Id, tripId)
	require.NoError(t, err)

	assert.Equal(t, "draft", trip.Status)
	assert.Equal(t, []string{"vineyard-0", "vineyard-1", "restaurant"}, trip.Order)
	require.Len(t, trip.Vineyards, 2)
	assert.Equal(t, "Clos du Val", trip.Vineyards[0].Name)
	require.NotNil(t, trip.Vineyards[0].Offer)
	assert.Equal(t, "Grand Tasting", trip.Vineyards[0].Offer.Name)
	assert.Nil(t, trip.Vineyards[1].Offer)
	require.NotNil(t, trip.Restaurant)
	assert.Equal(t, "restaurant", trip.Restaurant.ItemId)
}

func TestCreateTripRejectsInactiveVineyard(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "inactive@example.com")
	v := f.seedVineyard(t, "Shuttered Estate", "loire")
	v.IsActive = false
	require.NoError(t, f.repos.Vineyards.Update(context.Background(), v))

	_, err := f.trips.CreateTrip(context.Background(), user.Id, &dto.CreateTripRequest{
		Title:     "Nope",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTarget), "got %v", err)
}

func TestCreateTripRejectsForeignOffer(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "offer@example.com")
	v1 := f.seedVineyard(t, "Estate A", "loire", "Tour A")
	v2 := f.seedVineyard(t, "Estate B", "loire", "Tour B")

	// Offer from v2 attached to a v1 stop.
	_, err := f.trips.CreateTrip(context.Background(), user.Id, &dto.CreateTripRequest{
		Title:     "Mismatch",
		Vineyards: []dto.TripStopRequest{{VineyardId: v1.Id, OfferId: &v2.Offers[0].Id}},
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTarget), "got %v", err)
}

func TestConfirmTripLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "confirm@example.com")
	v := f.seedVineyard(t, "Estate", "bordeaux")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Saturday",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})

	confirmed, err := f.trips.ConfirmTrip(ctx, user.Id, tripId)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	// A confirmed trip cannot be confirmed or edited again.
	_, err = f.trips.ConfirmTrip(ctx, user.Id, tripId)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState), "got %v", err)

	newTitle := "Sunday"
	_, err = f.trips.UpdateTrip(ctx, user.Id, &dto.UpdateTripRequest{Id: tripId, Title: &newTitle})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState), "got %v", err)
}

func TestLazyExpiryIsPersisted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "expiry@example.com")
	v := f.seedVineyard(t, "Estate", "alsace")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Doomed",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})
	f.forceExpire(t, tripId)

	trip, err := f.trips.GetTrip(ctx, user.Id, tripId)
	require.NoError(t, err)
	assert.Equal(t, "expired", trip.Status)

	// The transition was written back, not just reported.
	stored, err := f.repos.Trips.FindOne(ctx, specification.ByID{ID: tripId})
	require.NoError(t, err)
	assert.Equal(t, "expired", string(stored.Status))

	// Editing an expired trip fails with the dedicated code.
	_, err = f.trips.ConfirmTrip(ctx, user.Id, tripId)
	assert.True(t, apperror.IsCode(err, apperror.CodeExpired), "got %v", err)
}

func TestConfirmedTripStillExpires(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "late@example.com")
	v := f.seedVineyard(t, "Estate", "alsace")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Past trip",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})
	_, err := f.trips.ConfirmTrip(ctx, user.Id, tripId)
	require.NoError(t, err)

	f.forceExpire(t, tripId)

	trip, err := f.trips.GetTrip(ctx, user.Id, tripId)
	require.NoError(t, err)
	assert.Equal(t, "expired", trip.Status)
}

func TestRemoveVineyardReindexesOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "reindex@example.com")
	a := f.seedVineyard(t, "Alpha", "rhone")
	b := f.seedVineyard(t, "Bravo", "rhone")
	c := f.seedVineyard(t, "Charlie", "rhone")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title: "Three stops",
		Vineyards: []dto.TripStopRequest{
			{VineyardId: a.Id}, {VineyardId: b.Id}, {VineyardId: c.Id},
		},
	})

	// Visit Charlie first, then Alpha, then Bravo.
	_, err := f.trips.Reorder(ctx, user.Id, &dto.ReorderRequest{
		Id:    tripId,
		Order: []string{"vineyard-2", "vineyard-0", "vineyard-1"},
	})
	require.NoError(t, err)

	// Removing Bravo (index 1) shifts Charlie down to index 1; the custom
	// order keeps its relative positions.
	trip, err := f.trips.RemoveItem(ctx, user.Id, tripId, "vineyard-1")
	require.NoError(t, err)

	require.Len(t, trip.Vineyards, 2)
	assert.Equal(t, "Alpha", trip.Vineyards[0].Name)
	assert.Equal(t, "Charlie", trip.Vineyards[1].Name)
	assert.Equal(t, []string{"vineyard-1", "vineyard-0"}, trip.Order)
}

func TestRemoveLastVineyardRejected(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t, "last@example.com")
	v := f.seedVineyard(t, "Only One", "loire")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Single stop",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})

	_, err := f.trips.RemoveItem(context.Background(), user.Id, tripId, "vineyard-0")
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)
}

func TestRemoveRestaurant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "dinner@example.com")
	v := f.seedVineyard(t, "Estate", "loire")
	rest := f.seedRestaurant(t, "Chez Nous", "loire")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:        "With dinner",
		Vineyards:    []dto.TripStopRequest{{VineyardId: v.Id}},
		RestaurantId: &rest.Id,
	})

	trip, err := f.trips.RemoveItem(ctx, user.Id, tripId, "restaurant")
	require.NoError(t, err)
	assert.Nil(t, trip.Restaurant)
	assert.Equal(t, []string{"vineyard-0"}, trip.Order)

	// Removing it again addresses nothing.
	_, err = f.trips.RemoveItem(ctx, user.Id, tripId, "restaurant")
	assert.True(t, apperror.IsCode(err, apperror.CodeOutOfRange), "got %v", err)
}

func TestReorderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "reorder@example.com")
	v := f.seedVineyard(t, "Estate", "loire")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "One stop",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})

	// An entry addressing an absent stop rejects the whole request.
	_, err := f.trips.Reorder(ctx, user.Id, &dto.ReorderRequest{
		Id:    tripId,
		Order: []string{"vineyard-5"},
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation), "got %v", err)

	// A malformed id never reaches the trip at all.
	_, err = f.trips.Reorder(ctx, user.Id, &dto.ReorderRequest{
		Id:    tripId,
		Order: []string{"lunch"},
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTarget), "got %v", err)
}

func TestUpdateTripAppendsToOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "append@example.com")
	a := f.seedVineyard(t, "Alpha", "rhone")
	b := f.seedVineyard(t, "Bravo", "rhone")
	rest := f.seedRestaurant(t, "La Table", "rhone")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Growing",
		Vineyards: []dto.TripStopRequest{{VineyardId: a.Id}},
	})

	trip, err := f.trips.UpdateTrip(ctx, user.Id, &dto.UpdateTripRequest{
		Id:           tripId,
		AddVineyards: []dto.TripStopRequest{{VineyardId: b.Id}},
		RestaurantId: &rest.Id,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"vineyard-0", "vineyard-1", "restaurant"}, trip.Order)

	// Swapping the restaurant keeps its slot in the order.
	other := f.seedRestaurant(t, "Le Bistro", "rhone")
	trip, err = f.trips.UpdateTrip(ctx, user.Id, &dto.UpdateTripRequest{
		Id:           tripId,
		RestaurantId: &other.Id,
	})
	require.NoError(t, err)
	assert.Equal(t, "Le Bistro", trip.Restaurant.Name)
	assert.Equal(t, []string{"vineyard-0", "vineyard-1", "restaurant"}, trip.Order)
}

func TestUpdateItemTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "times@example.com")
	v := f.seedVineyard(t, "Estate", "loire")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Timed",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})

	visit := time.Date(2026, 9, 12, 11, 0, 0, 0, time.UTC)
	trip, err := f.trips.UpdateItemTime(ctx, user.Id, &dto.UpdateItemTimeRequest{
		Id: tripId, ItemId: "vineyard-0", Time: &visit,
	})
	require.NoError(t, err)
	require.NotNil(t, trip.Vineyards[0].Time)
	assert.True(t, trip.Vineyards[0].Time.Equal(visit))

	// No restaurant on the trip.
	_, err = f.trips.UpdateItemTime(ctx, user.Id, &dto.UpdateItemTimeRequest{
		Id: tripId, ItemId: "restaurant", Time: &visit,
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidTarget), "got %v", err)
}

func TestOwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "owner@example.com")
	stranger := f.seedUser(t, "stranger@example.com")
	v := f.seedVineyard(t, "Estate", "loire")
	tripId := f.createTrip(t, owner.Id, &dto.CreateTripRequest{
		Title:     "Private",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})

	// Someone else's trip is indistinguishable from a missing one.
	_, err := f.trips.GetTrip(ctx, stranger.Id, tripId)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound), "got %v", err)

	err = f.trips.DeleteTrip(ctx, stranger.Id, tripId)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound), "got %v", err)

	list, err := f.trips.ListTrips(ctx, stranger.Id, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestDeleteTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "delete@example.com")
	v := f.seedVineyard(t, "Estate", "loire")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Short-lived",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})

	require.NoError(t, f.trips.DeleteTrip(ctx, user.Id, tripId))

	_, err := f.trips.GetTrip(ctx, user.Id, tripId)
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound), "got %v", err)
}

func TestListTripsReconcilesEach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "list@example.com")
	v := f.seedVineyard(t, "Estate", "loire")

	fresh := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Fresh",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})
	stale := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Stale",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})
	f.forceExpire(t, stale)

	list, err := f.trips.ListTrips(ctx, user.Id, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, list.Total)

	statuses := map[uuid.UUID]string{}
	for _, trip := range list.Trips {
		statuses[trip.Id] = trip.Status
	}
	assert.Equal(t, "draft", statuses[fresh])
	assert.Equal(t, "expired", statuses[stale])
}

func TestStaleWriteConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.seedUser(t, "conflict@example.com")
	v := f.seedVineyard(t, "Estate", "loire")
	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title:     "Contended",
		Vineyards: []dto.TripStopRequest{{VineyardId: v.Id}},
	})

	// Two readers grab the same version; the second save must lose.
	first, err := f.repos.Trips.FindOne(ctx, specification.ByID{ID: tripId})
	require.NoError(t, err)
	second, err := f.repos.Trips.FindOne(ctx, specification.ByID{ID: tripId})
	require.NoError(t, err)

	require.NoError(t, f.repos.Trips.Save(ctx, first))
	err = f.repos.Trips.Save(ctx, second)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict), "got %v", err)
}
