package service

import (
	"context"
	"testing"
	"time"

	"winetour-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Confirming a trip flows through the message queue and ends with the owner
// receiving an itinerary mail in display order.
func TestConfirmTripDeliversItineraryEmail(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := NewConsumerService(f.pubSub, testTopic, f.repos, f.mailer, nopLogger{})
	require.NoError(t, consumer.Consume(ctx))

	user := f.seedUser(t, "guest@example.com")
	a := f.seedVineyard(t, "Alpha", "rhone", "Barrel Tasting")
	b := f.seedVineyard(t, "Bravo", "rhone")
	rest := f.seedRestaurant(t, "La Table", "rhone")

	tripId := f.createTrip(t, user.Id, &dto.CreateTripRequest{
		Title: "Anniversary",
		Vineyards: []dto.TripStopRequest{
			{VineyardId: a.Id, OfferId: &a.Offers[0].Id},
			{VineyardId: b.Id},
		},
		RestaurantId: &rest.Id,
	})

	// Dinner first, then the vineyards.
	_, err := f.trips.Reorder(ctx, user.Id, &dto.ReorderRequest{
		Id:    tripId,
		Order: []string{"restaurant", "vineyard-0", "vineyard-1"},
	})
	require.NoError(t, err)

	_, err = f.trips.ConfirmTrip(ctx, user.Id, tripId)
	require.NoError(t, err)

	var lines []string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got, ok := f.mailer.itinerary("Anniversary"); ok {
			lines = got
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NotNil(t, lines, "itinerary mail never arrived")

	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Dinner at La Table")
	assert.Contains(t, lines[1], "Alpha, rhone")
	assert.Contains(t, lines[1], "Barrel Tasting")
	assert.Contains(t, lines[2], "Bravo, rhone")
}
