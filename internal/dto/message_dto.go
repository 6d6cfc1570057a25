package dto

import "github.com/google/uuid"

// TripConfirmedMessage is the payload published on the in-process bus when a
// trip is confirmed; the consumer emails the owner an itinerary summary.
type TripConfirmedMessage struct {
	TripId uuid.UUID `json:"trip_id"`
	UserId uuid.UUID `json:"user_id"`
}
