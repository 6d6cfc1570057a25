package service

import (
	"context"
	"encoding/json"
	"fmt"

	"winetour-be/internal/dto"
	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/logger"
	"winetour-be/internal/pkg/mailer"
	"winetour-be/internal/repository/specification"
	"winetour-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the trip-confirmation topic and emails the owner an
// itinerary summary. Delivery is at-least-once; sending the same summary
// twice is harmless.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	log          logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		log:          log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TripConfirmedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages never become valid, don't retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	trip, err := uow.TripRepository().FindOne(ctx, specification.ByID{ID: payload.TripId})
	if err != nil {
		cs.log.Error("consumer", "failed to load trip", map[string]interface{}{
			"trip_id": payload.TripId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: payload.UserId})
	if err != nil {
		msg.Nack()
		return
	}
	if trip == nil || user == nil {
		// deleted between confirm and delivery
		msg.Ack()
		return
	}

	lines := itineraryLines(trip)
	if err := cs.emailService.SendItinerary(user.Email, trip.Title, lines); err != nil {
		cs.log.Warn("consumer", "failed to send itinerary email", map[string]interface{}{
			"trip_id": trip.Id,
			"email":   user.Email,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "itinerary email sent", map[string]interface{}{
		"trip_id": trip.Id,
	})
	msg.Ack()
}

// itineraryLines renders the stops in the user's display order.
func itineraryLines(trip *entity.Trip) []string {
	lines := make([]string, 0, len(trip.CustomOrder))
	for _, entry := range trip.CustomOrder {
		switch entry.Kind {
		case entity.ItemKindRestaurant:
			if trip.Restaurant == nil {
				continue
			}
			line := fmt.Sprintf("Dinner at %s, %s", trip.Restaurant.Snapshot.Name, trip.Restaurant.Snapshot.Address)
			if trip.Restaurant.Time != nil {
				line = fmt.Sprintf("%s (%s)", line, trip.Restaurant.Time.Format("Mon 15:04"))
			}
			lines = append(lines, line)
		case entity.ItemKindVineyard:
			for i, stop := range trip.Vineyards {
				ref := fmt.Sprintf("vineyard-%d", i)
				if entry.ItemId != ref {
					continue
				}
				line := fmt.Sprintf("%s, %s", stop.Snapshot.Name, stop.Snapshot.Region)
				if stop.Offer != nil {
					line = fmt.Sprintf("%s - %s", line, stop.Offer.Name)
				}
				if stop.Time != nil {
					line = fmt.Sprintf("%s (%s)", line, stop.Time.Format("Mon 15:04"))
				}
				lines = append(lines, line)
				break
			}
		}
	}
	return lines
}
