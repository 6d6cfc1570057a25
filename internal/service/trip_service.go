package service

import (
	"context"
	"encoding/json"
	"time"

	"winetour-be/internal/dto"
	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/pkg/logger"
	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/specification"
	"winetour-be/internal/repository/unitofwork"
	"winetour-be/pkg/events"
	"winetour-be/pkg/itinerary"
	pktNats "winetour-be/pkg/nats"

	"github.com/google/uuid"
)

type ITripService interface {
	CreateTrip(ctx context.Context, userId uuid.UUID, req *dto.CreateTripRequest) (*dto.CreateTripResponse, error)
	GetTrip(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.TripResponse, error)
	ListTrips(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.TripListResponse, error)
	UpdateTrip(ctx context.Context, userId uuid.UUID, req *dto.UpdateTripRequest) (*dto.TripResponse, error)
	ConfirmTrip(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.TripResponse, error)
	DeleteTrip(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) error
	RemoveItem(ctx context.Context, userId uuid.UUID, tripId uuid.UUID, itemId string) (*dto.TripResponse, error)
	Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderRequest) (*dto.TripResponse, error)
	UpdateItemTime(ctx context.Context, userId uuid.UUID, req *dto.UpdateItemTimeRequest) (*dto.TripResponse, error)
}

type tripService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewTripService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ITripService {
	return &tripService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// loadOwned resolves a trip by id within the caller's ownership scope.
// Someone else's trip and a missing trip are indistinguishable.
func (s *tripService) loadOwned(ctx context.Context, repo contract.TripRepository, userId, tripId uuid.UUID) (*entity.Trip, error) {
	trip, err := repo.FindOne(ctx,
		specification.ByID{ID: tripId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, apperror.NotFound("trip not found")
	}
	return trip, nil
}

// reconcile persists a lazy expiry transition before the trip is used for
// anything else. A conflict means another writer advanced the trip first;
// their version wins and we reload it.
func (s *tripService) reconcile(ctx context.Context, repo contract.TripRepository, userId uuid.UUID, trip *entity.Trip) (*entity.Trip, error) {
	if !itinerary.Reconcile(trip, time.Now()) {
		return trip, nil
	}
	if err := repo.Save(ctx, trip); err != nil {
		if apperror.IsCode(err, apperror.CodeConflict) {
			fresh, ferr := s.loadOwned(ctx, repo, userId, trip.Id)
			if ferr != nil {
				return nil, ferr
			}
			itinerary.Reconcile(fresh, time.Now())
			return fresh, nil
		}
		return nil, err
	}
	return trip, nil
}

// withTrip runs one mutation against a reconciled, owned trip and persists it
// atomically. Idempotent mutations get a single transparent retry when the
// optimistic write loses; everything else surfaces the conflict.
func (s *tripService) withTrip(ctx context.Context, userId, tripId uuid.UUID, retryOnConflict bool, mutate func(trip *entity.Trip) error) (*entity.Trip, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TripRepository()

	for attempt := 0; ; attempt++ {
		trip, err := s.loadOwned(ctx, repo, userId, tripId)
		if err != nil {
			return nil, err
		}
		trip, err = s.reconcile(ctx, repo, userId, trip)
		if err != nil {
			return nil, err
		}

		if err := mutate(trip); err != nil {
			return nil, err
		}

		err = repo.Save(ctx, trip)
		if err == nil {
			return trip, nil
		}
		if apperror.IsCode(err, apperror.CodeConflict) && retryOnConflict && attempt == 0 {
			continue
		}
		return nil, err
	}
}

func requireDraft(trip *entity.Trip) error {
	switch trip.Status {
	case entity.TripStatusDraft:
		return nil
	case entity.TripStatusExpired:
		return apperror.Expired("trip has expired")
	default:
		return apperror.InvalidState("trip is confirmed and can no longer be edited")
	}
}

func (s *tripService) CreateTrip(ctx context.Context, userId uuid.UUID, req *dto.CreateTripRequest) (*dto.CreateTripResponse, error) {
	if len(req.Vineyards) > entity.MaxVineyardStops {
		return nil, apperror.Validation("too many vineyard stops")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	stops := make([]entity.VineyardStop, 0, len(req.Vineyards))
	for _, stopReq := range req.Vineyards {
		vineyard, err := uow.VineyardRepository().FindOne(ctx, specification.ByID{ID: stopReq.VineyardId})
		if err != nil {
			return nil, err
		}
		if vineyard == nil || !vineyard.IsActive {
			return nil, apperror.InvalidTarget("vineyard not available")
		}

		stop := entity.VineyardStop{
			VineyardId: vineyard.Id,
			Snapshot:   vineyard.Snapshot(),
		}
		if stopReq.OfferId != nil {
			offer := findOffer(vineyard, *stopReq.OfferId)
			if offer == nil {
				return nil, apperror.InvalidTarget("offer does not belong to this vineyard")
			}
			snap := offer.Snapshot()
			stop.Offer = &snap
		}
		stops = append(stops, stop)
	}

	var restaurantStop *entity.RestaurantStop
	if req.RestaurantId != nil {
		restaurant, err := uow.RestaurantRepository().FindOne(ctx, specification.ByID{ID: *req.RestaurantId})
		if err != nil {
			return nil, err
		}
		if restaurant == nil || !restaurant.IsActive {
			return nil, apperror.InvalidTarget("restaurant not available")
		}
		restaurantStop = &entity.RestaurantStop{
			RestaurantId: restaurant.Id,
			Snapshot:     restaurant.Snapshot(),
		}
	}

	now := time.Now()
	trip := &entity.Trip{
		Id:         uuid.New(),
		UserId:     userId,
		Title:      req.Title,
		Vineyards:  stops,
		Restaurant: restaurantStop,
		Status:     entity.TripStatusDraft,
		IsActive:   true,
		Version:    1,
		CreatedAt:  now,
		ExpiresAt:  now.Add(entity.DraftTripTTL),
	}
	trip.CustomOrder = itinerary.DefaultOrder(trip)

	if err := uow.TripRepository().Create(ctx, trip); err != nil {
		return nil, err
	}

	return &dto.CreateTripResponse{Id: trip.Id}, nil
}

func findOffer(vineyard *entity.Vineyard, offerId uuid.UUID) *entity.VineyardOffer {
	for i := range vineyard.Offers {
		if vineyard.Offers[i].Id == offerId && vineyard.Offers[i].IsActive {
			return &vineyard.Offers[i]
		}
	}
	return nil
}

func (s *tripService) GetTrip(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.TripResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TripRepository()

	trip, err := s.loadOwned(ctx, repo, userId, tripId)
	if err != nil {
		return nil, err
	}
	trip, err = s.reconcile(ctx, repo, userId, trip)
	if err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}

func (s *tripService) ListTrips(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.TripListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TripRepository()

	trips, err := repo.FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	total, err := repo.Count(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	resp := &dto.TripListResponse{
		Trips: make([]dto.TripResponse, 0, len(trips)),
		Total: total,
	}
	for _, trip := range trips {
		reconciled, err := s.reconcile(ctx, repo, userId, trip)
		if err != nil {
			return nil, err
		}
		resp.Trips = append(resp.Trips, *toTripResponse(reconciled))
	}
	return resp, nil
}

func (s *tripService) UpdateTrip(ctx context.Context, userId uuid.UUID, req *dto.UpdateTripRequest) (*dto.TripResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	trip, err := s.withTrip(ctx, userId, req.Id, false, func(trip *entity.Trip) error {
		if err := requireDraft(trip); err != nil {
			return err
		}

		if req.Title != nil {
			trip.Title = *req.Title
		}

		for _, stopReq := range req.AddVineyards {
			if len(trip.Vineyards) >= entity.MaxVineyardStops {
				return apperror.Validation("too many vineyard stops")
			}
			vineyard, err := uow.VineyardRepository().FindOne(ctx, specification.ByID{ID: stopReq.VineyardId})
			if err != nil {
				return err
			}
			if vineyard == nil || !vineyard.IsActive {
				return apperror.InvalidTarget("vineyard not available")
			}
			stop := entity.VineyardStop{
				VineyardId: vineyard.Id,
				Snapshot:   vineyard.Snapshot(),
			}
			if stopReq.OfferId != nil {
				offer := findOffer(vineyard, *stopReq.OfferId)
				if offer == nil {
					return apperror.InvalidTarget("offer does not belong to this vineyard")
				}
				snap := offer.Snapshot()
				stop.Offer = &snap
			}
			trip.Vineyards = append(trip.Vineyards, stop)
			trip.CustomOrder = append(trip.CustomOrder, itinerary.ItemRef{Kind: entity.ItemKindVineyard, Index: len(trip.Vineyards) - 1}.Entry())
		}

		switch {
		case req.RemoveRestaurant:
			if trip.Restaurant != nil {
				ref, _ := itinerary.ParseItemID("restaurant")
				if err := itinerary.RemoveItem(trip, ref); err != nil {
					return err
				}
			}
		case req.RestaurantId != nil:
			restaurant, err := uow.RestaurantRepository().FindOne(ctx, specification.ByID{ID: *req.RestaurantId})
			if err != nil {
				return err
			}
			if restaurant == nil || !restaurant.IsActive {
				return apperror.InvalidTarget("restaurant not available")
			}
			hadRestaurant := trip.Restaurant != nil
			trip.Restaurant = &entity.RestaurantStop{
				RestaurantId: restaurant.Id,
				Snapshot:     restaurant.Snapshot(),
			}
			if !hadRestaurant {
				trip.CustomOrder = append(trip.CustomOrder, itinerary.ItemRef{Kind: entity.ItemKindRestaurant}.Entry())
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}

func (s *tripService) ConfirmTrip(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) (*dto.TripResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TripRepository()

	trip, err := s.loadOwned(ctx, repo, userId, tripId)
	if err != nil {
		return nil, err
	}
	trip, err = s.reconcile(ctx, repo, userId, trip)
	if err != nil {
		return nil, err
	}

	if err := itinerary.Confirm(trip, time.Now()); err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, trip); err != nil {
		return nil, err
	}

	s.publishTripConfirmed(ctx, trip)

	return toTripResponse(trip), nil
}

func (s *tripService) publishTripConfirmed(ctx context.Context, trip *entity.Trip) {
	payload, err := json.Marshal(dto.TripConfirmedMessage{TripId: trip.Id, UserId: trip.UserId})
	if err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.log.Warn("trip", "failed to publish confirmation message", map[string]interface{}{
				"trip_id": trip.Id,
				"error":   err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewEvent(events.TypeTripConfirmed, map[string]interface{}{
			"trip_id": trip.Id,
			"user_id": trip.UserId,
			"title":   trip.Title,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("trip", "failed to publish confirmation event", map[string]interface{}{
				"trip_id": trip.Id,
				"error":   err.Error(),
			})
		}
	}
}

func (s *tripService) DeleteTrip(ctx context.Context, userId uuid.UUID, tripId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.TripRepository()

	trip, err := s.loadOwned(ctx, repo, userId, tripId)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, trip.Id)
}

func (s *tripService) RemoveItem(ctx context.Context, userId uuid.UUID, tripId uuid.UUID, itemId string) (*dto.TripResponse, error) {
	ref, err := itinerary.ParseItemID(itemId)
	if err != nil {
		return nil, err
	}

	// Removal addresses a position, so a lost race must surface rather than
	// silently hit whatever moved into that slot.
	trip, err := s.withTrip(ctx, userId, tripId, false, func(trip *entity.Trip) error {
		if err := requireDraft(trip); err != nil {
			return err
		}
		return itinerary.RemoveItem(trip, ref)
	})
	if err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}

func (s *tripService) Reorder(ctx context.Context, userId uuid.UUID, req *dto.ReorderRequest) (*dto.TripResponse, error) {
	refs := make([]itinerary.ItemRef, 0, len(req.Order))
	for _, itemId := range req.Order {
		ref, err := itinerary.ParseItemID(itemId)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	trip, err := s.withTrip(ctx, userId, req.Id, true, func(trip *entity.Trip) error {
		if err := requireDraft(trip); err != nil {
			return err
		}
		return itinerary.SetCustomOrder(trip, refs)
	})
	if err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}

func (s *tripService) UpdateItemTime(ctx context.Context, userId uuid.UUID, req *dto.UpdateItemTimeRequest) (*dto.TripResponse, error) {
	ref, err := itinerary.ParseItemID(req.ItemId)
	if err != nil {
		return nil, err
	}

	trip, err := s.withTrip(ctx, userId, req.Id, true, func(trip *entity.Trip) error {
		if err := requireDraft(trip); err != nil {
			return err
		}
		return itinerary.UpdateItemTime(trip, ref, *req.Time)
	})
	if err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}

func toTripResponse(trip *entity.Trip) *dto.TripResponse {
	resp := &dto.TripResponse{
		Id:          trip.Id,
		Title:       trip.Title,
		Status:      string(trip.Status),
		Vineyards:   make([]dto.TripVineyardStopResponse, 0, len(trip.Vineyards)),
		Order:       make([]string, 0, len(trip.CustomOrder)),
		Version:     trip.Version,
		CreatedAt:   trip.CreatedAt,
		ConfirmedAt: trip.ConfirmedAt,
		ExpiresAt:   trip.ExpiresAt,
	}

	for i, stop := range trip.Vineyards {
		item := dto.TripVineyardStopResponse{
			ItemId:     itinerary.ItemRef{Kind: entity.ItemKindVineyard, Index: i}.ItemID(),
			VineyardId: stop.VineyardId,
			Name:       stop.Snapshot.Name,
			Region:     stop.Snapshot.Region,
			Address:    stop.Snapshot.Address,
			ImageURL:   stop.Snapshot.ImageURL,
			Time:       stop.Time,
		}
		if stop.Offer != nil {
			item.Offer = &dto.OfferResponse{
				OfferId: stop.Offer.OfferId,
				Name:    stop.Offer.Name,
				Price:   stop.Offer.Price,
			}
		}
		resp.Vineyards = append(resp.Vineyards, item)
	}

	if trip.Restaurant != nil {
		resp.Restaurant = &dto.TripRestaurantResponse{
			ItemId:       itinerary.ItemRef{Kind: entity.ItemKindRestaurant}.ItemID(),
			RestaurantId: trip.Restaurant.RestaurantId,
			Name:         trip.Restaurant.Snapshot.Name,
			Region:       trip.Restaurant.Snapshot.Region,
			Address:      trip.Restaurant.Snapshot.Address,
			Cuisine:      trip.Restaurant.Snapshot.Cuisine,
			ImageURL:     trip.Restaurant.Snapshot.ImageURL,
			Time:         trip.Restaurant.Time,
		}
	}

	for _, entry := range trip.CustomOrder {
		resp.Order = append(resp.Order, entry.ItemId)
	}

	return resp
}
