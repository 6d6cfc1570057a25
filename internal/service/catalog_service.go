package service

import (
	"context"
	"fmt"
	"time"

	"winetour-be/internal/dto"
	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/repository/specification"
	"winetour-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ICatalogService interface {
	ListVineyards(ctx context.Context, query *dto.ExploreQuery) ([]*dto.VineyardResponse, error)
	GetVineyard(ctx context.Context, id uuid.UUID) (*dto.VineyardResponse, error)
	ListRestaurants(ctx context.Context, query *dto.ExploreQuery) ([]*dto.RestaurantResponse, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*dto.RestaurantResponse, error)
	InvalidateCache()
}

// catalogService serves the explore screens. Lists are read-through cached
// with a short TTL; the catalog changes rarely and only through admin writes,
// which invalidate the cache.
type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache.New(1*time.Minute, 5*time.Minute),
	}
}

func exploreSpecs(query *dto.ExploreQuery) []specification.Specification {
	specs := []specification.Specification{specification.ActiveOnly{}}
	if query.Region != "" {
		specs = append(specs, specification.ByRegion{Region: query.Region})
	}
	if query.Search != "" {
		specs = append(specs, specification.NameSearch{Query: query.Search})
	}

	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	specs = append(specs,
		specification.OrderBy{Field: "name"},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	return specs
}

func (s *catalogService) ListVineyards(ctx context.Context, query *dto.ExploreQuery) ([]*dto.VineyardResponse, error) {
	key := fmt.Sprintf("vineyards:%s:%s:%d:%d", query.Region, query.Search, query.Limit, query.Offset)
	if cached, found := s.cache.Get(key); found {
		return cached.([]*dto.VineyardResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	vineyards, err := uow.VineyardRepository().FindAll(ctx, exploreSpecs(query)...)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.VineyardResponse, 0, len(vineyards))
	for _, vineyard := range vineyards {
		resp = append(resp, toVineyardResponse(vineyard))
	}
	s.cache.SetDefault(key, resp)
	return resp, nil
}

func (s *catalogService) GetVineyard(ctx context.Context, id uuid.UUID) (*dto.VineyardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	vineyard, err := uow.VineyardRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if vineyard == nil || !vineyard.IsActive {
		return nil, apperror.NotFound("vineyard not found")
	}
	return toVineyardResponse(vineyard), nil
}

func (s *catalogService) ListRestaurants(ctx context.Context, query *dto.ExploreQuery) ([]*dto.RestaurantResponse, error) {
	key := fmt.Sprintf("restaurants:%s:%s:%d:%d", query.Region, query.Search, query.Limit, query.Offset)
	if cached, found := s.cache.Get(key); found {
		return cached.([]*dto.RestaurantResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	restaurants, err := uow.RestaurantRepository().FindAll(ctx, exploreSpecs(query)...)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.RestaurantResponse, 0, len(restaurants))
	for _, restaurant := range restaurants {
		resp = append(resp, toRestaurantResponse(restaurant))
	}
	s.cache.SetDefault(key, resp)
	return resp, nil
}

func (s *catalogService) GetRestaurant(ctx context.Context, id uuid.UUID) (*dto.RestaurantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	restaurant, err := uow.RestaurantRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if restaurant == nil || !restaurant.IsActive {
		return nil, apperror.NotFound("restaurant not found")
	}
	return toRestaurantResponse(restaurant), nil
}

func (s *catalogService) InvalidateCache() {
	s.cache.Flush()
}

func toVineyardResponse(vineyard *entity.Vineyard) *dto.VineyardResponse {
	resp := &dto.VineyardResponse{
		Id:          vineyard.Id,
		Name:        vineyard.Name,
		Region:      vineyard.Region,
		Address:     vineyard.Address,
		Description: vineyard.Description,
		ImageURL:    vineyard.ImageURL,
		Offers:      make([]dto.OfferResponse, 0, len(vineyard.Offers)),
	}
	for _, offer := range vineyard.Offers {
		if !offer.IsActive {
			continue
		}
		resp.Offers = append(resp.Offers, dto.OfferResponse{
			OfferId: offer.Id,
			Name:    offer.Name,
			Price:   offer.Price,
		})
	}
	return resp
}

func toRestaurantResponse(restaurant *entity.Restaurant) *dto.RestaurantResponse {
	return &dto.RestaurantResponse{
		Id:          restaurant.Id,
		Name:        restaurant.Name,
		Region:      restaurant.Region,
		Address:     restaurant.Address,
		Cuisine:     restaurant.Cuisine,
		Description: restaurant.Description,
		ImageURL:    restaurant.ImageURL,
	}
}
