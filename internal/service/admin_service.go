package service

import (
	"context"
	"time"

	"winetour-be/internal/dto"
	"winetour-be/internal/entity"
	"winetour-be/internal/pkg/apperror"
	"winetour-be/internal/pkg/logger"
	"winetour-be/internal/repository/specification"
	"winetour-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	CreateVineyard(ctx context.Context, req *dto.CreateVineyardRequest) (*dto.VineyardResponse, error)
	UpdateVineyard(ctx context.Context, req *dto.UpdateVineyardRequest) (*dto.VineyardResponse, error)
	DeleteVineyard(ctx context.Context, id uuid.UUID) error
	CreateRestaurant(ctx context.Context, req *dto.CreateRestaurantRequest) (*dto.RestaurantResponse, error)
	UpdateRestaurant(ctx context.Context, req *dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error)
	DeleteRestaurant(ctx context.Context, id uuid.UUID) error
	ListUsers(ctx context.Context, search string, limit, offset int) (*dto.AdminUserListResponse, error)
	UpdateUserStatus(ctx context.Context, req *dto.UpdateUserStatusRequest) error
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory     unitofwork.RepositoryFactory
	catalogService ICatalogService
	log            logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	catalogService ICatalogService,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		catalogService: catalogService,
		log:            log,
	}
}

func (s *adminService) CreateVineyard(ctx context.Context, req *dto.CreateVineyardRequest) (*dto.VineyardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	vineyard := &entity.Vineyard{
		Id:          uuid.New(),
		Name:        req.Name,
		Region:      req.Region,
		Address:     req.Address,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	for _, offerReq := range req.Offers {
		vineyard.Offers = append(vineyard.Offers, entity.VineyardOffer{
			Id:         uuid.New(),
			VineyardId: vineyard.Id,
			Name:       offerReq.Name,
			Price:      offerReq.Price,
			IsActive:   true,
			CreatedAt:  time.Now(),
		})
	}

	if err := uow.VineyardRepository().Create(ctx, vineyard); err != nil {
		return nil, err
	}
	s.catalogService.InvalidateCache()
	return toVineyardResponse(vineyard), nil
}

func (s *adminService) UpdateVineyard(ctx context.Context, req *dto.UpdateVineyardRequest) (*dto.VineyardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	vineyard, err := uow.VineyardRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if vineyard == nil {
		return nil, apperror.NotFound("vineyard not found")
	}

	vineyard.Name = req.Name
	vineyard.Region = req.Region
	vineyard.Address = req.Address
	vineyard.Description = req.Description
	vineyard.ImageURL = req.ImageURL
	if req.IsActive != nil {
		vineyard.IsActive = *req.IsActive
	}
	now := time.Now()
	vineyard.UpdatedAt = &now

	if err := uow.VineyardRepository().Update(ctx, vineyard); err != nil {
		return nil, err
	}
	s.catalogService.InvalidateCache()
	return toVineyardResponse(vineyard), nil
}

func (s *adminService) DeleteVineyard(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.VineyardRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.catalogService.InvalidateCache()
	return nil
}

func (s *adminService) CreateRestaurant(ctx context.Context, req *dto.CreateRestaurantRequest) (*dto.RestaurantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	restaurant := &entity.Restaurant{
		Id:          uuid.New(),
		Name:        req.Name,
		Region:      req.Region,
		Address:     req.Address,
		Cuisine:     req.Cuisine,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if err := uow.RestaurantRepository().Create(ctx, restaurant); err != nil {
		return nil, err
	}
	s.catalogService.InvalidateCache()
	return toRestaurantResponse(restaurant), nil
}

func (s *adminService) UpdateRestaurant(ctx context.Context, req *dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	restaurant, err := uow.RestaurantRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, apperror.NotFound("restaurant not found")
	}

	restaurant.Name = req.Name
	restaurant.Region = req.Region
	restaurant.Address = req.Address
	restaurant.Cuisine = req.Cuisine
	restaurant.Description = req.Description
	restaurant.ImageURL = req.ImageURL
	if req.IsActive != nil {
		restaurant.IsActive = *req.IsActive
	}
	now := time.Now()
	restaurant.UpdatedAt = &now

	if err := uow.RestaurantRepository().Update(ctx, restaurant); err != nil {
		return nil, err
	}
	s.catalogService.InvalidateCache()
	return toRestaurantResponse(restaurant), nil
}

func (s *adminService) DeleteRestaurant(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.RestaurantRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.catalogService.InvalidateCache()
	return nil
}

func (s *adminService) ListUsers(ctx context.Context, search string, limit, offset int) (*dto.AdminUserListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	filterSpecs := []specification.Specification{}
	if search != "" {
		filterSpecs = append(filterSpecs, specification.UserSearch{Query: search})
	}

	listSpecs := append([]specification.Specification{}, filterSpecs...)
	listSpecs = append(listSpecs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	users, err := uow.UserRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.UserRepository().Count(ctx, filterSpecs...)
	if err != nil {
		return nil, err
	}

	resp := &dto.AdminUserListResponse{
		Users: make([]dto.AdminUserResponse, 0, len(users)),
		Total: total,
	}
	for _, user := range users {
		item := dto.AdminUserResponse{
			Id:                    user.Id,
			Email:                 user.Email,
			FullName:              user.FullName,
			Role:                  string(user.Role),
			Status:                string(user.Status),
			SubscriptionExpiresAt: user.SubscriptionExpiresAt,
			CreatedAt:             user.CreatedAt,
		}
		if user.SelectedTier != nil {
			tier := string(*user.SelectedTier)
			item.SelectedTier = &tier
		}
		resp.Users = append(resp.Users, item)
	}
	return resp, nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, req *dto.UpdateUserStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}
	if user.Role == entity.UserRoleAdmin {
		return apperror.Validation("cannot change the status of an admin account")
	}

	return uow.UserRepository().UpdateStatus(ctx, req.Id, req.Status)
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.log.GetLogs(level, limit, offset)
}
