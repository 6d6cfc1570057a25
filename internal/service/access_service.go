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
	"winetour-be/pkg/access"
	"winetour-be/pkg/events"
	pktNats "winetour-be/pkg/nats"

	"github.com/google/uuid"
)

type IAccessService interface {
	ListTiers() []*dto.TierResponse
	SelectTier(ctx context.Context, userId uuid.UUID, req *dto.SelectTierRequest) (*dto.AccessResponse, error)
	CheckAccess(ctx context.Context, userId uuid.UUID) (*dto.AccessResponse, error)
	HasAccess(ctx context.Context, userId uuid.UUID) (bool, error)
	ActivateTier(ctx context.Context, userId uuid.UUID, tier entity.Tier) error
}

type accessService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewAccessService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAccessService {
	return &accessService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *accessService) ListTiers() []*dto.TierResponse {
	tiers := make([]*dto.TierResponse, 0, len(entity.Tiers))
	for _, tier := range entity.Tiers {
		tiers = append(tiers, &dto.TierResponse{
			Tier:         string(tier),
			Price:        tier.Price(),
			DurationDays: int(access.TierDuration(tier).Hours() / 24),
			Paid:         tier.IsPaid(),
		})
	}
	return tiers
}

// SelectTier activates the free tier directly. Paid tiers only activate
// through the payment webhook; asking for one here points the client at
// checkout instead.
func (s *accessService) SelectTier(ctx context.Context, userId uuid.UUID, req *dto.SelectTierRequest) (*dto.AccessResponse, error) {
	tier := entity.Tier(req.Tier)
	if !tier.Valid() {
		return nil, apperror.Validation("unknown tier " + req.Tier)
	}
	if tier.IsPaid() {
		return nil, apperror.Validation("paid tiers are activated through checkout")
	}

	if err := s.ActivateTier(ctx, userId, tier); err != nil {
		return nil, err
	}
	return s.CheckAccess(ctx, userId)
}

// ActivateTier opens a fresh subscription window. Called for free-tier
// selection and by the payment service on settlement.
func (s *accessService) ActivateTier(ctx context.Context, userId uuid.UUID, tier entity.Tier) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("user not found")
	}

	if err := access.SelectTier(user, tier, time.Now()); err != nil {
		return err
	}
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.NewEvent(events.TypeTierSelected, map[string]interface{}{
			"user_id": userId,
			"tier":    string(tier),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("access", "failed to publish tier event", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}
	return nil
}

// CheckAccess evaluates fresh on every call. When the lazy expiry flips the
// subscription flag the user row is persisted before the answer goes out, so
// a later read through any path agrees with this one.
func (s *accessService) CheckAccess(ctx context.Context, userId uuid.UUID) (*dto.AccessResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("user not found")
	}

	result, changed := access.Evaluate(user, time.Now())
	if changed {
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	resp := &dto.AccessResponse{
		HasAccess:             result.HasAccess,
		IsAdmin:               result.IsAdmin,
		SubscriptionExpiresAt: user.SubscriptionExpiresAt,
	}
	if user.SelectedTier != nil {
		tier := string(*user.SelectedTier)
		resp.SelectedTier = &tier
	}
	return resp, nil
}

func (s *accessService) HasAccess(ctx context.Context, userId uuid.UUID) (bool, error) {
	resp, err := s.CheckAccess(ctx, userId)
	if err != nil {
		return false, err
	}
	return resp.HasAccess || resp.IsAdmin, nil
}
