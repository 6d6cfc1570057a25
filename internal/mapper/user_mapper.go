package mapper

import (
	"winetour-be/internal/entity"
	"winetour-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var tier *entity.Tier
	if u.SelectedTier != nil {
		t := entity.Tier(*u.SelectedTier)
		tier = &t
	}

	return &entity.User{
		Id:                    u.Id,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		FullName:              u.FullName,
		Role:                  entity.UserRole(u.Role),
		Status:                entity.UserStatus(u.Status),
		EmailVerified:         u.EmailVerified,
		EmailVerifiedAt:       u.EmailVerifiedAt,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
		SelectedTier:          tier,
		TierSelectedAt:        u.TierSelectedAt,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		IsSubscriptionActive:  u.IsSubscriptionActive,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var tier *string
	if u.SelectedTier != nil {
		t := string(*u.SelectedTier)
		tier = &t
	}

	return &model.User{
		Id:                    u.Id,
		Email:                 u.Email,
		PasswordHash:          u.PasswordHash,
		FullName:              u.FullName,
		Role:                  string(u.Role),
		Status:                string(u.Status),
		EmailVerified:         u.EmailVerified,
		EmailVerifiedAt:       u.EmailVerifiedAt,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
		SelectedTier:          tier,
		TierSelectedAt:        u.TierSelectedAt,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		IsSubscriptionActive:  u.IsSubscriptionActive,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
