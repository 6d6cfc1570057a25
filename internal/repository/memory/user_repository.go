package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"winetour-be/internal/entity"
	"winetour-be/internal/repository/contract"
	"winetour-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*entity.User
	resetTokens   map[uuid.UUID]*entity.PasswordResetToken
	verifyTokens  map[uuid.UUID]*entity.EmailVerificationToken
	refreshTokens map[uuid.UUID]*entity.UserRefreshToken
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:         make(map[uuid.UUID]*entity.User),
		resetTokens:   make(map[uuid.UUID]*entity.PasswordResetToken),
		verifyTokens:  make(map[uuid.UUID]*entity.EmailVerificationToken),
		refreshTokens: make(map[uuid.UUID]*entity.UserRefreshToken),
	}
}

var _ contract.UserRepository = (*UserRepository)(nil)

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		c.PasswordHash = &h
	}
	if u.SelectedTier != nil {
		t := *u.SelectedTier
		c.SelectedTier = &t
	}
	if u.TierSelectedAt != nil {
		at := *u.TierSelectedAt
		c.TierSelectedAt = &at
	}
	if u.SubscriptionExpiresAt != nil {
		at := *u.SubscriptionExpiresAt
		c.SubscriptionExpiresAt = &at
	}
	if u.EmailVerifiedAt != nil {
		at := *u.EmailVerifiedAt
		c.EmailVerifiedAt = &at
	}
	return &c
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.Id] = cloneUser(user)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Id] = cloneUser(user)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, id)
	return nil
}

func (r *UserRepository) matching(specs []specification.Specification) []*entity.User {
	q := parseSpecs(specs)
	var out []*entity.User
	for id, u := range r.users {
		if !q.matchesID(id) {
			continue
		}
		if q.email != "" && u.Email != q.email {
			continue
		}
		if q.role != "" && string(u.Role) != q.role {
			continue
		}
		if q.status != "" && string(u.Status) != q.status {
			continue
		}
		if q.search != "" {
			needle := strings.ToLower(q.search)
			if !strings.Contains(strings.ToLower(u.FullName), needle) &&
				!strings.Contains(strings.ToLower(u.Email), needle) {
				continue
			}
		}
		out = append(out, cloneUser(u))
	}
	sortByCreatedAt(out, func(u *entity.User) time.Time { return u.CreatedAt }, q)
	return paginate(out, q)
}

func (r *UserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.matching(specs)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *UserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.matching(specs), nil
}

func (r *UserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.matching(specs))), nil
}

func (r *UserRepository) CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *token
	r.resetTokens[token.Id] = &t
	return nil
}

func (r *UserRepository) FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := parseSpecs(specs)
	for _, t := range r.resetTokens {
		if q.token != "" && t.Token != q.token {
			continue
		}
		if q.ownerId != nil && t.UserId != *q.ownerId {
			continue
		}
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *UserRepository) MarkTokenUsed(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.resetTokens[id]; ok {
		t.Used = true
	}
	return nil
}

func (r *UserRepository) CreateEmailVerificationToken(ctx context.Context, token *entity.EmailVerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *token
	r.verifyTokens[token.Id] = &t
	return nil
}

func (r *UserRepository) FindEmailVerificationToken(ctx context.Context, specs ...specification.Specification) (*entity.EmailVerificationToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := parseSpecs(specs)
	for _, t := range r.verifyTokens {
		if q.token != "" && t.Token != q.token {
			continue
		}
		if q.ownerId != nil && t.UserId != *q.ownerId {
			continue
		}
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *UserRepository) DeleteEmailVerificationToken(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.verifyTokens, id)
	return nil
}

func (r *UserRepository) CreateRefreshToken(ctx context.Context, token *entity.UserRefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := *token
	r.refreshTokens[token.Id] = &t
	return nil
}

func (r *UserRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.refreshTokens {
		if t.TokenHash == tokenHash {
			t.Revoked = true
		}
	}
	return nil
}

func (r *UserRepository) ActivateUser(ctx context.Context, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userId]
	if !ok {
		return nil
	}
	now := time.Now()
	u.Status = entity.UserStatusActive
	u.EmailVerified = true
	u.EmailVerifiedAt = &now
	return nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.Status = entity.UserStatus(status)
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[userId]; ok {
		u.PasswordHash = &hash
	}
	return nil
}
