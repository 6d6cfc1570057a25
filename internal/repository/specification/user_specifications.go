package specification

import (
	"gorm.io/gorm"
)

// ByEmail filters users by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByToken filters token tables by the token value itself
type ByToken struct {
	Token string
}

func (s ByToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Token)
}

// ByRole filters users by role
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// UserSearch matches name or email, case-insensitive (admin user screens)
type UserSearch struct {
	Query string
}

func (s UserSearch) Apply(db *gorm.DB) *gorm.DB {
	q := "%" + s.Query + "%"
	return db.Where("full_name ILIKE ? OR email ILIKE ?", q, q)
}
