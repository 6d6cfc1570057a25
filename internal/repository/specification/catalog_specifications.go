package specification

import (
	"gorm.io/gorm"
)

// ByRegion filters catalog entries by region
type ByRegion struct {
	Region string
}

func (s ByRegion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("region = ?", s.Region)
}

// NameSearch matches catalog names case-insensitively (explore search box)
type NameSearch struct {
	Query string
}

func (s NameSearch) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Query+"%")
}
