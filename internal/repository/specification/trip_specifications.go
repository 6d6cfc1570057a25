package specification

import (
	"gorm.io/gorm"
)

// ByStatus filters trips by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
