package specification

import (
	"heartgift-be/internal/entity"

	"gorm.io/gorm"
)

type ByPaymentStatus struct {
	Status entity.PaymentStatus
}

func (s ByPaymentStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status = ?", string(s.Status))
}

type BySenderName struct {
	SenderName string
}

func (s BySenderName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_name = ?", s.SenderName)
}

type ByTheme struct {
	Theme entity.Theme
}

func (s ByTheme) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("theme = ?", string(s.Theme))
}
