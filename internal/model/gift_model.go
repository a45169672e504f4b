// FILE: internal/model/gift_model.go
// GORM model for the gifts table
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Gift is a finalized gift configuration. The presentation bag, photo list
// and selected track live in JSON columns; the top-level color columns are
// duplicated out of the bag so the viewing flow can render without parsing it.
type Gift struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Theme           string         `gorm:"type:varchar(50);not null;index"`
	RecipientName   string         `gorm:"type:varchar(255);not null"`
	SenderName      string         `gorm:"type:varchar(255);not null;index"`
	Message         string         `gorm:"type:text;not null"`
	SpecialDate     time.Time      `gorm:"not null"`
	BackgroundColor string         `gorm:"type:varchar(20);not null"`
	TextColor       string         `gorm:"type:varchar(20);not null"`
	Customization   datatypes.JSON `gorm:"type:jsonb"`
	Photos          datatypes.JSON `gorm:"type:jsonb"`
	Track           datatypes.JSON `gorm:"type:jsonb"`
	PlanTier        string         `gorm:"type:varchar(50);not null"`
	PaymentId       string         `gorm:"type:varchar(255)"`
	PaymentStatus   string         `gorm:"type:varchar(50);not null;index"`
	QRCodeURL       string         `gorm:"type:text"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (Gift) TableName() string {
	return "gifts"
}
