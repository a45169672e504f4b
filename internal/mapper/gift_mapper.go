// FILE: internal/mapper/gift_mapper.go
package mapper

import (
	"encoding/json"

	"heartgift-be/internal/entity"
	"heartgift-be/internal/model"

	"gorm.io/datatypes"
)

type GiftMapper struct{}

func NewGiftMapper() *GiftMapper {
	return &GiftMapper{}
}

func (m *GiftMapper) ToEntity(g *model.Gift) *entity.GiftConfiguration {
	if g == nil {
		return nil
	}

	var custom entity.Customization
	if len(g.Customization) > 0 {
		// A corrupt bag degrades to zero values rather than failing the read;
		// the viewing flow still has the top-level color columns.
		_ = json.Unmarshal(g.Customization, &custom)
	}
	if custom.Background.Color == "" {
		custom.Background.Color = g.BackgroundColor
	}
	if custom.TextColor == "" {
		custom.TextColor = g.TextColor
	}

	var photos []string
	if len(g.Photos) > 0 {
		_ = json.Unmarshal(g.Photos, &photos)
	}

	var track *entity.MusicTrack
	if len(g.Track) > 0 {
		var t entity.MusicTrack
		if err := json.Unmarshal(g.Track, &t); err == nil && t.Title != "" {
			track = &t
		}
	}

	return &entity.GiftConfiguration{
		Id:            g.Id,
		Theme:         entity.Theme(g.Theme),
		RecipientName: g.RecipientName,
		SenderName:    g.SenderName,
		Message:       g.Message,
		SpecialDate:   g.SpecialDate,
		Customization: custom,
		Photos:        photos,
		Track:         track,
		PlanTier:      entity.PlanTier(g.PlanTier),
		PaymentId:     g.PaymentId,
		PaymentStatus: entity.PaymentStatus(g.PaymentStatus),
		QRCodeURL:     g.QRCodeURL,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func (m *GiftMapper) ToModel(g *entity.GiftConfiguration) *model.Gift {
	if g == nil {
		return nil
	}

	customJSON, _ := json.Marshal(g.Customization)

	photos := g.Photos
	if photos == nil {
		photos = []string{}
	}
	photosJSON, _ := json.Marshal(photos)

	var trackJSON datatypes.JSON
	if g.Track != nil {
		b, _ := json.Marshal(g.Track)
		trackJSON = b
	}

	return &model.Gift{
		Id:              g.Id,
		Theme:           string(g.Theme),
		RecipientName:   g.RecipientName,
		SenderName:      g.SenderName,
		Message:         g.Message,
		SpecialDate:     g.SpecialDate,
		BackgroundColor: g.Customization.Background.Color,
		TextColor:       g.Customization.TextColor,
		Customization:   customJSON,
		Photos:          photosJSON,
		Track:           trackJSON,
		PlanTier:        string(g.PlanTier),
		PaymentId:       g.PaymentId,
		PaymentStatus:   string(g.PaymentStatus),
		QRCodeURL:       g.QRCodeURL,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}
