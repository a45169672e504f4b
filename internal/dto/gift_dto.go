// FILE: internal/dto/gift_dto.go
package dto

import (
	"time"

	"heartgift-be/internal/entity"

	"github.com/google/uuid"
)

// Gift payloads keep the camelCase key names of the legacy document shape;
// the viewing frontend and stored records share this contract.

type CreateDraftRequest struct {
	Theme string `json:"theme" validate:"required,oneof=couple birthday corporate"`
	// Plan is the raw entry-URL token; unknown tokens fall back to the
	// default tier instead of failing.
	Plan string `json:"plan"`
}

type GiftDraft struct {
	Theme         string               `json:"theme"`
	RecipientName string               `json:"recipientName"`
	SenderName    string               `json:"senderName"`
	Message       string               `json:"message"`
	SpecialDate   string               `json:"specialDate"` // YYYY-MM-DD
	Customization entity.Customization `json:"customizationData"`
	Photos        []string             `json:"photos"`
	SpotifyTrack  *entity.MusicTrack   `json:"spotifyTrack,omitempty"`
	PlanTier      string               `json:"planTier"`
}

// DraftPatch is a partial field set; nil means "leave unchanged". Fields
// belonging to a gated category are silently dropped when the draft's plan
// does not include the category.
type DraftPatch struct {
	// Content
	RecipientName *string `json:"recipientName,omitempty"`
	SenderName    *string `json:"senderName,omitempty"`
	Message       *string `json:"message,omitempty"`
	SpecialDate   *string `json:"specialDate,omitempty"`

	// Colors (customColors)
	BackgroundColor *string `json:"backgroundColor,omitempty"`
	TextColor       *string `json:"textColor,omitempty"`
	AccentColor     *string `json:"accentColor,omitempty"`

	// Text (ungated basics)
	FontFamily   *string `json:"fontFamily,omitempty"`
	FontSize     *int    `json:"fontSize,omitempty"`
	BorderRadius *int    `json:"borderRadius,omitempty"`

	// Advanced typography / layout / background / filters (advancedCustomization)
	LineHeight     *float64           `json:"lineHeight,omitempty"`
	LetterSpacing  *float64           `json:"letterSpacing,omitempty"`
	Alignment      *string            `json:"alignment,omitempty"`
	Transform      *string            `json:"transform,omitempty"`
	TextShadow     *bool              `json:"textShadow,omitempty"`
	LayoutType     *string            `json:"layoutType,omitempty"`
	Spacing        *int               `json:"spacing,omitempty"`
	Padding        *int               `json:"padding,omitempty"`
	Margin         *int               `json:"margin,omitempty"`
	Background     *entity.Background `json:"background,omitempty"`
	Filters        *entity.Filters    `json:"filters,omitempty"`
	Decorations    []string           `json:"decorations,omitempty"`

	// Effects (visualEffects)
	ParticleEffect  *string  `json:"particleEffect,omitempty"`
	ShadowIntensity *int     `json:"shadowIntensity,omitempty"`
	AnimationSpeed  *float64 `json:"animationSpeed,omitempty"`

	// Animation (animations)
	AnimationType      *string  `json:"animationType,omitempty"`
	AnimationDirection *string  `json:"animationDirection,omitempty"`
	AnimationDuration  *float64 `json:"animationDuration,omitempty"`
	AnimationDelay     *float64 `json:"animationDelay,omitempty"`
	HoverEnabled       *bool    `json:"hoverEnabled,omitempty"`

	// Frames (photoFrames)
	PhotoFrame *string `json:"photoFrame,omitempty"`

	// Media
	AddPhotos        []string           `json:"addPhotos,omitempty"`
	RemovePhotoIndex *int               `json:"removePhotoIndex,omitempty"`
	SpotifyTrack     *entity.MusicTrack `json:"spotifyTrack,omitempty"`
	ClearTrack       bool               `json:"clearTrack,omitempty"`
}

type ApplyUpdateRequest struct {
	Draft GiftDraft  `json:"draft" validate:"required"`
	Patch DraftPatch `json:"patch"`
}

type ResetDraftRequest struct {
	Draft GiftDraft `json:"draft" validate:"required"`
}

type ValidateDraftRequest struct {
	Draft GiftDraft `json:"draft" validate:"required"`
}

type ValidateDraftResponse struct {
	Valid      bool               `json:"valid"`
	Violations []entity.Violation `json:"violations"`
}

type FinalizeGiftRequest struct {
	Draft GiftDraft `json:"draft" validate:"required"`
}

type FinalizeGiftResponse struct {
	Id       uuid.UUID         `json:"id"`
	ShareURL string            `json:"shareUrl"`
	QRCodes  map[string]string `json:"qrCodes"`
}

type GiftResponse struct {
	Id              uuid.UUID            `json:"id"`
	Theme           string               `json:"theme"`
	RecipientName   string               `json:"recipientName"`
	SenderName      string               `json:"senderName"`
	Message         string               `json:"message"`
	SpecialDate     string               `json:"specialDate"`
	BackgroundColor string               `json:"backgroundColor"`
	TextColor       string               `json:"textColor"`
	Customization   entity.Customization `json:"customizationData"`
	SpotifyTrack    *entity.MusicTrack   `json:"spotifyTrack,omitempty"`
	Photos          []string             `json:"photos"`
	QRCode          string               `json:"qrCode"`
	PaymentId       string               `json:"paymentId"`
	PaymentStatus   string               `json:"paymentStatus"`
	PlanTier        string               `json:"planTier"`
	ShareURL        string               `json:"shareUrl"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

type CountdownResponse struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	IsPast  bool `json:"isPast"`
}
