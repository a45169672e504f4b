// FILE: internal/entity/gift_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type Theme string
type PaymentStatus string

const (
	ThemeCouple    Theme = "couple"
	ThemeBirthday  Theme = "birthday"
	ThemeCorporate Theme = "corporate"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeCouple, ThemeBirthday, ThemeCorporate:
		return true
	}
	return false
}

// CanTransitionTo enforces the payment lifecycle: pending is the only state
// with outgoing edges; approved and rejected are terminal. A transition onto
// the current state is allowed so webhook retries stay idempotent.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	return s == PaymentStatusPending &&
		(next == PaymentStatusApproved || next == PaymentStatusRejected)
}

type BackgroundType string

const (
	BackgroundSolid    BackgroundType = "solid"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundPattern  BackgroundType = "pattern"
	BackgroundImage    BackgroundType = "image"
)

type Background struct {
	Type          BackgroundType `json:"type"`
	Color         string         `json:"color"`
	GradientFrom  string         `json:"gradientFrom,omitempty"`
	GradientTo    string         `json:"gradientTo,omitempty"`
	GradientAngle int            `json:"gradientAngle,omitempty"`
	Pattern       string         `json:"pattern,omitempty"`
	ImageURL      string         `json:"imageUrl,omitempty"`
}

type Typography struct {
	FontFamily    string  `json:"fontFamily"`
	FontSize      int     `json:"fontSize"`
	LineHeight    float64 `json:"lineHeight"`
	LetterSpacing float64 `json:"letterSpacing"`
	Alignment     string  `json:"alignment"`
	Transform     string  `json:"transform"`
	Shadow        bool    `json:"shadow"`
}

type Layout struct {
	Type         string `json:"type"`
	Spacing      int    `json:"spacing"`
	Padding      int    `json:"padding"`
	Margin       int    `json:"margin"`
	BorderRadius int    `json:"borderRadius"`
}

type Animation struct {
	Type         string  `json:"type"`
	Direction    string  `json:"direction"`
	Duration     float64 `json:"duration"`
	Delay        float64 `json:"delay"`
	HoverEnabled bool    `json:"hoverEnabled"`
	Speed        float64 `json:"speed"`
}

// Filters holds the CSS-style visual filter values. All values are clamped to
// their bounded ranges at apply time.
type Filters struct {
	Brightness int `json:"brightness"` // 0..200
	Contrast   int `json:"contrast"`   // 0..200
	Saturation int `json:"saturation"` // 0..200
	Hue        int `json:"hue"`        // 0..360
	Sepia      int `json:"sepia"`      // 0..100
	Blur       int `json:"blur"`       // 0..20
}

// Customization is the presentation bag of a gift page. It is persisted as an
// opaque JSON document alongside the top-level color columns kept for the
// viewing flow.
type Customization struct {
	TextColor       string     `json:"textColor"`
	AccentColor     string     `json:"accentColor"`
	Background      Background `json:"background"`
	Typography      Typography `json:"typography"`
	Layout          Layout     `json:"layout"`
	Animation       Animation  `json:"animation"`
	Filters         Filters    `json:"filters"`
	ParticleEffect  string     `json:"particleEffect"`
	PhotoFrame      string     `json:"photoFrame"`
	ShadowIntensity int        `json:"shadowIntensity"`
	Decorations     []string   `json:"decorations,omitempty"`
}

// MusicTrack references either an uploaded file or an external catalog track.
type MusicTrack struct {
	Provider   string `json:"provider"` // "spotify" | "upload"
	TrackID    string `json:"trackId,omitempty"`
	Title      string `json:"title"`
	Artist     string `json:"artist,omitempty"`
	AlbumArt   string `json:"albumArt,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	FileURL    string `json:"fileUrl,omitempty"`
}

// GiftConfiguration is the full record of content and presentation choices
// for one shareable page. Mutable until payment approval, immutable after.
type GiftConfiguration struct {
	Id            uuid.UUID
	Theme         Theme
	RecipientName string
	SenderName    string
	Message       string
	SpecialDate   time.Time
	Customization Customization
	Photos        []string
	Track         *MusicTrack
	PlanTier      PlanTier
	PaymentId     string
	PaymentStatus PaymentStatus
	QRCodeURL     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

