// FILE: internal/entity/plan_entity.go
package entity

import "errors"

type PlanTier string
type Feature string

const (
	TierBasic   PlanTier = "basic"
	TierPremium PlanTier = "premium"
	TierDeluxe  PlanTier = "deluxe"

	// DefaultTier is used when an entry URL carries no (or an unknown) plan token.
	DefaultTier = TierPremium
)

const (
	FeatureMusicUpload           Feature = "musicUpload"
	FeatureSpotifyIntegration    Feature = "spotifyIntegration"
	FeatureCustomColors          Feature = "customColors"
	FeatureQRCode                Feature = "qrCode"
	FeatureAnimations            Feature = "animations"
	FeatureCustomDomain          Feature = "customDomain"
	FeaturePrioritySupport       Feature = "prioritySupport"
	FeatureVisualEffects         Feature = "visualEffects"
	FeaturePhotoFrames           Feature = "photoFrames"
	FeatureAdvancedCustomization Feature = "advancedCustomization"
	FeatureMaxPhotos             Feature = "maxPhotos"
)

// UnlimitedPhotos is the sentinel for plans without a photo cap.
const UnlimitedPhotos = -1

var ErrUnknownPlan = errors.New("unknown plan tier")

// Entitlement is the feature set unlocked by a purchased tier.
// Immutable; the three records are defined at process start in the catalog.
type Entitlement struct {
	Tier     PlanTier
	Name     string
	PriceBRL float64

	MaxPhotos int // UnlimitedPhotos = no cap

	MusicUpload           bool
	SpotifyIntegration    bool
	CustomColors          bool
	QRCode                bool
	Animations            bool
	CustomDomain          bool
	PrioritySupport       bool
	VisualEffects         bool
	PhotoFrames           bool
	AdvancedCustomization bool
}

// Allows reports whether the named feature is unlocked. For MaxPhotos a plan
// "allows" the feature only when the cap is the unlimited sentinel, matching
// the product's upload-gate behavior.
func (e Entitlement) Allows(f Feature) bool {
	switch f {
	case FeatureMusicUpload:
		return e.MusicUpload
	case FeatureSpotifyIntegration:
		return e.SpotifyIntegration
	case FeatureCustomColors:
		return e.CustomColors
	case FeatureQRCode:
		return e.QRCode
	case FeatureAnimations:
		return e.Animations
	case FeatureCustomDomain:
		return e.CustomDomain
	case FeaturePrioritySupport:
		return e.PrioritySupport
	case FeatureVisualEffects:
		return e.VisualEffects
	case FeaturePhotoFrames:
		return e.PhotoFrames
	case FeatureAdvancedCustomization:
		return e.AdvancedCustomization
	case FeatureMaxPhotos:
		return e.MaxPhotos == UnlimitedPhotos
	}
	return false
}

// AllowsPhotoCount reports whether count photos fit under the plan's cap.
func (e Entitlement) AllowsPhotoCount(count int) bool {
	return e.MaxPhotos == UnlimitedPhotos || count <= e.MaxPhotos
}

var knownFeatures = map[string]Feature{
	string(FeatureMusicUpload):           FeatureMusicUpload,
	string(FeatureSpotifyIntegration):    FeatureSpotifyIntegration,
	string(FeatureCustomColors):          FeatureCustomColors,
	string(FeatureQRCode):                FeatureQRCode,
	string(FeatureAnimations):            FeatureAnimations,
	string(FeatureCustomDomain):          FeatureCustomDomain,
	string(FeaturePrioritySupport):       FeaturePrioritySupport,
	string(FeatureVisualEffects):         FeatureVisualEffects,
	string(FeaturePhotoFrames):           FeaturePhotoFrames,
	string(FeatureAdvancedCustomization): FeatureAdvancedCustomization,
	string(FeatureMaxPhotos):             FeatureMaxPhotos,
}

// ParseFeature maps a wire-level feature name onto the closed enumeration.
// Unknown names are reported to the caller instead of silently denying.
func ParseFeature(name string) (Feature, bool) {
	f, ok := knownFeatures[name]
	return f, ok
}

// ParseTier resolves a plan token from an entry URL. The legacy marketing
// pages still link with the Portuguese "basico" slug, so both spellings are
// accepted. Unknown tokens fall back to the default tier, never an error.
func ParseTier(token string) PlanTier {
	switch token {
	case "basic", "basico":
		return TierBasic
	case "premium":
		return TierPremium
	case "deluxe":
		return TierDeluxe
	}
	return DefaultTier
}
