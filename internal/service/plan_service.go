// FILE: internal/service/plan_service.go
// Service for the plan catalog and feature entitlement checks
package service

import (
	"context"

	"heartgift-be/internal/dto"
	"heartgift-be/internal/entity"
)

type IPlanService interface {
	GetPlans(ctx context.Context) ([]*dto.PlanResponse, error)
	GetGates(ctx context.Context, tier entity.PlanTier) (*dto.PlanGatesResponse, error)

	EntitlementsFor(tier entity.PlanTier) (entity.Entitlement, error)
	IsFeatureAllowed(tier entity.PlanTier, feature entity.Feature) (bool, error)
}

type planService struct {
	catalog map[entity.PlanTier]entity.Entitlement
	// ordered cheapest-first, used to compute the minimum tier for upsell hints
	order []entity.PlanTier
}

func NewPlanService() IPlanService {
	return &planService{
		catalog: buildCatalog(),
		order:   []entity.PlanTier{entity.TierBasic, entity.TierPremium, entity.TierDeluxe},
	}
}

// buildCatalog defines the three purchasable tiers. The catalog is static:
// plans are product configuration, not data.
func buildCatalog() map[entity.PlanTier]entity.Entitlement {
	return map[entity.PlanTier]entity.Entitlement{
		entity.TierBasic: {
			Tier:               entity.TierBasic,
			Name:               "Básico",
			PriceBRL:           9.90,
			MaxPhotos:          5,
			SpotifyIntegration: true,
			CustomColors:       true,
			QRCode:             true,
		},
		entity.TierPremium: {
			Tier:                  entity.TierPremium,
			Name:                  "Premium",
			PriceBRL:              19.90,
			MaxPhotos:             entity.UnlimitedPhotos,
			MusicUpload:           true,
			SpotifyIntegration:    true,
			CustomColors:          true,
			QRCode:                true,
			Animations:            true,
			PrioritySupport:       true,
			VisualEffects:         true,
			PhotoFrames:           true,
			AdvancedCustomization: true,
		},
		entity.TierDeluxe: {
			Tier:                  entity.TierDeluxe,
			Name:                  "Deluxe",
			PriceBRL:              39.90,
			MaxPhotos:             entity.UnlimitedPhotos,
			MusicUpload:           true,
			SpotifyIntegration:    true,
			CustomColors:          true,
			QRCode:                true,
			Animations:            true,
			CustomDomain:          true,
			PrioritySupport:       true,
			VisualEffects:         true,
			PhotoFrames:           true,
			AdvancedCustomization: true,
		},
	}
}

func (s *planService) EntitlementsFor(tier entity.PlanTier) (entity.Entitlement, error) {
	ent, ok := s.catalog[tier]
	if !ok {
		return entity.Entitlement{}, entity.ErrUnknownPlan
	}
	return ent, nil
}

func (s *planService) IsFeatureAllowed(tier entity.PlanTier, feature entity.Feature) (bool, error) {
	ent, err := s.EntitlementsFor(tier)
	if err != nil {
		return false, err
	}
	return ent.Allows(feature), nil
}

func (s *planService) GetPlans(_ context.Context) ([]*dto.PlanResponse, error) {
	result := make([]*dto.PlanResponse, 0, len(s.order))
	for _, tier := range s.order {
		ent := s.catalog[tier]

		features := make([]dto.FeatureDTO, 0, len(allFeatures))
		for _, f := range allFeatures {
			features = append(features, dto.FeatureDTO{
				Key:       string(f),
				IsEnabled: ent.Allows(f),
			})
		}

		result = append(result, &dto.PlanResponse{
			Tier:     string(tier),
			Name:     ent.Name,
			PriceBRL: ent.PriceBRL,
			Limits:   dto.PlanLimitsDTO{MaxPhotos: ent.MaxPhotos},
			Features: features,
		})
	}
	return result, nil
}

// GetGates returns the editor group gating table for a tier, including the
// cheapest tier that unlocks each disabled group so the frontend can render
// the upgrade hint.
func (s *planService) GetGates(_ context.Context, tier entity.PlanTier) (*dto.PlanGatesResponse, error) {
	ent, ok := s.catalog[tier]
	if !ok {
		return nil, entity.ErrUnknownPlan
	}

	gates := make([]dto.GateDTO, 0, len(editorGates))
	for _, g := range editorGates {
		gate := dto.GateDTO{
			Group:   g.group,
			Feature: string(g.feature),
			Enabled: ent.Allows(g.feature),
		}
		if !gate.Enabled {
			gate.MinimumTier = string(s.minimumTierFor(g.feature))
		}
		gates = append(gates, gate)
	}

	return &dto.PlanGatesResponse{Tier: string(tier), Gates: gates}, nil
}

func (s *planService) minimumTierFor(feature entity.Feature) entity.PlanTier {
	for _, tier := range s.order {
		if s.catalog[tier].Allows(feature) {
			return tier
		}
	}
	return ""
}

var allFeatures = []entity.Feature{
	entity.FeatureMaxPhotos,
	entity.FeatureMusicUpload,
	entity.FeatureSpotifyIntegration,
	entity.FeatureCustomColors,
	entity.FeatureQRCode,
	entity.FeatureAnimations,
	entity.FeatureCustomDomain,
	entity.FeaturePrioritySupport,
	entity.FeatureVisualEffects,
	entity.FeaturePhotoFrames,
	entity.FeatureAdvancedCustomization,
}

// editorGates maps each customization editor group onto the entitlement that
// unlocks it. Groups absent here (basic text controls) are never gated.
var editorGates = []struct {
	group   string
	feature entity.Feature
}{
	{"colors", entity.FeatureCustomColors},
	{"effects", entity.FeatureVisualEffects},
	{"frames", entity.FeaturePhotoFrames},
	{"animation", entity.FeatureAnimations},
	{"advanced", entity.FeatureAdvancedCustomization},
	{"musicUpload", entity.FeatureMusicUpload},
	{"spotify", entity.FeatureSpotifyIntegration},
	{"qrCode", entity.FeatureQRCode},
}
