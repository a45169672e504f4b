// FILE: internal/service/plan_service_test.go
package service

import (
	"context"
	"testing"

	"heartgift-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTiers(t *testing.T) {
	s := NewPlanService()

	basic, err := s.EntitlementsFor(entity.TierBasic)
	require.NoError(t, err)
	assert.Equal(t, 5, basic.MaxPhotos)
	assert.Equal(t, 9.90, basic.PriceBRL)
	assert.True(t, basic.SpotifyIntegration)
	assert.True(t, basic.CustomColors)
	assert.True(t, basic.QRCode)
	assert.False(t, basic.Animations)
	assert.False(t, basic.VisualEffects)
	assert.False(t, basic.PhotoFrames)
	assert.False(t, basic.AdvancedCustomization)
	assert.False(t, basic.MusicUpload)

	premium, err := s.EntitlementsFor(entity.TierPremium)
	require.NoError(t, err)
	assert.Equal(t, entity.UnlimitedPhotos, premium.MaxPhotos)
	assert.Equal(t, 19.90, premium.PriceBRL)
	assert.True(t, premium.Animations)
	assert.False(t, premium.CustomDomain)

	deluxe, err := s.EntitlementsFor(entity.TierDeluxe)
	require.NoError(t, err)
	assert.Equal(t, 39.90, deluxe.PriceBRL)
	assert.True(t, deluxe.CustomDomain)
}

func TestEntitlementsForUnknownTier(t *testing.T) {
	s := NewPlanService()
	_, err := s.EntitlementsFor(entity.PlanTier("enterprise"))
	assert.ErrorIs(t, err, entity.ErrUnknownPlan)
}

func TestIsFeatureAllowed(t *testing.T) {
	s := NewPlanService()

	ok, err := s.IsFeatureAllowed(entity.TierBasic, entity.FeatureAnimations)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.IsFeatureAllowed(entity.TierPremium, entity.FeatureAnimations)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.IsFeatureAllowed(entity.PlanTier("nope"), entity.FeatureAnimations)
	assert.ErrorIs(t, err, entity.ErrUnknownPlan)
}

func TestGetPlansOrderedCheapestFirst(t *testing.T) {
	s := NewPlanService()

	plans, err := s.GetPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 3)

	assert.Equal(t, "basic", plans[0].Tier)
	assert.Equal(t, "premium", plans[1].Tier)
	assert.Equal(t, "deluxe", plans[2].Tier)
	assert.Less(t, plans[0].PriceBRL, plans[1].PriceBRL)
	assert.Less(t, plans[1].PriceBRL, plans[2].PriceBRL)
}

func TestGetGatesUpsellHints(t *testing.T) {
	s := NewPlanService()

	gates, err := s.GetGates(context.Background(), entity.TierBasic)
	require.NoError(t, err)

	byGroup := map[string]struct {
		enabled bool
		minTier string
	}{}
	for _, g := range gates.Gates {
		byGroup[g.Group] = struct {
			enabled bool
			minTier string
		}{g.Enabled, g.MinimumTier}
	}

	assert.True(t, byGroup["colors"].enabled)
	assert.Empty(t, byGroup["colors"].minTier, "enabled gates carry no upsell hint")

	assert.False(t, byGroup["effects"].enabled)
	assert.Equal(t, "premium", byGroup["effects"].minTier)

	assert.False(t, byGroup["animation"].enabled)
	assert.Equal(t, "premium", byGroup["animation"].minTier)
}

func TestGetGatesAllEnabledForDeluxe(t *testing.T) {
	s := NewPlanService()

	gates, err := s.GetGates(context.Background(), entity.TierDeluxe)
	require.NoError(t, err)
	for _, g := range gates.Gates {
		assert.True(t, g.Enabled, "group %s", g.Group)
	}
}
