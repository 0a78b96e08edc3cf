package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessible_BasicOnlySeesDashboard(t *testing.T) {
	require.True(t, Accessible(TierBasic, FeatureDashboard))

	for _, f := range []Feature{
		FeatureBrand, FeatureMedia, FeatureCalendar, FeatureChannels,
		FeaturePublishing, FeatureAnalytics, FeatureCampaigns,
		FeatureGrowth, FeatureDates, FeatureSettings, FeatureAgent,
		FeatureAdmin,
	} {
		require.False(t, Accessible(TierBasic, f), "basic should not reach %s", f)
	}
}

func TestAccessible_TiersAreStrictSupersets(t *testing.T) {
	for f := range tierFeatures[TierBasic] {
		require.True(t, Accessible(TierGold, f), "gold should include basic feature %s", f)
	}
	for f := range tierFeatures[TierGold] {
		require.True(t, Accessible(TierEnterprise, f), "enterprise should include gold feature %s", f)
	}
}

func TestAccessible_AgentAndAdminAreEnterpriseOnly(t *testing.T) {
	for _, f := range []Feature{FeatureAgent, FeatureAdmin} {
		require.False(t, Accessible(TierBasic, f))
		require.False(t, Accessible(TierGold, f))
		require.True(t, Accessible(TierEnterprise, f))
	}
}

func TestAccessible_UnknownTierDenied(t *testing.T) {
	require.False(t, Accessible(Tier("platinum"), FeatureDashboard))
}

func TestFeaturesFor(t *testing.T) {
	require.Len(t, FeaturesFor(TierBasic), 1)
	require.Len(t, FeaturesFor(TierGold), len(goldFeatures))
	require.Len(t, FeaturesFor(TierEnterprise), len(goldFeatures)+2)
	require.Empty(t, FeaturesFor(Tier("platinum")))
}
