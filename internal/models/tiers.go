package models

// Feature keys gate whole feature areas, one per route family.
type Feature string

const (
	FeatureDashboard  Feature = "dashboard"
	FeatureBrand      Feature = "brand"
	FeatureMedia      Feature = "media"
	FeatureCalendar   Feature = "calendar"
	FeatureChannels   Feature = "channels"
	FeaturePublishing Feature = "publishing"
	FeatureAnalytics  Feature = "analytics"
	FeatureCampaigns  Feature = "campaigns"
	FeatureGrowth     Feature = "growth"
	FeatureDates      Feature = "dates"
	FeatureSettings   Feature = "settings"
	FeatureAgent      Feature = "agent"
	FeatureAdmin      Feature = "admin"
)

var goldFeatures = []Feature{
	FeatureDashboard,
	FeatureBrand,
	FeatureMedia,
	FeatureCalendar,
	FeatureChannels,
	FeaturePublishing,
	FeatureAnalytics,
	FeatureCampaigns,
	FeatureGrowth,
	FeatureDates,
	FeatureSettings,
}

// tierFeatures is the static tier -> feature-set table. Enterprise is a
// strict superset of gold, gold of basic.
var tierFeatures = map[Tier]map[Feature]bool{
	TierBasic:      featureSet(FeatureDashboard),
	TierGold:       featureSet(goldFeatures...),
	TierEnterprise: featureSet(append(goldFeatures, FeatureAgent, FeatureAdmin)...),
}

func featureSet(features ...Feature) map[Feature]bool {
	set := make(map[Feature]bool, len(features))
	for _, f := range features {
		set[f] = true
	}
	return set
}

// Accessible reports whether the given subscription tier may reach the given
// feature area. Unknown tiers have no access.
func Accessible(tier Tier, feature Feature) bool {
	features, ok := tierFeatures[tier]
	if !ok {
		return false
	}
	return features[feature]
}

// FeaturesFor returns the feature keys a tier may reach, for the UI nav.
func FeaturesFor(tier Tier) []Feature {
	features := make([]Feature, 0, len(tierFeatures[tier]))
	for f := range tierFeatures[tier] {
		features = append(features, f)
	}
	return features
}
