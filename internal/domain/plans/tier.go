package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierFree = "free"
	TierPro  = "pro"
	TierBiz  = "biz"
)

// FreeDailyItemLimit is the number of items a free-plan user may convert per
// calendar day.
const FreeDailyItemLimit = 10

// platformTiers maps a target marketplace to the minimum tier that may export
// to it. Platforms absent from the map are open to everyone.
var platformTiers = map[string]string{
	"yahoo":   TierPro,
	"coupang": TierBiz,
	"rakuten": TierBiz,
}

// PlanTier returns the effective tier for a plan. A nil plan is a free
// account (users start without a plan row).
func PlanTier(p *Plan) string {
	if p == nil {
		return TierFree
	}
	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	switch tier {
	case TierPro, TierBiz:
		return tier
	}
	return TierFree
}

// RequiredTier returns the minimum tier needed to export to the platform.
func RequiredTier(platform string) string {
	if t, ok := platformTiers[platform]; ok {
		return t
	}
	return TierFree
}

// TierAllows reports whether a user on `tier` may export to `platform`.
func TierAllows(tier string, platform string) bool {
	switch RequiredTier(platform) {
	case TierBiz:
		return tier == TierBiz
	case TierPro:
		return tier == TierPro || tier == TierBiz
	default:
		return true
	}
}
