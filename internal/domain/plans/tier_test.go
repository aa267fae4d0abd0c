package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanTier(t *testing.T) {
	assert.Equal(t, TierFree, PlanTier(nil))
	assert.Equal(t, TierFree, PlanTier(&Plan{Tier: ""}))
	assert.Equal(t, TierFree, PlanTier(&Plan{Tier: "free"}))
	assert.Equal(t, TierPro, PlanTier(&Plan{Tier: "pro"}))
	assert.Equal(t, TierPro, PlanTier(&Plan{Tier: " Pro "}))
	assert.Equal(t, TierBiz, PlanTier(&Plan{Tier: "biz"}))
	assert.Equal(t, TierFree, PlanTier(&Plan{Tier: "enterprise"}))
}

func TestRequiredTier(t *testing.T) {
	assert.Equal(t, TierFree, RequiredTier("momo"))
	assert.Equal(t, TierFree, RequiredTier("pchome"))
	assert.Equal(t, TierPro, RequiredTier("yahoo"))
	assert.Equal(t, TierBiz, RequiredTier("coupang"))
	assert.Equal(t, TierBiz, RequiredTier("rakuten"))
	assert.Equal(t, TierFree, RequiredTier("something-else"))
}

func TestTierAllows(t *testing.T) {
	cases := []struct {
		tier     string
		platform string
		want     bool
	}{
		{TierFree, "momo", true},
		{TierFree, "pchome", true},
		{TierFree, "yahoo", false},
		{TierFree, "coupang", false},
		{TierFree, "rakuten", false},

		{TierPro, "momo", true},
		{TierPro, "yahoo", true},
		{TierPro, "coupang", false},
		{TierPro, "rakuten", false},

		{TierBiz, "momo", true},
		{TierBiz, "yahoo", true},
		{TierBiz, "coupang", true},
		{TierBiz, "rakuten", true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, TierAllows(tc.tier, tc.platform), "%s -> %s", tc.tier, tc.platform)
	}
}
