package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSubscriptionStatus(t *testing.T) {
	cases := map[string]string{
		"":                   "none",
		"  ":                 "none",
		"active":             "active",
		" active ":           "active",
		"trialing":           "trialing",
		"past_due":           "past_due",
		"unpaid":             "past_due",
		"canceled":           "canceled",
		"incomplete_expired": "canceled",
		"incomplete":         "incomplete",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeSubscriptionStatus(in), "input %q", in)
	}
}
