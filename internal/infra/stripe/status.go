package stripe

import "strings"

// NormalizeSubscriptionStatus collapses Stripe's subscription statuses into
// the small set the account pages care about. Unknown values pass through.
func NormalizeSubscriptionStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}
