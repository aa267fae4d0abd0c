package stripewebhooks

import (
	"fmt"

	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/users"
	stripeinfra "github.com/iamgjek/Shopee2Multi-sub000/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionDeleted drops the user back to the free tier.
func handleSubscriptionDeleted(sub *stripe.Subscription) error {
	var user users.User
	if err := database.DB.Where("subscription_id = ?", sub.ID).First(&user).Error; err != nil {
		return nil
	}

	updates := map[string]interface{}{
		"plan_id":                    nil,
		"subscription_id":            nil,
		"subscription_start":         nil,
		"subscription_end":           nil,
		"stripe_subscription_status": stripeinfra.NormalizeSubscriptionStatus(string(sub.Status)),
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to clear subscription: %w", err)
	}
	return nil
}
