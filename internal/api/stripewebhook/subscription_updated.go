package stripewebhooks

import (
	"fmt"
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/plans"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/users"
	stripeinfra "github.com/iamgjek/Shopee2Multi-sub000/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionUpdated(sub *stripe.Subscription) error {
	var user users.User
	if err := database.DB.Where("subscription_id = ?", sub.ID).First(&user).Error; err != nil {
		// Not one of ours (e.g. created before the checkout handler ran);
		// checkout.session.completed will pick it up.
		return nil
	}

	updates := map[string]interface{}{
		"subscription_end":           time.Unix(sub.CurrentPeriodEnd, 0),
		"stripe_subscription_status": stripeinfra.NormalizeSubscriptionStatus(string(sub.Status)),
	}

	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		var plan plans.Plan
		if err := database.DB.Where("stripe_price_id = ?", sub.Items.Data[0].Price.ID).First(&plan).Error; err == nil {
			updates["plan_id"] = plan.ID
		}
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update subscription state: %w", err)
	}
	return nil
}
