package users

import (
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/plans"
)

// Account status values. Users are never hard-deleted, only flagged.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDeleted   = "deleted"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  // "user" | "admin"
	Status       string  `gorm:"type:varchar(20);not null;default:'active'"`
	IsVerified   bool

	PlanID *uint
	Plan   *plans.Plan

	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time
	SubscriptionId    *string `gorm:"column:subscription_id;uniqueIndex:idx_users_subscription_id"`
	StripeCustomerID  *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	StripeSubscriptionStatus *string `gorm:"column:stripe_subscription_status"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tier resolves the user's effective plan tier.
func (u *User) Tier() string {
	return plans.PlanTier(u.Plan)
}
