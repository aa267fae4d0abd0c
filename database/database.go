package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/iamgjek/Shopee2Multi-sub000/config"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/billing"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/contact"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/conversion"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/plans"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/usage"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("❌ Failed to get sql.DB:", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	if err := SeedPlans(DB); err != nil {
		log.Fatal("❌ Plan seeding error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate runs the schema migration. Split out so tests can reuse it against
// an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},
		&billing.Payment{},

		// conversion pipeline
		&conversion.Task{},
		&usage.Log{},

		// contact form
		&contact.Submission{},
	)
}

// SeedPlans creates the three fixed tiers if missing. Upgrades happen through
// Stripe checkout, never through plan-table edits.
func SeedPlans(db *gorm.DB) error {
	defaults := []plans.Plan{
		{Name: "Free", Tier: plans.TierFree, PriceTWD: 0, Interval: "month"},
		{Name: "Pro", Tier: plans.TierPro, PriceTWD: 299, Interval: "month", StripePriceID: envPriceID("STRIPE_PRICE_PRO")},
		{Name: "Business", Tier: plans.TierBiz, PriceTWD: 899, Interval: "month", StripePriceID: envPriceID("STRIPE_PRICE_BIZ")},
	}
	for _, p := range defaults {
		var existing plans.Plan
		err := db.Where("tier = ?", p.Tier).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}

// envPriceID lets deployments attach Stripe price ids to the paid tiers
// without a migration. Unset means the tier can't be checked out yet.
func envPriceID(key string) *string {
	if v := os.Getenv(key); v != "" {
		return &v
	}
	return nil
}
