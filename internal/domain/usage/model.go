package usage

import (
	"time"

	"gorm.io/gorm"
)

// Log statuses.
const (
	StatusSuccess    = "success"
	StatusFailed     = "failed"
	StatusProcessing = "processing"
)

// Log is one metering row per conversion attempt, written exactly once
// regardless of outcome so the daily quota stays accurate.
type Log struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	ItemCount int    `gorm:"not null;default:1"`
	Platform  string `gorm:"type:varchar(20);not null"`
	Status    string `gorm:"type:varchar(20);not null"`
	LatencyMs int64
	ErrorCode *string
	CreatedAt time.Time `gorm:"index"`
}

// ItemsToday sums the user's item counts for the current local calendar day.
func ItemsToday(db *gorm.DB, userID uint) (int64, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var total int64
	err := db.Model(&Log{}).
		Where("user_id = ? AND created_at >= ?", userID, midnight).
		Select("COALESCE(SUM(item_count), 0)").
		Scan(&total).Error
	return total, err
}
