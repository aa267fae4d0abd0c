package conversion

import "time"

// Task statuses. A task is immutable once terminal.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Task tracks one conversion attempt from acceptance to terminal state.
// Invariant: ResultPath is set iff Status == completed; a failed task always
// carries a non-empty ErrorMessage.
type Task struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	UserID       uint   `gorm:"index"`
	SourceURL    string `gorm:"not null;size:2048"`
	Platform     string `gorm:"type:varchar(20);not null"`
	Status       string `gorm:"type:varchar(20);not null;default:'pending'"`
	ResultPath   *string
	ErrorMessage *string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}
