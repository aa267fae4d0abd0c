package contact

import "time"

const (
	StatusNew      = "new"
	StatusRead     = "read"
	StatusReplied  = "replied"
	StatusArchived = "archived"
)

type Submission struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Subject   string
	Message   string `gorm:"not null;type:text"`
	Status    string `gorm:"type:varchar(20);not null;default:'new'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
