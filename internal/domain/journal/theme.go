package journal

import (
	"time"

	"github.com/google/uuid"
)

// Theme is a learning goal owned by exactly one user. Ownership never
// transfers.
type Theme struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id" json:"ownerId"`
	Name           string    `gorm:"not null" json:"name"`
	ShortName      *string   `gorm:"column:short_name" json:"shortName"`
	Goal           string    `gorm:"not null" json:"goal"`
	IsCompleted    bool      `gorm:"not null;default:false" json:"isCompleted"`
	State          State     `gorm:"type:text;not null;default:'ACTIVE'" json:"state"`
	StateChangedAt time.Time `gorm:"not null" json:"stateChangedAt"`
	CreatedAt      time.Time `gorm:"not null;index:idx_theme_cursor,priority:1" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"not null" json:"updatedAt"`
}

func (Theme) TableName() string { return "theme" }
