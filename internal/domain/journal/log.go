package journal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearningLogEntry is one day's log for a theme. At most one non-deleted
// entry may exist per (owner, theme, date); the constraint lives in the
// database as a partial unique index so concurrent creators race safely.
type LearningLogEntry struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID      `gorm:"type:uuid;not null;index;column:owner_id" json:"ownerId"`
	ThemeID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"themeId"`
	Date           Date           `gorm:"not null" json:"date"`
	Summary        string         `gorm:"not null" json:"summary"`
	Details        *string        `json:"details"`
	Tags           datatypes.JSON `gorm:"not null;default:'[]'" json:"tags"`
	State          State          `gorm:"type:text;not null;default:'ACTIVE'" json:"state"`
	StateChangedAt time.Time      `gorm:"not null" json:"stateChangedAt"`
	CreatedAt      time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updatedAt"`
}

func (LearningLogEntry) TableName() string { return "learning_log_entry" }
