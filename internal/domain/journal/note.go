package journal

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a meta note.
type Category string

const (
	CategoryInsight  Category = "INSIGHT"
	CategoryQuestion Category = "QUESTION"
	CategoryEmotion  Category = "EMOTION"
)

// Categories lists the valid note categories in declaration order.
var Categories = []Category{CategoryInsight, CategoryQuestion, CategoryEmotion}

func (c Category) Valid() bool {
	switch c {
	case CategoryInsight, CategoryQuestion, CategoryEmotion:
		return true
	}
	return false
}

// MetaNote is a free-form reflection. NoteDate is assigned by the server at
// creation from the reference timezone's current date and never changes.
type MetaNote struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID        uuid.UUID  `gorm:"type:uuid;not null;index;column:owner_id" json:"ownerId"`
	Category       Category   `gorm:"type:text;not null" json:"category"`
	Body           string     `gorm:"not null" json:"body"`
	NoteDate       Date       `gorm:"not null" json:"noteDate"`
	RelatedLogID   *uuid.UUID `gorm:"type:uuid" json:"relatedLogId"`
	State          State      `gorm:"type:text;not null;default:'ACTIVE'" json:"state"`
	StateChangedAt time.Time  `gorm:"not null" json:"stateChangedAt"`
	CreatedAt      time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updatedAt"`
}

func (MetaNote) TableName() string { return "meta_note" }

// MetaNoteTheme links a note to a theme. It has no identity of its own and
// lives and dies with its note.
type MetaNoteTheme struct {
	MetaNoteID uuid.UUID `gorm:"type:uuid;primaryKey" json:"metaNoteId"`
	ThemeID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"themeId"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
}

func (MetaNoteTheme) TableName() string { return "meta_note_theme" }

// RelatedLogRef is the projection of a linked log embedded in note detail
// responses.
type RelatedLogRef struct {
	ID      uuid.UUID `json:"id"`
	ThemeID uuid.UUID `json:"themeId"`
	Date    Date      `json:"date"`
	Summary string    `json:"summary"`
}

// ThemeRef is the projection of a linked theme embedded in note detail
// responses.
type ThemeRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// MetaNoteDetail is a note together with its linked log projection and
// themes.
type MetaNoteDetail struct {
	MetaNote
	RelatedLog *RelatedLogRef `json:"relatedLog"`
	Themes     []ThemeRef     `json:"themes"`
}
