package journal

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/ymorita/studylog/internal/domain"
	"github.com/ymorita/studylog/internal/domain/journal"
	"github.com/ymorita/studylog/internal/testutil"
)

func setupRepos(t *testing.T) (*gorm.DB, ThemeRepo, LogRepo, NoteRepo) {
	t.Helper()
	db := testutil.OpenDB(t)
	log := testutil.NewLogger(t)
	return db, NewThemeRepo(db, log), NewLogRepo(db, log), NewNoteRepo(db, log)
}

func seedTheme(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, createdAt time.Time) *types.Theme {
	t.Helper()
	theme := &types.Theme{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           name,
		Goal:           "goal for " + name,
		State:          journal.StateActive,
		StateChangedAt: createdAt,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	if err := db.Create(theme).Error; err != nil {
		t.Fatalf("seed theme %s: %v", name, err)
	}
	return theme
}

func seedLog(t *testing.T, db *gorm.DB, ownerID, themeID uuid.UUID, date journal.Date, createdAt time.Time) *types.LearningLogEntry {
	t.Helper()
	entry := &types.LearningLogEntry{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		ThemeID:        themeID,
		Date:           date,
		Summary:        "summary " + date.String(),
		Tags:           datatypes.JSON(`[]`),
		State:          journal.StateActive,
		StateChangedAt: createdAt,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("seed log %s: %v", date, err)
	}
	return entry
}

func seedNote(t *testing.T, db *gorm.DB, ownerID uuid.UUID, category journal.Category, noteDate journal.Date, createdAt time.Time) *types.MetaNote {
	t.Helper()
	note := &types.MetaNote{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Category:       category,
		Body:           "note " + noteDate.String(),
		NoteDate:       noteDate,
		State:          journal.StateActive,
		StateChangedAt: createdAt,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	if err := db.Create(note).Error; err != nil {
		t.Fatalf("seed note %s: %v", noteDate, err)
	}
	return note
}

func at(sec int) time.Time {
	return time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func day(d int) journal.Date {
	return journal.NewDate(2025, time.April, d)
}
