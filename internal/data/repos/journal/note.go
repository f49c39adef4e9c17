package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ymorita/studylog/internal/data/tenant"
	types "github.com/ymorita/studylog/internal/domain"
	"github.com/ymorita/studylog/internal/domain/journal"
	"github.com/ymorita/studylog/internal/pkg/logger"
)

// NoteCursor carries the ordering fields of the last retained row of a note
// page. Notes list descending, so resumption is strict less-than.
type NoteCursor struct {
	NoteDate  journal.Date `json:"noteDate"`
	CreatedAt time.Time    `json:"createdAt"`
	ID        uuid.UUID    `json:"id"`
}

type NoteFilter struct {
	Category *journal.Category
	ThemeIDs []uuid.UUID
	Start    *journal.Date
	End      *journal.Date
	Cursor   *NoteCursor
}

type NoteRepo interface {
	List(ctx context.Context, tx *gorm.DB, scope tenant.Scope, f NoteFilter, limit int) ([]*types.MetaNote, error)
	Create(ctx context.Context, tx *gorm.DB, note *types.MetaNote) error
	GetByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID) (*types.MetaNote, error)
	// GetDetail joins the related log projection and all linked themes.
	GetDetail(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID) (*types.MetaNoteDetail, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, updates map[string]any) (int64, error)
	// InsertThemeLinks adds join rows for a note. Caller owns the transaction.
	InsertThemeLinks(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, themeIDs []uuid.UUID) error
	// ReplaceThemeLinks drops every link of the note and inserts the new set.
	ReplaceThemeLinks(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, themeIDs []uuid.UUID) error
	MarkDeleted(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, at time.Time) (int64, error)
	// MarkDeletedByTheme transitions every non-deleted note linked to the
	// theme via the join table. Part of the theme delete cascade.
	MarkDeletedByTheme(ctx context.Context, tx *gorm.DB, scope tenant.Scope, themeID uuid.UUID, at time.Time) (int64, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return &noteRepo{db: db, log: baseLog.With("repo", "NoteRepo")}
}

func (r *noteRepo) List(ctx context.Context, tx *gorm.DB, scope tenant.Scope, f NoteFilter, limit int) ([]*types.MetaNote, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.MetaNote{})
	q, err := scope.Apply(q)
	if err != nil {
		return nil, err
	}

	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if len(f.ThemeIDs) > 0 {
		links := t.WithContext(ctx).Model(&types.MetaNoteTheme{}).
			Select("meta_note_id").
			Where("theme_id IN ?", f.ThemeIDs)
		q = q.Where("id IN (?)", links)
	}
	if f.Start != nil {
		q = q.Where("note_date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("note_date <= ?", *f.End)
	}
	if f.Cursor != nil {
		q = q.Where(
			"(note_date < ?) OR (note_date = ? AND created_at < ?) OR (note_date = ? AND created_at = ? AND id < ?)",
			f.Cursor.NoteDate,
			f.Cursor.NoteDate, f.Cursor.CreatedAt,
			f.Cursor.NoteDate, f.Cursor.CreatedAt, f.Cursor.ID,
		)
	}

	var out []*types.MetaNote
	if err := q.Order("note_date DESC, created_at DESC, id DESC").Limit(limit + 1).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, note *types.MetaNote) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(note).Error
}

func (r *noteRepo) GetByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID) (*types.MetaNote, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.MetaNote{})
	q, err := scope.Apply(q)
	if err != nil {
		return nil, err
	}

	var note types.MetaNote
	if err := q.Where("id = ?", id).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepo) GetDetail(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID) (*types.MetaNoteDetail, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	note, err := r.GetByID(ctx, t, scope, id)
	if err != nil {
		return nil, err
	}

	detail := &types.MetaNoteDetail{MetaNote: *note, Themes: []types.ThemeRef{}}

	if note.RelatedLogID != nil {
		// The link is the owner's own log; include it even after it was
		// soft-deleted so the reference stays resolvable.
		logScope := tenant.Scope{OwnerID: scope.OwnerID, IncludeDeleted: true}
		lq := t.WithContext(ctx).Model(&types.LearningLogEntry{})
		lq, err := logScope.Apply(lq)
		if err != nil {
			return nil, err
		}
		var ref types.RelatedLogRef
		err = lq.Select("id", "theme_id", "date", "summary").
			Where("id = ?", *note.RelatedLogID).
			First(&ref).Error
		switch {
		case err == nil:
			detail.RelatedLog = &ref
		case errors.Is(err, gorm.ErrRecordNotFound):
			// dangling reference, leave RelatedLog nil
		default:
			return nil, err
		}
	}

	if err := t.WithContext(ctx).Model(&types.MetaNoteTheme{}).
		Select("theme.id", "theme.name").
		Joins("JOIN theme ON theme.id = meta_note_theme.theme_id").
		Where("meta_note_theme.meta_note_id = ?", note.ID).
		Order("meta_note_theme.created_at ASC").
		Scan(&detail.Themes).Error; err != nil {
		return nil, err
	}
	return detail, nil
}

func (r *noteRepo) UpdateByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, updates map[string]any) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.MetaNote{})
	q, err := scope.Apply(q)
	if err != nil {
		return 0, err
	}

	res := q.Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *noteRepo) InsertThemeLinks(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, themeIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(themeIDs) == 0 {
		return nil
	}
	links := make([]*types.MetaNoteTheme, 0, len(themeIDs))
	for _, themeID := range themeIDs {
		links = append(links, &types.MetaNoteTheme{MetaNoteID: noteID, ThemeID: themeID})
	}
	return t.WithContext(ctx).Create(&links).Error
}

func (r *noteRepo) ReplaceThemeLinks(ctx context.Context, tx *gorm.DB, noteID uuid.UUID, themeIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).
		Where("meta_note_id = ?", noteID).
		Delete(&types.MetaNoteTheme{}).Error; err != nil {
		return err
	}
	return r.InsertThemeLinks(ctx, t, noteID, themeIDs)
}

func (r *noteRepo) MarkDeleted(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, at time.Time) (int64, error) {
	return r.UpdateByID(ctx, tx, scope, id, map[string]any{
		"state":            journal.StateDeleted,
		"state_changed_at": at,
	})
}

func (r *noteRepo) MarkDeletedByTheme(ctx context.Context, tx *gorm.DB, scope tenant.Scope, themeID uuid.UUID, at time.Time) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.MetaNote{})
	q, err := scope.Apply(q)
	if err != nil {
		return 0, err
	}

	links := t.WithContext(ctx).Model(&types.MetaNoteTheme{}).
		Select("meta_note_id").
		Where("theme_id = ?", themeID)

	res := q.Where("id IN (?)", links).Updates(map[string]any{
		"state":            journal.StateDeleted,
		"state_changed_at": at,
	})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
