package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ymorita/studylog/internal/data/tenant"
	types "github.com/ymorita/studylog/internal/domain"
	"github.com/ymorita/studylog/internal/domain/journal"
	"github.com/ymorita/studylog/internal/pkg/logger"
)

// LogCursor carries the ordering fields of the last retained row of a log
// page. Logs list descending, so resumption is strict less-than.
type LogCursor struct {
	Date      journal.Date `json:"date"`
	CreatedAt time.Time    `json:"createdAt"`
	ID        uuid.UUID    `json:"id"`
}

type LogFilter struct {
	ThemeID *uuid.UUID
	Start   *journal.Date
	End     *journal.Date
	Cursor  *LogCursor
}

type LogRepo interface {
	List(ctx context.Context, tx *gorm.DB, scope tenant.Scope, f LogFilter, limit int) ([]*types.LearningLogEntry, error)
	Create(ctx context.Context, tx *gorm.DB, entry *types.LearningLogEntry) error
	GetByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID) (*types.LearningLogEntry, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, updates map[string]any) (int64, error)
	MarkDeleted(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, at time.Time) (int64, error)
	// MarkDeletedByTheme transitions every non-deleted log of a theme. Used
	// by the theme delete cascade; must run inside the caller's transaction.
	MarkDeletedByTheme(ctx context.Context, tx *gorm.DB, scope tenant.Scope, themeID uuid.UUID, at time.Time) (int64, error)
}

type logRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLogRepo(db *gorm.DB, baseLog *logger.Logger) LogRepo {
	return &logRepo{db: db, log: baseLog.With("repo", "LogRepo")}
}

func (r *logRepo) List(ctx context.Context, tx *gorm.DB, scope tenant.Scope, f LogFilter, limit int) ([]*types.LearningLogEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.LearningLogEntry{})
	q, err := scope.Apply(q)
	if err != nil {
		return nil, err
	}

	if f.ThemeID != nil {
		q = q.Where("theme_id = ?", *f.ThemeID)
	}
	if f.Start != nil {
		q = q.Where("date >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("date <= ?", *f.End)
	}
	if f.Cursor != nil {
		// tie-safe resumption: (date, created_at, id) < cursor
		q = q.Where(
			"(date < ?) OR (date = ? AND created_at < ?) OR (date = ? AND created_at = ? AND id < ?)",
			f.Cursor.Date,
			f.Cursor.Date, f.Cursor.CreatedAt,
			f.Cursor.Date, f.Cursor.CreatedAt, f.Cursor.ID,
		)
	}

	var out []*types.LearningLogEntry
	if err := q.Order("date DESC, created_at DESC, id DESC").Limit(limit + 1).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *logRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.LearningLogEntry) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(entry).Error
}

func (r *logRepo) GetByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID) (*types.LearningLogEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.LearningLogEntry{})
	q, err := scope.Apply(q)
	if err != nil {
		return nil, err
	}

	var entry types.LearningLogEntry
	if err := q.Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *logRepo) UpdateByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, updates map[string]any) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.LearningLogEntry{})
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

func (r *logRepo) MarkDeleted(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, at time.Time) (int64, error) {
	return r.UpdateByID(ctx, tx, scope, id, map[string]any{
		"state":            journal.StateDeleted,
		"state_changed_at": at,
	})
}

func (r *logRepo) MarkDeletedByTheme(ctx context.Context, tx *gorm.DB, scope tenant.Scope, themeID uuid.UUID, at time.Time) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.LearningLogEntry{})
	q, err := scope.Apply(q)
	if err != nil {
		return 0, err
	}

	res := q.Where("theme_id = ?", themeID).Updates(map[string]any{
		"state":            journal.StateDeleted,
		"state_changed_at": at,
	})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
