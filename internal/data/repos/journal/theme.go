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

// ThemeCursor carries the ordering fields of the last retained row of a
// theme page. Themes list ascending, so resumption is strict greater-than.
type ThemeCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        uuid.UUID `json:"id"`
}

type ThemeFilter struct {
	IncludeCompleted bool
	IncludeArchived  bool
	Cursor           *ThemeCursor
}

type ThemeRepo interface {
	// List fetches up to limit+1 rows so the caller can detect a next page.
	List(ctx context.Context, tx *gorm.DB, scope tenant.Scope, f ThemeFilter, limit int) ([]*types.Theme, error)
	Create(ctx context.Context, tx *gorm.DB, theme *types.Theme) error
	GetByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID) (*types.Theme, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, updates map[string]any) (int64, error)
	MarkDeleted(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, at time.Time) (int64, error)
}

type themeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewThemeRepo(db *gorm.DB, baseLog *logger.Logger) ThemeRepo {
	return &themeRepo{db: db, log: baseLog.With("repo", "ThemeRepo")}
}

func (r *themeRepo) List(ctx context.Context, tx *gorm.DB, scope tenant.Scope, f ThemeFilter, limit int) ([]*types.Theme, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.Theme{})
	q, err := scope.Apply(q)
	if err != nil {
		return nil, err
	}

	if !f.IncludeArchived {
		q = q.Where("state = ?", journal.StateActive)
	}
	if !f.IncludeCompleted {
		q = q.Where("is_completed = ?", false)
	}
	if f.Cursor != nil {
		// tie-safe resumption: (created_at, id) > cursor
		q = q.Where("(created_at > ?) OR (created_at = ? AND id > ?)",
			f.Cursor.CreatedAt, f.Cursor.CreatedAt, f.Cursor.ID)
	}

	var out []*types.Theme
	if err := q.Order("created_at ASC, id ASC").Limit(limit + 1).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *themeRepo) Create(ctx context.Context, tx *gorm.DB, theme *types.Theme) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(theme).Error
}

func (r *themeRepo) GetByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID) (*types.Theme, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.Theme{})
	q, err := scope.Apply(q)
	if err != nil {
		return nil, err
	}

	var theme types.Theme
	if err := q.Where("id = ?", id).First(&theme).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepo) UpdateByID(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, updates map[string]any) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}

	q := t.WithContext(ctx).Model(&types.Theme{})
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

func (r *themeRepo) MarkDeleted(ctx context.Context, tx *gorm.DB, scope tenant.Scope, id uuid.UUID, at time.Time) (int64, error) {
	return r.UpdateByID(ctx, tx, scope, id, map[string]any{
		"state":            journal.StateDeleted,
		"state_changed_at": at,
	})
}
