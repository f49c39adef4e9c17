package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	journalrepo "github.com/ymorita/studylog/internal/data/repos/journal"
	"github.com/ymorita/studylog/internal/data/tenant"
	types "github.com/ymorita/studylog/internal/domain"
	"github.com/ymorita/studylog/internal/domain/journal"
	"github.com/ymorita/studylog/internal/pkg/apierr"
	"github.com/ymorita/studylog/internal/pkg/cursor"
	"github.com/ymorita/studylog/internal/pkg/logger"
	"github.com/ymorita/studylog/internal/validation"
)

type ThemeListParams struct {
	IncludeCompleted bool
	IncludeArchived  bool
	Limit            int
	Cursor           string
}

type ThemeService interface {
	List(ctx context.Context, ownerID uuid.UUID, p ThemeListParams) (cursor.Page[*types.Theme], error)
	Create(ctx context.Context, ownerID uuid.UUID, in *validation.ThemeCreateInput) (*types.Theme, error)
	Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*types.Theme, error)
	Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, updates map[string]any) (*types.Theme, error)
	// Delete transitions the theme and cascades to its logs and linked notes
	// in one transaction. It reports whether anything was actually deleted.
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (bool, error)
}

type themeService struct {
	db     *gorm.DB
	log    *logger.Logger
	themes journalrepo.ThemeRepo
	logs   journalrepo.LogRepo
	notes  journalrepo.NoteRepo
}

func NewThemeService(db *gorm.DB, baseLog *logger.Logger, themes journalrepo.ThemeRepo, logs journalrepo.LogRepo, notes journalrepo.NoteRepo) ThemeService {
	return &themeService{
		db:     db,
		log:    baseLog.With("service", "ThemeService"),
		themes: themes,
		logs:   logs,
		notes:  notes,
	}
}

func (s *themeService) List(ctx context.Context, ownerID uuid.UUID, p ThemeListParams) (cursor.Page[*types.Theme], error) {
	f := journalrepo.ThemeFilter{
		IncludeCompleted: p.IncludeCompleted,
		IncludeArchived:  p.IncludeArchived,
	}
	if p.Cursor != "" {
		var c journalrepo.ThemeCursor
		if err := cursor.Decode(p.Cursor, &c); err != nil {
			return cursor.Page[*types.Theme]{}, apierr.BadRequest("invalid cursor format")
		}
		f.Cursor = &c
	}

	rows, err := s.themes.List(ctx, nil, tenant.Owner(ownerID), f, p.Limit)
	if err != nil {
		s.log.Error("list themes failed", "owner_id", ownerID, "error", err)
		return cursor.Page[*types.Theme]{}, apierr.FromStorage("theme.list", err)
	}

	page, err := cursor.BuildPage(rows, p.Limit, func(t *types.Theme) any {
		return journalrepo.ThemeCursor{CreatedAt: t.CreatedAt, ID: t.ID}
	})
	if err != nil {
		return cursor.Page[*types.Theme]{}, apierr.Internal(err)
	}
	return page, nil
}

func (s *themeService) Create(ctx context.Context, ownerID uuid.UUID, in *validation.ThemeCreateInput) (*types.Theme, error) {
	now := time.Now()
	theme := &types.Theme{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Name:           in.Name,
		ShortName:      in.ShortName,
		Goal:           in.Goal,
		IsCompleted:    in.IsCompleted,
		State:          journal.StateActive,
		StateChangedAt: now,
	}
	if err := s.themes.Create(ctx, nil, theme); err != nil {
		s.log.Error("create theme failed", "owner_id", ownerID, "error", err)
		return nil, apierr.FromStorage("theme.create", err)
	}
	return theme, nil
}

func (s *themeService) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*types.Theme, error) {
	theme, err := s.themes.GetByID(ctx, nil, tenant.Owner(ownerID), id)
	if err != nil {
		return nil, apierr.FromStorage("theme.get", err)
	}
	return theme, nil
}

func (s *themeService) Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, updates map[string]any) (*types.Theme, error) {
	scope := tenant.Owner(ownerID)
	rows, err := s.themes.UpdateByID(ctx, nil, scope, id, updates)
	if err != nil {
		s.log.Error("update theme failed", "owner_id", ownerID, "theme_id", id, "error", err)
		return nil, apierr.FromStorage("theme.update", err)
	}
	if rows == 0 {
		return nil, apierr.NotFound("theme not found")
	}
	theme, err := s.themes.GetByID(ctx, nil, scope, id)
	if err != nil {
		return nil, apierr.FromStorage("theme.update", err)
	}
	return theme, nil
}

func (s *themeService) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (bool, error) {
	scope := tenant.Owner(ownerID)
	now := time.Now()
	deleted := false

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := s.themes.MarkDeleted(ctx, tx, scope, id, now)
		if err != nil {
			return err
		}
		if rows == 0 {
			return nil
		}
		deleted = true

		if _, err := s.logs.MarkDeletedByTheme(ctx, tx, scope, id, now); err != nil {
			return err
		}
		if _, err := s.notes.MarkDeletedByTheme(ctx, tx, scope, id, now); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.log.Error("delete theme failed", "owner_id", ownerID, "theme_id", id, "error", err)
		return false, apierr.FromStorage("theme.delete", err)
	}
	return deleted, nil
}
