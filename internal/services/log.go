package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
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

type LogListParams struct {
	ThemeID *uuid.UUID
	Start   *journal.Date
	End     *journal.Date
	Limit   int
	Cursor  string
}

type LogService interface {
	List(ctx context.Context, ownerID uuid.UUID, p LogListParams) (cursor.Page[*types.LearningLogEntry], error)
	Create(ctx context.Context, ownerID uuid.UUID, in *validation.LogCreateInput) (*types.LearningLogEntry, error)
	Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*types.LearningLogEntry, error)
	Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, updates map[string]any) (*types.LearningLogEntry, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (bool, error)
}

type logService struct {
	db   *gorm.DB
	log  *logger.Logger
	logs journalrepo.LogRepo
}

func NewLogService(db *gorm.DB, baseLog *logger.Logger, logs journalrepo.LogRepo) LogService {
	return &logService{db: db, log: baseLog.With("service", "LogService"), logs: logs}
}

func (s *logService) List(ctx context.Context, ownerID uuid.UUID, p LogListParams) (cursor.Page[*types.LearningLogEntry], error) {
	f := journalrepo.LogFilter{ThemeID: p.ThemeID, Start: p.Start, End: p.End}
	if p.Cursor != "" {
		var c journalrepo.LogCursor
		if err := cursor.Decode(p.Cursor, &c); err != nil {
			return cursor.Page[*types.LearningLogEntry]{}, apierr.BadRequest("invalid cursor format")
		}
		f.Cursor = &c
	}

	rows, err := s.logs.List(ctx, nil, tenant.Owner(ownerID), f, p.Limit)
	if err != nil {
		s.log.Error("list logs failed", "owner_id", ownerID, "error", err)
		return cursor.Page[*types.LearningLogEntry]{}, apierr.FromStorage("log.list", err)
	}

	page, err := cursor.BuildPage(rows, p.Limit, func(e *types.LearningLogEntry) any {
		return journalrepo.LogCursor{Date: e.Date, CreatedAt: e.CreatedAt, ID: e.ID}
	})
	if err != nil {
		return cursor.Page[*types.LearningLogEntry]{}, apierr.Internal(err)
	}
	return page, nil
}

func (s *logService) Create(ctx context.Context, ownerID uuid.UUID, in *validation.LogCreateInput) (*types.LearningLogEntry, error) {
	tags, err := json.Marshal(in.Tags)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	now := time.Now()
	entry := &types.LearningLogEntry{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		ThemeID:        in.ThemeID,
		Date:           in.Date,
		Summary:        in.Summary,
		Details:        in.Details,
		Tags:           datatypes.JSON(tags),
		State:          journal.StateActive,
		StateChangedAt: now,
	}
	// The one-log-per-(owner,theme,date) invariant is the database's partial
	// unique index; a lost race surfaces here as a unique violation, a
	// dangling themeId as a foreign key violation.
	if err := s.logs.Create(ctx, nil, entry); err != nil {
		s.log.Error("create log failed", "owner_id", ownerID, "theme_id", in.ThemeID, "date", in.Date.String(), "error", err)
		return nil, apierr.FromStorage("log.create", err)
	}
	return entry, nil
}

func (s *logService) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*types.LearningLogEntry, error) {
	entry, err := s.logs.GetByID(ctx, nil, tenant.Owner(ownerID), id)
	if err != nil {
		return nil, apierr.FromStorage("log.get", err)
	}
	return entry, nil
}

func (s *logService) Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, updates map[string]any) (*types.LearningLogEntry, error) {
	scope := tenant.Owner(ownerID)
	rows, err := s.logs.UpdateByID(ctx, nil, scope, id, updates)
	if err != nil {
		s.log.Error("update log failed", "owner_id", ownerID, "log_id", id, "error", err)
		return nil, apierr.FromStorage("log.update", err)
	}
	if rows == 0 {
		return nil, apierr.NotFound("log not found")
	}
	entry, err := s.logs.GetByID(ctx, nil, scope, id)
	if err != nil {
		return nil, apierr.FromStorage("log.update", err)
	}
	return entry, nil
}

func (s *logService) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (bool, error) {
	rows, err := s.logs.MarkDeleted(ctx, nil, tenant.Owner(ownerID), id, time.Now())
	if err != nil {
		s.log.Error("delete log failed", "owner_id", ownerID, "log_id", id, "error", err)
		return false, apierr.FromStorage("log.delete", err)
	}
	return rows > 0, nil
}
