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

type NoteListParams struct {
	Category *journal.Category
	ThemeID  *uuid.UUID
	Start    *journal.Date
	End      *journal.Date
	Limit    int
	Cursor   string
}

type NoteService interface {
	List(ctx context.Context, ownerID uuid.UUID, p NoteListParams) (cursor.Page[*types.MetaNote], error)
	// Create assigns noteDate from the current date in the reference
	// timezone and inserts theme links in the same transaction as the note.
	Create(ctx context.Context, ownerID uuid.UUID, in *validation.NoteCreateInput) (*types.MetaNote, error)
	Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*types.MetaNoteDetail, error)
	// Update applies the patch and, when themeIDs is non-nil, replaces the
	// full link set, all in one transaction.
	Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, updates map[string]any, themeIDs []uuid.UUID) (*types.MetaNote, error)
	Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (bool, error)
}

type noteService struct {
	db    *gorm.DB
	log   *logger.Logger
	notes journalrepo.NoteRepo
	loc   *time.Location
}

func NewNoteService(db *gorm.DB, baseLog *logger.Logger, notes journalrepo.NoteRepo, noteLocation *time.Location) NoteService {
	if noteLocation == nil {
		noteLocation = time.UTC
	}
	return &noteService{
		db:    db,
		log:   baseLog.With("service", "NoteService"),
		notes: notes,
		loc:   noteLocation,
	}
}

func (s *noteService) List(ctx context.Context, ownerID uuid.UUID, p NoteListParams) (cursor.Page[*types.MetaNote], error) {
	f := journalrepo.NoteFilter{Category: p.Category, Start: p.Start, End: p.End}
	if p.ThemeID != nil {
		f.ThemeIDs = []uuid.UUID{*p.ThemeID}
	}
	if p.Cursor != "" {
		var c journalrepo.NoteCursor
		if err := cursor.Decode(p.Cursor, &c); err != nil {
			return cursor.Page[*types.MetaNote]{}, apierr.BadRequest("invalid cursor format")
		}
		f.Cursor = &c
	}

	rows, err := s.notes.List(ctx, nil, tenant.Owner(ownerID), f, p.Limit)
	if err != nil {
		s.log.Error("list notes failed", "owner_id", ownerID, "error", err)
		return cursor.Page[*types.MetaNote]{}, apierr.FromStorage("note.list", err)
	}

	page, err := cursor.BuildPage(rows, p.Limit, func(n *types.MetaNote) any {
		return journalrepo.NoteCursor{NoteDate: n.NoteDate, CreatedAt: n.CreatedAt, ID: n.ID}
	})
	if err != nil {
		return cursor.Page[*types.MetaNote]{}, apierr.Internal(err)
	}
	return page, nil
}

func (s *noteService) Create(ctx context.Context, ownerID uuid.UUID, in *validation.NoteCreateInput) (*types.MetaNote, error) {
	now := time.Now()
	note := &types.MetaNote{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Category:       in.Category,
		Body:           in.Body,
		NoteDate:       journal.DateOf(now.In(s.loc)),
		RelatedLogID:   in.RelatedLogID,
		State:          journal.StateActive,
		StateChangedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.notes.Create(ctx, tx, note); err != nil {
			return err
		}
		return s.notes.InsertThemeLinks(ctx, tx, note.ID, in.ThemeIDs)
	})
	if err != nil {
		s.log.Error("create note failed", "owner_id", ownerID, "theme_count", len(in.ThemeIDs), "has_related_log", in.RelatedLogID != nil, "error", err)
		return nil, apierr.FromStorage("note.create", err)
	}
	return note, nil
}

func (s *noteService) Get(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*types.MetaNoteDetail, error) {
	detail, err := s.notes.GetDetail(ctx, nil, tenant.Owner(ownerID), id)
	if err != nil {
		return nil, apierr.FromStorage("note.get", err)
	}
	return detail, nil
}

func (s *noteService) Update(ctx context.Context, ownerID uuid.UUID, id uuid.UUID, updates map[string]any, themeIDs []uuid.UUID) (*types.MetaNote, error) {
	scope := tenant.Owner(ownerID)
	var updated *types.MetaNote

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) == 0 {
			// themeIds-only patch: the link replace still requires the note
			// to exist, be owned, and not be deleted.
			if _, err := s.notes.GetByID(ctx, tx, scope, id); err != nil {
				return err
			}
		} else {
			rows, err := s.notes.UpdateByID(ctx, tx, scope, id, updates)
			if err != nil {
				return err
			}
			if rows == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		if themeIDs != nil {
			if err := s.notes.ReplaceThemeLinks(ctx, tx, id, themeIDs); err != nil {
				return err
			}
		}

		note, err := s.notes.GetByID(ctx, tx, scope, id)
		if err != nil {
			return err
		}
		updated = note
		return nil
	})
	if err != nil {
		if apiErr := apierr.FromStorage("note.update", err); apiErr.Code != apierr.CodeNotFound {
			s.log.Error("update note failed", "owner_id", ownerID, "note_id", id, "error", err)
		}
		return nil, apierr.FromStorage("note.update", err)
	}
	return updated, nil
}

func (s *noteService) Delete(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (bool, error) {
	rows, err := s.notes.MarkDeleted(ctx, nil, tenant.Owner(ownerID), id, time.Now())
	if err != nil {
		s.log.Error("delete note failed", "owner_id", ownerID, "note_id", id, "error", err)
		return false, apierr.FromStorage("note.delete", err)
	}
	return rows > 0, nil
}
