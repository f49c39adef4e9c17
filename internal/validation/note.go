package validation

import (
	"github.com/google/uuid"

	"github.com/ymorita/studylog/internal/domain/journal"
	"github.com/ymorita/studylog/internal/pkg/apierr"
)

type NoteCreateInput struct {
	Category     journal.Category
	Body         string
	ThemeIDs     []uuid.UUID
	RelatedLogID *uuid.UUID
}

// NoteCreate validates a POST /notes body. noteDate is not accepted here; the
// server assigns it at creation time.
func NoteCreate(body []byte) (*NoteCreateInput, *apierr.Error) {
	data, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	categoryStr, err := requiredString(data, "category")
	if err != nil {
		return nil, err
	}
	category, err := CategoryParam(categoryStr)
	if err != nil {
		return nil, err
	}
	noteBody, err := requiredString(data, "body")
	if err != nil {
		return nil, err
	}
	themeIDs, _, err := uuidArray(data, "themeIds")
	if err != nil {
		return nil, err
	}
	relatedLogID, err := nullableUUID(data, "relatedLogId")
	if err != nil {
		return nil, err
	}

	return &NoteCreateInput{
		Category:     category,
		Body:         noteBody,
		ThemeIDs:     themeIDs,
		RelatedLogID: relatedLogID,
	}, nil
}

// NotePatch validates a PATCH /notes/{id} body. The update map never carries
// note_date (immutable after creation). themeIDs comes back separately: a
// non-nil slice means "replace all links with this set", nil means leave the
// links alone.
func NotePatch(body []byte) (updates map[string]any, themeIDs []uuid.UUID, apiErr *apierr.Error) {
	data, err := decodeObject(body)
	if err != nil {
		return nil, nil, err
	}

	updates = map[string]any{}
	themesPresent := false

	if _, ok := data["category"]; ok {
		categoryStr, err := requiredString(data, "category")
		if err != nil {
			return nil, nil, err
		}
		category, err := CategoryParam(categoryStr)
		if err != nil {
			return nil, nil, err
		}
		updates["category"] = category
	}
	if _, ok := data["body"]; ok {
		noteBody, err := requiredString(data, "body")
		if err != nil {
			return nil, nil, err
		}
		updates["body"] = noteBody
	}
	if _, ok := data["noteDate"]; ok {
		return nil, nil, apierr.BadRequest("noteDate cannot be updated")
	}
	if v, ok := data["relatedLogId"]; ok {
		if v == nil {
			updates["related_log_id"] = nil
		} else {
			id, err := nullableUUID(data, "relatedLogId")
			if err != nil {
				return nil, nil, err
			}
			updates["related_log_id"] = id
		}
	}
	if ids, present, err := uuidArray(data, "themeIds"); err != nil {
		return nil, nil, err
	} else if present {
		themesPresent = true
		themeIDs = ids
		if themeIDs == nil {
			themeIDs = []uuid.UUID{}
		}
	}

	if len(updates) == 0 && !themesPresent {
		return nil, nil, apierr.BadRequest("at least one field must be provided")
	}
	if !themesPresent {
		themeIDs = nil
	}
	return updates, themeIDs, nil
}

// nullableUUID accepts a UUID string, an explicit null, or an absent key.
func nullableUUID(data map[string]any, key string) (*uuid.UUID, *apierr.Error) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, apierr.BadRequestf("%s must be a UUID string or null", key)
	}
	id, err := UUIDParam(s, key)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
