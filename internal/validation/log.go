package validation

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/ymorita/studylog/internal/domain/journal"
	"github.com/ymorita/studylog/internal/pkg/apierr"
)

type LogCreateInput struct {
	ThemeID uuid.UUID
	Date    journal.Date
	Summary string
	Details *string
	Tags    []string
}

// LogCreate validates a POST /logs body.
func LogCreate(body []byte) (*LogCreateInput, *apierr.Error) {
	data, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	themeID, err := uuidField(data, "themeId")
	if err != nil {
		return nil, err
	}
	dateStr, err := requiredString(data, "date")
	if err != nil {
		return nil, err
	}
	date, err := DateParam(dateStr, "date")
	if err != nil {
		return nil, err
	}
	summary, err := requiredString(data, "summary")
	if err != nil {
		return nil, err
	}
	details, _, err := optionalNullableString(data, "details")
	if err != nil {
		return nil, err
	}
	tags, present, err := stringArray(data, "tags")
	if err != nil {
		return nil, err
	}
	if !present {
		tags = []string{}
	}

	return &LogCreateInput{
		ThemeID: themeID,
		Date:    date,
		Summary: summary,
		Details: details,
		Tags:    tags,
	}, nil
}

// LogPatch validates a PATCH /logs/{id} body into a column-keyed update map.
func LogPatch(body []byte) (map[string]any, *apierr.Error) {
	data, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if _, ok := data["summary"]; ok {
		summary, err := requiredString(data, "summary")
		if err != nil {
			return nil, err
		}
		updates["summary"] = summary
	}
	if details, present, err := optionalNullableString(data, "details"); err != nil {
		return nil, err
	} else if present {
		updates["details"] = details
	}
	if tags, present, err := stringArray(data, "tags"); err != nil {
		return nil, err
	} else if present {
		raw, marshalErr := json.Marshal(tags)
		if marshalErr != nil {
			return nil, apierr.BadRequest("tags must be an array of strings")
		}
		updates["tags"] = datatypes.JSON(raw)
	}

	if len(updates) == 0 {
		return nil, apierr.BadRequest("at least one field must be provided")
	}
	return updates, nil
}
