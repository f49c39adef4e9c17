package validation

import (
	"github.com/ymorita/studylog/internal/pkg/apierr"
)

type ThemeCreateInput struct {
	Name        string
	Goal        string
	ShortName   *string
	IsCompleted bool
}

// ThemeCreate validates a POST /themes body.
func ThemeCreate(body []byte) (*ThemeCreateInput, *apierr.Error) {
	data, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	name, err := requiredString(data, "name")
	if err != nil {
		return nil, err
	}
	goal, err := requiredString(data, "goal")
	if err != nil {
		return nil, err
	}
	shortName, _, err := optionalNullableString(data, "shortName")
	if err != nil {
		return nil, err
	}
	isCompleted, err := optionalBool(data, "isCompleted")
	if err != nil {
		return nil, err
	}

	in := &ThemeCreateInput{Name: name, Goal: goal, ShortName: shortName}
	if isCompleted != nil {
		in.IsCompleted = *isCompleted
	}
	return in, nil
}

// ThemePatch validates a PATCH /themes/{id} body into a column-keyed update
// map. Key presence in the request distinguishes "leave untouched" from
// "explicitly clear"; cleared optionals land in the map as nil.
func ThemePatch(body []byte) (map[string]any, *apierr.Error) {
	data, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}

	if _, ok := data["name"]; ok {
		name, err := requiredString(data, "name")
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if _, ok := data["goal"]; ok {
		goal, err := requiredString(data, "goal")
		if err != nil {
			return nil, err
		}
		updates["goal"] = goal
	}
	if shortName, present, err := optionalNullableString(data, "shortName"); err != nil {
		return nil, err
	} else if present {
		updates["short_name"] = shortName
	}
	if isCompleted, err := optionalBool(data, "isCompleted"); err != nil {
		return nil, err
	} else if isCompleted != nil {
		updates["is_completed"] = *isCompleted
	}

	if len(updates) == 0 {
		return nil, apierr.BadRequest("at least one field must be provided")
	}
	return updates, nil
}
