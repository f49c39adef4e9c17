// Package validation holds the pure input validators for the journal API.
// Validators take raw request input and either produce typed, sanitized data
// or a BadRequest describing the first offending field. They never touch
// storage.
package validation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ymorita/studylog/internal/domain/journal"
	"github.com/ymorita/studylog/internal/pkg/apierr"
)

const (
	LimitDefault = 50
	LimitMin     = 1
	LimitMax     = 200
)

// Hex-with-dashes form; accepts any UUID version.
var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// Limit validates the limit query parameter. Absent means the default; out of
// bounds or non-numeric is a hard error, not a clamp.
func Limit(param string) (int, *apierr.Error) {
	if param == "" {
		return LimitDefault, nil
	}
	limit, err := strconv.Atoi(param)
	if err != nil || limit < LimitMin || limit > LimitMax {
		return 0, apierr.BadRequestf("limit must be between %d and %d", LimitMin, LimitMax)
	}
	return limit, nil
}

// UUIDParam validates a UUID-shaped identifier from a path or query
// parameter.
func UUIDParam(value, paramName string) (uuid.UUID, *apierr.Error) {
	if value == "" {
		return uuid.Nil, apierr.BadRequestf("%s is required", paramName)
	}
	if !uuidRe.MatchString(value) {
		return uuid.Nil, apierr.BadRequestf("%s must be a valid UUID", paramName)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apierr.BadRequestf("%s must be a valid UUID", paramName)
	}
	return id, nil
}

// DateParam validates a strict YYYY-MM-DD calendar date.
func DateParam(value, paramName string) (journal.Date, *apierr.Error) {
	if value == "" {
		return journal.Date{}, apierr.BadRequestf("%s is required", paramName)
	}
	d, err := journal.ParseDate(value)
	if err != nil {
		return journal.Date{}, apierr.BadRequestf("%s must be a valid YYYY-MM-DD date", paramName)
	}
	return d, nil
}

// CategoryParam validates a note category against the enum.
func CategoryParam(value string) (journal.Category, *apierr.Error) {
	c := journal.Category(value)
	if !c.Valid() {
		names := make([]string, len(journal.Categories))
		for i, cat := range journal.Categories {
			names[i] = string(cat)
		}
		return "", apierr.BadRequestf("category must be one of: %s", strings.Join(names, ", "))
	}
	return c, nil
}

// decodeObject unmarshals a request body and requires a JSON object.
func decodeObject(body []byte) (map[string]any, *apierr.Error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apierr.BadRequest("invalid JSON body")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, apierr.BadRequest("request body must be a JSON object")
	}
	return obj, nil
}

// requiredString enforces a present, non-empty-after-trim string field.
func requiredString(data map[string]any, key string) (string, *apierr.Error) {
	v, ok := data[key]
	if !ok {
		return "", apierr.BadRequestf("%s is required and must be a non-empty string", key)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", apierr.BadRequestf("%s is required and must be a non-empty string", key)
	}
	return s, nil
}

// optionalNullableString distinguishes omitted (present=false) from
// explicitly cleared (present=true, value=nil). Empty-after-trim normalizes
// to cleared.
func optionalNullableString(data map[string]any, key string) (value *string, present bool, apiErr *apierr.Error) {
	v, ok := data[key]
	if !ok {
		return nil, false, nil
	}
	if v == nil {
		return nil, true, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, false, apierr.BadRequestf("%s must be a string or null", key)
	}
	if strings.TrimSpace(s) == "" {
		return nil, true, nil
	}
	return &s, true, nil
}

func optionalBool(data map[string]any, key string) (value *bool, apiErr *apierr.Error) {
	v, ok := data[key]
	if !ok {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, apierr.BadRequestf("%s must be a boolean", key)
	}
	return &b, nil
}

// stringArray enforces an array of strings. Non-array input or a wrong
// element type is a hard error, never coerced.
func stringArray(data map[string]any, key string) (values []string, present bool, apiErr *apierr.Error) {
	v, ok := data[key]
	if !ok {
		return nil, false, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, false, apierr.BadRequestf("%s must be an array of strings", key)
	}
	out := make([]string, 0, len(arr))
	for _, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			return nil, false, apierr.BadRequestf("%s must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, true, nil
}

// uuidArray enforces an array of UUID strings.
func uuidArray(data map[string]any, key string) (ids []uuid.UUID, present bool, apiErr *apierr.Error) {
	values, present, err := stringArray(data, key)
	if err != nil || !present {
		return nil, present, err
	}
	out := make([]uuid.UUID, 0, len(values))
	for _, s := range values {
		id, idErr := UUIDParam(s, key)
		if idErr != nil {
			return nil, false, apierr.BadRequestf("%s must contain valid UUIDs", key)
		}
		out = append(out, id)
	}
	return out, true, nil
}

func uuidField(data map[string]any, key string) (uuid.UUID, *apierr.Error) {
	v, ok := data[key]
	if !ok {
		return uuid.Nil, apierr.BadRequestf("%s is required and must be a string", key)
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, apierr.BadRequestf("%s is required and must be a string", key)
	}
	return UUIDParam(s, key)
}
