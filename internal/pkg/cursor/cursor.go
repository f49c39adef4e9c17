// Package cursor implements opaque pagination cursors: base64-encoded JSON
// of an entity's ordering fields. The encoding is reversible; what the fields
// mean is up to the caller.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Encode serializes ordering fields into an opaque cursor string.
func Encode(fields any) (string, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. Any failure means the caller handed us a cursor we
// never produced; callers map the error to a BadRequest, never ignore it.
func Decode(opaque string, into any) error {
	raw, err := base64.StdEncoding.DecodeString(opaque)
	if err != nil {
		return fmt.Errorf("invalid cursor format: %w", err)
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("invalid cursor format: %w", err)
	}
	return nil
}

// Page is one page of a cursor-paginated listing.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"nextCursor"`
}

// BuildPage assembles a page from rows fetched with limit+1. When more than
// limit rows came back there is a next page: the result is truncated to limit
// and the next cursor is derived from the last retained row's ordering
// fields. Otherwise NextCursor stays nil to signal end of stream.
func BuildPage[T any](rows []T, limit int, fields func(T) any) (Page[T], error) {
	page := Page[T]{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		encoded, err := Encode(fields(page.Items[limit-1]))
		if err != nil {
			return Page[T]{}, err
		}
		page.NextCursor = &encoded
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}
