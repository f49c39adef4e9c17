package validation

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestLogCreate(t *testing.T) {
	themeID := uuid.New()
	body := fmt.Sprintf(`{"themeId":%q,"date":"2025-05-01","summary":"read chapter 3","tags":["reading","go"]}`, themeID)
	in, err := LogCreate([]byte(body))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if in.ThemeID != themeID || in.Date.String() != "2025-05-01" || in.Summary != "read chapter 3" {
		t.Fatalf("got %+v", in)
	}
	if len(in.Tags) != 2 {
		t.Fatalf("tags: %v", in.Tags)
	}
	if in.Details != nil {
		t.Fatal("details defaults to nil")
	}
}

func TestLogCreateDefaultsTags(t *testing.T) {
	body := fmt.Sprintf(`{"themeId":%q,"date":"2025-05-01","summary":"s"}`, uuid.New())
	in, err := LogCreate([]byte(body))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if in.Tags == nil || len(in.Tags) != 0 {
		t.Fatalf("omitted tags must become an empty slice, got %v", in.Tags)
	}
}

func TestLogCreateRejectsBadInput(t *testing.T) {
	themeID := uuid.New()
	for _, body := range []string{
		`{}`,
		fmt.Sprintf(`{"themeId":%q,"summary":"s"}`, themeID),
		fmt.Sprintf(`{"themeId":%q,"date":"2025-5-1","summary":"s"}`, themeID),
		`{"themeId":"nope","date":"2025-05-01","summary":"s"}`,
		fmt.Sprintf(`{"themeId":%q,"date":"2025-05-01","summary":""}`, themeID),
		fmt.Sprintf(`{"themeId":%q,"date":"2025-05-01","summary":"s","tags":"reading"}`, themeID),
		fmt.Sprintf(`{"themeId":%q,"date":"2025-05-01","summary":"s","tags":[1,2]}`, themeID),
	} {
		if _, err := LogCreate([]byte(body)); err == nil {
			t.Errorf("LogCreate(%s): expected error", body)
		}
	}
}

func TestLogPatch(t *testing.T) {
	updates, err := LogPatch([]byte(`{"summary":"revised","tags":["x"]}`))
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updates["summary"] != "revised" {
		t.Fatalf("got %+v", updates)
	}
	tags, ok := updates["tags"].(datatypes.JSON)
	if !ok || string(tags) != `["x"]` {
		t.Fatalf("tags: %+v", updates["tags"])
	}
}

func TestLogPatchClearsDetails(t *testing.T) {
	updates, err := LogPatch([]byte(`{"details":null}`))
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	v, ok := updates["details"]
	if !ok || v != (*string)(nil) {
		t.Fatalf("explicit null must clear details: %+v", updates)
	}
}

func TestLogPatchRejectsEmptyPatch(t *testing.T) {
	if _, err := LogPatch([]byte(`{}`)); err == nil {
		t.Fatal("empty patch must be rejected")
	}
	// date and themeId are immutable; a body carrying only them patches nothing
	if _, err := LogPatch([]byte(`{"date":"2025-05-02"}`)); err == nil {
		t.Fatal("date-only patch must be rejected")
	}
}

func TestLogPatchReplacesTagsWithEmpty(t *testing.T) {
	updates, err := LogPatch([]byte(`{"tags":[]}`))
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	tags, ok := updates["tags"].(datatypes.JSON)
	if !ok || string(tags) != `[]` {
		t.Fatalf("tags: %+v", updates["tags"])
	}
}
