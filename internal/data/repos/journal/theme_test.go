package journal

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ymorita/studylog/internal/data/tenant"
	"github.com/ymorita/studylog/internal/domain/journal"
)

func TestThemeListScopesToOwner(t *testing.T) {
	db, themes, _, _ := setupRepos(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	seedTheme(t, db, alice, "alice theme", at(0))
	seedTheme(t, db, bob, "bob theme", at(1))

	rows, err := themes.List(ctx, nil, tenant.Owner(alice), ThemeFilter{}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "alice theme" {
		t.Fatalf("got %d rows", len(rows))
	}
}

func TestThemeListStateFilters(t *testing.T) {
	db, themes, _, _ := setupRepos(t)
	ctx := context.Background()
	owner := uuid.New()

	active := seedTheme(t, db, owner, "active", at(0))
	archived := seedTheme(t, db, owner, "archived", at(1))
	deleted := seedTheme(t, db, owner, "deleted", at(2))
	db.Model(archived).Update("state", journal.StateArchived)
	db.Model(deleted).Update("state", journal.StateDeleted)

	rows, err := themes.List(ctx, nil, tenant.Owner(owner), ThemeFilter{}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != active.ID {
		t.Fatalf("default listing must show only ACTIVE, got %d rows", len(rows))
	}

	rows, err = themes.List(ctx, nil, tenant.Owner(owner), ThemeFilter{IncludeArchived: true}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("includeArchived must add ARCHIVED but never DELETED, got %d rows", len(rows))
	}
	for _, row := range rows {
		if row.ID == deleted.ID {
			t.Fatal("DELETED theme leaked into listing")
		}
	}
}

func TestThemeListCompletedFilter(t *testing.T) {
	db, themes, _, _ := setupRepos(t)
	ctx := context.Background()
	owner := uuid.New()

	seedTheme(t, db, owner, "open", at(0))
	done := seedTheme(t, db, owner, "done", at(1))
	db.Model(done).Update("is_completed", true)

	rows, err := themes.List(ctx, nil, tenant.Owner(owner), ThemeFilter{}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "open" {
		t.Fatalf("completed theme must be hidden by default, got %d rows", len(rows))
	}

	rows, err = themes.List(ctx, nil, tenant.Owner(owner), ThemeFilter{IncludeCompleted: true}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestThemeListPaginationIsCompleteAndDuplicateFree(t *testing.T) {
	db, themes, _, _ := setupRepos(t)
	ctx := context.Background()
	owner := uuid.New()

	want := make(map[uuid.UUID]bool)
	for i := 0; i < 5; i++ {
		theme := seedTheme(t, db, owner, "theme", at(i))
		want[theme.ID] = true
	}

	seen := make(map[uuid.UUID]bool)
	var cur *ThemeCursor
	for page := 0; page < 10; page++ {
		rows, err := themes.List(ctx, nil, tenant.Owner(owner), ThemeFilter{Cursor: cur}, 2)
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if len(rows) == 0 {
			break
		}
		retained := rows
		if len(retained) > 2 {
			retained = retained[:2]
		}
		for _, row := range retained {
			if seen[row.ID] {
				t.Fatalf("row %s returned twice", row.ID)
			}
			seen[row.ID] = true
		}
		if len(rows) <= 2 {
			break
		}
		last := retained[len(retained)-1]
		cur = &ThemeCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	if len(seen) != len(want) {
		t.Fatalf("pagination returned %d of %d rows", len(seen), len(want))
	}
}

func TestThemeListTieBreaksOnID(t *testing.T) {
	db, themes, _, _ := setupRepos(t)
	ctx := context.Background()
	owner := uuid.New()

	// identical created_at forces ordering onto the id column
	var ids []string
	for i := 0; i < 4; i++ {
		theme := seedTheme(t, db, owner, "tied", at(0))
		ids = append(ids, theme.ID.String())
	}
	sort.Strings(ids)

	rows, err := themes.List(ctx, nil, tenant.Owner(owner), ThemeFilter{}, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i, row := range rows {
		if row.ID.String() != ids[i] {
			t.Fatalf("position %d: got %s, want %s", i, row.ID, ids[i])
		}
	}

	// resuming mid-tie must not skip or repeat rows
	cur := &ThemeCursor{CreatedAt: rows[1].CreatedAt, ID: rows[1].ID}
	rest, err := themes.List(ctx, nil, tenant.Owner(owner), ThemeFilter{Cursor: cur}, 10)
	if err != nil {
		t.Fatalf("list rest: %v", err)
	}
	if len(rest) != 2 || rest[0].ID.String() != ids[2] || rest[1].ID.String() != ids[3] {
		t.Fatalf("tie resumption broken: %d rows", len(rest))
	}
}

func TestThemeGetByIDHidesDeleted(t *testing.T) {
	db, themes, _, _ := setupRepos(t)
	ctx := context.Background()
	owner := uuid.New()

	theme := seedTheme(t, db, owner, "doomed", at(0))
	if _, err := themes.GetByID(ctx, nil, tenant.Owner(owner), theme.ID); err != nil {
		t.Fatalf("get before delete: %v", err)
	}

	rows, err := themes.MarkDeleted(ctx, nil, tenant.Owner(owner), theme.ID, at(1))
	if err != nil || rows != 1 {
		t.Fatalf("mark deleted: %d, %v", rows, err)
	}

	_, err = themes.GetByID(ctx, nil, tenant.Owner(owner), theme.ID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("deleted theme must read as not found, got %v", err)
	}

	// deleting again finds nothing to transition
	rows, err = themes.MarkDeleted(ctx, nil, tenant.Owner(owner), theme.ID, at(2))
	if err != nil || rows != 0 {
		t.Fatalf("second delete: %d, %v", rows, err)
	}
}

func TestThemeUpdateByIDScoped(t *testing.T) {
	db, themes, _, _ := setupRepos(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	theme := seedTheme(t, db, alice, "alice theme", at(0))

	rows, err := themes.UpdateByID(ctx, nil, tenant.Owner(bob), theme.ID, map[string]any{"name": "stolen"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rows != 0 {
		t.Fatal("cross-owner update must touch nothing")
	}

	rows, err = themes.UpdateByID(ctx, nil, tenant.Owner(alice), theme.ID, map[string]any{"name": "renamed"})
	if err != nil || rows != 1 {
		t.Fatalf("own update: %d, %v", rows, err)
	}
	got, err := themes.GetByID(ctx, nil, tenant.Owner(alice), theme.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "renamed" {
		t.Fatalf("got %q", got.Name)
	}
}

func TestThemeUpdateClearsShortName(t *testing.T) {
	db, themes, _, _ := setupRepos(t)
	ctx := context.Background()
	owner := uuid.New()

	theme := seedTheme(t, db, owner, "with short name", at(0))
	short := "sn"
	db.Model(theme).Update("short_name", &short)

	if _, err := themes.UpdateByID(ctx, nil, tenant.Owner(owner), theme.ID, map[string]any{"short_name": nil}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := themes.GetByID(ctx, nil, tenant.Owner(owner), theme.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ShortName != nil {
		t.Fatalf("short name not cleared: %v", *got.ShortName)
	}
}
