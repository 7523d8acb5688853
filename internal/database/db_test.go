package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "recipebox-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := Open(dbPath)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return db, cleanup
}

func TestOpen(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	if db == nil {
		t.Fatal("expected non-nil database")
	}

	// Verify tables exist
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='recipes'").Scan(&count)
	if err != nil {
		t.Fatalf("failed to query tables: %v", err)
	}
	if count != 1 {
		t.Errorf("expected recipes table to exist")
	}
}

func TestInsertIfAbsent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	homepage := "https://www.skinnytaste.com"
	r := &Recipe{
		MessageID: "msg-1",
		Source:    "skinnytaste",
		Title:     "Chicken Tacos",
		URL:       "https://www.skinnytaste.com/chicken-tacos",
		Homepage:  &homepage,
	}

	inserted, err := db.InsertIfAbsent(ctx, r)
	if err != nil {
		t.Fatalf("InsertIfAbsent failed: %v", err)
	}
	if !inserted {
		t.Error("expected first insert to report inserted=true")
	}
	if r.ID == "" {
		t.Error("expected ID to be set after insert")
	}

	// Same (message_id, url) pair: no-op, not an error.
	dup := &Recipe{
		MessageID: "msg-1",
		Source:    "skinnytaste",
		Title:     "Chicken Tacos Again",
		URL:       "https://www.skinnytaste.com/chicken-tacos",
	}
	inserted, err = db.InsertIfAbsent(ctx, dup)
	if err != nil {
		t.Fatalf("InsertIfAbsent duplicate failed: %v", err)
	}
	if inserted {
		t.Error("expected duplicate insert to report inserted=false")
	}

	// Same URL under another message is a different record.
	other := &Recipe{
		MessageID: "msg-2",
		Source:    "skinnytaste",
		Title:     "Chicken Tacos",
		URL:       "https://www.skinnytaste.com/chicken-tacos",
	}
	inserted, err = db.InsertIfAbsent(ctx, other)
	if err != nil {
		t.Fatalf("InsertIfAbsent other message failed: %v", err)
	}
	if !inserted {
		t.Error("expected insert under new message_id to succeed")
	}

	recipes, err := db.ListRecipes(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(recipes) != 2 {
		t.Errorf("expected 2 recipes, got %d", len(recipes))
	}
}

func TestInsertIfAbsent_UnescapesTitle(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	r := &Recipe{
		MessageID: "msg-1",
		Source:    "skinnytaste",
		Title:     "Mac &amp; Cheese",
		URL:       "https://www.skinnytaste.com/mac-cheese",
	}
	if _, err := db.InsertIfAbsent(ctx, r); err != nil {
		t.Fatalf("InsertIfAbsent failed: %v", err)
	}

	fetched, err := db.GetRecipe(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if fetched.Title != "Mac & Cheese" {
		t.Errorf("expected entities decoded, got %q", fetched.Title)
	}
}

func TestGetRecipe_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	r, err := db.GetRecipe(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if r != nil {
		t.Error("expected nil for missing recipe")
	}
}

func TestListRecipesWithFilters(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	parent := "https://findthelostkitchen.com/recipes/fall"
	recipes := []Recipe{
		{MessageID: "m1", Source: "skinnytaste", Title: "Chicken Tacos", URL: "https://skinnytaste.com/chicken-tacos", CreatedAt: time.Now().Add(-2 * time.Hour)},
		{MessageID: "m2", Source: "the_lost_kitchen", Title: "Apple Crisp", URL: "https://findthelostkitchen.com/recipes/apple-crisp", ParentURL: &parent, CreatedAt: time.Now().Add(-1 * time.Hour)},
		{MessageID: "m2", Source: "the_lost_kitchen", Title: "Squash Soup", URL: "https://findthelostkitchen.com/recipes/squash-soup", ParentURL: &parent, CreatedAt: time.Now()},
	}
	for i := range recipes {
		if _, err := db.InsertIfAbsent(ctx, &recipes[i]); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	// Newest first
	all, err := db.ListRecipes(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListRecipes failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(all))
	}
	if all[0].Title != "Squash Soup" {
		t.Errorf("expected newest first, got %s", all[0].Title)
	}

	// Search over title
	results, _ := db.ListRecipes(ctx, ListOptions{Search: "taco"})
	if len(results) != 1 {
		t.Errorf("expected 1 result for 'taco', got %d", len(results))
	}

	// Search over url
	results, _ = db.ListRecipes(ctx, ListOptions{Search: "findthelostkitchen"})
	if len(results) != 2 {
		t.Errorf("expected 2 results for url search, got %d", len(results))
	}

	// Source filter
	results, _ = db.ListRecipes(ctx, ListOptions{Source: "the_lost_kitchen"})
	if len(results) != 2 {
		t.Errorf("expected 2 lost kitchen recipes, got %d", len(results))
	}

	// Limit
	results, _ = db.ListRecipes(ctx, ListOptions{Limit: 2})
	if len(results) != 2 {
		t.Errorf("expected 2 recipes with limit, got %d", len(results))
	}
}

func TestGetStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	parent := "https://findthelostkitchen.com/recipes/fall"
	recipes := []Recipe{
		{MessageID: "m1", Source: "skinnytaste", Title: "A", URL: "https://skinnytaste.com/a"},
		{MessageID: "m1", Source: "skinnytaste", Title: "B", URL: "https://skinnytaste.com/b"},
		{MessageID: "m2", Source: "the_lost_kitchen", Title: "C", URL: "https://findthelostkitchen.com/recipes/c", ParentURL: &parent},
		{MessageID: ManualMessageID, Source: "skinnytaste", Title: "D", URL: "https://skinnytaste.com/d"},
	}
	for i := range recipes {
		db.InsertIfAbsent(ctx, &recipes[i])
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalRecipes != 4 {
		t.Errorf("expected TotalRecipes=4, got %d", stats.TotalRecipes)
	}
	if stats.BySource["skinnytaste"] != 3 {
		t.Errorf("expected 3 skinnytaste recipes, got %d", stats.BySource["skinnytaste"])
	}
	if stats.LandingPages != 1 {
		t.Errorf("expected LandingPages=1, got %d", stats.LandingPages)
	}
	if stats.ManualAdds != 1 {
		t.Errorf("expected ManualAdds=1, got %d", stats.ManualAdds)
	}
}

func TestGetStats_EmptyStore(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	stats, err := db.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalRecipes != 0 || stats.ManualAdds != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}
