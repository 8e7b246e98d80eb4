package store_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tuxprep/trainer/internal/domain/history"
	"github.com/tuxprep/trainer/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func populatedStore() *history.Store {
	st := history.NewStore()
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	st.RecordAnswer("Q1", "Networking", false, at)
	st.RecordAnswer("Q1", "Networking", true, at.Add(time.Minute))
	st.RecordAnswer("Q2", "Security", false, at.Add(2*time.Minute))
	st.SeedCategories([]string{"Networking", "Security", "Scripting"})
	st.AppendSession(history.SessionSummary{
		ID:        "abcdef0123456789",
		StartedAt: at,
		Mode:      "standard",
		Category:  "Networking",
		Answered:  2,
		Correct:   1,
	})
	return st
}

func assertRoundTrip(t *testing.T, loaded, want *history.Store) {
	t.Helper()
	if loaded.TotalAttempts != want.TotalAttempts || loaded.TotalCorrect != want.TotalCorrect {
		t.Errorf("totals = %d/%d, want %d/%d",
			loaded.TotalCorrect, loaded.TotalAttempts, want.TotalCorrect, want.TotalAttempts)
	}
	if !reflect.DeepEqual(loaded.Questions, want.Questions) {
		t.Errorf("questions differ:\n got %+v\nwant %+v", loaded.Questions, want.Questions)
	}
	if !reflect.DeepEqual(loaded.Categories, want.Categories) {
		t.Errorf("categories differ:\n got %+v\nwant %+v", loaded.Categories, want.Categories)
	}
	if !reflect.DeepEqual(loaded.Review, want.Review) {
		t.Errorf("review list = %v, want %v", loaded.Review, want.Review)
	}
	if !reflect.DeepEqual(loaded.Sessions, want.Sessions) {
		t.Errorf("sessions differ:\n got %+v\nwant %+v", loaded.Sessions, want.Sessions)
	}
}

func TestJSONFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	repo := store.NewJSONFile(path, discardLogger())

	want := populatedStore()
	if err := repo.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertRoundTrip(t, loaded, want)
}

func TestJSONFile_MissingFile(t *testing.T) {
	repo := store.NewJSONFile(filepath.Join(t.TempDir(), "absent.json"), discardLogger())

	st, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.TotalAttempts != 0 || len(st.Questions) != 0 {
		t.Error("expected empty store for missing file")
	}
	if st.Questions == nil || st.Categories == nil || st.Review == nil {
		t.Error("expected structurally valid empty store")
	}
}

func TestJSONFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := store.NewJSONFile(path, discardLogger())
	st, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.TotalAttempts != 0 || len(st.Questions) != 0 {
		t.Error("expected fresh store after corrupt file")
	}
}

func TestJSONFile_PartialDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	// Older documents may miss keys entirely; they must default.
	if err := os.WriteFile(path, []byte(`{"total_attempts": 5, "total_correct": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := store.NewJSONFile(path, discardLogger())
	st, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.TotalAttempts != 5 || st.TotalCorrect != 2 {
		t.Errorf("totals = %d/%d, want 5/2", st.TotalCorrect, st.TotalAttempts)
	}
	if st.Questions == nil || st.Categories == nil || st.Review == nil || st.Sessions == nil {
		t.Error("expected missing keys defaulted to empty collections")
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	repo, err := store.NewSQLite(path, discardLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	want := populatedStore()
	if err := repo.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertRoundTrip(t, loaded, want)
}

func TestSQLite_FreshDatabase(t *testing.T) {
	repo, err := store.NewSQLite(filepath.Join(t.TempDir(), "history.db"), discardLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	st, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.TotalAttempts != 0 || len(st.Questions) != 0 || len(st.Sessions) != 0 {
		t.Error("expected empty store from fresh database")
	}
}

func TestSQLite_SaveReplacesPriorContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	repo, err := store.NewSQLite(path, discardLogger())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	if err := repo.Save(populatedStore()); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// Saving a cleared store must not leave stale rows behind.
	cleared := history.NewStore()
	cleared.SeedCategories([]string{"Networking"})
	if err := repo.Save(cleared); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := repo.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.TotalAttempts != 0 || len(loaded.Questions) != 0 || len(loaded.Review) != 0 {
		t.Error("expected second save to replace prior content")
	}
	if len(loaded.Categories) != 1 {
		t.Errorf("expected 1 seeded category, got %d", len(loaded.Categories))
	}
}
