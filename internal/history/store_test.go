package history

import (
	"context"
	"testing"
	"time"

	"recall/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Paths.StateDir = dir
	cfg.Paths.LogDir = dir
	return &cfg
}

func TestRecordAndTally(t *testing.T) {
	store, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	for i, quality := range []int{5, 3, 4} {
		if err := store.RecordOutcome(ctx, 1, int64(i+1), "word", quality); err != nil {
			t.Fatalf("record outcome: %v", err)
		}
	}
	started := time.Now().Add(-time.Minute)
	if err := store.RecordSitting(ctx, 1, 3, 3, started, time.Now()); err != nil {
		t.Fatalf("record sitting: %v", err)
	}

	totals, err := store.Tally(ctx)
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if totals.Outcomes != 3 || totals.Sittings != 1 {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if totals.AverageQuality != 4 {
		t.Fatalf("unexpected average quality %v", totals.AverageQuality)
	}
	if totals.LastReviewedAt.IsZero() {
		t.Fatal("last reviewed timestamp missing")
	}
}

func TestRecentSittingsNewestFirst(t *testing.T) {
	store, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)
	for i := range 3 {
		started := base.Add(time.Duration(i) * time.Minute)
		if err := store.RecordSitting(ctx, int64(i+1), i, 10, started, started.Add(time.Minute)); err != nil {
			t.Fatalf("record sitting: %v", err)
		}
	}

	sittings, err := store.RecentSittings(ctx, 2)
	if err != nil {
		t.Fatalf("recent sittings: %v", err)
	}
	if len(sittings) != 2 {
		t.Fatalf("expected 2 sittings, got %d", len(sittings))
	}
	if sittings[0].DictionaryID != 3 || sittings[1].DictionaryID != 2 {
		t.Fatalf("unexpected order: %+v", sittings)
	}
}

func TestOpenRefusesSecondSession(t *testing.T) {
	cfg := testConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := Open(cfg); err == nil {
		t.Fatal("expected second open to fail while lock is held")
	}
}

func TestOpenReopensAfterClose(t *testing.T) {
	cfg := testConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.RecordOutcome(context.Background(), 1, 1, "word", 5); err != nil {
		t.Fatalf("record outcome: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	totals, err := reopened.Tally(context.Background())
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if totals.Outcomes != 1 {
		t.Fatalf("data lost across reopen: %+v", totals)
	}
}
