package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 1; i <= 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if seq != int64(i) {
			t.Errorf("seq = %d, want %d", seq, i)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"catalog_request_events", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestReopenKeepsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendCatalogRequest(ctx, CatalogRequestEventData{Label: "drama", Outcome: OutcomeOK}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.EventRepo().AppendCatalogRequest(ctx, CatalogRequestEventData{Label: "drama", Outcome: OutcomeOK}))

	events, err := s.EventRepo().QueryCatalogEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].Sequence)
	assert.Equal(t, int64(1), events[1].Sequence)
}

func TestCatalogEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	records := []CatalogRequestEventData{
		{Label: "drama", Requested: 5, Returned: 5, LatencyMs: 100, Outcome: OutcomeOK, StatusCode: 200},
		{Label: "drama", Requested: 5, Returned: 0, LatencyMs: 50, Outcome: "unauthorized", StatusCode: 401, ErrorMessage: "invalid key"},
		{Label: "mystery", Requested: 3, Returned: 0, LatencyMs: 30, Outcome: OutcomeEmpty, StatusCode: 200},
	}
	for _, r := range records {
		require.NoError(t, repo.AppendCatalogRequest(ctx, r))
	}

	events, err := repo.QueryCatalogEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "mystery", events[0].Label)
	assert.Equal(t, "unauthorized", events[1].Outcome)
	assert.Equal(t, 401, events[1].StatusCode)
	assert.WithinDuration(t, time.Now(), events[0].Timestamp, time.Minute)

	after, err := repo.QueryCatalogEvents(ctx, QueryOpts{After: 1})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	usage, err := repo.CatalogUsageByLabel(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.Equal(t, CatalogUsage{Label: "drama", Calls: 2, Failures: 1, Empty: 0, AvgLatencyMs: 75}, usage[0])
	assert.Equal(t, CatalogUsage{Label: "mystery", Calls: 1, Failures: 0, Empty: 1, AvgLatencyMs: 30}, usage[1])
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "m1", Purpose: "pitch",
		InputTokens: 100, OutputTokens: 40, LatencyMs: 900, Success: true,
		RequestBody: `{"system":"x"}`, ResponseBody: `{"pitches":[]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "m1", Purpose: "pitch",
		InputTokens: 50, LatencyMs: 100, ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Success)
	assert.True(t, events[1].Success)

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `{"pitches":[]}`, got.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	usage, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, LLMUsage{Purpose: "pitch", Calls: 2, InputTokens: 150, OutputTokens: 40, AvgLatencyMs: 500}, usage[0])
}
