package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/store"
)

type recordingRepo struct {
	catalog []store.CatalogRequestEventData
	err     error
}

func (r *recordingRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return nil
}

func (r *recordingRepo) AppendCatalogRequest(_ context.Context, d store.CatalogRequestEventData) error {
	r.catalog = append(r.catalog, d)
	return r.err
}

func TestWithLogging_RecordsOutcomes(t *testing.T) {
	mock := NewMockFetcher(map[quiz.Label][]Item{
		quiz.LabelDrama: {{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
	})
	repo := &recordingRepo{}
	f := WithLogging(mock, repo)
	ctx := context.Background()

	items, err := f.FetchCandidates(ctx, quiz.LabelDrama, 5)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = f.FetchCandidates(ctx, quiz.LabelMystery, 5)
	require.NoError(t, err)
	assert.Empty(t, items)

	mock.Err = &Error{Kind: KindUnauthorized, StatusCode: 401, Err: errors.New("bad key")}
	_, err = f.FetchCandidates(ctx, quiz.LabelDrama, 5)
	require.Error(t, err)

	require.Len(t, repo.catalog, 3)
	assert.Equal(t, store.OutcomeOK, repo.catalog[0].Outcome)
	assert.Equal(t, 2, repo.catalog[0].Returned)
	assert.Equal(t, store.OutcomeEmpty, repo.catalog[1].Outcome)
	assert.Equal(t, "unauthorized", repo.catalog[2].Outcome)
	assert.Equal(t, 401, repo.catalog[2].StatusCode)
	assert.Contains(t, repo.catalog[2].ErrorMessage, "bad key")
}

func TestWithLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockFetcher(map[quiz.Label][]Item{quiz.LabelComedy: {{ID: 9}}})
	f := WithLogging(mock, &recordingRepo{err: errors.New("disk full")})

	items, err := f.FetchCandidates(context.Background(), quiz.LabelComedy, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWithLogging_NilRepo(t *testing.T) {
	mock := NewMockFetcher(nil)
	f := WithLogging(mock, nil)
	_, err := f.FetchCandidates(context.Background(), quiz.LabelComedy, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestMockFetcher_TruncatesToLimit(t *testing.T) {
	mock := NewMockFetcher(map[quiz.Label][]Item{quiz.LabelAction: {{ID: 1}, {ID: 2}, {ID: 3}}})
	items, err := mock.FetchCandidates(context.Background(), quiz.LabelAction, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, MockCall{Label: quiz.LabelAction, Limit: 2}, mock.Calls[0])
}
