package catalog

import (
	"context"
	"sync"

	"github.com/abhisek/cinematch/internal/quiz"
)

// MockCall records one FetchCandidates invocation.
type MockCall struct {
	Label quiz.Label
	Limit int
}

// MockFetcher is a deterministic Fetcher for tests and offline demos.
type MockFetcher struct {
	mu    sync.Mutex
	Items map[quiz.Label][]Item
	Err   error
	Calls []MockCall
}

// NewMockFetcher returns a fetcher serving items per label.
func NewMockFetcher(items map[quiz.Label][]Item) *MockFetcher {
	return &MockFetcher{Items: items}
}

func (m *MockFetcher) FetchCandidates(_ context.Context, label quiz.Label, limit int) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Label: label, Limit: limit})
	if m.Err != nil {
		return nil, m.Err
	}

	items := m.Items[label]
	if limit < len(items) {
		items = items[:max(limit, 0)]
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

// CallCount returns the number of FetchCandidates calls made.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
