package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Catalog request outcomes. Failures use the catalog error kind name.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
)

// CatalogRequestEventData captures one call to the movie catalog.
type CatalogRequestEventData struct {
	Label        string
	Requested    int
	Returned     int
	LatencyMs    int64
	Outcome      string
	StatusCode   int
	ErrorMessage string
}

// CatalogRequestEvent is a stored catalog call.
type CatalogRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	CatalogRequestEventData
}

// CatalogUsage aggregates catalog calls for one genre label.
type CatalogUsage struct {
	Label        string
	Calls        int
	Failures     int
	Empty        int
	AvgLatencyMs int64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM call.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append access to request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendCatalogRequest records a catalog lookup.
	AppendCatalogRequest(ctx context.Context, data CatalogRequestEventData) error
}
