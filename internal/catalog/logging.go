package catalog

import (
	"context"
	"time"

	"github.com/abhisek/cinematch/internal/logging"
	"github.com/abhisek/cinematch/internal/metrics"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/store"
)

// LoggingFetcher is a decorator that records every catalog request as an
// event, a log line and a metric observation.
type LoggingFetcher struct {
	inner     Fetcher
	eventRepo store.EventRepo
}

// WithLogging wraps f. repo may be nil when the event log is disabled.
func WithLogging(f Fetcher, repo store.EventRepo) Fetcher {
	return &LoggingFetcher{inner: f, eventRepo: repo}
}

func (l *LoggingFetcher) FetchCandidates(ctx context.Context, label quiz.Label, limit int) ([]Item, error) {
	start := time.Now()
	items, err := l.inner.FetchCandidates(ctx, label, limit)
	elapsed := time.Since(start)

	outcome := Outcome(items, err)
	metrics.ObserveCatalog(string(label), outcome, elapsed)

	logging.Debug().
		Str("label", string(label)).
		Int("limit", limit).
		Int("returned", len(items)).
		Str("outcome", outcome).
		Dur("latency", elapsed).
		Err(err).
		Msg("catalog request")

	if l.eventRepo == nil {
		return items, err
	}

	data := store.CatalogRequestEventData{
		Label:      string(label),
		Requested:  limit,
		Returned:   len(items),
		LatencyMs:  elapsed.Milliseconds(),
		Outcome:    outcome,
		StatusCode: StatusOf(err),
	}
	if err == nil {
		data.StatusCode = 200
	} else {
		data.ErrorMessage = err.Error()
	}

	// Telemetry failures never fail the request.
	if logErr := l.eventRepo.AppendCatalogRequest(ctx, data); logErr != nil {
		logging.Warn().Err(logErr).Msg("failed to record catalog request event")
	}

	return items, err
}

// Outcome names the result of a catalog call for logs, metrics and the
// event log.
func Outcome(items []Item, err error) string {
	switch {
	case err != nil:
		return KindOf(err).String()
	case len(items) == 0:
		return store.OutcomeEmpty
	default:
		return store.OutcomeOK
	}
}
