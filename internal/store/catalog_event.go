package store

import (
	"context"
	"fmt"
	"time"
)

func (r *EventLog) AppendCatalogRequest(ctx context.Context, data CatalogRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO catalog_request_events
		(sequence, timestamp, label, requested, returned, latency_ms, outcome, status_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UnixMilli(), data.Label, data.Requested, data.Returned,
		data.LatencyMs, data.Outcome, data.StatusCode, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save catalog request event: %w", err)
	}
	return nil
}

// QueryCatalogEvents returns catalog events newest first.
func (r *EventLog) QueryCatalogEvents(ctx context.Context, opts QueryOpts) ([]CatalogRequestEvent, error) {
	where, args := opts.whereClause()
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, label, requested,
		returned, latency_ms, outcome, status_code, error_message
		FROM catalog_request_events`+where+` ORDER BY sequence DESC`+opts.limitClause(), args...)
	if err != nil {
		return nil, fmt.Errorf("query catalog events: %w", err)
	}
	defer rows.Close()

	var events []CatalogRequestEvent
	for rows.Next() {
		var (
			e  CatalogRequestEvent
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.Label, &e.Requested, &e.Returned,
			&e.LatencyMs, &e.Outcome, &e.StatusCode, &e.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan catalog event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

// CatalogUsageByLabel aggregates catalog calls per genre label.
func (r *EventLog) CatalogUsageByLabel(ctx context.Context) ([]CatalogUsage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT label, COUNT(*),
		SUM(CASE WHEN outcome NOT IN (?, ?) THEN 1 ELSE 0 END),
		SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM catalog_request_events GROUP BY label ORDER BY label`,
		OutcomeOK, OutcomeEmpty, OutcomeEmpty)
	if err != nil {
		return nil, fmt.Errorf("query catalog usage: %w", err)
	}
	defer rows.Close()

	var usage []CatalogUsage
	for rows.Next() {
		var u CatalogUsage
		if err := rows.Scan(&u.Label, &u.Calls, &u.Failures, &u.Empty, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan catalog usage: %w", err)
		}
		usage = append(usage, u)
	}
	return usage, rows.Err()
}
