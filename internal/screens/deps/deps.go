// Package deps carries the services the TUI screens share.
package deps

import (
	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/pitch"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/session"
	"github.com/abhisek/cinematch/internal/store"
)

// Deps is shared by pointer between screens so a key entered once is kept
// for retakes.
type Deps struct {
	Engine *quiz.Engine

	// TMDB is the catalog client. It may be unconfigured.
	TMDB *catalog.TMDBClient

	// Fetcher overrides TMDB when set (tests, offline demos).
	Fetcher catalog.Fetcher

	// Repo records catalog requests. May be nil.
	Repo store.EventRepo

	Pitches pitch.Writer

	// PitchSource names how pitches are written, for display.
	PitchSource string

	// Limit is the number of candidates per result.
	Limit int

	keyPrompted bool
}

// Config returns the quiz table.
func (d *Deps) Config() *quiz.Config {
	return d.Engine.Config()
}

// NeedsKey reports whether the API key screen should be shown before
// results: no credential is configured and the user has not been asked yet.
func (d *Deps) NeedsKey() bool {
	if d.Fetcher != nil || d.keyPrompted {
		return false
	}
	return d.TMDB == nil || !d.TMDB.Configured()
}

// SetAPIKey stores a key entered at runtime. An empty key records that the
// user skipped the prompt.
func (d *Deps) SetAPIKey(key string) {
	d.keyPrompted = true
	if key == "" || d.TMDB == nil {
		return
	}
	d.TMDB = d.TMDB.WithAPIKey(key)
}

// CatalogConfigured reports whether recommendations can be fetched.
func (d *Deps) CatalogConfigured() bool {
	return d.Fetcher != nil || (d.TMDB != nil && d.TMDB.Configured())
}

// Recommender builds a recommender over the current fetcher.
func (d *Deps) Recommender() *session.Recommender {
	var f catalog.Fetcher
	switch {
	case d.Fetcher != nil:
		f = d.Fetcher
	case d.TMDB != nil:
		f = d.TMDB
	default:
		f = catalog.NewTMDBClient(catalog.TMDBConfig{})
	}

	w := d.Pitches
	if w == nil {
		w = pitch.NewTemplateWriter(d.Config())
	}
	return session.NewRecommender(catalog.WithLogging(f, d.Repo), w)
}
