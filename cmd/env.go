package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/config"
	"github.com/abhisek/cinematch/internal/llm"
	"github.com/abhisek/cinematch/internal/logging"
	"github.com/abhisek/cinematch/internal/pitch"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/store"
)

// logMode selects where a command's logs go.
type logMode int

const (
	logConsole logMode = iota // stderr, human readable
	logJSON                   // stderr, one JSON object per line
	logQuiet                  // file when configured, otherwise discarded
)

// env bundles what most commands need. Close releases the store and the
// log file.
type env struct {
	cfg    *config.Config
	engine *quiz.Engine
	store  *store.Store
	closer []io.Closer
}

// loadEnv reads config, applies flag overrides, sets up logging and loads
// the quiz table. The store is not opened here.
func loadEnv(cmd *cobra.Command, mode logMode) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.Store.Path = db
	}
	if q, _ := cmd.Flags().GetString("quiz"); q != "" {
		cfg.Quiz.Path = q
	}

	e := &env{cfg: cfg}
	if err := e.initLogging(mode); err != nil {
		return nil, err
	}

	table := quiz.Default()
	if cfg.Quiz.Path != "" {
		table, err = quiz.LoadFile(cfg.Quiz.Path)
		if err != nil {
			e.Close()
			return nil, err
		}
	}
	e.engine, err = quiz.NewEngine(table)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("build quiz engine: %w", err)
	}
	return e, nil
}

func (e *env) initLogging(mode logMode) error {
	lc := logging.DefaultConfig()
	lc.Level = e.cfg.Logging.Level
	lc.Format = e.cfg.Logging.Format

	switch mode {
	case logJSON:
		lc.Format = "json"
	case logQuiet:
		lc.Output = io.Discard
	}

	if e.cfg.Logging.File != "" {
		f, err := logging.OpenFile(e.cfg.Logging.File)
		if err != nil {
			return err
		}
		e.closer = append(e.closer, f)
		lc.Output = f
		lc.Format = "json"
	}

	logging.Init(lc)
	return nil
}

// openStore opens the event store when a path is configured. It returns a
// nil repo otherwise, and callers treat that as "do not record".
func (e *env) openStore() (store.EventRepo, error) {
	if e.cfg.Store.Path == "" {
		return nil, nil
	}
	if err := store.EnsureDir(e.cfg.Store.Path); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	st, err := store.Open(e.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closer = append(e.closer, st)
	logging.Debug().Str("path", e.cfg.Store.Path).Msg("event store opened")
	return st.EventRepo(), nil
}

// requireStore opens the store for the inspection commands, falling back
// to the default path when none is configured.
func (e *env) requireStore() (*store.Store, error) {
	if e.cfg.Store.Path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		e.cfg.Store.Path = p
	}
	if _, err := e.openStore(); err != nil {
		return nil, err
	}
	return e.store, nil
}

// tmdbClient builds the catalog client from config.
func (e *env) tmdbClient() *catalog.TMDBClient {
	return catalog.NewTMDBClient(e.cfg.TMDB.Client())
}

// pitchWriter returns an LLM writer when a provider is configured, and the
// template writer otherwise. The string names the choice for display.
func (e *env) pitchWriter(ctx context.Context, repo store.EventRepo) (pitch.Writer, string) {
	qcfg := e.engine.Config()
	lc := llm.ResolveConfig()
	if !lc.Enabled() {
		return pitch.NewTemplateWriter(qcfg), "templates"
	}

	provider, err := llm.NewProvider(ctx, lc, repo)
	if err != nil {
		logging.Warn().Err(err).Str("provider", lc.Provider).Msg("LLM provider unavailable, using templates")
		return pitch.NewTemplateWriter(qcfg), "templates"
	}
	return pitch.NewLLMWriter(provider, qcfg, pitch.DefaultConfig()), lc.Provider
}

// Close releases resources in reverse order.
func (e *env) Close() {
	for i := len(e.closer) - 1; i >= 0; i-- {
		e.closer[i].Close()
	}
	e.closer = nil
}
