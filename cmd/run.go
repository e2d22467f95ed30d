package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/cinematch/internal/app"
	"github.com/abhisek/cinematch/internal/screens/deps"
)

// runApp loads config, opens the store when configured and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := loadEnv(cmd, logQuiet)
	if err != nil {
		return err
	}
	defer e.Close()

	repo, err := e.openStore()
	if err != nil {
		return err
	}

	writer, source := e.pitchWriter(cmd.Context(), repo)
	d := &deps.Deps{
		Engine:      e.engine,
		TMDB:        e.tmdbClient(),
		Repo:        repo,
		Pitches:     writer,
		PitchSource: source,
		Limit:       e.cfg.TMDB.Limit,
	}
	return app.Run(d)
}
