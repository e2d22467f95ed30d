package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/logging"
	"github.com/abhisek/cinematch/internal/server"
	"github.com/abhisek/cinematch/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz and recommendations over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd, logJSON)
		if err != nil {
			return err
		}
		defer e.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}

		repo, err := e.openStore()
		if err != nil {
			return err
		}

		tmdb := e.tmdbClient()
		if !tmdb.Configured() {
			logging.Warn().Msg("no TMDB credential configured, /api/v1/recommendations will return catalog_unauthorized")
		}
		writer, source := e.pitchWriter(cmd.Context(), repo)

		srv := server.New(server.Options{
			Engine:            e.engine,
			Recommender:       session.NewRecommender(catalog.WithLogging(tmdb, repo), writer),
			DefaultLimit:      e.cfg.TMDB.Limit,
			CORSOrigins:       e.cfg.Server.CORSOrigins,
			RateLimitRequests: e.cfg.Server.RateLimitRequests,
			RateLimitWindow:   e.cfg.Server.RateLimitWindow,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Info().
			Str("pitches", source).
			Bool("store", repo != nil).
			Bool("rate_limited", e.cfg.Server.RateLimited()).
			Msg("starting cinematch server")
		return srv.ListenAndServe(ctx, e.cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
