package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/petmatch/internal/adapters/driven/catalog/watch"
	"github.com/custodia-labs/petmatch/internal/adapters/driving/api"
	"github.com/custodia-labs/petmatch/internal/logger"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP matching API",
	Long: `Builds the index and serves the matching API:

  POST /v1/matches       rank animals for a set of preferences
  GET  /v1/animals/{id}  look up one animal
  GET  /v1/questions     the adopter questionnaire
  GET  /healthz, /readyz liveness and readiness
  GET  /metrics          Prometheus metrics

With --watch the index is rebuilt whenever the catalog file changes; the
previous index keeps serving while a rebuild runs or if it fails.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild the index when the catalog changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if err := useServiceLogLevel(settings); err != nil {
		return err
	}

	ctx := cmd.Context()
	eng, err := openEngine(ctx, settings)
	if err != nil {
		return err
	}
	defer eng.Close() //nolint:errcheck

	if serveWatch || settings.Catalog.Watch {
		stop, err := watchCatalog(cmd, eng, settings.Catalog.Path)
		if err != nil {
			return err
		}
		defer stop()
	}

	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}
	server := api.NewServer(eng.match, api.Config{
		Addr:       addr,
		RateLimit:  settings.Server.RateLimit,
		RateWindow: settings.Server.RateWindow,
		DefaultK:   settings.Match.Neighbors,
	})

	log := logger.With("cli")
	log.Info().Str("addr", addr).Msg("serving HTTP API")
	return server.Run(ctx)
}

// watchCatalog rebuilds eng whenever the catalog file settles after a change.
// The returned function stops watching and waits for the watcher to exit.
func watchCatalog(cmd *cobra.Command, eng *engine, path string) (func(), error) {
	log := logger.With("cli")

	w, err := watch.New(path, watch.DefaultDebounce)
	if err != nil {
		return nil, fmt.Errorf("failed to watch catalog: %w", err)
	}

	ctx := cmd.Context()
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := w.Watch(ctx, func() {
			if err := eng.reload(ctx); err != nil {
				log.Error().Err(err).Msg("catalog rebuild failed, keeping previous index")
				return
			}
			log.Info().Int("animals", eng.match.Status().Animals).Msg("catalog reloaded")
		})
		if err != nil {
			log.Error().Err(err).Msg("catalog watcher stopped")
		}
	}()

	log.Info().Str("path", w.Path()).Msg("watching catalog")
	return func() {
		w.Close() //nolint:errcheck
		<-done
	}, nil
}
