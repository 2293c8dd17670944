package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-ff-stats/internal/api"
	"github.com/pable/go-ff-stats/internal/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the merged leaderboards as a JSON API",
	Long: `Start an HTTP server exposing the leaderboards, profiles, comparisons,
standings and the valuation calculator as JSON. Sheets are downloaded per
request; use --redis to cache them.

Routes:
  GET  /health
  GET  /api/v1/leaderboard?tab=&split=&top=&team=1
  GET  /api/v1/players/{name}?tab=&split=
  GET  /api/v1/compare?a=&b=&tab=&split=
  GET  /api/v1/standings/{season}?stage=
  POST /api/v1/valuation   (YAML form body)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("addr") {
		serveAddr = config.String(cfg.Server.Addr, serveAddr)
	}

	client, release := newClient()
	defer release()

	srv := api.NewServer(serveAddr, client, log)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Start()
	}()
	fmt.Fprintf(os.Stderr, "Listening on %s\n", srv.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Fprintln(os.Stderr, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
