// Package commands implements the rescorer CLI: offline recomputation of
// product sentiment scores against the same storage the API serves.
package commands

import (
	"context"
	"encoding/json"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"shopcart_sentiment/internal/adapters/observability"
	"shopcart_sentiment/internal/shared"
	"shopcart_sentiment/internal/wire"
)

var (
	cfg  shared.Config
	deps *wire.Wire

	driver  string
	workers int

	// newDeps is replaced in tests
	newDeps = wire.New
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRoot().ExecuteContext(ctx)
	// PersistentPostRun is skipped when RunE fails, so close here.
	if deps != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if cerr := deps.Close(closeCtx); cerr != nil {
			log.Warn().Err(cerr).Msg("storage close failed")
		}
	}
	return err
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "rescorer",
		Short:        "Recompute product sentiment scores",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = shared.Load()
			log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
			if driver != "" {
				cfg.StorageDriver = driver
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.RescoreWorkers
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			var err error
			deps, err = newDeps(ctx, cfg)
			return err
		},
	}

	root.PersistentFlags().StringVar(&driver, "driver", "", "storage driver: mongo or mysql (default from STORAGE_DRIVER)")

	root.AddCommand(allCmd(), productCmd(), listCmd())
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
