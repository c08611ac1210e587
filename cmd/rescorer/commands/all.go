package commands

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func allCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Rescore every product and print the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			log.Info().Int("workers", workers).Msg("rescore starting")

			out, err := deps.Scoring.RescoreAll(cmd.Context(), workers)
			if err != nil {
				return err
			}
			log.Info().Int("products", len(out)).Dur("took", time.Since(start)).Msg("rescore completed")
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "products scored concurrently (default from RESCORE_WORKERS)")
	return cmd
}
