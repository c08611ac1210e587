package commands

import (
	"github.com/spf13/cobra"

	"shopcart_sentiment/internal/domain"
)

func productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product [productId]",
		Short: "Rescore a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := deps.Scoring.ComputeSentimentScore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			id, _ := domain.ParseProductID(args[0])
			return printJSON(cmd.OutOrStdout(), domain.ProductScore{ProductID: id, Score: score})
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print stored scores without recomputing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := deps.Queries.ListScores(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
