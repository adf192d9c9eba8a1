package cmd

import (
	"context"

	"github.com/bnema/dna-analyser-cli/internal/application"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newToolCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool",
		Short: "Run the synchronous prediction tools",
	}

	cmd.AddCommand(newG4KillerCmd(app), newP53Cmd(app))
	return cmd
}

func newG4KillerCmd(app *app) *cobra.Command {
	var params domain.G4KillerParams

	cmd := &cobra.Command{
		Use:   "g4killer <sequence>",
		Short: "Suggest mutations that bring a G-quadruplex below a G4Hunter threshold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Sequence = args[0]
			return app.withWorkspace(cmd, "Running G4Killer", func(ctx context.Context, w *application.Workspace) error {
				result, err := w.RunG4Killer(ctx, params)
				if err != nil {
					return err
				}
				return app.writeRecord(cmd, "G4Killer", result.Row())
			})
		},
	}

	cmd.Flags().Float64Var(&params.Threshold, "threshold", 0, "Target G4Hunter threshold (0-4)")
	_ = cmd.MarkFlagRequired("threshold")
	cmd.Flags().BoolVar(&params.Complementary, "complementary", false, "Mutate the complementary strand")
	return cmd
}

func newP53Cmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "p53 <sequence>",
		Short: "Predict p53 binding affinity of a 20 nucleotide sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := domain.P53Params{Sequence: args[0]}
			return app.withWorkspace(cmd, "Running p53 predictor", func(ctx context.Context, w *application.Workspace) error {
				result, err := w.RunP53(ctx, params)
				if err != nil {
					return err
				}
				return app.writeRecord(cmd, "p53 prediction", result.Row())
			})
		},
	}
}
