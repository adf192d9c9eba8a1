package cmd

import (
	"context"
	"errors"
	"fmt"

	recordsadapter "github.com/bnema/dna-analyser-cli/internal/adapters/render/records"
	"github.com/bnema/dna-analyser-cli/internal/application"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAnnotationCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotation",
		Short: "Download and read NCBI feature tables",
	}

	cmd.AddCommand(
		newAnnotationDownloadCmd(app),
		newAnnotationParseCmd(app),
	)
	return cmd
}

func newAnnotationDownloadCmd(app *app) *cobra.Command {
	var dir, name string

	cmd := &cobra.Command{
		Use:   "download <ncbi-id>",
		Short: "Save the NCBI feature table of a nucleotide record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := app.annotations()
			if err != nil {
				return err
			}
			return app.withSpinner(cmd, "Downloading annotation", func(ctx context.Context) error {
				path, err := service.Download(ctx, args[0], dir, name)
				if err != nil {
					return err
				}
				return app.writeText(cmd, path)
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")
	cmd.Flags().StringVar(&name, "name", "", "File name without extension (defaults to the NCBI id)")
	return cmd
}

func newAnnotationParseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "List the features of a saved feature table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := app.annotations()
			if err != nil {
				return err
			}
			features, err := service.Load(args[0])
			if err != nil {
				return err
			}
			return app.writeRows(cmd, "Features", rowsOf(features))
		},
	}
}

func newG4HunterIntersectCmd(app *app) *cobra.Command {
	var (
		annotationFile string
		ncbiID         string
		area           int64
		out            string
	)

	cmd := &cobra.Command{
		Use:   "intersect <analysis-id>",
		Short: "Count G4Hunter hits before, in and after annotated features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (annotationFile == "") == (ncbiID == "") {
				return errors.New("pass exactly one of --annotation or --ncbi")
			}
			if err := domain.ValidateIntersectionArea(area); err != nil {
				return err
			}

			service, err := app.annotations()
			if err != nil {
				return err
			}

			return app.withWorkspace(cmd, "Intersecting", func(ctx context.Context, w *application.Workspace) error {
				features, err := loadFeatures(ctx, service, annotationFile, ncbiID)
				if err != nil {
					return err
				}

				analysis, err := w.G4Hunter().LoadByID(ctx, args[0])
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("g4hunter analysis %s does not exist: %w", args[0], err)
				}
				if err != nil {
					return err
				}

				intersection, err := w.IntersectG4Hunter(ctx, analysis, features, area)
				if err != nil {
					return err
				}
				if out != "" {
					if err := writeCSVFile(out, intersection.Table()); err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
					return err
				}
				return app.writeTable(cmd, "G4Hunter hits by feature", intersection.Table(), recordsadapter.RenderOptions{})
			})
		},
	}

	cmd.Flags().StringVar(&annotationFile, "annotation", "", "Saved NCBI feature table")
	cmd.Flags().StringVar(&ncbiID, "ncbi", "", "NCBI id whose feature table is downloaded")
	cmd.Flags().Int64Var(&area, "area", domain.DefaultIntersectionArea, "Nucleotides around each feature counted as before and after")
	cmd.Flags().StringVar(&out, "out", "", "Write the counts to this CSV file instead of printing them")
	return cmd
}

func loadFeatures(ctx context.Context, service *application.AnnotationService, path, ncbiID string) ([]domain.Feature, error) {
	if path != "" {
		return service.Load(path)
	}
	return service.Fetch(ctx, ncbiID)
}
