package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	recordsadapter "github.com/bnema/dna-analyser-cli/internal/adapters/render/records"
	"github.com/bnema/dna-analyser-cli/internal/application"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/spf13/cobra"
)

const defaultHeatmapSegments = 31

// analysisTool describes the commands every analysis kind shares.
type analysisTool[R any] struct {
	use      string
	title    string
	tool     func(*application.Workspace) ports.AnalysisTool[R]
	heatmap  func(*application.Workspace) ports.HeatmapLoader
	analysis func(R) domain.Analysis
	row      func(R) domain.Row
}

func (t analysisTool[R]) rows(records []R) []domain.Row {
	rows := make([]domain.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, t.row(record))
	}
	return rows
}

func newAnalyseCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyse",
		Short: "Run and inspect motif analyses",
	}

	g4hunter := analysisTool[domain.G4Hunter]{
		use:      "g4hunter",
		title:    "G4Hunter",
		tool:     func(w *application.Workspace) ports.AnalysisTool[domain.G4Hunter] { return w.G4Hunter() },
		heatmap:  func(w *application.Workspace) ports.HeatmapLoader { return w.G4Hunter() },
		analysis: func(r domain.G4Hunter) domain.Analysis { return r.Analysis },
		row:      domain.G4Hunter.Row,
	}
	rloopr := analysisTool[domain.RLoopr]{
		use:      "rloopr",
		title:    "R-loop tracker",
		tool:     func(w *application.Workspace) ports.AnalysisTool[domain.RLoopr] { return w.RLoopr() },
		analysis: func(r domain.RLoopr) domain.Analysis { return r.Analysis },
		row:      domain.RLoopr.Row,
	}
	zdna := analysisTool[domain.ZDna]{
		use:      "zdna",
		title:    "Z-DNA hunter",
		tool:     func(w *application.Workspace) ports.AnalysisTool[domain.ZDna] { return w.ZDna() },
		heatmap:  func(w *application.Workspace) ports.HeatmapLoader { return w.ZDna() },
		analysis: func(r domain.ZDna) domain.Analysis { return r.Analysis },
		row:      domain.ZDna.Row,
	}
	cpg := analysisTool[domain.CpG]{
		use:      "cpg",
		title:    "CpG island hunter",
		tool:     func(w *application.Workspace) ports.AnalysisTool[domain.CpG] { return w.CpG() },
		analysis: func(r domain.CpG) domain.Analysis { return r.Analysis },
		row:      domain.CpG.Row,
	}

	cmd.AddCommand(
		newAnalysisToolCmd(app, g4hunter, newG4HunterCreateCmd(app, g4hunter), newG4HunterIntersectCmd(app)),
		newAnalysisToolCmd(app, rloopr, newRLooprCreateCmd(app, rloopr)),
		newAnalysisToolCmd(app, zdna, newZDnaCreateCmd(app, zdna)),
		newAnalysisToolCmd(app, cpg, newCpGCreateCmd(app, cpg)),
	)
	return cmd
}

func newAnalysisToolCmd[R any](app *app, t analysisTool[R], create *cobra.Command, extra ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   t.use,
		Short: t.title + " analyses",
	}

	cmd.AddCommand(
		create,
		newAnalysisListCmd(app, t),
		newAnalysisGetCmd(app, t),
		newAnalysisResultsCmd(app, t),
		newAnalysisExportCmd(app, t),
		newDeleteCmd(app, t.use+" analysis", func(w *application.Workspace) ports.Deleter { return t.tool(w) }),
	)
	if t.heatmap != nil {
		cmd.AddCommand(newAnalysisHeatmapCmd(app, t))
	}
	cmd.AddCommand(extra...)
	return cmd
}

func newAnalysisListCmd[R any](app *app, t analysisTool[R]) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + t.title + " analyses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withWorkspace(cmd, "Loading analyses", func(ctx context.Context, w *application.Workspace) error {
				records, err := t.tool(w).LoadAll(ctx, tags)
				if err != nil {
					return err
				}
				return app.writeRows(cmd, t.title+" analyses", t.rows(records))
			})
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Filter by tag (repeatable)")
	return cmd
}

func newAnalysisGetCmd[R any](app *app, t analysisTool[R]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + t.title + " analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withWorkspace(cmd, "Loading analysis", func(ctx context.Context, w *application.Workspace) error {
				record, err := t.tool(w).LoadByID(ctx, args[0])
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("%s analysis %s does not exist: %w", t.use, args[0], err)
				}
				if err != nil {
					return err
				}
				return app.writeRecord(cmd, t.title, t.row(record))
			})
		},
	}
}

func newAnalysisResultsCmd[R any](app *app, t analysisTool[R]) *cobra.Command {
	return &cobra.Command{
		Use:   "results <id>",
		Short: "Show the result table of a finished analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withWorkspace(cmd, "Loading results", func(ctx context.Context, w *application.Workspace) error {
				table, err := t.tool(w).LoadResult(ctx, args[0])
				if err != nil {
					return err
				}
				return app.writeTable(cmd, t.title+" results", table, recordsadapter.RenderOptions{})
			})
		},
	}
}

func newAnalysisExportCmd[R any](app *app, t analysisTool[R]) *cobra.Command {
	var (
		dir  string
		opts domain.ExportOptions
	)

	cmd := &cobra.Command{
		Use:   "export <id>...",
		Short: "Write the CSV export of analyses into a directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withWorkspace(cmd, "Exporting", func(ctx context.Context, w *application.Workspace) error {
				tool := t.tool(w)
				for _, id := range args {
					record, err := tool.LoadByID(ctx, id)
					if err != nil {
						return err
					}
					path, err := w.ExportCSV(ctx, tool, t.analysis(record), dir, opts)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")
	if t.use == "g4hunter" {
		cmd.Flags().BoolVar(&opts.Aggregate, "aggregate", true, "Merge overlapping windows")
	}
	return cmd
}

func newAnalysisHeatmapCmd[R any](app *app, t analysisTool[R]) *cobra.Command {
	var segments int

	cmd := &cobra.Command{
		Use:   "heatmap <id>",
		Short: "Show the heatmap of an analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withWorkspace(cmd, "Loading heatmap", func(ctx context.Context, w *application.Workspace) error {
				table, err := t.heatmap(w).LoadHeatmap(ctx, args[0], segments)
				if err != nil {
					return err
				}
				return app.writeTable(cmd, t.title+" heatmap", table, recordsadapter.RenderOptions{})
			})
		},
	}

	cmd.Flags().IntVar(&segments, "segments", defaultHeatmapSegments, "Number of heatmap segments")
	return cmd
}

// runAnalyses loads every sequence and analyses them concurrently. Results
// of the successful ones are printed even when others failed.
func runAnalyses[R any](cmd *cobra.Command, app *app, t analysisTool[R], ids []string, analyse func(context.Context, *application.Workspace, domain.Sequence) (R, error)) error {
	return app.withWorkspace(cmd, "Running "+t.title, func(ctx context.Context, w *application.Workspace) error {
		sequences := make([]domain.Sequence, 0, len(ids))
		for _, id := range ids {
			seq, err := w.Sequences().LoadByID(ctx, id)
			if err != nil {
				return err
			}
			sequences = append(sequences, seq)
		}

		var (
			mu      sync.Mutex
			results []R
		)
		runErr := w.AnalyseMany(ctx, sequences, func(ctx context.Context, seq domain.Sequence) error {
			record, err := analyse(ctx, w, seq)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, record)
			mu.Unlock()
			return nil
		})

		if len(results) > 0 {
			if err := app.writeRows(cmd, t.title+" analyses", t.rows(results)); err != nil {
				return err
			}
		}
		return runErr
	})
}

func tagsFlag(cmd *cobra.Command, tags []string) domain.Tags {
	if !cmd.Flags().Changed("tag") {
		return nil
	}
	return domain.Tags(tags)
}

func newG4HunterCreateCmd(app *app, t analysisTool[domain.G4Hunter]) *cobra.Command {
	var (
		params = domain.DefaultG4HunterParams()
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "create <sequence-id>...",
		Short: "Run G4Hunter on sequences and wait for the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Tags = tagsFlag(cmd, tags)
			return runAnalyses(cmd, app, t, args, func(ctx context.Context, w *application.Workspace, seq domain.Sequence) (domain.G4Hunter, error) {
				return w.AnalyseG4Hunter(ctx, seq, params)
			})
		},
	}

	cmd.Flags().Float64Var(&params.Threshold, "threshold", params.Threshold, "G4Hunter score threshold (0.1-4)")
	cmd.Flags().Int64Var(&params.WindowSize, "window", params.WindowSize, "Window size (10-100)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable, defaults to the sequence tags)")
	return cmd
}

func newRLooprCreateCmd(app *app, t analysisTool[domain.RLoopr]) *cobra.Command {
	var (
		cluster2G bool
		cluster3G bool
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "create <sequence-id>...",
		Short: "Run the R-loop tracker on sequences and wait for the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := domain.RLooprParams{Models: domain.RIZModels(cluster2G, cluster3G), Tags: tagsFlag(cmd, tags)}
			return runAnalyses(cmd, app, t, args, func(ctx context.Context, w *application.Workspace, seq domain.Sequence) (domain.RLoopr, error) {
				return w.AnalyseRLoopr(ctx, seq, params)
			})
		},
	}

	cmd.Flags().BoolVar(&cluster2G, "riz-2g-cluster", false, "Use the 2G cluster initiation zone model")
	cmd.Flags().BoolVar(&cluster3G, "riz-3g-cluster", false, "Use the 3G cluster initiation zone model")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable, defaults to the sequence tags)")
	return cmd
}

func newZDnaCreateCmd(app *app, t analysisTool[domain.ZDna]) *cobra.Command {
	var (
		model    string
		override domain.ZDnaParams
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "create <sequence-id>...",
		Short: "Run the Z-DNA hunter on sequences and wait for the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := domain.ZDnaModelParams(model)
			flags := cmd.Flags()
			if flags.Changed("min-size") {
				params.MinSequenceSize = override.MinSequenceSize
			}
			if flags.Changed("gc-score") {
				params.GCScore = override.GCScore
			}
			if flags.Changed("gtac-score") {
				params.GTACScore = override.GTACScore
			}
			if flags.Changed("at-score") {
				params.ATScore = override.ATScore
			}
			if flags.Changed("oth-score") {
				params.OthScore = override.OthScore
			}
			if flags.Changed("min-score-percentage") {
				params.MinScorePercentage = override.MinScorePercentage
			}
			params.Tags = tagsFlag(cmd, tags)

			return runAnalyses(cmd, app, t, args, func(ctx context.Context, w *application.Workspace, seq domain.Sequence) (domain.ZDna, error) {
				return w.AnalyseZDna(ctx, seq, params)
			})
		},
	}

	defaults := domain.DefaultZDnaParams()
	cmd.Flags().StringVar(&model, "model", "model1", "Scoring model (model1, model2); other flags override its scores")
	cmd.Flags().Int64Var(&override.MinSequenceSize, "min-size", defaults.MinSequenceSize, "Minimum Z-DNA length (>= 6)")
	cmd.Flags().Float64Var(&override.GCScore, "gc-score", defaults.GCScore, "GC dinucleotide score")
	cmd.Flags().Float64Var(&override.GTACScore, "gtac-score", defaults.GTACScore, "GT/AC dinucleotide score")
	cmd.Flags().Float64Var(&override.ATScore, "at-score", defaults.ATScore, "AT dinucleotide score")
	cmd.Flags().Float64Var(&override.OthScore, "oth-score", defaults.OthScore, "Score of other dinucleotides")
	cmd.Flags().Float64Var(&override.MinScorePercentage, "min-score-percentage", defaults.MinScorePercentage, "Minimum score percentage (>= 12)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable, defaults to the sequence tags)")
	return cmd
}

func newCpGCreateCmd(app *app, t analysisTool[domain.CpG]) *cobra.Command {
	var (
		params = domain.DefaultCpGParams()
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "create <sequence-id>...",
		Short: "Run the CpG island hunter on sequences and wait for the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.Tags = tagsFlag(cmd, tags)
			return runAnalyses(cmd, app, t, args, func(ctx context.Context, w *application.Workspace, seq domain.Sequence) (domain.CpG, error) {
				return w.AnalyseCpG(ctx, seq, params)
			})
		},
	}

	cmd.Flags().Int64Var(&params.MinWindowSize, "min-window", params.MinWindowSize, "Minimum island window (10-10000)")
	cmd.Flags().Float64Var(&params.MinGCPercentage, "min-gc", params.MinGCPercentage, "Minimum GC fraction (0-1)")
	cmd.Flags().Float64Var(&params.MinObsExpCpG, "min-obs-exp", params.MinObsExpCpG, "Minimum observed/expected CpG ratio (0-1)")
	cmd.Flags().Int64Var(&params.MinIslandMergeGap, "merge-gap", params.MinIslandMergeGap, "Island merge gap (10-10000)")
	cmd.Flags().StringVar(&params.SecondNucleotide, "second-nucleotide", params.SecondNucleotide, "Second nucleotide of the dinucleotide (G, A, T, C)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable, defaults to the sequence tags)")
	return cmd
}
