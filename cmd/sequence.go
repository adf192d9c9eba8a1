package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/dna-analyser-cli/internal/application"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/spf13/cobra"
)

var sequenceListColumns = []string{"id", "name", "type", "length", "circular", "gc_count", "tags", "created"}

func newSequenceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sequence",
		Aliases: []string{"seq"},
		Short:   "Manage stored sequences",
	}

	cmd.AddCommand(
		newSequenceListCmd(app),
		newSequenceGetCmd(app),
		newSequenceDataCmd(app),
		newSequenceRecountCmd(app),
		newDeleteCmd(app, "sequence", func(w *application.Workspace) ports.Deleter { return w.Sequences() }),
		newSequenceUploadCmd(app),
	)

	return cmd
}

// newDeleteCmd deletes every id argument and reports the ones the server
// refused.
func newDeleteCmd(app *app, kind string, target func(*application.Workspace) ports.Deleter) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete " + kind + "s by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withWorkspace(cmd, "Deleting", func(ctx context.Context, w *application.Workspace) error {
				var refused []string
				for _, id := range args {
					deleted, err := target(w).Delete(ctx, id)
					if err != nil {
						return err
					}
					if !deleted {
						refused = append(refused, id)
						continue
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind, id)
				}
				if len(refused) > 0 {
					return fmt.Errorf("server did not delete %s %s", kind, strings.Join(refused, ", "))
				}
				return nil
			})
		},
	}
}

func newSequenceListCmd(app *app) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sequences, optionally filtered by tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.withWorkspace(cmd, "Loading sequences", func(ctx context.Context, w *application.Workspace) error {
				sequences, err := w.Sequences().LoadAll(ctx, tags)
				if err != nil {
					return err
				}
				return app.writeRows(cmd, "Sequences", rowsOf(sequences), sequenceListColumns...)
			})
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Filter by tag (repeatable)")
	return cmd
}

func newSequenceGetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withWorkspace(cmd, "Loading sequence", func(ctx context.Context, w *application.Workspace) error {
				seq, err := w.Sequences().LoadByID(ctx, args[0])
				if errors.Is(err, domain.ErrNotFound) {
					return fmt.Errorf("sequence %s does not exist: %w", args[0], err)
				}
				if err != nil {
					return err
				}
				return app.writeRecord(cmd, "Sequence", seq.Row())
			})
		},
	}
}

func newSequenceDataCmd(app *app) *cobra.Command {
	var slice domain.SequenceSlice

	cmd := &cobra.Command{
		Use:   "data <id>",
		Short: "Print a slice of at most 1000 nucleotides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withWorkspace(cmd, "Loading sequence data", func(ctx context.Context, w *application.Workspace) error {
				data, err := w.SequenceData(ctx, args[0], slice)
				if err != nil {
					return err
				}
				return app.writeText(cmd, data)
			})
		},
	}

	cmd.Flags().Int64Var(&slice.Position, "pos", 0, "Zero-based start position")
	cmd.Flags().Int64Var(&slice.Length, "len", 100, "Number of nucleotides (max 1000)")
	return cmd
}

func newSequenceRecountCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recount <id>",
		Short: "Ask the server to recount nucleotides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withWorkspace(cmd, "Recounting", func(ctx context.Context, w *application.Workspace) error {
				ok, err := w.Sequences().RecountNucleic(ctx, args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("server refused to recount sequence %s", args[0])
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Recounted sequence %s\n", args[0])
				return nil
			})
		},
	}
}

type sequenceFlags struct {
	nucleicType string
	circular    bool
	tags        []string
}

func (f *sequenceFlags) register(cmd *cobra.Command, withType bool) {
	if withType {
		cmd.Flags().StringVar(&f.nucleicType, "type", string(domain.NucleicDNA), "Nucleic acid type (DNA, RNA)")
	}
	cmd.Flags().BoolVar(&f.circular, "circular", false, "Sequence is circular")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable)")
}

func (f sequenceFlags) typ() domain.NucleicType {
	return domain.NucleicType(strings.ToUpper(f.nucleicType))
}

func newSequenceUploadCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload sequences and wait until the server has processed them",
	}

	cmd.AddCommand(
		newUploadTextCmd(app),
		newUploadFileCmd(app),
		newUploadNCBICmd(app),
		newUploadFASTACmd(app),
	)
	return cmd
}

func newUploadTextCmd(app *app) *cobra.Command {
	var (
		flags sequenceFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "text <nucleotides>",
		Short: "Upload a sequence given inline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.TextSequenceRequest{Name: name, Data: args[0], Type: flags.typ(), Circular: flags.circular, Tags: flags.tags}
			return app.withWorkspace(cmd, "Uploading "+name, func(ctx context.Context, w *application.Workspace) error {
				seq, err := w.UploadText(ctx, req)
				if err != nil {
					return err
				}
				return app.writeRecord(cmd, "Sequence", seq.Row())
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Sequence name")
	_ = cmd.MarkFlagRequired("name")
	flags.register(cmd, true)
	return cmd
}

func newUploadFileCmd(app *app) *cobra.Command {
	var (
		flags  sequenceFlags
		name   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Upload a FASTA or plain text file as one sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				base := filepath.Base(args[0])
				name = domain.NormalizeName(strings.TrimSuffix(base, filepath.Ext(base)))
			}
			req := domain.FileSequenceRequest{
				Name:     name,
				Path:     args[0],
				Format:   domain.SequenceFormat(strings.ToUpper(format)),
				Type:     flags.typ(),
				Circular: flags.circular,
				Tags:     flags.tags,
			}
			return app.withWorkspace(cmd, "Uploading "+name, func(ctx context.Context, w *application.Workspace) error {
				seq, err := w.UploadFile(ctx, req)
				if err != nil {
					return err
				}
				return app.writeRecord(cmd, "Sequence", seq.Row())
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Sequence name (defaults to the file name)")
	cmd.Flags().StringVar(&format, "format", string(domain.FormatFASTA), "File format (FASTA, PLAIN)")
	flags.register(cmd, true)
	return cmd
}

func newUploadNCBICmd(app *app) *cobra.Command {
	var (
		flags sequenceFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "ncbi <ncbi-id>",
		Short: "Import a sequence from NCBI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = args[0]
			}
			req := domain.NCBISequenceRequest{Name: name, NCBIID: args[0], Circular: flags.circular, Tags: flags.tags}
			return app.withWorkspace(cmd, "Importing "+args[0], func(ctx context.Context, w *application.Workspace) error {
				seq, err := w.UploadNCBI(ctx, req)
				if err != nil {
					return err
				}
				return app.writeRecord(cmd, "Sequence", seq.Row())
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Sequence name (defaults to the NCBI id)")
	flags.register(cmd, false)
	return cmd
}

func newUploadFASTACmd(app *app) *cobra.Command {
	var flags sequenceFlags

	cmd := &cobra.Command{
		Use:   "fasta <path>",
		Short: "Upload every record of a multi-FASTA file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}
			template := domain.TextSequenceRequest{Type: flags.typ(), Circular: flags.circular, Tags: flags.tags}
			return app.withWorkspace(cmd, "Uploading "+args[0], func(ctx context.Context, w *application.Workspace) error {
				uploaded, uploadErr := w.UploadMultiFASTA(ctx, args[0], template)
				if len(uploaded) > 0 {
					if err := app.writeRows(cmd, "Uploaded sequences", rowsOf(uploaded), sequenceListColumns...); err != nil {
						return err
					}
				}
				return uploadErr
			})
		},
	}

	flags.register(cmd, true)
	return cmd
}
