package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	app := &app{v: v}

	rootCmd := &cobra.Command{
		Use:           "dnaa",
		Short:         "DNA analyser CLI (dnaa): sequences and motif analyses on the DNA analyser server",
		Long:          "dnaa logs in to a DNA analyser server, uploads sequences, runs G4Hunter, R-loop, Z-DNA and CpG island analyses, waits for their batches to finish and fetches the results.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.init()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("server", "", "Server alias (production, development, localhost) or URL")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")
	flags.BoolVar(&app.jsonOutput, "json", false, "Print JSON instead of tables")
	_ = v.BindPFlag("server", flags.Lookup("server"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSequenceCmd(app),
		newAnalyseCmd(app),
		newToolCmd(app),
		newAnnotationCmd(app),
	)

	return rootCmd
}
