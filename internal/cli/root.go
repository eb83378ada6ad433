// Package cli provides the command-line interface for threadmatch.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/threadmatch/internal/config"
	"github.com/jmylchreest/threadmatch/internal/version"
)

// NewRootCmd builds the threadmatch command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "threadmatch",
		Short: "Find the embroidery threads closest to a colour",
		Long: `threadmatch finds the thread colours in a palette, such as DMC or Anchor
stranded cotton, that are perceptually closest to a target colour.

The target can be a hex code, an RGB triple, a thread code from the palette
or the dominant colour of an image. Matches are ranked by a choice of colour
distance metrics, and blend mode also considers every pair of threads mixed
in equal parts.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&a.envFile, "env-file", config.DefaultDotEnv, "read settings from this .env file (the default file is optional)")
	flags.StringVarP(&a.datasetName, "dataset", "d", "", "dataset to match against (default from THREADMATCH_DATASET or dmc)")
	flags.StringSliceVar(&a.datasetPaths, "dataset-path", nil, "extra dataset files, directories or HTTPS URLs")
	flags.StringVar(&a.databaseURL, "database-url", "", "Postgres connection string for database datasets")
	flags.BoolVar(&a.refresh, "refresh", false, "download remote datasets again instead of using cached copies")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newMatchCmd(a, false))
	rootCmd.AddCommand(newMatchCmd(a, true))
	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newDatasetsCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, Go version and renderer plugin protocol.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
