package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/threadmatch/internal/dataset"
	"github.com/jmylchreest/threadmatch/internal/renderer"
)

func newDatasetsCmd(a *app) *cobra.Command {
	var show, export, format string

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List available thread datasets",
		Long: `List the available thread datasets with their entry counts and origins.

Datasets are loaded from the built-in set, then from --dataset-path or
THREADMATCH_DATASET_DIR locations (files, directories or HTTPS URLs), then
from Postgres when a database URL is configured. A later dataset with the
same name replaces an earlier one.

Examples:
  threadmatch datasets
  threadmatch datasets --show anchor
  threadmatch datasets --export dmc --format yaml > dmc.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()
			ctx := cmd.Context()
			reg, err := a.datasets(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case export != "":
				f, err := dataset.ParseFormat(format)
				if err != nil {
					return err
				}
				p, err := reg.Palette(ctx, export)
				if err != nil {
					return err
				}
				data, err := dataset.Encode(p, f)
				if err != nil {
					return fmt.Errorf("failed to encode dataset: %w", err)
				}
				_, err = out.Write(data)
				return err

			case show != "":
				p, err := reg.Palette(ctx, show)
				if err != nil {
					return err
				}
				table := renderer.NewTable([]string{"Code", "Name", "Category", "Hex"})
				for _, e := range p.Entries {
					table.AddRow([]string{e.Code, e.Name, e.Category, e.Colour.Hex()})
				}
				_, err = fmt.Fprint(out, table.Render())
				return err

			default:
				table := renderer.NewTable([]string{"Name", "Entries", "Origin"})
				for _, info := range reg.List() {
					table.AddRow([]string{info.Name, strconv.Itoa(info.Entries), info.Origin})
				}
				_, err = fmt.Fprint(out, table.Render())
				return err
			}
		},
	}

	cmd.Flags().StringVar(&show, "show", "", "list the entries of a dataset")
	cmd.Flags().StringVar(&export, "export", "", "write a dataset as a dataset file to stdout")
	cmd.Flags().StringVar(&format, "format", string(dataset.FormatJSON), "export format: json, yaml or toml")
	cmd.MarkFlagsMutuallyExclusive("show", "export")
	return cmd
}
