package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/threadmatch/internal/colour"
	"github.com/jmylchreest/threadmatch/internal/match"
)

// conversion is the JSON form of the convert command's output.
type conversion struct {
	Hex  string     `json:"hex"`
	RGB  colour.RGB `json:"rgb"`
	Lab  colour.Lab `json:"lab"`
	HSV  colour.HSV `json:"hsv"`
	Text string     `json:"text"`
}

func newConvertCmd(a *app) *cobra.Command {
	var rgb string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "convert [hex]",
		Short: "Show a colour in hex, RGB, Lab and HSV",
		Long: `Show a colour in hex, RGB, CIE Lab and HSV along with the text colour
(black or white) that is legible on it.

Examples:
  threadmatch convert "#fa0a0a"
  threadmatch convert --rgb 250,10,10 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in match.Input
			switch {
			case len(args) == 1 && rgb != "":
				return fmt.Errorf("give either a hex argument or --rgb, not both")
			case len(args) == 1:
				in = match.HexInput(args[0])
			case rgb != "":
				parts := strings.Split(rgb, ",")
				if len(parts) != 3 {
					return fmt.Errorf("--rgb needs three comma separated channels, got %q", rgb)
				}
				in = match.RGBInput(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]))
			default:
				return fmt.Errorf("a colour is required: give a hex argument or --rgb")
			}

			c, ok := match.Resolve(in, match.Palette{})
			if !ok {
				return fmt.Errorf("%w: %s", match.ErrNoTarget, describeInput(in))
			}
			a.logger.Debug("converted colour", "input", describeInput(in), "hex", c.Hex())

			conv := conversion{Hex: c.Hex(), RGB: c, Lab: c.Lab(), HSV: c.HSV(), Text: string(c.TextColour())}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(conv)
			}

			_, err := fmt.Fprintf(out,
				"Hex:  %s\nRGB:  %d, %d, %d\nLab:  L=%.2f a=%.2f b=%.2f\nHSV:  H=%.1f S=%.1f V=%.1f\nText: %s\n",
				conv.Hex, c.R, c.G, c.B, conv.Lab.L, conv.Lab.A, conv.Lab.B, conv.HSV.H, conv.HSV.S, conv.HSV.V, conv.Text)
			return err
		},
	}

	cmd.Flags().StringVar(&rgb, "rgb", "", "colour as an RGB triple, e.g. 250,10,10")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}
