package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/threadmatch/internal/colour"
	"github.com/jmylchreest/threadmatch/internal/image"
	"github.com/jmylchreest/threadmatch/internal/match"
	"github.com/jmylchreest/threadmatch/internal/renderer"
)

// imageClusters is the number of k-means clusters used to find an image's dominant colour.
const imageClusters = 5

type matchOptions struct {
	blend bool

	metric   colour.Metric
	limit    int
	hex      string
	rgb      string
	code     string
	image    string
	output   string
	plugin   string
	debug    bool
	noColour bool
}

func newMatchCmd(a *app, blend bool) *cobra.Command {
	opts := &matchOptions{blend: blend}
	metric := newMetricValue(&opts.metric)

	cmd := &cobra.Command{
		Use:   "match [hex]",
		Short: "Find the threads closest to a colour",
		Long: `Find the threads in a dataset closest to a target colour.

The target is given as exactly one of a hex code (positional or --hex),
an RGB triple, a thread code from the dataset or an image whose dominant
colour is used.

Examples:
  # Nearest DMC threads to a hex colour
  threadmatch match "#fa0a0a"

  # Top 5 Anchor threads by CompuPhase distance
  threadmatch match --dataset anchor --metric compuphase -n 5 --rgb 250,10,10

  # Threads similar to DMC 321
  threadmatch match --code 321

  # Match the dominant colour of a photo, as JSON
  threadmatch match --image swatch.jpg -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !metric.set {
				opts.metric = a.config.Metric
			}
			if !cmd.Flags().Changed("limit") {
				opts.limit = a.config.Limit
			}
			if !cmd.Flags().Changed("renderer") && !cmd.Flags().Changed("output") {
				opts.plugin = a.config.Renderer
			}
			if !cmd.Flags().Changed("debug") {
				opts.debug = a.config.Debug
			}
			defer a.close()
			return runMatch(cmd.Context(), cmd.OutOrStdout(), a, opts, args)
		},
	}
	if blend {
		cmd.Use = "blend [hex]"
		cmd.Short = "Find the two-thread blends closest to a colour"
		cmd.Long = `Find the pairs of threads whose equal blend is closest to a target colour.

Every unordered pair of threads in the dataset is blended channel by channel,
including each thread with itself, and the blends are ranked against the target.
Codes and names of the two threads are shown joined with ", ".

Examples:
  threadmatch blend "#808080"
  threadmatch blend --code 310 --metric euclidean`
	}

	flags := cmd.Flags()
	flags.VarP(metric, "metric", "m", metricUsage())
	flags.IntVarP(&opts.limit, "limit", "n", match.DefaultLimit, "maximum number of results")
	flags.StringVar(&opts.hex, "hex", "", "target hex colour, e.g. #fa0a0a or f00")
	flags.StringVar(&opts.rgb, "rgb", "", "target RGB triple, e.g. 250,10,10")
	flags.StringVar(&opts.code, "code", "", "target thread code from the dataset")
	flags.StringVar(&opts.image, "image", "", "target the dominant colour of an image file or HTTPS URL")
	flags.StringVarP(&opts.output, "output", "o", renderer.NameTable, "output format: "+strings.Join(renderer.Names(), ", "))
	flags.StringVar(&opts.plugin, "renderer", "", "render output through an external renderer plugin")
	flags.BoolVar(&opts.debug, "debug", false, "show distances")
	flags.BoolVar(&opts.noColour, "no-colour", false, "disable colour swatches")
	cmd.MarkFlagsMutuallyExclusive("hex", "rgb", "code", "image")
	cmd.MarkFlagsMutuallyExclusive("output", "renderer")

	return cmd
}

func runMatch(ctx context.Context, out io.Writer, a *app, opts *matchOptions, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", opts.limit)
	}
	if opts.plugin == "" && !renderer.IsValid(opts.output) {
		return fmt.Errorf("unknown output format %q (valid: %s)", opts.output, strings.Join(renderer.Names(), ", "))
	}

	in, err := opts.input(ctx, args)
	if err != nil {
		return err
	}

	render, cleanup, err := opts.renderer(a, out)
	if err != nil {
		return err
	}
	defer cleanup()

	reg, err := a.datasets(ctx)
	if err != nil {
		return err
	}

	finder := match.NewFinder(reg, a.logger.Named("match"))
	req := match.Request{
		Dataset: a.config.Dataset,
		Metric:  opts.metric,
		Input:   in,
		Limit:   opts.limit,
	}

	var result *match.Result
	var ok bool
	if opts.blend {
		result, ok, err = finder.FindNearestBlend(ctx, req)
	} else {
		result, ok, err = finder.FindNearest(ctx, req)
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", match.ErrNoTarget, describeInput(in))
	}

	a.logger.Debug("match complete", "mode", result.Mode, "target", result.Target.Hex(), "rows", len(result.Rows))
	return render.Render(out, result)
}

// input builds the target from exactly one of the positional argument and the input flags.
func (o *matchOptions) input(ctx context.Context, args []string) (match.Input, error) {
	var given []string
	if len(args) == 1 {
		given = append(given, "argument")
	}
	for name, v := range map[string]string{"--hex": o.hex, "--rgb": o.rgb, "--code": o.code, "--image": o.image} {
		if v != "" {
			given = append(given, name)
		}
	}
	switch {
	case len(given) == 0:
		return match.Input{}, errors.New("a target colour is required: give a hex argument or one of --hex, --rgb, --code, --image")
	case len(given) > 1:
		return match.Input{}, errors.New("give only one target colour: a hex argument or one of --hex, --rgb, --code, --image")
	}

	switch {
	case len(args) == 1:
		return match.HexInput(args[0]), nil
	case o.hex != "":
		return match.HexInput(o.hex), nil
	case o.rgb != "":
		parts := strings.Split(o.rgb, ",")
		if len(parts) != 3 {
			return match.Input{}, fmt.Errorf("--rgb needs three comma separated channels, got %q", o.rgb)
		}
		return match.RGBInput(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])), nil
	case o.code != "":
		return match.CodeInput(o.code), nil
	default:
		img, err := image.NewFileLoader().Load(ctx, o.image)
		if err != nil {
			return match.Input{}, err
		}
		c, err := colour.NewKMeansExtractor().Dominant(img, imageClusters)
		if err != nil {
			return match.Input{}, fmt.Errorf("failed to find dominant colour: %w", err)
		}
		return match.ColourInput(c), nil
	}
}

// renderer selects the plugin renderer when configured, otherwise a built-in one.
func (o *matchOptions) renderer(a *app, out io.Writer) (renderer.Renderer, func(), error) {
	if o.plugin != "" {
		exec, err := renderer.NewExecutor(o.plugin, a.logger, o.debug)
		if err != nil {
			return nil, nil, err
		}
		return exec, exec.Close, nil
	}

	r, err := renderer.New(o.output, renderer.Options{
		Debug:  o.debug,
		Colour: !o.noColour && renderer.IsTerminal(out),
	})
	if err != nil {
		return nil, nil, err
	}
	return r, func() {}, nil
}

func describeInput(in match.Input) string {
	switch in.Kind {
	case match.InputHex:
		return fmt.Sprintf("hex %q", in.Hex)
	case match.InputRGB:
		return fmt.Sprintf("rgb %q", strings.Join(in.RGB[:], ","))
	case match.InputCode:
		return fmt.Sprintf("code %q", in.Code)
	default:
		return in.Kind.String()
	}
}
