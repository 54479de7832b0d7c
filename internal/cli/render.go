package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flowfile"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
// These options control output formats and renderer styling.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "png", "dot"
	padding    float64  // blank margin around the content bounds, diagram units
	background string   // background fill color (empty for transparent)
	scale      float64  // PNG pixels per diagram unit
	noLabels   bool     // suppress node labels
	detailed   bool     // include kind and position metadata in DOT labels
	graphviz   bool     // lay the SVG out with Graphviz instead of stored positions
	config     string   // config file path (TOML)
}

// newRenderCmd creates the render command for generating static output from
// a diagram file.
//
// Default settings:
//   - format: svg
//   - padding: 40 diagram units
//   - scale: 1 pixel per diagram unit (PNG)
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram to SVG, PNG, or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}

			cfg, err := LoadConfig(opts.config)
			if err != nil {
				return err
			}
			// Config supplies defaults; explicit flags win.
			if !cmd.Flags().Changed("padding") {
				opts.padding = cfg.Render.Padding
			}
			if !cmd.Flags().Changed("background") {
				opts.background = cfg.Render.Background
			}
			if !cmd.Flags().Changed("scale") {
				opts.scale = cfg.Render.Scale
			}
			if opts.scale <= 0 {
				return fmt.Errorf("invalid scale: %g (must be positive)", opts.scale)
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 40, "margin around the content in diagram units")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (empty for transparent)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "PNG pixels per diagram unit")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "suppress node labels")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include kind and position in DOT labels")
	cmd.Flags().BoolVar(&opts.graphviz, "graphviz", false, "lay the SVG out with Graphviz instead of stored positions")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (TOML)")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true}

// validateFormats checks that all requested formats are valid.
// It returns an error if any format is not in validFormats.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'dot')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .dot), it strips that
// extension. This is used when generating multiple files.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the diagram from input and renders it to the requested
// formats.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	s, err := flowfile.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded diagram: %d nodes, %d edges", s.NodeCount(), s.EdgeCount())

	if len(opts.formats) == 1 {
		path := opts.output
		if path == "" {
			path = basePath("", input) + "." + opts.formats[0]
		}
		return renderAndWrite(ctx, s, opts.formats[0], path, opts)
	}

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		if err := renderAndWrite(ctx, s, format, base+"."+format, opts); err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
	}
	return nil
}

// renderAndWrite renders a single format and writes it to path.
func renderAndWrite(ctx context.Context, s *flow.Store, format, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	tracker := newProgress(logger)

	data, err := renderDiagram(ctx, s, format, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	tracker.done(fmt.Sprintf("Generated %s", path))
	printFile(path)
	return nil
}

// renderDiagram dispatches to the appropriate renderer based on format.
func renderDiagram(ctx context.Context, s *flow.Store, format string, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)

	sinkOpts := []render.Option{render.WithPadding(opts.padding)}
	if opts.background != "" {
		sinkOpts = append(sinkOpts, render.WithBackground(opts.background))
	}
	if opts.noLabels {
		sinkOpts = append(sinkOpts, render.WithoutLabels())
	}

	switch format {
	case "svg":
		if opts.graphviz {
			logger.Info("Rendering SVG via Graphviz layout")
			return render.RenderDOTSVG(render.ToDOT(s, render.DOTOptions{Detailed: opts.detailed}))
		}
		logger.Info("Rendering SVG")
		return render.RenderSVG(s, sinkOpts...), nil
	case "png":
		logger.Infof("Rendering PNG at %gx scale", opts.scale)
		return render.RenderPNG(s, opts.scale, sinkOpts...)
	case "dot":
		logger.Info("Rendering DOT")
		return []byte(render.ToDOT(s, render.DOTOptions{Detailed: opts.detailed})), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
