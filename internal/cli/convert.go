package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/layoutkit/rect2lef/pkg/errors"
	"github.com/layoutkit/rect2lef/pkg/gds"
	"github.com/layoutkit/rect2lef/pkg/layout"
	"github.com/layoutkit/rect2lef/pkg/pipeline"
	"github.com/layoutkit/rect2lef/pkg/techconf"
)

// techOpts selects the technology configuration. Shared by convert and
// inspect.
type techOpts struct {
	tech     string // technology name under $ACT_HOME/conf
	techFile string // explicit configuration path, overrides tech
}

func (o *techOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.tech, "tech", "T", techconf.DefaultTech, "technology name, e.g. -Tsky130")
	cmd.Flags().StringVar(&o.techFile, "tech-file", "", "technology configuration file (.conf or .toml)")
	_ = cmd.RegisterFlagCompletionFunc("tech", techCompletion)
	_ = cmd.MarkFlagFilename("tech-file", "conf", "toml")
}

// path returns the configuration file to load.
func (o *techOpts) path() (string, error) {
	if o.techFile != "" {
		return o.techFile, nil
	}
	return techconf.Locate(techconf.Home(), o.tech)
}

// convertOpts holds the command-line flags for the convert (root) command.
type convertOpts struct {
	techOpts
	layerMap  bool   // also write layermap.txt
	gds       bool   // also write a GDS database
	gdsFormat string // GDS backend name
	outDir    string // directory receiving all outputs
}

// validate checks the flag combination before anything is read.
func (o *convertOpts) validate(input string) error {
	if input == "" {
		if !o.layerMap {
			return errors.New(errors.ErrCodeInvalidOption, "no input file given (pass a .rect file or --lm)")
		}
		if o.gds {
			return errors.New(errors.ErrCodeInvalidOption, "--gds requires an input file")
		}
	}
	if o.gds {
		return pipeline.ValidateGDSFormat(o.gdsFormat)
	}
	return nil
}

// convertCommand creates the root command that turns a .rect file into LEF
// and, on request, a layer map and GDS.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{
		gdsFormat: gds.StreamBackend,
		outDir:    ".",
	}

	cmd := &cobra.Command{
		Use:   appName + " [flags] [input.rect]",
		Short: "Convert .rect cell layouts to LEF macros",
		Long: `rect2lef reads a cell layout in .rect format and writes a LEF macro for it,
using the technology configuration found under $ACT_HOME/conf/<tech>.

Optionally it also writes the GDS layer map (--lm) and a GDS database (--gds).
The single-dash spellings -lm and -gds are accepted as well. Without an input
file only the layer map is written, so --lm is then required.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: rectFileCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			if err := opts.validate(input); err != nil {
				return err
			}
			return c.runConvert(cmd.Context(), input, &opts)
		},
	}

	opts.techOpts.register(cmd)
	cmd.Flags().BoolVar(&opts.layerMap, "lm", false, "also write the layer map to layermap.txt")
	cmd.Flags().BoolVar(&opts.gds, "gds", false, "also write <cell>.gds")
	cmd.Flags().StringVar(&opts.gdsFormat, "gds-format", opts.gdsFormat, "GDS backend: gdsii (default), json")
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", opts.outDir, "output directory")

	_ = cmd.RegisterFlagCompletionFunc("gds-format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return gds.Backends(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runConvert loads the inputs, runs the emitters and writes every artifact.
// Nothing is written unless all requested emitters succeed.
func (c *CLI) runConvert(ctx context.Context, input string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	conf, err := c.loadTech(&opts.techOpts)
	if err != nil {
		return err
	}

	var cell *layout.Cell
	if input != "" {
		cell, err = layout.ReadCell(input)
		if err != nil {
			return err
		}
		logger.Debug("read cell", "name", cell.Name, "kind", cell.Kind, "rects", len(cell.Rects))
	}

	result, err := pipeline.Run(ctx, cell, conf, pipeline.Options{
		LEF:       cell != nil,
		LayerMap:  opts.layerMap,
		GDS:       opts.gds,
		GDSFormat: opts.gdsFormat,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	for _, s := range result.Skipped {
		printWarning("skipped %s", s)
	}

	paths, err := writeArtifacts(ctx, opts.outDir, result)
	if err != nil {
		return err
	}

	if cell == nil {
		prog.done("Wrote layer map")
		printSuccess("%s", StyleHighlight.Render(pipeline.LayerMapFile))
	} else {
		prog.done(fmt.Sprintf("Converted %s", cell.Name))
		printSuccess("%s %s", StyleHighlight.Render(cell.Name), StyleDim.Render(cell.Kind.String()))
		printStats(result.Stats)
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// loadTech resolves and loads the technology configuration.
func (c *CLI) loadTech(opts *techOpts) (*techconf.Config, error) {
	path, err := opts.path()
	if err != nil {
		return nil, err
	}
	conf, err := techconf.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded technology", "path", filepath.Clean(path), "metals", conf.Metals())
	return conf, nil
}
