package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/haffenloher/carposter/pkg/buildinfo"
	"github.com/haffenloher/carposter/pkg/observability"
	"github.com/haffenloher/carposter/pkg/pipeline"
	"github.com/haffenloher/carposter/pkg/vehicle"
)

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself runs the full poster pipeline.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		configPath  string
		model       string
		output      string
		demo        bool
		refresh     bool
		noCache     bool
		interactive bool
		width       int
		height      int
	)

	root := &cobra.Command{
		Use:   "carposter [brand]",
		Short: "Carposter generates specification posters for car models",
		Long: `Carposter scrapes car specifications from www.automobile-catalog.com and
composes them with a model photo into a printable poster.

Run without arguments to generate the default AUDI TT RS poster, or pass a
brand and --model to pick another car. When the catalog page cannot be
reached the poster falls back to built-in reference data.

Pages, extracted specifications, and composed posters are cached locally
for faster subsequent runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			brand := vehicle.DemoBrand
			if len(args) > 0 {
				brand = args[0]
			}
			opts := pipeline.Options{
				Brand:   brand,
				Model:   model,
				Demo:    demo,
				Refresh: refresh,
				Output:  output,
				Width:   width,
				Height:  height,
			}
			// Config supplies the output path only when the flag was
			// left at its default.
			if !cmd.Flags().Changed("output") && c.Config.Output != "" {
				opts.Output = c.Config.Output
			}
			return c.runGenerate(cmd.Context(), opts, noCache, interactive)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/carposter/config.toml)")

	// Lookup flags
	root.Flags().StringVarP(&model, "model", "m", vehicle.DemoModel, "model name to look up")
	root.Flags().BoolVar(&demo, "demo", false, "skip fetching and use built-in reference data")
	root.Flags().BoolVar(&refresh, "refresh", false, "refetch the catalog page even when cached")
	root.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	root.Flags().BoolVar(&interactive, "interactive", false, "pick the catalog page from a candidate list")

	// Poster flags
	root.Flags().StringVarP(&output, "output", "o", pipeline.DefaultOutput, "output poster file")
	root.Flags().IntVar(&width, "width", 0, "poster width in pixels")
	root.Flags().IntVar(&height, "height", 0, "poster height in pixels")

	// Register all subcommands
	root.AddCommand(c.specsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// runGenerate executes the full pipeline and writes the poster file.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, noCache, interactive bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	if interactive && !opts.Demo {
		url, err := c.pickCandidate(opts.Brand, opts.Model)
		if err != nil {
			return fmt.Errorf("select candidate: %w", err)
		}
		if url == "" {
			printInfo("Selection canceled")
			return nil
		}
		printInfo("Selected: %s", StyleHighlight.Render(url))
		opts.PageURL = url
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	start := time.Now()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating poster for %s %s...", strings.ToUpper(opts.Brand), opts.Model))
	observability.SetPipelineHooks(spinnerHooks{spinner: spinner})
	defer observability.Reset()
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Poster generation failed")
		return fmt.Errorf("generate: %w", err)
	}
	spinner.Stop()

	if err := os.WriteFile(opts.Output, result.Poster, 0o644); err != nil {
		return fmt.Errorf("write poster %s: %w", opts.Output, err)
	}

	if result.Demo && !opts.Demo {
		printWarning("Catalog unreachable, used built-in reference data")
	}
	printSuccess("Generated poster for %s %s", strings.ToUpper(result.Brand), result.Model)
	if result.PageURL != "" {
		printDetail("Source: %s", result.PageURL)
	}
	printFile(opts.Output)
	printStats(result.Stats.FieldCount, result.CacheInfo.ComposeHit, time.Since(start))

	return nil
}
