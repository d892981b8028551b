package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haffenloher/carposter/pkg/io"
	"github.com/haffenloher/carposter/pkg/pipeline"
	"github.com/haffenloher/carposter/pkg/vehicle"
)

// specsCommand creates the specs command for fetching without composing.
func (c *CLI) specsCommand() *cobra.Command {
	var (
		model   string
		save    string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "specs [brand]",
		Short: "Fetch and display car specifications",
		Long: `Fetch and display car specifications without composing a poster.

The specs command resolves the catalog page for a brand and model, extracts
the specification fields, and prints them as a table. Use --save to write
the result as JSON for later rendering with 'render'.

Unlike the root command, specs does not fall back to reference data when
the catalog is unreachable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brand := vehicle.DemoBrand
			if len(args) > 0 {
				brand = args[0]
			}
			opts := pipeline.Options{
				Brand:   brand,
				Model:   model,
				Refresh: refresh,
			}
			return c.runSpecs(cmd.Context(), opts, save, noCache)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", vehicle.DemoModel, "model name to look up")
	cmd.Flags().StringVar(&save, "save", "", "write extracted specifications to a JSON file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refetch the catalog page even when cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runSpecs fetches the catalog page and prints the extracted fields.
func (c *CLI) runSpecs(ctx context.Context, opts pipeline.Options, save string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching specifications for %s %s...", strings.ToUpper(opts.Brand), opts.Model))
	spinner.Start()

	specs, page, err := runner.ExtractSpecs(ctx, opts)
	if err != nil {
		spinner.StopWithError("Specification lookup failed")
		return fmt.Errorf("specs: %w", err)
	}
	spinner.Stop()

	printSuccess("Found %s specification fields for %s %s",
		StyleNumber.Render(strconv.Itoa(specs.Count())), strings.ToUpper(opts.Brand), opts.Model)
	printKeyValue("Source", StyleLink.Render(page.URL))
	printKeyValue("Country", string(vehicle.CountryForBrand(opts.Brand)))
	printNewline()
	printSpecsTable(specs)

	if save != "" {
		doc := &io.Document{
			Brand:   opts.Brand,
			Model:   opts.Model,
			PageURL: page.URL,
			Specs:   specs,
		}
		if err := io.ExportJSON(doc, save); err != nil {
			return fmt.Errorf("save specs %s: %w", save, err)
		}
		printNewline()
		printFile(save)
		printNextStep("Render a poster", fmt.Sprintf("carposter render %s", save))
	}

	return nil
}
