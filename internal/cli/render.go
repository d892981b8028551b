package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/haffenloher/carposter/pkg/io"
	"github.com/haffenloher/carposter/pkg/pipeline"
)

// renderCommand creates the render command for composing from saved specs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		width   int
		height  int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [specs.json]",
		Short: "Compose a poster from saved specifications",
		Long: `Compose a poster from a specs JSON file without fetching the catalog.

The render command takes a JSON file (produced by 'specs --save') and
composes the poster locally. No catalog request is made unless the file
references a model photo that is not cached yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, width, height, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", pipeline.DefaultOutput, "output poster file")
	cmd.Flags().IntVar(&width, "width", 0, "poster width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "poster height in pixels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the saved document and composes the poster.
func (c *CLI) runRender(ctx context.Context, input, output string, width, height int, noCache bool) error {
	doc, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load specs %s: %w", input, err)
	}

	opts := pipeline.Options{
		Brand:  doc.Brand,
		Model:  doc.Model,
		Output: output,
		Width:  width,
		Height: height,
	}
	if err := opts.ValidateForCompose(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	start := time.Now()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Composing poster for %s %s...", strings.ToUpper(doc.Brand), doc.Model))
	spinner.Start()

	data, cacheHit, err := runner.ComposeWithCacheInfo(ctx, doc.Specs, opts)
	if err != nil {
		spinner.StopWithError("Poster composition failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if err := os.WriteFile(opts.Output, data, 0o644); err != nil {
		return fmt.Errorf("write poster %s: %w", opts.Output, err)
	}

	printSuccess("Composed poster for %s %s", strings.ToUpper(doc.Brand), doc.Model)
	printFile(opts.Output)
	printStats(doc.Specs.Count(), cacheHit, time.Since(start))

	return nil
}
