package insights

import (
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/config"
	"github.com/Tholomir/ChronoRex/internal/export"
)

// resolveDir prefers the flag, then export.dir from the config file.
func resolveDir(ctx *cli.Context, flagDir string) string {
	if flagDir != "" {
		return config.ExpandPath(flagDir)
	}
	if ctx.Config != nil && ctx.Config.Export.Dir != "" {
		return config.ExpandPath(ctx.Config.Export.Dir)
	}
	return "."
}

type ExportCSVCmd struct {
	Dir string `short:"o" help:"Output directory. Defaults to export.dir from the config file."`
}

func (c *ExportCSVCmd) Run(ctx *cli.Context) error {
	result, err := export.NewExporter(ctx.Store, ctx.Clock, resolveDir(ctx, c.Dir)).WriteCSV()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	printResult(result)
	return nil
}

type ExportReportCmd struct {
	Dir string `short:"o" help:"Output directory. Defaults to export.dir from the config file."`
}

func (c *ExportReportCmd) Run(ctx *cli.Context) error {
	result, err := export.NewExporter(ctx.Store, ctx.Clock, resolveDir(ctx, c.Dir)).WriteReport()
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	printResult(result)
	return nil
}

func printResult(result export.Result) {
	fmt.Printf("✓ Wrote %d files to %s\n", len(result.Files), result.Dir)
	for _, f := range result.Files {
		fmt.Printf("  %s\n", f)
	}
}
