package insights

import (
	"encoding/json"
	"fmt"

	"github.com/Tholomir/ChronoRex/internal/analytics"
	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/storage"
)

type InsightsCmd struct {
	JSON bool `help:"Print the raw result as JSON."`
}

func (c *InsightsCmd) Run(ctx *cli.Context) error {
	snap, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		return err
	}
	result := analytics.Calculate(snap.Days, snap.Symptoms, snap.Activities)

	if c.JSON {
		return printJSON(result)
	}
	fmt.Print(cli.RenderInsights(result))
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
