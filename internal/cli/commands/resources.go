package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapadmin/pkg/resource"
)

// NewResourcesCommand creates the resources command.
func NewResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resources exposed from the target database",
		Example: `  # List resources
  leapadmin resources

  # List resources as JSON
  leapadmin resources --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResources(cmd)
		},
	}
}

func runResources(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	list := cmdCtx.Catalog.List()
	if cmdCtx.Config.OutputFormat == "json" {
		return resourcesJSON(cmd.OutOrStdout(), list)
	}
	return resourcesTable(cmd.OutOrStdout(), list)
}

func resourcesJSON(w io.Writer, list []*resource.Resource) error {
	type row struct {
		Name       string `json:"name"`
		Database   string `json:"database"`
		Type       string `json:"type"`
		PrimaryKey string `json:"primaryKey"`
		Properties int    `json:"properties"`
	}
	out := make([]row, 0, len(list))
	for _, res := range list {
		out = append(out, row{
			Name:       res.Name(),
			Database:   res.DatabaseName(),
			Type:       res.DatabaseType(),
			PrimaryKey: res.PrimaryKey(),
			Properties: len(res.Properties()),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func resourcesTable(w io.Writer, list []*resource.Resource) error {
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "(no resources)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"NAME", "DATABASE", "TYPE", "PRIMARY KEY", "PROPERTIES"})
	for _, res := range list {
		t.AppendRow(table.Row{
			res.Name(),
			res.DatabaseName(),
			res.DatabaseType(),
			res.PrimaryKey(),
			len(res.Properties()),
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d resources)\n", len(list))
	return nil
}
