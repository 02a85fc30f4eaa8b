package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapadmin/pkg/resource"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <resource>",
		Short: "Show the schema of one resource",
		Args:  cobra.ExactArgs(1),
		Example: `  # Show the users resource
  leapadmin describe users

  # As JSON
  leapadmin describe users --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, args[0])
		},
	}
}

func runDescribe(cmd *cobra.Command, name string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	res, ok := cmdCtx.Catalog.Get(name)
	if !ok {
		return fmt.Errorf("unknown resource %q", name)
	}

	if cmdCtx.Config.OutputFormat == "json" {
		return describeJSON(cmd.OutOrStdout(), res)
	}
	return describeTable(cmd.OutOrStdout(), res)
}

func describeJSON(w io.Writer, res *resource.Resource) error {
	type prop struct {
		Name            string `json:"name"`
		Kind            string `json:"kind"`
		Nullable        bool   `json:"nullable"`
		Editable        bool   `json:"editable"`
		PrimaryKey      bool   `json:"primaryKey"`
		ReferencedTable string `json:"referencedTable,omitempty"`
	}
	props := make([]prop, 0, len(res.Properties()))
	for _, p := range res.Properties() {
		props = append(props, prop{
			Name:            p.Name,
			Kind:            p.Kind.String(),
			Nullable:        p.Nullable,
			Editable:        p.Editable,
			PrimaryKey:      p.PrimaryKey,
			ReferencedTable: p.ReferencedTable,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"name":       res.Name(),
		"primaryKey": res.PrimaryKey(),
		"properties": props,
	})
}

func describeTable(w io.Writer, res *resource.Resource) error {
	_, _ = fmt.Fprintf(w, "%s (primary key: %s)\n", res.Name(), res.PrimaryKey())

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"NAME", "KIND", "NULLABLE", "EDITABLE", "PK", "REFERENCES"})
	for _, p := range res.Properties() {
		t.AppendRow(table.Row{
			p.Name,
			p.Kind.String(),
			yesNo(p.Nullable),
			yesNo(p.Editable),
			yesNo(p.PrimaryKey),
			p.ReferencedTable,
		})
	}
	t.Render()
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
