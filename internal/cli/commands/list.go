package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/physical-quantities/units/internal/cli/ui"
	"github.com/physical-quantities/units/pkg/unit"
)

func newListCommand(a *app) *cobra.Command {
	var (
		prefixed bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			units := a.registry.Units(prefixed)
			out := cmd.OutOrStdout()

			switch output {
			case "table":
				table := ui.NewTable(out, []string{"NAME", "DIMENSIONS", "FACTOR", "COMMENT"}, &ui.TableOptions{NoColor: a.noColor})
				for _, u := range units {
					table.AddRow(u.Display(), u.Dimensions.String(), a.format(u.Factor), u.Meta.Comment)
				}
				table.Render()
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(describeAll(units))
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(describeAll(units)); err != nil {
					return err
				}
				return enc.Close()
			default:
				return newUsageError("unknown output format %q (want table, json or yaml)", output)
			}
		},
	}

	cmd.Flags().BoolVar(&prefixed, "prefixed", false, "include prefixed variants such as km and mA")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return cmd
}

func describeAll(units []unit.Unit) []unit.Description {
	out := make([]unit.Description, len(units))
	for i, u := range units {
		out[i] = u.Describe()
	}
	return out
}
