package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/physical-quantities/units/internal/cli/ui"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show EXPR",
		Short: "Describe a unit or unit expression",
		Example: `  units show N
  units show "kg*m/s^2"`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeUnits(a, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.registry.Resolve(args[0])
			if err != nil {
				return err
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), a.noColor)
			kv.AddRow("Name", u.Display())
			kv.AddRow("Dimensions", u.Dimensions.String())
			kv.AddRow("Factor", a.format(u.Factor))
			if u.Offset != 0 {
				kv.AddRow("Offset", a.format(u.Offset))
			}
			if u.Prefixed && u.Base != nil {
				kv.AddRow("Base", u.Base.Display())
			}
			if u.IsAngle() {
				kv.AddRow("Angle", strconv.FormatBool(true))
			}
			if u.Meta.Comment != "" {
				kv.AddRow("Comment", u.Meta.Comment)
			}
			if u.Meta.URL != "" {
				kv.AddRow("URL", u.Meta.URL)
			}
			kv.Render()
			return nil
		},
	}
}
