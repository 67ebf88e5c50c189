package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/physical-quantities/units/pkg/unit"
)

func newConvertCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert VALUE FROM TO",
		Short: "Convert a value between units",
		Long: `Convert VALUE expressed in FROM into TO. Offsets are honoured, so
'units convert 0 degC K' works once degC is defined.`,
		Example: `  units convert 2.5 km m
  units convert 90 deg rad
  units convert 1 "kW*h" J`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeUnitsAfterValue(a),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return newUsageError("VALUE must be a number, got %q", args[0])
			}
			from, err := a.registry.Resolve(args[1])
			if err != nil {
				return err
			}
			to, err := a.registry.Resolve(args[2])
			if err != nil {
				return err
			}

			result, err := unit.ConvertValue(value, from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s %s\n", a.format(value), from.Display(), a.format(result), to.Display())
			return nil
		},
	}
}

func newFactorCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "factor FROM TO",
		Short: "Print the factor converting FROM into TO",
		Long: `Print f such that a value in FROM times f is the value in TO. Fails for
units whose offsets differ; use 'convert' for those.`,
		Example: `  units factor km m
  units factor "N*m" J`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeUnits(a, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := a.registry.Resolve(args[0])
			if err != nil {
				return err
			}
			to, err := a.registry.Resolve(args[1])
			if err != nil {
				return err
			}
			f, err := from.ConversionFactorTo(to)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.format(f))
			return nil
		},
	}
}
