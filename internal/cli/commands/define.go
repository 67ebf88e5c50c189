package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/physical-quantities/units/internal/cli/ui"
	"github.com/physical-quantities/units/internal/store"
	"github.com/physical-quantities/units/pkg/registry"
)

func newDefineCommand(a *app) *cobra.Command {
	var (
		comment string
		url     string
		prefix  string
		offset  float64
	)

	cmd := &cobra.Command{
		Use:   "define NAME EXPR",
		Short: "Define a new unit",
		Long: `Define NAME as the unit expression EXPR. The definition is checked against
the registry and, when store.path is configured, saved so later invocations
see it.`,
		Example: `  units define ft 0.3048*m --comment Foot
  units define degC K --offset 273.15
  units define bar 1e5*Pa --prefix engineering`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := registry.ParsePrefixRange(prefix)
			if err != nil {
				return newUsageError("%v", err)
			}

			rec := store.Record{
				Name:       args[0],
				Expression: args[1],
				Offset:     offset,
				Comment:    comment,
				URL:        url,
				Prefix:     rng,
			}
			if err := store.Register(a.registry, rec); err != nil {
				return err
			}

			u, _ := a.registry.Lookup(rec.Name)
			out := cmd.OutOrStdout()

			if a.store == nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.Warning("store.path is not configured; the definition is not saved", a.noColor))
			} else if err := a.store.Save(cmd.Context(), rec); err != nil {
				return err
			}

			ui.WriteSuccess(out, fmt.Sprintf("%s = %s %s", rec.Name, a.format(u.Factor), u.Dimensions), a.noColor)
			return nil
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "description shown by show and list")
	cmd.Flags().StringVar(&url, "url", "", "reference URL")
	cmd.Flags().StringVar(&prefix, "prefix", "none", "also define prefixed variants: none, engineering or full")
	cmd.Flags().Float64Var(&offset, "offset", 0, "additive offset, for temperature-like units")
	return cmd
}

func newUndefineCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "undefine NAME",
		Short:             "Remove a saved unit definition",
		Long:              "Remove NAME from the store. Built-in units and units from units.yaml cannot be removed.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeUnits(a, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.store == nil {
				return newUsageError("store.path is not configured")
			}
			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			ui.WriteSuccess(cmd.OutOrStdout(), "removed "+args[0], a.noColor)
			return nil
		},
	}
}
