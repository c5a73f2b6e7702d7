package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halyard-cloud/halyard/core/state/app"
	"github.com/halyard-cloud/halyard/internal/config"
)

// newValidateCmd checks a serialized process record against the record
// schema.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <record.json>",
		Short: "Validate a serialized process record against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := app.ValidateRecord(cmd.Context(), data); err != nil {
				return fmt.Errorf("record is invalid:\n%s", err)
			}
			p, err := app.FromBytes(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "record %s (%s) is valid\n", p.GUID, p.Name)
			return nil
		},
	}
}

// newDefaultsCmd prints the resolved platform defaults.
func newDefaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the resolved platform defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := config.PlatformDefaults()
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(defaults, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

// newMigrationsCmd checks that the embedded record-schema migrations round
// trip to the current schema.
func newMigrationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrations",
		Short: "Check the record schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.ValidateMigrations(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations are consistent with the record schema")
			return nil
		},
	}
}
