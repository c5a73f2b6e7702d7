package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/halyard-cloud/halyard/internal/logging"
	"github.com/halyard-cloud/halyard/internal/metrics"
)

func main() {
	logger := logging.NewLogger()
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Warn().Err(err).Msg("registering metrics collectors")
	}

	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "halyard",
		Short:         "Inspect and check halyard process records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newValidateCmd())
	root.AddCommand(newDefaultsCmd())
	root.AddCommand(newMigrationsCmd())
	return root
}
