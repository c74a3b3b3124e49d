package cli

import (
	"github.com/spf13/cobra"

	"github.com/base-14/examples/go/parking-lot/internal/config"
)

// NewRootCmd builds the command tree. The root command runs the parking shell.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "parking-lot",
		Short: "Interactive parking lot manager",
		Long: `Reads one command per line from stdin (or --file) and prints one reply per line.

Commands:
  create <size>                 create or replace the lot
  status                        list occupied spots
  park <registration> <color>   park in the lowest free spot
  leave <spot>                  free a spot
  reg_by_color <color>          registrations of cars with a color
  spot_by_color <color>         spots of cars with a color
  spot_by_reg <registration>    spot of a registration
  exit                          stop`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.BindFlags(cmd.Flags())
		},
		RunE: runShell,
	}

	flags := rootCmd.Flags()
	flags.StringP(config.KeyFile, "f", "", "read commands from this file instead of stdin")
	flags.String(config.KeyDiagnosticsAddr, "", "serve /health and /metrics on this address (e.g. :9464)")
	flags.Bool(config.KeyTelemetry, false, "export traces and metrics over OTLP/HTTP")
	flags.String(config.KeyOTLPEndpoint, "", "OTLP/HTTP collector endpoint")
	flags.Duration(config.KeyMetricsInterval, 0, "metric export interval")

	persistent := rootCmd.PersistentFlags()
	persistent.String(config.KeyServiceName, "", "service name reported in telemetry")
	persistent.String(config.KeyEnvironment, "", "deployment environment")
	persistent.String(config.KeyLogLevel, "", "log level (debug|info|warn|error)")
	persistent.String(config.KeyLogFormat, "", "log format (console|json)")

	rootCmd.AddCommand(newVersionCmd(), newConfigCmd())

	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}
