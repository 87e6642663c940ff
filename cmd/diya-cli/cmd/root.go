package cmd

import (
	"diya-backend/internal/application"
	"diya-backend/internal/components/telemetry"
	"diya-backend/lib/configutil"
	"diya-backend/lib/serviceutil"
	libtelemetry "diya-backend/lib/telemetry"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// built by the root command before any subcommand runs
var components application.Components

var rootCmd = &cobra.Command{
	Use:   "diya-cli",
	Short: "diya-cli runs brand extraction and content planning from the terminal.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		libtelemetry.InitSlog(verbose)

		cfg, err := configutil.ReadRecursively[application.Config](configPath)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read config: %w", err)
		}

		components, err = application.Build(cmd.Context(), cfg, telemetry.SlogAPI{})
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Name of the configuration file, searched for up from the working directory.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
}

func Execute() {
	if err := rootCmd.ExecuteContext(serviceutil.SignalContext()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
