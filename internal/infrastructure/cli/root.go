// Package cli implements the sprintcast command line interface.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var verbose bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "sprintcast",
	Version: Version,
	Short:   "Probabilistic completion forecasting from sprint velocity",
	Long: `Sprintcast forecasts when remaining work will complete based on
historical sprint velocity. It answers:
1. How many sprints until we are done, at each confidence level?
2. What happens under a what-if scenario (slowdown, team change)?
3. How do different forecasting models compare?`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// newLogger builds the console logger commands inject into services.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
