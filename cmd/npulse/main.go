// Command npulse collects three-channel pulse captures from a device bridge and estimates heart
// and breathing rates from them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joeydtaylor/npulse/pkg/builder"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "npulse",
	Short:         "Pulse capture and heart-rate analysis",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults plus NPULSE_* env when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	rootCmd.AddCommand(analyzeCmd, collectCmd, simulateCmd, filesCmd, serveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps user-visible failures to distinct statuses.
func exitCode(err error) int {
	switch {
	case errors.Is(err, builder.ErrResourceNotFound):
		return 2
	case errors.Is(err, builder.ErrTransportFault):
		return 3
	default:
		return 1
	}
}
