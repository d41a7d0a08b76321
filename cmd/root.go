/* cmd/root.go */

package cmd

import (
	"fmt"
	"os"
	"strings"

	argus "github.com/CodeMonkeyCybersecurity/argus/pkg/argus_cli"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_err"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/argus_io"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	// Subcommands
	"github.com/CodeMonkeyCybersecurity/argus/cmd/create"
	"github.com/CodeMonkeyCybersecurity/argus/cmd/delete"
	"github.com/CodeMonkeyCybersecurity/argus/cmd/inspect"

	// Internal packages
	"github.com/CodeMonkeyCybersecurity/argus/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/argus/pkg/telemetry"
)

var helpLogged bool // global guard to log help only once

var debugMode bool

// RootCmd is the base command for argus.
var RootCmd = &cobra.Command{
	Use:   "argus",
	Short: "Argus CLI for provisioning and managing host monitoring",
	Long: `Argus provisions the Netdata monitoring agent on Ubuntu hosts: vendor
repository, package, service activation, health alerting and collector
configuration, end to end.`,

	RunE: argus.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		fmt.Println("No subcommand provided. Try `argus help`.")
		return cmd.Help()
	}),
}

// HelpCmd wraps help so that it can be invoked like a normal command.
var HelpCmd = &cobra.Command{
	Use:   "help",
	Short: "Help about any command",
	Long:  "Displays help for argus or a specific subcommand.",
	RunE: argus.Wrap(func(rc *argus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return RootCmd.Help()
		}
		c, _, err := RootCmd.Find(args)
		if err != nil || c == nil {
			return fmt.Errorf("command not found: %s", strings.Join(args, " "))
		}
		return c.Help()
	}),
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.SetHelpCommand(HelpCmd)
	RootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"Log verbose diagnostics, including error stacks")
	RootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		argus_err.SetDebugMode(debugMode)
	}

	log := logger.L()

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if !helpLogged {
			log.Info("Global help triggered via --help or -h", zap.String("command", cmd.Name()))
			helpLogged = true
		}
		if err := cmd.Root().Usage(); err != nil {
			log.Warn("Failed to print usage", zap.Error(err))
		}
	})

	for _, subCmd := range []*cobra.Command{
		create.CreateCmd,
		inspect.InspectCmd,
		delete.DeleteCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command.
func Execute() {
	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
		}
	}()

	if err := telemetry.Init("argus"); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if argus_err.IsExpectedUserError(err) {
			// Operator mistakes get a clean one-line message, no stack.
			logger.L().Warn("Command failed", zap.String("error", err.Error()))
		} else if argus_err.DebugEnabled() {
			logger.L().Error("Command failed", zap.String("stack", fmt.Sprintf("%+v", err)))
		} else {
			logger.L().Error("Command failed", zap.Error(err))
		}
		os.Exit(1)
	}
}
