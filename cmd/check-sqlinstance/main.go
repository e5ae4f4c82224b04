package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/shoestringdba/Check-SqlInstance/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
	verbose bool
)

// Exit codes for errors that escape the check's error boundary.
const (
	ExitSuccess    = 0
	ExitInternal   = 1
	ExitInvalidArg = 2
	ExitNotFound   = 3
	ExitNetwork    = 5
)

func main() {
	logging.Init(false)

	root := &cobra.Command{
		Use:   "check-sqlinstance",
		Short: "SQL Server instance health report",
		Long: `Check-SqlInstance collects administrative metadata from one SQL Server
instance - version and edition, memory and parallelism settings,
per-database configuration, and backup history - and writes a
plain-text report.

Failures are diverted to a separate error file; operators detect a
failed run by the presence of a non-empty error file.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(verbose)
		},
	}

	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(NewCheckCmd())
	root.AddCommand(NewVersionCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(classifyError(err))
	}
}

func classifyError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if os.IsNotExist(err) {
		return ExitNotFound
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "no such file") {
		return ExitNotFound
	}

	if strings.Contains(msg, "dial") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "network is unreachable") {
		return ExitNetwork
	}

	if strings.Contains(msg, "required") ||
		strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "must be") {
		return ExitInvalidArg
	}

	return ExitInternal
}
