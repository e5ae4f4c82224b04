package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/shoestringdba/Check-SqlInstance/internal/checker"
	"github.com/shoestringdba/Check-SqlInstance/internal/provider"
	"github.com/shoestringdba/Check-SqlInstance/pkg/config"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check one instance and write the report",
		Long: `Check connects to the named SQL Server instance, collects its
administrative metadata, and writes a four-section report
(Instance Information, Memory and Parallelism, Databases, Backups)
to the output file.

On any failure the report file is left untouched and a single
timestamped line is written to the error file instead.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(cfg.Instance) == "" {
				return fmt.Errorf("--instance must be a non-empty instance name")
			}
			cfg.Verbose = verbose
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cfg)
		},
	}

	// Instance flags
	cmd.Flags().StringVar(&cfg.Instance, "instance", "", "Instance name, also used as the server address (required)")
	_ = cmd.MarkFlagRequired("instance") // Error only occurs if flag doesn't exist

	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "TCP port (ignored when the address carries its own)")
	cmd.Flags().StringVar(&cfg.User, "user", "", "SQL login (integrated authentication when empty)")
	cmd.Flags().StringVar(&cfg.Password, "password", "", "SQL login password")
	cmd.Flags().BoolVar(&cfg.Encrypt, "encrypt", cfg.Encrypt, "Encrypt the connection")

	// Output flags
	cmd.Flags().StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Report file path")
	cmd.Flags().StringVar(&cfg.ErrorFile, "error-file", cfg.ErrorFile, "Error file path")

	return cmd
}

// runCheck executes one check run end to end.
func runCheck(cfg *config.Config) error {
	open := func() (provider.Provider, error) {
		return provider.NewSQLServer(cfg)
	}
	return checker.New(open, cfg).Run(context.Background())
}
