package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/sift/internal/config"
	"github.com/harrison/sift/internal/logger"
	"github.com/harrison/sift/internal/scanner"
)

// ErrRejected reports a path that failed the filter rules; the process
// exits non-zero without further ceremony.
var ErrRejected = errors.New("path rejected by filter rules")

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
		root       string
		flags      filterFlags
	)

	cmd := &cobra.Command{
		Use:   "check <path>",
		Short: "Validate a single file path against the filter rules",
		Long: `Check whether one file path would be accepted by the filter rules
without walking the whole tree. The parent directory is checked first as a
containment check, then the file itself.

Exits 0 when the path is accepted and 1 when it is rejected; run with
--log-level trace to see which rule decided.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			flags.apply(cmd, &cfg.Filter)

			console := logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)

			s, err := scanner.New(cfg.Filter,
				scanner.WithSink(console),
				scanner.WithRoot(root),
			)
			if err != nil {
				return err
			}

			if s.CheckFile(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "accepted: %s\n", args[0])
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rejected: %s\n", args[0])
			return ErrRejected
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log verbosity (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&root, "root", ".", "root directory for resolving path rules")
	flags.register(cmd)

	return cmd
}
