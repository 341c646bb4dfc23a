package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/sift/internal/config"
	"github.com/harrison/sift/internal/logger"
	"github.com/harrison/sift/internal/scanner"
	"github.com/harrison/sift/internal/watcher"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
		flags      filterFlags
	)

	cmd := &cobra.Command{
		Use:   "watch <root>",
		Short: "Watch a directory tree and report rule-accepted file changes",
		Long: `Perform an initial scan of <root>, then watch the tree for changes and
print each created, written, or removed file that passes the filter rules.
Changes to filtered-out files are silently dropped.

Runs until interrupted.`,
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

			s, err := scanner.New(cfg.Filter, scanner.WithSink(console))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Baseline scan establishes the root for single-path re-checks.
			files, err := s.Parse(ctx, args[0])
			if err != nil {
				return err
			}
			console.LogInfo(fmt.Sprintf("watching %s (%d files accepted)", args[0], len(files)))

			w, err := watcher.New(args[0], s.CheckFile)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Close()

			for {
				select {
				case <-ctx.Done():
					return nil
				case event := <-w.Events():
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", event.Op, event.Path)
				case err := <-w.Errors():
					console.LogWarn(fmt.Sprintf("watch error: %v", err))
				}
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log verbosity (trace, debug, info, warn, error)")
	flags.register(cmd)

	return cmd
}
