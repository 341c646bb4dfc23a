package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/sift/internal/config"
	"github.com/harrison/sift/internal/filelock"
	"github.com/harrison/sift/internal/history"
	"github.com/harrison/sift/internal/logger"
	"github.com/harrison/sift/internal/scanner"
	"github.com/harrison/sift/internal/trace"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	var (
		configPath     string
		logLevel       string
		outPath        string
		maxConcurrency int
		noHistory      bool
		flags          filterFlags
	)

	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "Walk a directory tree and list the files accepted by the filter rules",
		Long: `Walk the tree rooted at <root> and print the absolute paths of all files
that pass the configured filter rules, sorted.

Rules come from .sift/config.yaml (or --config) and can be overridden per
category with flags. Run with --log-level trace to see every accept/reject
decision as it is made.

Examples:
  # Scan the current tree, skipping dependency directories
  sift scan . --ignore-dir node_modules --ignore-dir .git

  # Only markdown-ish files, written to a report
  sift scan docs --only-file readme --out report.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("max-concurrency") {
				cfg.MaxConcurrency = maxConcurrency
			}
			flags.apply(cmd, &cfg.Filter)

			console := logger.NewConsoleLogger(os.Stderr, cfg.LogLevel)

			runID := uuid.New().String()
			var sinks []trace.Sink
			sinks = append(sinks, console)
			if cfg.LogDir != "" {
				fileLog, err := logger.NewFileLogger(cfg.LogDir, runID)
				if err != nil {
					console.LogWarn(fmt.Sprintf("scan log disabled: %v", err))
				} else {
					defer fileLog.Close()
					sinks = append(sinks, fileLog)
				}
			}

			s, err := scanner.New(cfg.Filter,
				scanner.WithSink(trace.MultiSink(sinks...)),
				scanner.WithMaxConcurrency(cfg.MaxConcurrency),
			)
			if err != nil {
				return err
			}

			// Ctrl-C aborts the walk; the partial result is still printed.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			started := time.Now()
			files, scanErr := s.Parse(ctx, args[0])
			aborted := errors.Is(scanErr, scanner.ErrAborted)
			if scanErr != nil && !aborted {
				return scanErr
			}

			duration := time.Since(started)
			if aborted {
				console.LogWarn(fmt.Sprintf("scan aborted after %s, %d files accepted so far", duration.Round(time.Millisecond), len(files)))
			} else {
				console.LogInfo(fmt.Sprintf("scan complete: %d files in %s", len(files), duration.Round(time.Millisecond)))
			}

			for _, file := range files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}

			if outPath != "" {
				data := []byte(strings.Join(files, "\n") + "\n")
				if err := filelock.LockAndWrite(outPath, data); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
			}

			if cfg.History.Enabled && !noHistory {
				recordRun(console, cfg.History, history.Run{
					ID:        runID,
					Root:      args[0],
					StartedAt: started,
					Duration:  duration,
					Accepted:  len(files),
					Decisions: s.Log().Len(),
					Aborted:   aborted,
				})
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to configuration file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log verbosity (trace, debug, info, warn, error)")
	cmd.Flags().StringVar(&outPath, "out", "", "write the accepted paths to this file (locked, atomic)")
	cmd.Flags().IntVar(&maxConcurrency, "max-concurrency", 0, "per-directory parallelism (0 = default)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this run in the history database")
	flags.register(cmd)

	return cmd
}

// recordRun stores one run in the history database. History failures are
// logged, never fatal: the scan result already reached the caller.
func recordRun(console *logger.ConsoleLogger, cfg config.HistoryConfig, run history.Run) {
	store, err := history.NewStore(cfg.DBPath)
	if err != nil {
		console.LogWarn(fmt.Sprintf("history disabled: %v", err))
		return
	}
	defer store.Close()

	if err := store.RecordRun(run); err != nil {
		console.LogWarn(fmt.Sprintf("history record failed: %v", err))
		return
	}
	if err := store.Prune(cfg.KeepRuns); err != nil {
		console.LogWarn(fmt.Sprintf("history prune failed: %v", err))
	}
}
