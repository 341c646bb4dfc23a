package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/sift/internal/config"
	"github.com/harrison/sift/internal/history"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent scan runs",
		Long: `List recent scan runs recorded in the history database, newest first:
run id, root, start time, duration, accepted file count, and whether the
run was aborted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			store, err := history.NewStore(cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scan runs recorded")
				return nil
			}

			for _, run := range runs {
				status := ""
				if run.Aborted {
					status = "  (aborted)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s  %d files%s\n",
					run.ID[:8],
					run.StartedAt.Local().Format(time.DateTime),
					run.Root,
					run.Duration.Round(time.Millisecond),
					run.Accepted,
					status,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to configuration file")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")

	return cmd
}
