package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sift
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sift",
		Short: "Selective filesystem traversal with layered filter rules",
		Long: `Sift walks a directory tree and collects the files that satisfy a
precedence-ordered set of include/exclude rules over paths, filenames,
and extensions.

Rules are literal text fragments matched case-insensitively as prefixes.
Denied directories are pruned entirely, and every accept/reject decision
is recorded in a diagnostic trail.

Configuration is loaded from .sift/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewWatchCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
