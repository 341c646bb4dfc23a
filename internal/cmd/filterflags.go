package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/sift/internal/filter"
)

// filterFlags collects the rule-list flags shared by scan, check and watch.
// A flag that was set replaces the corresponding list from the config file.
type filterFlags struct {
	allowPaths       []string
	ignorePaths      []string
	ignoreDirs       []string
	onlyFiles        []string
	allowFiles       []string
	ignoreFiles      []string
	ignoreFilesFirst []string
	ignoreExts       []string

	ignoreFilesByDefault bool
	ignorePathsByDefault bool
}

// register adds the filter flags to a command.
func (f *filterFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVar(&f.allowPaths, "allow-path", nil, "root-relative path prefix to always process (repeatable)")
	flags.StringArrayVar(&f.ignorePaths, "ignore-path", nil, "root-relative path prefix to skip (repeatable)")
	flags.StringArrayVar(&f.ignoreDirs, "ignore-dir", nil, "directory basename to skip (repeatable)")
	flags.StringArrayVar(&f.onlyFiles, "only-file", nil, "restrict processing to matching basenames (repeatable, exclusive)")
	flags.StringArrayVar(&f.allowFiles, "allow-file", nil, "file basename to always process (repeatable)")
	flags.StringArrayVar(&f.ignoreFiles, "ignore-file", nil, "file basename to skip (repeatable)")
	flags.StringArrayVar(&f.ignoreFilesFirst, "ignore-file-first", nil, "file basename to skip before allow rules (repeatable)")
	flags.StringArrayVar(&f.ignoreExts, "ignore-ext", nil, "file extension to skip (repeatable)")
	flags.BoolVar(&f.ignoreFilesByDefault, "ignore-files-by-default", false, "deny files that match no rule")
	flags.BoolVar(&f.ignorePathsByDefault, "ignore-paths-by-default", false, "deny directories that match no rule")
}

// apply overlays set flags onto a filter configuration.
func (f *filterFlags) apply(cmd *cobra.Command, cfg *filter.Config) {
	flags := cmd.Flags()
	if flags.Changed("allow-path") {
		cfg.AllowPaths = filter.StringList(f.allowPaths)
	}
	if flags.Changed("ignore-path") {
		cfg.IgnorePaths = filter.StringList(f.ignorePaths)
	}
	if flags.Changed("ignore-dir") {
		cfg.IgnoreDirs = filter.StringList(f.ignoreDirs)
	}
	if flags.Changed("only-file") {
		cfg.OnlyFiles = filter.StringList(f.onlyFiles)
	}
	if flags.Changed("allow-file") {
		cfg.AllowFiles = filter.StringList(f.allowFiles)
	}
	if flags.Changed("ignore-file") {
		cfg.IgnoreFiles = filter.StringList(f.ignoreFiles)
	}
	if flags.Changed("ignore-file-first") {
		cfg.IgnoreFilesFirst = filter.StringList(f.ignoreFilesFirst)
	}
	if flags.Changed("ignore-ext") {
		cfg.IgnoreExts = filter.StringList(f.ignoreExts)
	}
	if flags.Changed("ignore-files-by-default") {
		cfg.IgnoreFilesByDefault = f.ignoreFilesByDefault
	}
	if flags.Changed("ignore-paths-by-default") {
		cfg.IgnorePathsByDefault = f.ignorePathsByDefault
	}
}
