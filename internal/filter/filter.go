// Package filter decides which files and directories a scan should process.
//
// Rules are grouped into named categories (paths, basenames, extensions).
// Each category compiles into a single literal-prefix matcher; the engine
// evaluates the categories in a fixed precedence order and the first
// applicable rule wins. When no rule applies, a per-kind default policy
// decides the outcome.
package filter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Engine applies compiled filter rules. It is immutable after construction
// and safe for concurrent use.
type Engine struct {
	patterns             *PatternSet
	ignoreFilesByDefault bool
	ignorePathsByDefault bool
}

// NewEngine compiles the configuration's rule lists into an Engine.
func NewEngine(cfg Config) (*Engine, error) {
	patterns, err := Compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("compile filter rules: %w", err)
	}

	return &Engine{
		patterns:             patterns,
		ignoreFilesByDefault: cfg.IgnoreFilesByDefault,
		ignorePathsByDefault: cfg.IgnorePathsByDefault,
	}, nil
}

// Decision is the outcome of one filter evaluation.
type Decision struct {
	// Allow reports whether the entry should be processed
	Allow bool
	// Rule names the category that decided, or "default" when none matched
	Rule string
	// Match is the text the winning rule matched; empty for the default rule
	Match string
}

// Message formats the decision for the diagnostic trail,
// e.g. "allow via allowPaths: /docs" or "deny by default".
func (d Decision) Message() string {
	verb := "deny"
	if d.Allow {
		verb = "allow"
	}
	if d.Rule == "default" {
		return verb + " by default"
	}
	return fmt.Sprintf("%s via %s: %s", verb, d.Rule, d.Match)
}

// FileDecision decides whether a file with the given basename should be
// processed. The extension is derived from the basename.
//
// Precedence, first applicable rule wins:
//  1. onlyFiles, when present, is exclusive: a basename either matches it
//     and is allowed, or is denied outright.
//  2. ignoreFilesFirst denies before any allow rule is consulted.
//  3. allowFiles allows.
//  4. ignoreFiles denies.
//  5. ignoreExts denies by extension.
//  6. Otherwise the ignoreFilesByDefault policy decides.
func (e *Engine) FileDecision(base string) Decision {
	if e.patterns.onlyFiles != nil {
		if match, ok := prefixMatch(e.patterns.onlyFiles, base); ok {
			return Decision{Allow: true, Rule: "onlyFiles", Match: match}
		}
		return Decision{Allow: false, Rule: "onlyFiles", Match: base}
	}

	if match, ok := prefixMatch(e.patterns.ignoreFilesFirst, base); ok {
		return Decision{Allow: false, Rule: "ignoreFilesFirst", Match: match}
	}
	if match, ok := prefixMatch(e.patterns.allowFiles, base); ok {
		return Decision{Allow: true, Rule: "allowFiles", Match: match}
	}
	if match, ok := prefixMatch(e.patterns.ignoreFiles, base); ok {
		return Decision{Allow: false, Rule: "ignoreFiles", Match: match}
	}
	if match, ok := prefixMatch(e.patterns.ignoreExts, filepath.Ext(base)); ok {
		return Decision{Allow: false, Rule: "ignoreExts", Match: match}
	}

	return Decision{Allow: !e.ignoreFilesByDefault, Rule: "default"}
}

// DirDecision decides whether a directory should be descended into.
// relPath is the directory's root-relative path; name is its basename.
//
// Precedence: allowPaths, then ignorePaths, then ignoreDirs, then the
// ignorePathsByDefault policy.
func (e *Engine) DirDecision(relPath, name string) Decision {
	rel := normalizeRelPath(relPath)

	if match, ok := prefixMatch(e.patterns.allowPaths, rel); ok {
		return Decision{Allow: true, Rule: "allowPaths", Match: match}
	}
	if match, ok := prefixMatch(e.patterns.ignorePaths, rel); ok {
		return Decision{Allow: false, Rule: "ignorePaths", Match: match}
	}
	if match, ok := prefixMatch(e.patterns.ignoreDirs, name); ok {
		return Decision{Allow: false, Rule: "ignoreDirs", Match: match}
	}

	return Decision{Allow: !e.ignorePathsByDefault, Rule: "default"}
}

// normalizeRelPath converts a root-relative path to slash-separated form
// with exactly one leading separator, matching how path rules are compiled.
func normalizeRelPath(relPath string) string {
	rel := filepath.ToSlash(relPath)
	return "/" + strings.TrimPrefix(rel, "/")
}
