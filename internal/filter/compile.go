package filter

import (
	"regexp"
	"strings"
)

// categoryKind selects how fragments are normalized before escaping.
type categoryKind int

const (
	// pathCategory fragments match root-relative paths and gain a leading "/"
	pathCategory categoryKind = iota
	// nameCategory fragments match basenames and lose any leading "/"
	nameCategory
	// extCategory fragments match extensions and gain a leading "."
	extCategory
)

// PatternSet holds one compiled matcher per rule category. A nil matcher
// means the category had no entries and never matches.
type PatternSet struct {
	allowPaths       *regexp.Regexp
	ignorePaths      *regexp.Regexp
	ignoreDirs       *regexp.Regexp
	onlyFiles        *regexp.Regexp
	allowFiles       *regexp.Regexp
	ignoreFiles      *regexp.Regexp
	ignoreFilesFirst *regexp.Regexp
	ignoreExts       *regexp.Regexp
}

// Compile builds the matcher set for a configuration. Each non-empty rule
// list becomes a single case-insensitive alternation that is anchored at the
// start of the tested string but deliberately has no end anchor: rules are
// literal prefixes, so "docs" matches both "/docs/readme.md" and
// "/docsx/other.md". Configurations depend on this loose semantic.
func Compile(cfg Config) (*PatternSet, error) {
	var ps PatternSet
	var err error

	if ps.allowPaths, err = compileCategory(pathCategory, cfg.AllowPaths); err != nil {
		return nil, err
	}
	if ps.ignorePaths, err = compileCategory(pathCategory, cfg.IgnorePaths); err != nil {
		return nil, err
	}
	if ps.ignoreDirs, err = compileCategory(nameCategory, cfg.IgnoreDirs); err != nil {
		return nil, err
	}
	if ps.onlyFiles, err = compileCategory(nameCategory, cfg.OnlyFiles); err != nil {
		return nil, err
	}
	if ps.allowFiles, err = compileCategory(nameCategory, cfg.AllowFiles); err != nil {
		return nil, err
	}
	if ps.ignoreFiles, err = compileCategory(nameCategory, cfg.IgnoreFiles); err != nil {
		return nil, err
	}
	if ps.ignoreFilesFirst, err = compileCategory(nameCategory, cfg.IgnoreFilesFirst); err != nil {
		return nil, err
	}
	if ps.ignoreExts, err = compileCategory(extCategory, cfg.IgnoreExts); err != nil {
		return nil, err
	}

	return &ps, nil
}

// compileCategory escapes each fragment so it matches literally, normalizes
// it for its category, and joins the fragments into one anchored
// case-insensitive alternation. Empty lists produce no matcher.
func compileCategory(kind categoryKind, entries StringList) (*regexp.Regexp, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch kind {
		case extCategory:
			if !strings.HasPrefix(entry, ".") {
				entry = "." + entry
			}
		case nameCategory:
			entry = strings.TrimPrefix(entry, "/")
		case pathCategory:
			if !strings.HasPrefix(entry, "/") {
				entry = "/" + entry
			}
		}
		parts = append(parts, regexp.QuoteMeta(entry))
	}

	return regexp.Compile("(?i)^(" + strings.Join(parts, "|") + ")")
}

// prefixMatch reports whether re matches a prefix of s, and returns the
// matched text for diagnostics. A nil matcher never matches.
func prefixMatch(re *regexp.Regexp, s string) (string, bool) {
	if re == nil {
		return "", false
	}
	loc := re.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}
