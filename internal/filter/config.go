package filter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// StringList is a rule list that accepts either a single scalar or a
// sequence of scalars in YAML, so users can write
//
//	ignore_dirs: node_modules
//
// as well as
//
//	ignore_dirs: [node_modules, .git]
//
// A bare scalar is normalized to a single-element list. Entries that are not
// plain text fail with ErrTypeMismatch.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		entry, err := scalarText(value)
		if err != nil {
			return err
		}
		*s = StringList{entry}
		return nil
	case yaml.SequenceNode:
		out := make(StringList, 0, len(value.Content))
		for _, node := range value.Content {
			entry, err := scalarText(node)
			if err != nil {
				return err
			}
			out = append(out, entry)
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("%w: rule list must be text or a list of text (line %d)", ErrTypeMismatch, value.Line)
	}
}

// scalarText extracts the text of a scalar node, rejecting non-text scalars
// (numbers, booleans, null) and nested collections.
func scalarText(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%w: rule entry must be text (line %d)", ErrTypeMismatch, node.Line)
	}
	switch node.Tag {
	case "!!str", "":
		return node.Value, nil
	default:
		return "", fmt.Errorf("%w: rule entry %q is %s, not text (line %d)", ErrTypeMismatch, node.Value, node.Tag, node.Line)
	}
}

// NormalizeList converts a dynamically typed rule value into a StringList,
// wrapping a bare string into a single-element list. Used when a
// configuration arrives as a generic map instead of YAML.
func NormalizeList(value interface{}) (StringList, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return StringList{v}, nil
	case []string:
		return StringList(v), nil
	case []interface{}:
		out := make(StringList, 0, len(v))
		for _, entry := range v {
			text, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("%w: rule entry %v is %T, not text", ErrTypeMismatch, entry, entry)
			}
			out = append(out, text)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: rule list %v is %T, not text", ErrTypeMismatch, value, value)
	}
}

// Config holds the rule lists and default policies for one filter engine.
// It is immutable after compilation.
type Config struct {
	// AllowPaths lists root-relative path prefixes that are always processed
	AllowPaths StringList `yaml:"allow_paths"`

	// IgnorePaths lists root-relative path prefixes that are skipped unless
	// allowed by AllowPaths
	IgnorePaths StringList `yaml:"ignore_paths"`

	// IgnoreDirs lists directory basenames that are skipped
	IgnoreDirs StringList `yaml:"ignore_dirs"`

	// OnlyFiles, when non-empty, restricts processing to matching basenames
	// and overrides every other file rule
	OnlyFiles StringList `yaml:"only_files"`

	// AllowFiles lists file basenames that are always processed
	AllowFiles StringList `yaml:"allow_files"`

	// IgnoreFiles lists file basenames that are skipped unless allowed
	// by AllowFiles
	IgnoreFiles StringList `yaml:"ignore_files"`

	// IgnoreFilesFirst lists file basenames that are skipped before any
	// allow rule is consulted
	IgnoreFilesFirst StringList `yaml:"ignore_files_first"`

	// IgnoreExts lists file extensions that are skipped
	IgnoreExts StringList `yaml:"ignore_exts"`

	// IgnoreFilesByDefault denies files that matched no rule
	IgnoreFilesByDefault bool `yaml:"ignore_files_by_default"`

	// IgnorePathsByDefault denies directories that matched no rule
	IgnorePathsByDefault bool `yaml:"ignore_paths_by_default"`
}

// ConfigFromMap builds a Config from a generic option map, normalizing bare
// string values into single-element lists. Unknown keys are an error.
func ConfigFromMap(options map[string]interface{}) (Config, error) {
	var cfg Config

	lists := map[string]*StringList{
		"allowPaths":       &cfg.AllowPaths,
		"ignorePaths":      &cfg.IgnorePaths,
		"ignoreDirs":       &cfg.IgnoreDirs,
		"onlyFiles":        &cfg.OnlyFiles,
		"allowFiles":       &cfg.AllowFiles,
		"ignoreFiles":      &cfg.IgnoreFiles,
		"ignoreFilesFirst": &cfg.IgnoreFilesFirst,
		"ignoreExts":       &cfg.IgnoreExts,
	}

	for key, value := range options {
		if target, ok := lists[key]; ok {
			list, err := NormalizeList(value)
			if err != nil {
				return Config{}, fmt.Errorf("option %s: %w", key, err)
			}
			*target = list
			continue
		}

		switch key {
		case "ignoreFilesByDefault", "ignorePathsByDefault":
			flag, ok := value.(bool)
			if !ok {
				return Config{}, fmt.Errorf("option %s: %w: %v is %T, not a boolean", key, ErrTypeMismatch, value, value)
			}
			if key == "ignoreFilesByDefault" {
				cfg.IgnoreFilesByDefault = flag
			} else {
				cfg.IgnorePathsByDefault = flag
			}
		default:
			return Config{}, fmt.Errorf("unknown filter option: %s", key)
		}
	}

	return cfg, nil
}
