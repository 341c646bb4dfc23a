package scanner

import (
	"path/filepath"
)

// CheckFile validates a single absolute file path outside a full traversal,
// e.g. for a file-watcher event. The parent directory is checked first as a
// standalone containment check (not a chain of checks up to the root), then
// the file itself; both must pass.
//
// Root-relative paths are resolved against the root of the most recent
// Parse call, or the root supplied via WithRoot.
func (s *Scanner) CheckFile(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		s.log.Appendf("check", "skip %s: %v", path, err)
		return false
	}

	parent := filepath.Dir(abs)
	dirDecision := s.engine.DirDecision(s.relPath(parent), filepath.Base(parent))
	s.log.Appendf("dir", "%s: %s", parent, dirDecision.Message())
	if !dirDecision.Allow {
		return false
	}

	fileDecision := s.engine.FileDecision(filepath.Base(abs))
	s.log.Appendf("file", "%s: %s", abs, fileDecision.Message())
	return fileDecision.Allow
}
