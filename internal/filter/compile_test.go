package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEmptyCategoriesAreAbsent(t *testing.T) {
	ps, err := Compile(Config{})
	require.NoError(t, err)

	assert.Nil(t, ps.allowPaths)
	assert.Nil(t, ps.ignorePaths)
	assert.Nil(t, ps.ignoreDirs)
	assert.Nil(t, ps.onlyFiles)
	assert.Nil(t, ps.allowFiles)
	assert.Nil(t, ps.ignoreFiles)
	assert.Nil(t, ps.ignoreFilesFirst)
	assert.Nil(t, ps.ignoreExts)
}

func TestCompileCaseInsensitive(t *testing.T) {
	ps, err := Compile(Config{IgnoreFiles: StringList{"readme"}})
	require.NoError(t, err)

	_, ok := prefixMatch(ps.ignoreFiles, "README.md")
	assert.True(t, ok, "pattern readme should match README.md")
	_, ok = prefixMatch(ps.ignoreFiles, "ReadMe.TXT")
	assert.True(t, ok, "pattern readme should match ReadMe.TXT")
	_, ok = prefixMatch(ps.ignoreFiles, "notes.txt")
	assert.False(t, ok)
}

func TestCompilePrefixOnlyMatch(t *testing.T) {
	// Fragments are matched as literal prefixes with no end anchor:
	// "docs" matches /docs/readme.md and also /docsx/other.md.
	ps, err := Compile(Config{IgnorePaths: StringList{"docs"}})
	require.NoError(t, err)

	match, ok := prefixMatch(ps.ignorePaths, "/docs/readme.md")
	require.True(t, ok)
	assert.Equal(t, "/docs", match)

	_, ok = prefixMatch(ps.ignorePaths, "/docsx/other.md")
	assert.True(t, ok, "prefix matching must not require a path boundary")

	_, ok = prefixMatch(ps.ignorePaths, "/src/docs/readme.md")
	assert.False(t, ok, "match must be anchored at the start of the string")
}

func TestCompileMetacharactersAreLiteral(t *testing.T) {
	ps, err := Compile(Config{IgnoreFiles: StringList{"a.b*"}})
	require.NoError(t, err)

	_, ok := prefixMatch(ps.ignoreFiles, "a.b*suffix")
	assert.True(t, ok)
	_, ok = prefixMatch(ps.ignoreFiles, "aXbY")
	assert.False(t, ok, "pattern metacharacters must be escaped")
	_, ok = prefixMatch(ps.ignoreFiles, "a.bbb")
	assert.False(t, ok, "* must not be interpreted as a quantifier")
}

func TestCompileExtensionNormalization(t *testing.T) {
	// Extensions gain a leading dot when missing.
	ps, err := Compile(Config{IgnoreExts: StringList{"txt", ".md"}})
	require.NoError(t, err)

	_, ok := prefixMatch(ps.ignoreExts, ".txt")
	assert.True(t, ok)
	_, ok = prefixMatch(ps.ignoreExts, ".md")
	assert.True(t, ok)
	_, ok = prefixMatch(ps.ignoreExts, "txt")
	assert.False(t, ok, "extension patterns must be dot-anchored")
}

func TestCompileNameNormalization(t *testing.T) {
	// Basename fragments lose a leading separator.
	ps, err := Compile(Config{IgnoreDirs: StringList{"/node_modules"}})
	require.NoError(t, err)

	_, ok := prefixMatch(ps.ignoreDirs, "node_modules")
	assert.True(t, ok)
}

func TestCompilePathNormalization(t *testing.T) {
	// Path fragments gain a leading separator when missing.
	ps, err := Compile(Config{AllowPaths: StringList{"src"}})
	require.NoError(t, err)

	_, ok := prefixMatch(ps.allowPaths, "/src/main.go")
	assert.True(t, ok)
	_, ok = prefixMatch(ps.allowPaths, "src/main.go")
	assert.False(t, ok)
}

func TestCompileAlternation(t *testing.T) {
	ps, err := Compile(Config{IgnoreDirs: StringList{"node_modules", ".git", "dist"}})
	require.NoError(t, err)

	for _, name := range []string{"node_modules", ".git", "dist"} {
		_, ok := prefixMatch(ps.ignoreDirs, name)
		assert.True(t, ok, "expected %s to match", name)
	}
	_, ok := prefixMatch(ps.ignoreDirs, "src")
	assert.False(t, ok)
}

func TestPrefixMatchNilMatcher(t *testing.T) {
	_, ok := prefixMatch(nil, "anything")
	assert.False(t, ok)
}
