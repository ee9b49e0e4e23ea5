package du

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternsPrefix(t *testing.T) {
	p, err := NewPatterns("root/sub", "/abs/dir/")
	require.NoError(t, err)

	assert.True(t, p.Match("root/sub"))
	assert.True(t, p.Match("root/sub/file.txt"))
	assert.True(t, p.Match("root/sub/deep/leaf"))
	assert.True(t, p.Match("/abs/dir/x"))

	// Prefixes match whole components only.
	assert.False(t, p.Match("root/subway"))
	assert.False(t, p.Match("root"))
	assert.False(t, p.Match("other/root/sub"))
}

func TestPatternsAsSupplied(t *testing.T) {
	p, err := NewPatterns("./data")
	require.NoError(t, err)

	assert.True(t, p.Match("data/file"))
	// Relative patterns are not resolved against the working directory.
	assert.False(t, p.Match("/somewhere/data/file"))
}

func TestPatternsGlob(t *testing.T) {
	p, err := NewPatterns("*.log", "build/*.o")
	require.NoError(t, err)

	assert.True(t, p.Match("app.log"))
	assert.True(t, p.Match("a/b/app.log"))
	assert.True(t, p.Match("build/main.o"))
	assert.False(t, p.Match("app.log.bak"))
	assert.False(t, p.Match("src/build/main.o"))
}

func TestPatternsInvalidGlob(t *testing.T) {
	_, err := NewPatterns("[unclosed")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestPatternsZeroValue(t *testing.T) {
	var p Patterns

	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Match("anything"))
	assert.Empty(t, p.Strings())
}

func TestPatternsDeduplicates(t *testing.T) {
	p, err := NewPatterns("a/b", "a/b/", "./a/b", "", "*.tmp")
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"*.tmp", "a/b"}, p.Strings())
}
