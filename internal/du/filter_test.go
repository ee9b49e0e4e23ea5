package du

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
	assert.NoError(t, Policy{MaxDepth: 0}.Validate())

	err := Policy{MaxDepth: -2}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestFilterEnterDirectoryDepth(t *testing.T) {
	f := Policy{MaxDepth: 2}.Bind(1)

	assert.True(t, f.EnterDirectory("a", 1, 1))
	assert.True(t, f.EnterDirectory("a/b", 2, 1))
	assert.False(t, f.EnterDirectory("a/b/c", 3, 1))

	unlimited := DefaultPolicy().Bind(1)
	assert.True(t, unlimited.EnterDirectory("deep", 1000, 1))

	zero := Policy{MaxDepth: 0}.Bind(1)
	assert.False(t, zero.EnterDirectory("a", 1, 1))
}

func TestFilterWithinDepth(t *testing.T) {
	zero := Policy{MaxDepth: 0}.Bind(1)
	assert.True(t, zero.WithinDepth(0))
	assert.False(t, zero.WithinDepth(1))

	two := Policy{MaxDepth: 2}.Bind(1)
	assert.True(t, two.WithinDepth(2))
	assert.False(t, two.WithinDepth(3))

	assert.True(t, DefaultPolicy().Bind(1).WithinDepth(1000))
}

func TestFilterEnterDirectoryBoundary(t *testing.T) {
	p := DefaultPolicy()
	p.OneFileSystem = true
	f := p.Bind(42)

	assert.True(t, f.EnterDirectory("same", 1, 42))
	assert.False(t, f.EnterDirectory("mount", 1, 7))
	assert.True(t, f.SameFilesystem(42))
	assert.False(t, f.SameFilesystem(7))

	// Without the boundary, devices are ignored.
	free := DefaultPolicy().Bind(42)
	assert.True(t, free.EnterDirectory("mount", 1, 7))
	assert.True(t, free.SameFilesystem(7))
}

func TestFilterExclusion(t *testing.T) {
	patterns, err := NewPatterns("root/skip", "*.bak")
	require.NoError(t, err)

	p := DefaultPolicy()
	p.Excludes = patterns
	f := p.Bind(0)

	assert.False(t, f.EnterDirectory("root/skip", 1, 0))
	assert.False(t, f.IncludeEntry("root/skip/file", "file"))
	assert.False(t, f.IncludeEntry("root/old.bak", "old.bak"))
	assert.True(t, f.IncludeEntry("root/keep", "keep"))
	assert.True(t, f.EnterDirectory("root/keep", 1, 0))
}

func TestFilterHidden(t *testing.T) {
	f := DefaultPolicy().Bind(0)

	assert.False(t, f.IncludeEntry("root/.git", ".git"))
	assert.True(t, f.IncludeEntry("root/visible", "visible"))

	p := DefaultPolicy()
	p.IncludeHidden = true
	assert.True(t, p.Bind(0).IncludeEntry("root/.git", ".git"))
}

func TestPolicyIsCopiedIntoFilter(t *testing.T) {
	p := DefaultPolicy()
	f := p.Bind(0)

	p.IncludeHidden = true
	p.MaxDepth = 0

	assert.False(t, f.IncludeEntry("x/.h", ".h"))
	assert.True(t, f.EnterDirectory("x/y", 5, 0))
}
