package du

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdAdmits(t *testing.T) {
	var none Threshold
	assert.True(t, none.Admits(0))
	assert.True(t, none.Admits(1<<40))

	atLeast := NewThreshold(1024, false)
	assert.False(t, atLeast.Admits(1023))
	assert.True(t, atLeast.Admits(1024))
	assert.True(t, atLeast.Admits(4096))

	atMost := NewThreshold(1024, true)
	assert.True(t, atMost.Admits(0))
	assert.True(t, atMost.Admits(1024))
	assert.False(t, atMost.Admits(1025))
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		input string
		want  Threshold
	}{
		{"", Threshold{}},
		{"0", Threshold{}},
		{"1M", NewThreshold(1<<20, false)},
		{"-4K", NewThreshold(4096, true)},
		{"512", NewThreshold(512, false)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseThreshold(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseThreshold("-lots")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestThresholdString(t *testing.T) {
	assert.Equal(t, "-4096", NewThreshold(4096, true).String())
	assert.Equal(t, "10", NewThreshold(10, false).String())
}
