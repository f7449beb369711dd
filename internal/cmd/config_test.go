package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReaperConfig(t *testing.T) {
	c := NewReaperConfig()

	require.NotNil(t, c)
	assert.False(t, c.Debug)
	assert.False(t, c.DryRun)
	assert.Empty(t, c.Region)
}

func TestRootCommandFlags(t *testing.T) {
	tests := []struct {
		flag     string
		expected string
	}{
		{flag: "debug", expected: "false"},
		{flag: "dry-run", expected: "false"},
		{flag: "region", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := GetCommand().Flags().Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.DefValue)
		})
	}
}
