package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_Toggle(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected Mode
	}{
		{ModeDisabled, ModeEnabled},
		{ModeEnabled, ModeDisabled},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.mode.Toggle())
			assert.Equal(t, tc.mode, tc.mode.Toggle().Toggle())
		})
	}
}

func TestModeFromPresence(t *testing.T) {
	assert.Equal(t, ModeEnabled, ModeFromPresence(true))
	assert.Equal(t, ModeDisabled, ModeFromPresence(false))
	assert.True(t, ModeFromPresence(true).Enabled())
	assert.False(t, ModeFromPresence(false).Enabled())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
	}{
		{"enabled", ModeEnabled},
		{"on", ModeEnabled},
		{"Disabled", ModeDisabled},
		{"off", ModeDisabled},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			m, err := ParseMode(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, m)
		})
	}

	_, err := ParseMode("maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}
