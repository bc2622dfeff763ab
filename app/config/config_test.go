package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "src/Backend.elm", cfg.Backend)
	assert.Equal(t, "src/Debuggy/App.elm", cfg.Module)
	assert.Equal(t, "Debuggy.App", cfg.ModuleName)
	assert.Equal(t, []string{"elm-format", "--yes"}, cfg.Formatter)
	assert.Equal(t, 16, cfg.TokenLength)
}

func TestLoad(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), FileName))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("empty name gives defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("partial override", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), FileName)
		data := `
backend = "server/Backend.elm"
formatter = ["elm-format", "--yes", "--elm-version=0.19"]
token_length = 24
`
		require.NoError(t, os.WriteFile(fname, []byte(data), 0o600))

		cfg, err := Load(fname)
		require.NoError(t, err)
		assert.Equal(t, "server/Backend.elm", cfg.Backend)
		assert.Equal(t, []string{"elm-format", "--yes", "--elm-version=0.19"}, cfg.Formatter)
		assert.Equal(t, 24, cfg.TokenLength)
		assert.Equal(t, "src/Debuggy/App.elm", cfg.Module, "untouched keys keep defaults")
		assert.Equal(t, "Api", cfg.AnchorImport)
	})

	t.Run("unknown key", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(fname, []byte("backnd = \"x.elm\"\n"), 0o600))
		_, err := Load(fname)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys")
		assert.Contains(t, err.Error(), "backnd")
	})

	t.Run("bad toml", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(fname, []byte("backend = [\n"), 0o600))
		_, err := Load(fname)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("invalid values", func(t *testing.T) {
		fname := filepath.Join(t.TempDir(), FileName)
		require.NoError(t, os.WriteFile(fname, []byte("token_length = 0\n"), 0o600))
		_, err := Load(fname)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token length")
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "no backend", modify: func(c *Config) { c.Backend = "" }, errMsg: "backend path"},
		{name: "no module", modify: func(c *Config) { c.Module = "" }, errMsg: "module path"},
		{name: "same files", modify: func(c *Config) { c.Module = "./src/Backend.elm" }, errMsg: "different files"},
		{name: "no module name", modify: func(c *Config) { c.ModuleName = "" }, errMsg: "module name"},
		{name: "no anchor", modify: func(c *Config) { c.AnchorImport = "" }, errMsg: "anchor import"},
		{name: "no noop", modify: func(c *Config) { c.NoOpMsg = "" }, errMsg: "no-op message"},
		{name: "bad token length", modify: func(c *Config) { c.TokenLength = -2 }, errMsg: "token length"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
