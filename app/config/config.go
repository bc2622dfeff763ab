// Package config provides debuggy settings: built-in defaults optionally overridden by a
// TOML file in the project directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/umputun/debuggy/app/debugmod"
	"github.com/umputun/debuggy/app/toggle"
	"github.com/umputun/debuggy/app/token"
)

// FileName is the default project config file name.
const FileName = "debuggy.toml"

// Config holds all settings of a toggle run. Paths are relative to the project directory.
type Config struct {
	Backend      string   `toml:"backend"`       // source document rewritten on toggle
	Module       string   `toml:"module"`        // generated module, its presence is the mode
	ModuleName   string   `toml:"module_name"`   // elm name of the generated module
	AnchorImport string   `toml:"anchor_import"` // debug import goes right after this import
	NoOpMsg      string   `toml:"noop_msg"`      // no-op backend message constructor
	Formatter    []string `toml:"formatter"`     // formatter program and extra args
	ViewerURL    string   `toml:"viewer_url"`    // token is appended to this prefix
	RelayURL     string   `toml:"relay_url"`     // where the generated module posts events
	TokenLength  int      `toml:"token_length"`
}

// Default returns the stock lamdera project layout.
func Default() Config {
	return Config{
		Backend:      "src/Backend.elm",
		Module:       "src/Debuggy/App.elm",
		ModuleName:   debugmod.DefaultModuleName,
		AnchorImport: "Api",
		NoOpMsg:      "NoOpBackendMsg",
		Formatter:    []string{"elm-format", "--yes"},
		ViewerURL:    toggle.DefaultViewerURL,
		RelayURL:     debugmod.DefaultRelayURL,
		TokenLength:  token.DefaultLength,
	}
}

// Load reads the TOML file at fileName over the defaults. A missing file is not an error.
// Unknown keys are rejected to catch typos.
func Load(fileName string) (Config, error) {
	cfg := Default()
	if fileName == "" {
		return cfg, nil
	}
	if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(fileName, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", fileName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("unknown keys in %s: %s", fileName, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", fileName, err)
	}
	return cfg, nil
}

// Validate checks the config is usable.
func (c Config) Validate() error {
	switch {
	case c.Backend == "":
		return errors.New("backend path is required")
	case c.Module == "":
		return errors.New("module path is required")
	case path.Clean(c.Backend) == path.Clean(c.Module):
		return errors.New("backend and module must be different files")
	case c.ModuleName == "":
		return errors.New("module name is required")
	case c.AnchorImport == "":
		return errors.New("anchor import is required")
	case c.NoOpMsg == "":
		return errors.New("no-op message is required")
	case c.TokenLength < 1:
		return fmt.Errorf("token length must be positive, got %d", c.TokenLength)
	}
	return nil
}
