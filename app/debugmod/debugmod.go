// Package debugmod renders the generated Elm module that wraps a Lamdera backend and reports
// init, update and updateFromFrontend events to the debugger relay.
package debugmod

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"regexp"
	"text/template"
)

// defaults reproduce the module the viewer expects
const (
	DefaultModuleName = "Debuggy.App"
	DefaultRelayURL   = "http://localhost:8001/https://backend-debugger.lamdera.app/_r/data"
	DefaultTimeout    = 10
)

//go:embed templates
var templatesFS embed.FS

var tmpl = template.Must(template.ParseFS(templatesFS, "templates/app.elm.tmpl"))

var moduleNameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*(\.[A-Z][A-Za-z0-9_]*)*$`)

// Params defines the values substituted into the module template.
type Params struct {
	ModuleName     string // elm module name, must match the file path
	RelayURL       string // endpoint events are POSTed to
	TimeoutSeconds int    // http timeout for each POST
}

// DefaultParams returns params producing the stock module.
func DefaultParams() Params {
	return Params{ModuleName: DefaultModuleName, RelayURL: DefaultRelayURL, TimeoutSeconds: DefaultTimeout}
}

// Render returns the module source for p. Empty fields fall back to defaults.
func Render(p Params) ([]byte, error) {
	if p.ModuleName == "" {
		p.ModuleName = DefaultModuleName
	}
	if p.RelayURL == "" {
		p.RelayURL = DefaultRelayURL
	}
	if p.TimeoutSeconds == 0 {
		p.TimeoutSeconds = DefaultTimeout
	}
	if !moduleNameRe.MatchString(p.ModuleName) {
		return nil, fmt.Errorf("invalid elm module name %q", p.ModuleName)
	}
	if p.TimeoutSeconds < 0 {
		return nil, errors.New("timeout can't be negative")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("failed to render module template: %w", err)
	}
	return buf.Bytes(), nil
}
