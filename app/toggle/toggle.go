// Package toggle switches the backend debugger of a lamdera project on and off.
//
// The mode is never stored: the generated debug module doubles as the marker, so its presence
// means the debugger is enabled. A toggle rewrites the backend source with named rules, writes or
// deletes the generated module in one file transaction, then runs the formatter on the source.
package toggle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/debuggy/app/debugmod"
	"github.com/umputun/debuggy/app/enum"
	"github.com/umputun/debuggy/app/rewrite"
	"github.com/umputun/debuggy/app/token"
)

//go:generate moq -out mocks/formatter.go -pkg mocks -skip-ensure -fmt goimports . Formatter
//go:generate moq -out mocks/opener.go -pkg mocks -skip-ensure -fmt goimports . Opener
//go:generate moq -out mocks/inspector.go -pkg mocks -skip-ensure -fmt goimports . Inspector

// DefaultViewerURL is the address of the hosted debugger viewer.
const DefaultViewerURL = "https://backend-debugger.lamdera.app/"

// Formatter reformats a source file in place.
type Formatter interface {
	Format(ctx context.Context, path string) error
}

// Opener opens a URL for the user, normally in the default browser.
type Opener interface {
	Open(url string) error
}

// Inspector reports whether a file has uncommitted changes.
type Inspector interface {
	IsClean(path string) (bool, error)
}

// Config defines the project layout and toggle options.
type Config struct {
	Dir         string          // project directory, Backend and Module are relative to it
	Backend     string          // source document, i.e. src/Backend.elm
	Module      string          // generated module, i.e. src/Debuggy/App.elm
	Wiring      rewrite.Wiring  // names used in the debug wiring
	Template    debugmod.Params // generated module parameters
	ViewerURL   string          // token is appended to it
	TokenLength int
	DryRun      bool // plan only, nothing is written, formatted or opened
}

// Result describes a completed (or planned, for dry runs) toggle.
type Result struct {
	Mode      enum.Mode        // mode after the toggle
	Token     string           // session token, enabling only
	ViewerURL string           // viewer address for the token, enabling only
	Rules     []rewrite.Result // outcome of each rewrite rule
	Source    string           // backend source after rewrite, before formatting
}

// Missed returns names of non-optional rules that did not match.
func (r Result) Missed() []string {
	var res []string
	for _, rr := range r.Rules {
		if rr.Missed() {
			res = append(res, rr.Rule)
		}
	}
	return res
}

// Controller toggles the debugger
type Controller struct {
	cfg       Config
	formatter Formatter
	opener    Opener
	inspector Inspector
	newToken  func(n int) (string, error)
}

// New makes a Controller. Nil formatter skips formatting, nil opener skips opening the viewer.
func New(cfg Config, formatter Formatter, opener Opener) (*Controller, error) {
	if cfg.Backend == "" || cfg.Module == "" {
		return nil, errors.New("backend and module paths are required")
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.TokenLength == 0 {
		cfg.TokenLength = token.DefaultLength
	}
	if cfg.ViewerURL == "" {
		cfg.ViewerURL = DefaultViewerURL
	}
	if cfg.Template.ModuleName == "" {
		cfg.Template.ModuleName = debugmod.DefaultModuleName
	}
	if cfg.Wiring.Module == "" {
		cfg.Wiring.Module = cfg.Template.ModuleName
	}
	if cfg.Wiring.Anchor == "" {
		cfg.Wiring.Anchor = "Api"
	}
	if cfg.Wiring.NoOpMsg == "" {
		cfg.Wiring.NoOpMsg = "NoOpBackendMsg"
	}
	return &Controller{cfg: cfg, formatter: formatter, opener: opener, newToken: token.New}, nil
}

// SetInspector sets the optional inspector used to warn about uncommitted backend changes.
func (c *Controller) SetInspector(i Inspector) {
	c.inspector = i
}

// BackendPath returns the full path of the source document.
func (c *Controller) BackendPath() string {
	return filepath.Join(c.cfg.Dir, c.cfg.Backend)
}

// ModulePath returns the full path of the generated module.
func (c *Controller) ModulePath() string {
	return filepath.Join(c.cfg.Dir, c.cfg.Module)
}

// Mode returns the current mode, read from the filesystem on every call.
func (c *Controller) Mode() (enum.Mode, error) {
	return Detect(c.ModulePath())
}

// Detect returns the mode implied by the presence of the marker file at path.
func Detect(path string) (enum.Mode, error) {
	_, err := os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return enum.Mode{}, fmt.Errorf("failed to check %s: %w", path, err)
	}
	return enum.ModeFromPresence(err == nil), nil
}

// Run flips the mode. Both files are committed together or not at all. The viewer is opened
// right after the commit; a formatter failure is returned with the result, leaving both files
// in the new mode.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	current, err := c.Mode()
	if err != nil {
		return Result{}, err
	}
	target := current.Toggle()
	log.Printf("[DEBUG] debugger is %s, switching to %s", current, target)

	c.checkClean()

	backend := c.BackendPath()
	src, err := os.ReadFile(backend) //nolint:gosec // path comes from config
	if err != nil {
		return Result{}, fmt.Errorf("failed to read backend source: %w", err)
	}

	res := Result{Mode: target}
	tx := &fileTx{}
	var rules []rewrite.Rule
	switch target {
	case enum.ModeEnabled:
		if res.Token, err = c.newToken(c.cfg.TokenLength); err != nil {
			return Result{}, fmt.Errorf("failed to make session token: %w", err)
		}
		res.ViewerURL = c.viewerURL(res.Token)
		rules = rewrite.EnableRules(c.cfg.Wiring, res.Token)
	default:
		rules = rewrite.DisableRules(c.cfg.Wiring)
	}
	res.Source, res.Rules = rewrite.Apply(string(src), rules...)
	c.reportRules(res.Rules)
	tx.write(backend, []byte(res.Source))

	if target.Enabled() {
		module, renderErr := debugmod.Render(c.cfg.Template)
		if renderErr != nil {
			return Result{}, fmt.Errorf("failed to render debug module: %w", renderErr)
		}
		tx.write(c.ModulePath(), module)
	} else {
		tx.remove(c.ModulePath())
		tx.removeDirIfEmpty(filepath.Dir(c.ModulePath()))
	}

	if c.cfg.DryRun {
		log.Printf("[INFO] dry run, %d file operation(s) skipped", len(tx.steps))
		return res, nil
	}

	if err := tx.commit(); err != nil {
		return Result{}, fmt.Errorf("failed to switch debugger %s: %w", target, err)
	}

	if target.Enabled() {
		c.openViewer(res)
	}

	if c.formatter != nil {
		if err := c.formatter.Format(ctx, backend); err != nil {
			return res, fmt.Errorf("failed to format %s: %w", backend, err)
		}
	}
	return res, nil
}

// openViewer opens the viewer for the session token unless the token didn't make it into the source.
func (c *Controller) openViewer(res Result) {
	if c.opener == nil {
		return
	}
	if slices.Contains(res.Missed(), rewrite.EnableWiringRule) {
		log.Printf("[WARN] token %s is not wired into %s, viewer session would receive no events, not opening %s",
			res.Token, c.cfg.Backend, res.ViewerURL)
		return
	}
	if err := c.opener.Open(res.ViewerURL); err != nil {
		log.Printf("[WARN] can't open viewer %s: %v", res.ViewerURL, err)
	}
}

// checkClean warns if the backend source has uncommitted changes. Inspection errors are logged only.
func (c *Controller) checkClean() {
	if c.inspector == nil {
		return
	}
	clean, err := c.inspector.IsClean(c.BackendPath())
	if err != nil {
		log.Printf("[DEBUG] can't check git status of %s: %v", c.BackendPath(), err)
		return
	}
	if !clean {
		log.Printf("[WARN] %s has uncommitted changes, review the rewrite with git diff", c.cfg.Backend)
	}
}

func (c *Controller) reportRules(results []rewrite.Result) {
	for _, r := range results {
		switch {
		case r.Missed():
			log.Printf("[WARN] rule %s did not match, %s left unchanged by it", r.Rule, c.cfg.Backend)
		case r.Matched && !r.Changed:
			log.Printf("[DEBUG] rule %s already applied", r.Rule)
		case r.Matched:
			log.Printf("[DEBUG] rule %s applied", r.Rule)
		}
	}
}

func (c *Controller) viewerURL(tk string) string {
	return strings.TrimSuffix(c.cfg.ViewerURL, "/") + "/" + tk
}
