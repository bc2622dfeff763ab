package toggle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	log "github.com/go-pkgz/lgr"
	"github.com/pkg/browser"
)

// ExecFormatter runs an external formatter as "<program> <file> <args...>", i.e. elm-format file --yes.
type ExecFormatter struct {
	Command []string  // program followed by extra args
	Output  io.Writer // formatter stdout and stderr, discarded if nil
}

// Format runs the formatter on path and waits for it to exit. Failing to start the formatter
// or a canceled context is an error, a non-zero exit status is only logged.
func (f *ExecFormatter) Format(ctx context.Context, path string) error {
	if len(f.Command) == 0 || f.Command[0] == "" {
		return errors.New("formatter command is empty")
	}
	args := append([]string{path}, f.Command[1:]...)
	cmd := exec.CommandContext(ctx, f.Command[0], args...) //nolint:gosec // command comes from config
	out := f.Output
	if out == nil {
		out = io.Discard
	}
	cmd.Stdout, cmd.Stderr = out, out

	log.Printf("[DEBUG] run %s %s", f.Command[0], strings.Join(args, " "))
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		// the formatter ran and complained, the file is already written
		log.Printf("[WARN] %s exited with code %d on %s", f.Command[0], exitErr.ExitCode(), path)
		return nil
	}
	return fmt.Errorf("%s: %w", f.Command[0], err)
}

// BrowserOpener opens URLs in the default browser.
type BrowserOpener struct{}

// Open starts the browser and returns without waiting for it.
func (BrowserOpener) Open(url string) error {
	// stdout is reserved for status lines
	browser.Stdout, browser.Stderr = os.Stderr, os.Stderr
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
