package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	log "github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/debuggy/app/config"
	"github.com/umputun/debuggy/app/debugmod"
	"github.com/umputun/debuggy/app/git"
	"github.com/umputun/debuggy/app/preview"
	"github.com/umputun/debuggy/app/rewrite"
	"github.com/umputun/debuggy/app/toggle"
)

type options struct {
	Dir    string `short:"C" long:"dir" env:"DEBUGGY_DIR" default:"." description:"project directory"`
	Config string `long:"config" env:"DEBUGGY_CONFIG" default:"debuggy.toml" description:"config file, relative to project directory"`

	Backend   string   `long:"backend" env:"DEBUGGY_BACKEND" description:"backend source file (default src/Backend.elm)"`
	Module    string   `long:"module" env:"DEBUGGY_MODULE" description:"generated debug module (default src/Debuggy/App.elm)"`
	Formatter []string `long:"formatter" env:"DEBUGGY_FORMATTER" env-delim:" " description:"formatter program and args (default elm-format --yes)"`
	Viewer    string   `long:"viewer" env:"DEBUGGY_VIEWER" description:"viewer url prefix"`
	Relay     string   `long:"relay" env:"DEBUGGY_RELAY" description:"relay url the debug module posts events to"`

	NoFormat   bool `long:"no-format" env:"DEBUGGY_NO_FORMAT" description:"skip the formatter"`
	NoBrowser  bool `long:"no-browser" env:"DEBUGGY_NO_BROWSER" description:"don't open the viewer"`
	NoGitCheck bool `long:"no-git-check" env:"DEBUGGY_NO_GIT_CHECK" description:"don't check backend file for uncommitted changes"`
	NoColor    bool `long:"no-color" env:"DEBUGGY_NO_COLOR" description:"plain dry-run preview"`

	Status bool `long:"status" description:"show current mode and exit"`
	DryRun bool `long:"dry-run" description:"show planned changes without writing anything"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `long:"version" description:"show version and exit"`
}

var revision = "unknown"

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			p.WriteHelp(os.Stderr)
			os.Exit(2)
		}
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("debuggy %s\n", revision)
		os.Exit(0)
	}

	setupLogs(opts.Debug)

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	signals(cancel)

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Printf("[ERROR] failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log.Printf("[DEBUG] config: %+v", cfg)

	var formatter toggle.Formatter
	if !opts.NoFormat && !opts.DryRun {
		formatter = &toggle.ExecFormatter{Command: cfg.Formatter, Output: os.Stderr}
	}
	var opener toggle.Opener
	if !opts.NoBrowser && !opts.DryRun {
		opener = toggle.BrowserOpener{}
	}

	ctrl, err := toggle.New(toggle.Config{
		Dir:     opts.Dir,
		Backend: cfg.Backend,
		Module:  cfg.Module,
		Wiring: rewrite.Wiring{
			Module:  cfg.ModuleName,
			Anchor:  cfg.AnchorImport,
			NoOpMsg: cfg.NoOpMsg,
		},
		Template:    debugmod.Params{ModuleName: cfg.ModuleName, RelayURL: cfg.RelayURL},
		ViewerURL:   cfg.ViewerURL,
		TokenLength: cfg.TokenLength,
		DryRun:      opts.DryRun,
	}, formatter, opener)
	if err != nil {
		return fmt.Errorf("failed to initialize toggle: %w", err)
	}

	if opts.Status {
		mode, modeErr := ctrl.Mode()
		if modeErr != nil {
			return modeErr
		}
		fmt.Fprintf(out, "Debugger is %s.\n", mode) //nolint:errcheck // stdout
		return nil
	}

	if !opts.NoGitCheck {
		if repo, gitErr := git.Open(opts.Dir); gitErr == nil {
			if head, headErr := repo.Head(); headErr == nil {
				log.Printf("[DEBUG] project repo %s at %s", repo.Root(), head)
			}
			ctrl.SetInspector(repo)
		} else {
			log.Printf("[DEBUG] git check skipped: %v", gitErr)
		}
	}

	res, err := ctrl.Run(ctx)
	if err != nil {
		// the switch may be committed already, the token must not get lost
		if res.Token != "" && !opts.DryRun {
			fmt.Fprintf(out, "New token generated: %s\n", res.Token) //nolint:errcheck // stdout
		}
		return err
	}

	if opts.DryRun {
		fmt.Fprintf(out, "Debugger would be %s (dry run).\n", res.Mode) //nolint:errcheck // stdout
		if missed := res.Missed(); len(missed) > 0 {
			fmt.Fprintf(out, "Unmatched rules: %v\n", missed) //nolint:errcheck // stdout
		}
		return preview.NewHighlighter(!opts.NoColor).Write(out, res.Source)
	}

	if res.Token != "" {
		fmt.Fprintf(out, "New token generated: %s\n", res.Token) //nolint:errcheck // stdout
	}
	fmt.Fprintf(out, "Debugger %s.\n", res.Mode) //nolint:errcheck // stdout
	return nil
}

// loadConfig reads the project config file and applies command line overrides.
func loadConfig(opts options) (config.Config, error) {
	fname := opts.Config
	if fname != "" && !filepath.IsAbs(fname) {
		fname = filepath.Join(opts.Dir, fname)
	}
	cfg, err := config.Load(fname)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.Module != "" {
		cfg.Module = opts.Module
	}
	if len(opts.Formatter) > 0 {
		cfg.Formatter = opts.Formatter
	}
	if opts.Viewer != "" {
		cfg.ViewerURL = opts.Viewer
	}
	if opts.Relay != "" {
		cfg.RelayURL = opts.Relay
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func setupLogs(debug bool) {
	// stdout is reserved for the status lines
	log.Setup(log.Msec, log.Out(os.Stderr), log.Err(os.Stderr))
	if debug {
		log.Setup(log.Debug, log.CallerFunc, log.CallerPkg, log.CallerFile, log.Out(os.Stderr), log.Err(os.Stderr))
	}
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			switch sig {
			case syscall.SIGQUIT:
				length := runtime.Stack(stacktrace, true)
				fmt.Fprintln(os.Stderr, string(stacktrace[:length]))
			case syscall.SIGTERM, syscall.SIGINT:
				cancel()
			}
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
