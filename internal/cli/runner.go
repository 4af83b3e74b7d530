package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Makepad-fr/pantry/internal/config"
	"github.com/Makepad-fr/pantry/internal/inventory"
	"github.com/Makepad-fr/pantry/internal/logging"
	"github.com/Makepad-fr/pantry/internal/store"
	"github.com/Makepad-fr/pantry/internal/ui"
)

// Options carry the process streams; nil means the os defaults.
type Options struct {
	In       io.Reader
	Out, Err io.Writer
	// Interactive reports whether a bare `pantry` may open the TUI.
	Interactive func() bool
}

// flags are the root flags shared by every subcommand.
type flags struct {
	configPath string
	dataDir    string
	backend    string
	theme      string
	noColor    bool
	verbose    bool
}

// app is the wiring a subcommand runs against, built once per invocation.
type app struct {
	ctx   context.Context
	cfg   *config.Config
	log   *zap.Logger
	kv    store.KV
	inv   *inventory.Store
	in    io.Reader
	flags flags
}

// usageError marks bad invocations (exit code 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error { return usageError{fmt.Sprintf(format, a...)} }

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.In == nil {
		opt.In = os.Stdin
	}
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}
	if opt.Interactive == nil {
		opt.Interactive = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()) }
	}
	ui.Out, ui.Err = opt.Out, opt.Err

	a := &app{ctx: context.Background(), in: opt.In}
	root := newRootCmd(a, opt)
	root.SetArgs(args)
	root.SetIn(opt.In)
	root.SetOut(opt.Out)
	root.SetErr(opt.Err)

	cmd, err := root.ExecuteC()
	a.close()
	if err == nil {
		return 0
	}
	name := "pantry"
	if cmd != nil && cmd != root {
		name = cmd.Name()
	}
	ui.Fail(name + ": " + err.Error())
	code := exitCode(err)
	if code == 2 && errors.Is(err, inventory.ErrNotFound) {
		ui.Hint("run `pantry ls` or `pantry cat ls` to see what exists")
	}
	return code
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case errors.As(err, &ue),
		inventory.IsValidation(err),
		errors.Is(err, inventory.ErrNotFound),
		strings.HasPrefix(err.Error(), "unknown command"),
		strings.HasPrefix(err.Error(), "unknown flag"),
		strings.HasPrefix(err.Error(), "unknown shorthand flag"):
		return 2
	}
	return 1
}

func newRootCmd(a *app, opt Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "pantry",
		Short:         "pantry - track what you have, by category",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `pantry keeps a small inventory: categories, and items with a name,
quantity, picture and a checked flag. Everything lives in one JSON document.

Run without arguments on a terminal to open the interactive list.`,
		Example: `  pantry cat add Pantry
  pantry add Rice -q 2 -c Pantry
  pantry ls -c Pantry
  pantry check Pantry 3f2a
  pantry tui`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			return a.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opt.Interactive() {
				_ = cmd.Help()
				return usagef("no subcommand given")
			}
			return runTUI(a, "")
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err.Error()} })

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", config.DefaultPath(), "config file")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (overrides config)")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: json, sqlite or memory")
	pf.StringVar(&a.flags.theme, "theme", "", "theme: classic, neon or mono")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colors")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newListCmd(a),
		newTUICmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newShowCmd(a),
		newCheckCmd(a),
		newRemoveCmd(a),
		newCategoryCmd(a),
	)
	return root
}

// open loads config, applies root flags, and wires logger, storage and store.
func (a *app) open() error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return err
	}
	if a.flags.dataDir != "" {
		cfg.Storage.DataDir = a.flags.dataDir
	}
	if a.flags.backend != "" {
		cfg.Storage.Backend = a.flags.backend
	}
	if a.flags.theme != "" {
		cfg.UI.Theme = a.flags.theme
	}
	if a.flags.noColor {
		cfg.UI.NoColor = true
	}
	if a.flags.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err.Error()}
	}
	a.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)
	if cfg.UI.NoColor {
		ui.DisableColor()
	}

	a.log, err = logging.New(cfg.Log.Level, cfg.LogPath())
	if err != nil {
		return err
	}
	a.kv, err = store.Open(cfg.Storage)
	if err != nil {
		return err
	}
	a.inv = inventory.New(a.kv,
		inventory.WithLogger(a.log.Named("inventory")),
		inventory.WithMoveOnRecategorize(cfg.Inventory.MoveOnRecategorize),
	)
	a.log.Debug("opened store",
		zap.String("backend", cfg.Storage.Backend), zap.String("data_dir", cfg.Storage.DataDir))
	return nil
}

func (a *app) close() {
	if a.kv != nil {
		if err := a.kv.Close(); err != nil && a.log != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
