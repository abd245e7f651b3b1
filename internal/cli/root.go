// Package cli is the command-line front end: one-shot subcommands plus the
// interactive TUI. Each invocation opens the app, dispatches actions and
// closes it, which flushes pending writes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/todo/internal/app"
	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// usageError marks mistakes in how the command was invoked.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Options tune behavior from root flags.
type Options struct {
	ConfigPath string
	DataDir    string
	Backend    string
	Theme      string
	LogLevel   string
}

// runtime carries what subcommands share for one invocation.
type runtime struct {
	opts Options
	cfg  *config.Config
	log  *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rt := &runtime{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny todo list for the terminal",
		Long: `todo keeps a list of things to do, lets you add, toggle and remove
items, and filter the list by completion state. The list is saved
between runs; the filter is not.`,
		Example: `  todo add "Buy milk"
  todo ls --filter active
  todo done 2
  todo rm 3
  todo tui`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return usagef("missing subcommand")
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			_ = rt.log.Sync()
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&rt.opts.ConfigPath, "config", "", "config file (TOML)")
	pf.StringVar(&rt.opts.DataDir, "data-dir", "", "directory holding the todo list (default ~/.tada)")
	pf.StringVar(&rt.opts.Backend, "backend", "", "storage backend: file, sqlite or memory")
	pf.StringVar(&rt.opts.Theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&rt.opts.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newAddCmd(rt),
		newListCmd(rt),
		newDoneCmd(rt),
		newRemoveCmd(rt),
		newTUICmd(rt),
		newExportCmd(rt),
	)
	return root
}

func (rt *runtime) init(cmd *cobra.Command) error {
	flags := cmd.Flags()
	cfg, err := config.Load(rt.opts.ConfigPath, func(c *config.Config) {
		if flags.Changed("data-dir") {
			c.Storage.Dir = rt.opts.DataDir
		}
		if flags.Changed("backend") {
			c.Storage.Backend = rt.opts.Backend
		}
		if flags.Changed("theme") {
			c.UI.Theme = rt.opts.Theme
		}
		if flags.Changed("log-level") {
			c.Log.Level = rt.opts.LogLevel
		}
	})
	if err != nil {
		return usagef("config: %v", err)
	}
	rt.cfg = cfg
	ui.SetTheme(cfg.UI.Theme)

	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	rt.log = log
	rt.log.Debug("config loaded",
		zap.Strings("files", cfg.Files),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", cfg.Storage.Dir))
	return nil
}

// withApp opens the app for the duration of fn and closes it afterwards,
// persisting whatever fn dispatched.
func (rt *runtime) withApp(ctx context.Context, fn func(*app.App) error) (err error) {
	a, err := app.Open(ctx, rt.cfg, rt.log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save: %w", cerr)
		}
	}()
	return fn(a)
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if len(args) == 0 {
		_ = root.Help()
		return ExitUsage
	}

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())

	var ue *usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintln(stderr, ui.Current().Muted.Render("Run `todo --help` for usage."))
		return ExitUsage
	}
	return ExitError
}
