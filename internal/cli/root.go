// Package cli implements the zerohour command line: one-shot commands for
// every dashboard operation plus the interactive terminal dashboard.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/zero-hour/internal/app"
	"github.com/nhle/zero-hour/internal/clock"
	"github.com/nhle/zero-hour/internal/logging"
	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/state"
	"github.com/nhle/zero-hour/internal/store"
	"github.com/nhle/zero-hour/internal/theme"
)

// annotationNoState marks commands that run without opening the store.
const annotationNoState = "zerohour/no-state"

// env is the per-invocation context shared by all commands.
type env struct {
	configPath string
	dbPath     string
	variant    string

	clock clock.Clock

	// confirm overrides the interactive prompt; tests set it.
	confirm state.Confirmer

	cfg         *model.AppConfig
	store       *store.SQLiteStore
	mgr         *state.Manager
	logger      *slog.Logger
	closeLogger func()
}

// newRootCommand builds the zerohour command tree around e.
func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "zerohour",
		Short: "ZERO HOUR – a personal productivity dashboard",
		Long: `zerohour records targets or goals, tracks completion and derives
success metrics. Run it without a command to open the terminal dashboard.
Data is stored in a local SQLite database (see --db and the config file).`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
		RunE:              e.runDashboard,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.configPath, "config", model.DefaultConfigPath(), "config file")
	flags.StringVar(&e.dbPath, "db", "", "database file (overrides data.path)")
	flags.StringVar(&e.variant, "variant", "", `dashboard layout: "targets" or "goals" (overrides variant)`)

	root.AddCommand(
		e.addCmd(),
		e.completeCmd(),
		e.deleteCmd(),
		e.listCmd(),
		e.statsCmd(),
		e.reportCmd(),
		e.exportCmd(),
		e.teamCmd(),
		e.loginCmd(),
		e.logoutCmd(),
		e.whoamiCmd(),
		e.businessCmd(),
		e.feedbackCmd(),
		e.clearCmd(),
		e.mailCmd(),
		e.credentialCmd(),
		e.configCmd(),
	)
	return root
}

// Execute is the entry point called from main. It returns the process
// exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := &env{clock: clock.Real()}
	err := newRootCommand(e).ExecuteContext(ctx)
	if closeErr := e.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// setup loads the configuration and, unless the command opts out, opens
// the store and loads the state.
func (e *env) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := model.LoadConfig(e.configPath)
	if err != nil {
		return err
	}
	if e.dbPath != "" {
		cfg.Data.Path = e.dbPath
	}
	if e.variant != "" {
		cfg.Variant = e.variant
	}
	variant, err := model.ParseVariant(cfg.Variant)
	if err != nil {
		return err
	}
	e.cfg = cfg

	// The dashboard owns the terminal, so it logs to a file.
	if cmd.HasParent() {
		e.logger, err = logging.NewCommandLogger(cmd.ErrOrStderr(), cfg.Log)
		e.closeLogger = func() {}
	} else {
		e.logger, e.closeLogger, err = logging.OpenFile(cfg.Log)
	}
	if err != nil {
		return err
	}

	if cmd.Annotations[annotationNoState] == "true" {
		return nil
	}

	s, err := store.NewSQLiteStore(cfg.Data.Path)
	if err != nil {
		return err
	}
	e.store = s

	e.mgr, err = state.New(s, variant,
		state.WithClock(e.clock),
		state.WithLogger(e.logger),
		state.WithDefaultBusiness(cfg.Data.DefaultBusiness),
	)
	if err != nil {
		return err
	}
	return e.mgr.Load(cmd.Context())
}

// close releases what setup opened. It is safe to call more than once.
func (e *env) close() error {
	if e.closeLogger != nil {
		e.closeLogger()
		e.closeLogger = nil
	}
	if e.store != nil {
		err := e.store.Close()
		e.store = nil
		return err
	}
	return nil
}

func (e *env) runDashboard(cmd *cobra.Command, _ []string) error {
	if err := theme.Use(e.cfg.Display.Theme); err != nil {
		return err
	}

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	m := app.New(app.Options{
		Manager:      e.mgr,
		Clock:        e.clock,
		Logger:       e.logger,
		TickInterval: time.Duration(e.cfg.Display.TickIntervalMS) * time.Millisecond,
		ExportDir:    dir,
	})
	e.logger.Info("dashboard started", "variant", e.mgr.Variant(), "db", e.cfg.Data.Path)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// finish maps a declined confirmation to a normal, quiet exit and tells
// the user how to get past a missing user code.
func finish(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, state.ErrConfirmationDeclined):
		fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
		return nil
	case errors.Is(err, state.ErrNoUserCode):
		return fmt.Errorf("%w: run 'zerohour login CODE' first", err)
	}
	return err
}
