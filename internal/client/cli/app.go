package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/chart"
	"github.com/dmitrijs2005/phishwatch/internal/client/client"
	"github.com/dmitrijs2005/phishwatch/internal/client/config"
	"github.com/dmitrijs2005/phishwatch/internal/client/credentials"
	"github.com/dmitrijs2005/phishwatch/internal/client/export"
	"github.com/dmitrijs2005/phishwatch/internal/client/guard"
	"github.com/dmitrijs2005/phishwatch/internal/client/repositories/exports"
	"github.com/dmitrijs2005/phishwatch/internal/client/services"
	"github.com/dmitrijs2005/phishwatch/internal/client/session"
	"github.com/dmitrijs2005/phishwatch/internal/client/storage"
	"github.com/dmitrijs2005/phishwatch/internal/client/views"
	"github.com/dmitrijs2005/phishwatch/internal/common"
	"github.com/dmitrijs2005/phishwatch/internal/logging"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

const chartWidth = 40

type App struct {
	cfg      *config.Config
	loc      *time.Location
	api      client.Client
	sessions *session.Manager
	auth     services.AuthService
	guard    *guard.Guard
	logs     *views.LogsView
	dash     *views.DashboardView
	exporter *export.Exporter
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer

	commands map[string]command
	// loggingOut suppresses the "session ended" notice for an explicit logout.
	loggingOut  atomic.Bool
	unsubscribe func()
	closers     []func() error
}

type deps struct {
	cfg      *config.Config
	api      client.Client
	sessions *session.Manager
	exporter *export.Exporter
	log      logging.Logger
	in       io.Reader
	out      io.Writer
}

// NewApp opens the local database, restores any saved session and builds
// the backend client and export sink described by c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	sessions, err := session.NewManager(ctx, credentials.NewSQLiteStore(db), log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	api, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout,
		client.WithSession(sessions), client.WithLogger(log))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	exporter, err := newExporter(ctx, c, db, loc, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(deps{cfg: c, api: api, sessions: sessions, exporter: exporter, log: log, in: os.Stdin, out: os.Stdout})
	a.closers = append(a.closers, db.Close)
	return a, nil
}

func newExporter(ctx context.Context, c *config.Config, db *sql.DB, loc *time.Location, log logging.Logger) (*export.Exporter, error) {
	var sink export.Sink = export.FileSink{Dir: c.ExportDir}
	if c.S3Enabled() {
		s3, err := export.NewS3Sink(ctx, export.S3Config{
			Bucket:    c.S3Bucket,
			Region:    c.S3Region,
			Endpoint:  c.S3Endpoint,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		sink = s3
	}
	opts := export.Options{Location: loc, Layout: c.DateTimeLayout}
	return export.NewExporter(sink, exports.NewSQLiteRepository(db), opts, log), nil
}

func newApp(d deps) *App {
	loc, err := d.cfg.Location()
	if err != nil {
		loc = time.Local
	}
	vopts := views.Options{Location: loc, DateLayout: d.cfg.DateLayout}

	a := &App{
		cfg:      d.cfg,
		loc:      loc,
		api:      d.api,
		sessions: d.sessions,
		auth:     services.NewAuthService(d.api, d.sessions, d.log),
		guard:    guard.New(d.sessions),
		logs:     views.NewLogsView(d.api, d.sessions, d.exporter, vopts, d.log),
		dash:     views.NewDashboardView(d.api, d.sessions, chart.NewCanvas(chartWidth), vopts, d.log),
		exporter: d.exporter,
		log:      d.log.With("component", "cli"),
		reader:   bufio.NewReader(d.in),
		out:      d.out,
	}
	a.commands = make(map[string]command)
	for _, c := range commandTable() {
		a.commands[c.name] = c
	}
	a.unsubscribe = d.sessions.Subscribe(a.onSessionChange)
	return a
}

func (a *App) onSessionChange(s session.Session) {
	if s.LoggedIn || a.loggingOut.Load() {
		return
	}
	a.printf("Session ended. Please log in again.\n")
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Close releases views, the chart and the local database.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.logs.Close()
	a.dash.Close()

	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func (a *App) status(ctx context.Context) string {
	s := a.sessions.Current(ctx)
	if !s.LoggedIn {
		return ""
	}
	st := s.DisplayName()
	if s.IsAdmin() {
		st += " admin"
	}
	return fmt.Sprintf(" (%s)", st)
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "close failed", "error", err)
		}
	}()

	a.printf("Welcome to PhishWatch CLI (type 'help' for commands)\n")
	if s := a.sessions.Current(ctx); s.LoggedIn {
		a.printf("Restored session for %s\n", s.DisplayName())
	}
	a.repl(ctx)
}

func (a *App) repl(ctx context.Context) {
	for {
		a.printf("pw%s> ", a.status(ctx))
		line, err := a.reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			if quit := a.execute(ctx, line); quit {
				return
			}
		}
		if err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// execute runs one command line and reports whether the REPL should stop.
func (a *App) execute(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	name, args := parts[0], parts[1:]

	switch name {
	case "exit", "quit":
		a.printf("Bye!\n")
		return true
	case "help":
		a.help(ctx)
		return false
	}

	cmd, ok := a.commands[name]
	if !ok {
		a.printf("Unknown command: %s (type 'help' for commands)\n", name)
		return false
	}
	if cmd.path != "" {
		if d := a.guard.Allow(ctx, cmd.path); !d.Allowed {
			a.printf("-> %s: %s\n", d.Redirect, d.Reason)
			return false
		}
	}
	if err := cmd.run(a, ctx, args); err != nil {
		a.report(ctx, err)
	}
	return false
}

func (a *App) report(ctx context.Context, err error) {
	a.log.Debug(ctx, "command failed", "error", err)

	var apiErr *client.APIError
	switch {
	case errors.Is(err, common.ErrNothingToExport):
		a.printf("Nothing to export: no logs match the current filters.\n")
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Backend unavailable, please try again.\n")
	case errors.As(err, &apiErr):
		a.printf("Error: %s\n", apiErr.Detail)
	case errors.Is(err, common.ErrUnauthorized):
		a.printf("Not logged in; the response was discarded.\n")
	case errors.Is(err, context.Canceled):
		a.printf("Cancelled.\n")
	default:
		a.printf("Error: %s\n", err)
	}
}
