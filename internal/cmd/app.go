package cmd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/vantagedating/adminctl/internal/auth"
	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
	"github.com/vantagedating/adminctl/internal/config"
	"github.com/vantagedating/adminctl/internal/contract"
	"github.com/vantagedating/adminctl/internal/errors"
	"github.com/vantagedating/adminctl/internal/log"
	"github.com/vantagedating/adminctl/internal/metrics"
	"github.com/vantagedating/adminctl/internal/tui"
	"github.com/vantagedating/adminctl/internal/ux"
	"github.com/vantagedating/adminctl/internal/version"
)

// Deps are the process-level collaborators of the command tree.
// Zero fields select the real terminal, prompts and configured store.
type Deps struct {
	Stdout      io.Writer
	Stderr      io.Writer
	Prompter    tui.Prompter
	Interactive func() bool
	// Store replaces the configured token store.
	Store      auth.TokenStore
	HTTPClient *http.Client
}

func (d Deps) withDefaults() Deps {
	if d.Stdout == nil {
		d.Stdout = os.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = os.Stderr
	}
	if d.Prompter == nil {
		d.Prompter = tui.HuhPrompter{}
	}
	if d.Interactive == nil {
		d.Interactive = tui.ShouldPrompt
	}
	return d
}

// App is everything a command needs, built once per invocation in the
// root command's pre-run.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Metrics *metrics.Recorder
	Store   auth.TokenStore
	Client  *backend.Client
	Session *auth.Session
	Output  ux.Formatter

	cc        *CommandContext
	deps      Deps
	ownsStore bool
}

func newApp(ctx context.Context, cc *CommandContext, deps Deps) (*App, error) {
	cfg, err := config.Load(config.ResolvePath(cc.ConfigPath))
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, cc)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out, err := ux.NewFormatter(cc.Format, &ux.FormatterOptions{Writer: deps.Stdout, NoColor: cc.NoColor})
	if err != nil {
		return nil, errors.NewInputInvalidError("format", cc.Format, "text, json, yaml")
	}

	logger := log.New(log.Config{
		Level:          log.ParseLevel(cfg.Log.Level),
		Format:         log.ParseFormat(cfg.Log.Format),
		Output:         log.NewOutput(deps.Stderr),
		ServiceName:    version.Name,
		ServiceVersion: version.Version,
	})
	log.SetDefaultLogger(logger)

	rec := metrics.NewRecorder()

	store, owns := deps.Store, false
	if store == nil {
		store, err = auth.OpenStore(ctx, cfg.TokenStore)
		if err != nil {
			return nil, err
		}
		owns = true
	}

	opts := []backend.Option{
		backend.WithHTTPClient(deps.HTTPClient),
		backend.WithTimeout(cfg.Timeout),
		backend.WithLogger(logger),
		backend.WithMetrics(rec.Metrics),
	}
	if cfg.StrictContract {
		base, _ := url.Parse(cfg.APIURL)
		v, err := contract.NewStrictValidator(ctx, base.Path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, backend.WithValidator(v))
	}
	client, err := backend.NewClient(cfg.APIURL, opts...)
	if err != nil {
		return nil, err
	}

	session := auth.NewSession(client, store,
		auth.WithLogger(logger),
		auth.WithMetrics(rec.Metrics),
	)
	client.SetCredentials(session)

	logger.Debug("app ready",
		"api_url", cfg.APIURL,
		"token_store", cfg.TokenStore.Backend,
		"strict_contract", cfg.StrictContract,
	)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   rec,
		Store:     store,
		Client:    client,
		Session:   session,
		Output:    out,
		cc:        cc,
		deps:      deps,
		ownsStore: owns,
	}, nil
}

// applyFlags overlays command-line flags on the loaded configuration.
func applyFlags(cfg *config.Config, cc *CommandContext) {
	if cc.APIURL != "" {
		cfg.APIURL = cc.APIURL
	}
	if cc.LogLevel != "" {
		cfg.Log.Level = cc.LogLevel
	}
	if cc.LogFormat != "" {
		cfg.Log.Format = cc.LogFormat
	}
	if cc.StrictContract {
		cfg.StrictContract = true
	}
	if cc.MetricsFile != "" {
		cfg.MetricsFile = cc.MetricsFile
	}
	if cc.Ephemeral {
		cfg.TokenStore.Backend = config.StoreMemory
	}
}

// RequireSession restores the stored session and fails when nobody is
// signed in.
func (a *App) RequireSession(ctx context.Context) (*auth.Session, error) {
	restore := a.Session.Initialize
	if a.deps.Interactive() {
		restore = func(ctx context.Context) error {
			return tui.WithSpinner(ctx, "Restoring session...", a.Session.Initialize)
		}
	}
	if err := restore(ctx); err != nil {
		return nil, err
	}
	if !a.Session.Authenticated() {
		return nil, errors.NewNotLoggedInError()
	}
	return a.Session, nil
}

// Require restores the session and checks perm before any backend call.
func (a *App) Require(ctx context.Context, perm authz.Permission) (*auth.Session, error) {
	session, err := a.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := session.Require(perm); err != nil {
		return nil, err
	}
	return session, nil
}

// Render writes v in the selected output format.
func (a *App) Render(v any) error {
	return a.Output.Format(v)
}

// Notice writes a status line in text mode. Machine-readable formats
// get the payload instead.
func (a *App) Notice(message string, payload any) error {
	if a.cc.Format == ux.FormatText || a.cc.Format == "" {
		return a.Output.Format(message)
	}
	return a.Output.Format(payload)
}

// Confirm asks before a destructive action. yes skips the prompt; without
// a terminal --yes is required.
func (a *App) Confirm(ctx context.Context, yes bool, message string) error {
	if yes {
		return nil
	}
	if !a.deps.Interactive() {
		return errors.New(errors.ErrCodeInputRequired, "confirmation required").
			WithSuggestion("Pass --yes to confirm without a prompt")
	}
	ok, err := a.deps.Prompter.Confirm(ctx, message)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrCodePromptCancelled, "aborted")
	}
	return nil
}

// Close writes the metrics textfile and releases the token store.
func (a *App) Close() error {
	var firstErr error
	if a.Config.MetricsFile != "" {
		if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.Warn("failed to write metrics", "path", a.Config.MetricsFile, "error", err)
			firstErr = err
		}
	}
	if a.ownsStore {
		if err := auth.CloseStore(a.Store); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
