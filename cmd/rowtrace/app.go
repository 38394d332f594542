// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/katalvlaran/rowtrace/config"
	"github.com/katalvlaran/rowtrace/logger"
	"github.com/katalvlaran/rowtrace/metrics"
	"github.com/katalvlaran/rowtrace/notation"
	"github.com/katalvlaran/rowtrace/session"
	"github.com/katalvlaran/rowtrace/session/sqlite"
	"github.com/katalvlaran/rowtrace/timeline"
)

// app carries what every subcommand needs. It is built lazily in
// PersistentPreRunE so that --help works without a valid environment.
type app struct {
	cfg       config.Config
	log       *zap.Logger
	reg       *prometheus.Registry
	rec       *metrics.Recorder
	locale    language.Tag
	explainer *notation.Explainer

	stdout, stderr io.Writer

	// strict rejects AddMultiple with equal rows in every session timeline.
	strict bool

	store   *sqlite.Store
	manager *session.Manager
	server  *http.Server
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(cfg.LogLevel, logger.ParseFormat(cfg.LogFormat), a.stderr).Named(logger.ComponentCLI)

	if flag := cmd.Flags().Lookup("locale"); flag != nil && flag.Changed {
		a.cfg.Locale = flag.Value.String()
	}
	if a.locale, err = notation.ParseLocale(a.cfg.Locale); err != nil {
		return err
	}
	if a.explainer, err = notation.NewExplainer(a.locale); err != nil {
		return err
	}

	a.reg = prometheus.NewRegistry()
	a.reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.rec = metrics.NewRecorder(a.reg)

	return a.serveMetrics(cmd.Context())
}

// serveMetrics exposes /metrics when ROWTRACE_METRICS_ADDR is set.
func (a *app) serveMetrics(ctx context.Context) error {
	if a.cfg.MetricsAddr == "" {
		return nil
	}
	ln, err := net.Listen("tcp", a.cfg.MetricsAddr)
	if err != nil {
		return fmt.Errorf("metrics listen: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.reg))
	a.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server", zap.Error(err))
		}
	}()
	a.log.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	go func() {
		<-ctx.Done()
		_ = a.server.Close()
	}()

	return nil
}

// sessions opens the SQLite store and the session manager on first use.
func (a *app) sessions(ctx context.Context) (*session.Manager, *sqlite.Store, error) {
	if a.manager != nil {
		return a.manager, a.store, nil
	}
	st, err := sqlite.Open(ctx, a.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	opts := []session.Option{
		session.WithStore(st),
		session.WithCacheSize(a.cfg.SessionCacheSize),
		session.WithLogger(a.log.Named(logger.ComponentSession)),
		session.WithMetrics(a.rec),
	}
	if a.strict {
		opts = append(opts, session.WithTimelineOptions(timeline.WithStrictAddMultiple()))
	}
	m, err := session.NewManager(opts...)
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}
	a.store, a.manager = st, m

	return m, st, nil
}

func (a *app) close() {
	if a.manager != nil {
		if err := a.manager.Close(); err != nil {
			a.log.Error("close sessions", zap.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Error("close store", zap.Error(err))
		}
	}
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.server.Shutdown(ctx)
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "rowtrace",
		Short:         "Step-by-step Gauss-Jordan elimination with undo/redo sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().String("locale", "", "explanation language (en, es); overrides ROWTRACE_LOCALE")

	root.AddCommand(
		newSolveCmd(a),
		newSessionsCmd(a),
		newApplyCmd(a),
		newUndoCmd(a),
		newRedoCmd(a),
		newJumpCmd(a),
		newShowCmd(a),
	)

	return root
}
