// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"blitznote.com/src/node.sigauth"
)

const shutdownTimeout = 30 * time.Second

var serveFlags struct {
	listen      string
	upstream    string
	metricsPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve --upstream <url>",
	Short: "Pass only signed requests on to the node server",
	Long: `The serve command listens for requests, and forwards those with a valid
signature to the node server at --upstream. All others get "401 Unauthorized".

Paths /healthz and the one for metrics are served without authentication.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.listen, "listen", ":8080", "address to listen on")
	f.StringVar(&serveFlags.upstream, "upstream", "", "URL of the node server, such as http://127.0.0.1:5000")
	f.StringVar(&serveFlags.metricsPath, "metrics-path", "/metrics", "where to expose metrics in Prometheus' format")
	serveCmd.MarkFlagRequired("upstream")
}

func runServe(ctx context.Context) error {
	upstream, err := url.Parse(serveFlags.upstream)
	if err != nil {
		return err
	}
	if upstream.Scheme == "" || upstream.Host == "" {
		return fmt.Errorf("--upstream must be an absolute URL, got: %q", serveFlags.upstream)
	}

	log, verifier, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := sigauth.NewMetrics(reg)
	if err != nil {
		return err
	}

	guard, err := sigauth.NewHandler(verifier, httputil.NewSingleHostReverseProxy(upstream))
	if err != nil {
		return err
	}
	guard.Metrics = metrics

	srv := &http.Server{
		Addr:              serveFlags.listen,
		Handler:           newRouter(guard, reg, serveFlags.metricsPath),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("upstream", upstream.String()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}

// newRouter puts 'guard' in front of everything but the health check and metrics.
func newRouter(guard http.Handler, gatherer prometheus.Gatherer, metricsPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle(metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Handle("/*", guard)
	return r
}
