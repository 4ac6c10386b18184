package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jub0bs/corsfilter"
	"github.com/jub0bs/corsfilter/internal/config"
	"github.com/jub0bs/corsfilter/metrics"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	logFormat     string
	debug         bool
	watch         bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a demo endpoint behind the CORS filter",
	Long: `Serve a demo endpoint behind the CORS filter.

Every path but /metrics is answered by an endpoint that echoes the request
method and the CORS tags that the filter attached to the request.
Prometheus metrics about the filter's decisions are served at /metrics,
outside the filter.

Examples:
  # Serve with the default policy
  corsfilter serve

  # Serve with the policy in cors.yaml, reloaded whenever it changes
  corsfilter serve --config cors.yaml --watch

  # Log every decision
  corsfilter serve --config cors.yaml --debug --log-level debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", ":8080", "listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&serveFlags.logFormat, "log-format", "json", "log format (json, text)")
	serveCmd.Flags().BoolVar(&serveFlags.debug, "debug", false, "log every CORS decision")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload the policy file whenever it changes (requires --config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveFlags.watch && cfgFile == "" {
		return errors.New("--watch requires --config")
	}
	logger, err := newLogger(cmd.ErrOrStderr(), serveFlags.logLevel, serveFlags.logFormat)
	if err != nil {
		return err
	}
	props, err := loadProperties()
	if err != nil {
		return err
	}
	p, err := cors.NewPolicy(props)
	if err != nil {
		return fmt.Errorf("invalid CORS policy: %w", err)
	}

	rec := metrics.NewRecorder()
	mw := cors.NewMiddleware(p, cors.WithLogger(logger), cors.WithObserver(rec))
	mw.SetDebug(serveFlags.debug)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveFlags.watch {
		over, err := config.ParseOverrides(overrides)
		if err != nil {
			return err
		}
		w := &config.Watcher{
			Path:      cfgFile,
			Overrides: over,
			Logger:    logger,
			Apply:     reconfigure(mw),
			Done:      rec.ObserveReload,
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Error("policy file watcher failed", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              serveFlags.listenAddress,
		Handler:           newHandler(mw, rec),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", srv.Addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// reconfigure returns a function that makes mw enforce the policy
// described by its argument. Invalid policies are rejected
// and leave mw untouched.
func reconfigure(mw *cors.Middleware) func(map[string]string) error {
	return func(props map[string]string) error {
		p, err := cors.NewPolicy(props)
		if err != nil {
			return err
		}
		mw.Reconfigure(p)
		return nil
	}
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

func newHandler(mw *cors.Middleware, rec *metrics.Recorder) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", rec.Handler())
	mux.Handle("/", withRequestID(mw.Wrap(http.HandlerFunc(echo))))
	return mux
}

const headerRequestID = "X-Request-Id"

// withRequestID makes sure that every response carries a request ID,
// reusing the one supplied by the client, if any.
func withRequestID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(headerRequestID, id)
		h.ServeHTTP(w, r)
	})
}

// echo lists the CORS tags of the request.
func echo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Add("X-Test-1", "Hello world!")
	w.Header().Add("X-Test-2", "1, 2, 3")
	tags, _ := cors.TagsFromContext(r.Context())
	fmt.Fprintf(w, "[HTTP %s] Hello world!\n\n", r.Method)
	fmt.Fprintln(w, "Listing CORS Filter request tags:")
	fmt.Fprintf(w, "\tisCorsRequest: %t\n", tags.IsCORSRequest)
	fmt.Fprintf(w, "\torigin: %s\n", tags.Origin)
	fmt.Fprintf(w, "\trequestType: %s\n", tags.RequestType)
	fmt.Fprintf(w, "\trequestHeaders: %s\n", tags.RequestHeaders)
}
