package cors

import (
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// A Middleware is a CORS middleware that enforces a [Policy].
// Call its [*Middleware.Wrap] method to apply it to a [http.Handler].
//
// The zero value is ready to use but is a mere "passthrough" middleware,
// i.e. a middleware that simply delegates to the handler(s) it wraps.
// To obtain a proper CORS middleware, you should call [NewMiddleware]
// and pass it a [*Policy].
//
// For each request, the middleware proceeds as follows:
//   - Requests that carry no Origin header are passed to the wrapped handler
//     if the policy allows generic HTTP requests, and rejected with
//     403 (Forbidden) otherwise.
//   - Actual CORS requests are checked against the policy;
//     if allowed, the resulting CORS headers are added to the response
//     and the request is passed to the wrapped handler.
//   - Preflight requests are checked against the policy; if allowed,
//     the resulting CORS headers are added to the response, which the
//     middleware completes with status 200 and an empty body.
//     Preflight requests never reach the wrapped handler.
//
// Rejected requests never reach the wrapped handler; the middleware responds
// with a status that reflects the [ErrorKind] of the rejection and a short
// plain-text diagnostic.
//
// Requests that reach the wrapped handler carry [Tags] in their context.
//
// Middleware have a debug mode,
// which can be toggled by calling their [*Middleware.SetDebug] method
// and queried by calling their [*Middleware.Debug] method.
// When debug mode is on, the middleware logs every decision at level Info;
// when it is off, the middleware only logs rejections, at level Debug.
//
// A Middleware must not be copied after first use.
//
// Middleware are safe for concurrent use by multiple goroutines.
type Middleware struct {
	policy atomic.Pointer[Policy]
	debug  atomic.Bool
	logger *slog.Logger
	obs    Observer
}

// An Option configures a [Middleware].
type Option func(*Middleware)

// WithLogger makes the middleware log its decisions to logger.
// By default, a middleware logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

// WithObserver makes the middleware report each of its decisions to obs.
func WithObserver(obs Observer) Option {
	return func(m *Middleware) {
		m.obs = obs
	}
}

// An Observer is notified of every decision that a [Middleware] makes.
// Observers must be safe for concurrent use by multiple goroutines.
type Observer interface {
	ObserveDecision(typ RequestType, outcome Outcome)
}

// An Outcome is the result of a [Middleware]'s decision about a request.
type Outcome string

const (
	// Passed indicates a request without Origin that was let through.
	Passed Outcome = "passed"
	// Rejected indicates a request without Origin that was rejected
	// because the policy disallows generic HTTP requests.
	Rejected Outcome = "rejected"
	// Allowed indicates a CORS request that was allowed.
	Allowed Outcome = "allowed"
)

// Denied returns the Outcome of a CORS request denied for reasons of kind k,
// e.g. "origin_denied".
func Denied(k ErrorKind) Outcome {
	return Outcome(k.String())
}

// NewMiddleware creates a CORS middleware that enforces p.
// If p is nil, the resulting middleware is a passthrough middleware.
//
// The debug mode of the resulting middleware is off.
func NewMiddleware(p *Policy, opts ...Option) *Middleware {
	var m Middleware
	for _, opt := range opts {
		opt(&m)
	}
	m.policy.Store(p)
	return &m
}

// Reconfigure makes m enforce p, leaving m's debug mode unchanged.
// If p is nil, it turns m into a passthrough middleware.
// You can safely reconfigure a middleware
// even as it's concurrently processing requests;
// each request is handled in accordance with a single policy.
func (m *Middleware) Reconfigure(p *Policy) {
	m.policy.Store(p)
}

// Policy returns the policy that m enforces,
// or nil if m is a passthrough middleware.
func (m *Middleware) Policy() *Policy {
	return m.policy.Load()
}

// SetDebug turns debug mode on (if b is true) or off (otherwise).
func (m *Middleware) SetDebug(b bool) {
	m.debug.Store(b)
}

// Debug reports whether m's debug mode is on.
func (m *Middleware) Debug() bool {
	return m.debug.Load()
}

const (
	// diagnosticPrefix starts the body of responses to rejected requests.
	diagnosticPrefix = "Cross-Origin Resource Sharing (CORS) Filter: "
	msgGenericDenied = "Generic HTTP requests not allowed"
	preflightOK      = http.StatusOK
)

// Wrap applies the CORS middleware to the specified handler.
func (m *Middleware) Wrap(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := m.policy.Load()
		if p == nil { // passthrough middleware
			h.ServeHTTP(w, r)
			return
		}
		// Classification and tagging rely on the same function,
		// so they always agree.
		tags := NewTags(r.Method, r.Header)
		switch tags.RequestType {
		case Preflight:
			resHdrs, err := p.HandlePreflight(r.Method, r.Header)
			if err != nil {
				m.deny(w, r, tags, err)
				return
			}
			addAll(w.Header(), resHdrs)
			m.record(r, tags, Allowed, nil)
			// Preflight requests never reach the wrapped handler.
			w.WriteHeader(preflightOK)
		case Actual:
			resHdrs, err := p.HandleActual(r.Method, r.Header)
			if err != nil {
				m.deny(w, r, tags, err)
				return
			}
			addAll(w.Header(), resHdrs)
			m.record(r, tags, Allowed, nil)
			h.ServeHTTP(w, r.WithContext(NewContext(r.Context(), tags)))
		default:
			if !p.allowGeneric {
				m.record(r, tags, Rejected, nil)
				writeDiagnostic(w, http.StatusForbidden, msgGenericDenied)
				return
			}
			m.record(r, tags, Passed, nil)
			h.ServeHTTP(w, r.WithContext(NewContext(r.Context(), tags)))
		}
	})
}

func (m *Middleware) deny(w http.ResponseWriter, r *http.Request, tags Tags, err error) {
	rerr, ok := err.(*RequestError)
	if !ok { // cannot happen
		rerr = &RequestError{Kind: InvalidRequest, Detail: err.Error()}
	}
	m.record(r, tags, Denied(rerr.Kind), rerr)
	writeDiagnostic(w, rerr.Status(), rerr.Error())
}

// addAll adds the values of src to dst, leaving dst's existing values
// untouched.
func addAll(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

// writeDiagnostic completes the response to a rejected request.
// No CORS headers have been added to the response at that stage.
func writeDiagnostic(w http.ResponseWriter, status int, msg string) {
	resHdrs := w.Header()
	resHdrs.Set("Content-Type", "text/plain; charset=utf-8")
	resHdrs.Set("X-Content-Type-Options", "nosniff")
	resHdrs.Del("Content-Length")
	w.WriteHeader(status)
	io.WriteString(w, diagnosticPrefix+msg+"\n")
}

func (m *Middleware) record(r *http.Request, tags Tags, outcome Outcome, err *RequestError) {
	if m.obs != nil {
		m.obs.ObserveDecision(tags.RequestType, outcome)
	}
	if m.logger == nil {
		return
	}
	level := slog.LevelInfo
	if !m.debug.Load() {
		if err == nil && outcome != Rejected {
			return
		}
		level = slog.LevelDebug
	}
	ctx := r.Context()
	if !m.logger.Enabled(ctx, level) {
		return
	}
	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("outcome", string(outcome)),
	}
	if tags.IsCORSRequest {
		attrs = append(attrs,
			slog.String("type", tags.RequestType.String()),
			slog.String("origin", tags.Origin),
		)
	}
	if err != nil {
		attrs = append(attrs,
			slog.Int("status", err.Status()),
			slog.String("reason", err.Error()),
		)
	}
	m.logger.LogAttrs(ctx, level, "cors decision", attrs...)
}
