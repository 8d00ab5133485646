package middleware

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/configuration"
	"github.com/iota-uz/restaurant-admin/pkg/constants"
	"github.com/iota-uz/restaurant-admin/pkg/httpapi"
)

const redacted = "[redacted]"

type LoggerOptions struct {
	LogRequestBody  bool
	LogResponseBody bool
	MaxBodyLength   int
	// RedactFields are form fields and headers whose values never reach the log.
	RedactFields []string

	Repanic bool
}

// DefaultLoggerOptions logs form posts and JSON answers with the backend
// token and session cookie masked.
func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		LogRequestBody:  true,
		LogResponseBody: true,
		MaxBodyLength:   512,
		RedactFields:    []string{"Token", "Authorization", "Cookie", "Set-Cookie"},
	}
}

func (o LoggerOptions) redacts(name string) bool {
	for _, f := range o.RedactFields {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

type responseCaptureWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
	body          *bytes.Buffer
	limit         int
}

func (w *responseCaptureWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *responseCaptureWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *responseCaptureWriter) Write(b []byte) (int, error) {
	if room := w.limit - w.body.Len(); room > 0 {
		if len(b) < room {
			room = len(b)
		}
		w.body.Write(b[:room])
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseCaptureWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack lets the websocket upgrade pass through the logger.
func (w *responseCaptureWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, errors.New("underlying ResponseWriter does not implement http.Hijacker")
}

func getRealIP(r *http.Request, conf *configuration.Configuration) string {
	if v := r.Header.Get(conf.RealIPHeader); v != "" {
		return v
	}
	return r.RemoteAddr
}

func getRequestID(r *http.Request, conf *configuration.Configuration) string {
	if v := r.Header.Get(conf.RequestIDHeader); v != "" {
		return v
	}
	return uuid.New().String()
}

var tracer = otel.Tracer("restaurant-admin-middleware")

func TracedMiddleware(name string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), "middleware."+name,
				trace.WithAttributes(
					attribute.String("middleware.name", name),
					attribute.String("http.method", r.Method),
					attribute.String("http.route", r.URL.Path),
				),
			)
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (o LoggerOptions) headers(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) == 0 {
			continue
		}
		if o.redacts(key) {
			out[key] = redacted
			continue
		}
		out[key] = values[0]
	}
	return out
}

func (o LoggerOptions) form(f url.Values) map[string]string {
	out := make(map[string]string, len(f))
	for key, values := range f {
		if o.redacts(key) {
			out[key] = redacted
			continue
		}
		out[key] = truncateBody(strings.Join(values, ","), o.MaxBodyLength)
	}
	return out
}

func truncateBody(body string, limit int) string {
	if limit <= 0 || len(body) <= limit {
		return body
	}
	return body[:limit] + "...(truncated)"
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// logRequestBody records form posts. The body is restored for the handler.
func logRequestBody(entry *logrus.Entry, r *http.Request, opts LoggerOptions) error {
	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	if r.Body == nil || !isMutating(r.Method) {
		return nil
	}
	switch {
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			return errors.Wrap(err, "read request body")
		}
		values, err := url.ParseQuery(string(buf))
		r.Body = io.NopCloser(bytes.NewReader(buf))
		if err != nil {
			return errors.Wrap(err, "parse form body")
		}
		entry.WithField("request-body", opts.form(values)).Info("form request-body")
	case strings.Contains(contentType, "application/json"):
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			return errors.Wrap(err, "read request body")
		}
		r.Body = io.NopCloser(bytes.NewReader(buf))
		entry.WithField("request-body", truncateBody(string(buf), opts.MaxBodyLength)).Info("JSON request-body")
	}
	return nil
}

func WithLogger(logger *logrus.Logger, opts LoggerOptions) mux.MiddlewareFunc {
	conf := configuration.Use()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				requestID := getRequestID(r, conf)
				ip := getRealIP(r, conf)

				fieldsLogger := logger.WithFields(logrus.Fields{
					"request-id": requestID,
					"path":       r.URL.Path,
					"method":     r.Method,
				})
				fieldsLogger.WithFields(logrus.Fields{
					"host":            r.Host,
					"ip":              ip,
					"user-agent":      r.UserAgent(),
					"htmx":            r.Header.Get("HX-Request") == "true",
					"request-headers": opts.headers(r.Header),
				}).Info("request started")

				if opts.LogRequestBody {
					if err := logRequestBody(fieldsLogger, r, opts); err != nil {
						fieldsLogger.WithError(err).Warn("request body not logged")
					}
				}

				propagator := propagation.TraceContext{}
				ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
				ctx, span := tracer.Start(ctx, "http.request",
					trace.WithAttributes(
						attribute.String("http.method", r.Method),
						attribute.String("http.route", r.URL.Path),
						attribute.String("http.request_id", requestID),
						attribute.String("net.peer.ip", ip),
					),
				)
				defer span.End()

				if sc := span.SpanContext(); sc.HasTraceID() {
					w.Header().Set("X-Trace-Id", sc.TraceID().String())
					fieldsLogger = fieldsLogger.WithField("trace-id", sc.TraceID().String())
				}
				w.Header().Set(httpapi.RequestIDHeader, requestID)

				ctx = context.WithValue(ctx, constants.RequestStart, start)
				ctx = composables.WithLogger(ctx, fieldsLogger)

				wrapped := &responseCaptureWriter{ResponseWriter: w, body: &bytes.Buffer{}, limit: opts.MaxBodyLength}

				defer func() {
					recovered := recover()
					if recovered == nil {
						return
					}
					fieldsLogger.WithFields(logrus.Fields{
						"panic":    recovered,
						"stack":    string(debug.Stack()),
						"query":    r.URL.RawQuery,
						"duration": time.Since(start),
					}).Error("panic recovered in request handler")

					if !wrapped.statusWritten {
						if httpapi.WantsJSON(r) {
							_ = httpapi.WriteError(wrapped, r, http.StatusInternalServerError, httpapi.CodeInternal, "internal server error",
								map[string]string{"path": r.URL.Path})
						} else {
							http.Error(wrapped, "Internal Server Error", http.StatusInternalServerError)
						}
					}
					if opts.Repanic {
						panic(recovered)
					}
				}()

				next.ServeHTTP(wrapped, r.WithContext(ctx))

				status := wrapped.Status()
				duration := time.Since(start)
				completed := fieldsLogger.WithFields(logrus.Fields{
					"duration":     duration,
					"status-code":  status,
					"status-class": status / 100,
				})
				if opts.LogResponseBody && strings.Contains(wrapped.Header().Get("Content-Type"), "application/json") {
					var parsed interface{}
					if err := json.Unmarshal(wrapped.body.Bytes(), &parsed); err == nil {
						completed = completed.WithField("response-body", parsed)
					}
				}
				if status >= http.StatusInternalServerError {
					completed.Warn("request completed")
				} else {
					completed.Info("request completed")
				}

				span.SetAttributes(
					attribute.Int64("http.request_duration_ms", duration.Milliseconds()),
					attribute.Int("http.status_code", status),
				)
			},
		)
	}
}
