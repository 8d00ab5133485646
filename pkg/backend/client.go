// Package backend is the HTTP client for the external restaurant REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/restaurant-admin/pkg/configuration"
	"github.com/iota-uz/restaurant-admin/pkg/constants"
)

const (
	tracerName   = "github.com/iota-uz/restaurant-admin/pkg/backend"
	maxErrorBody = 512
)

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	tracer     trace.Tracer
	logger     *logrus.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

func NewClient(opts configuration.BackendOptions, options ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
		},
		tracer: otel.Tracer(tracerName),
		logger: logrus.StandardLogger(),
	}
	for _, o := range options {
		o(c)
	}

	minRequests := opts.BreakerMinRequests
	threshold := opts.BreakerFailureThreshold
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "restaurant-backend",
		MaxRequests: opts.BreakerMaxRequests,
		Interval:    opts.BreakerInterval,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("backend circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			return err == nil || clientError(err) || errors.Is(err, context.Canceled)
		},
	})
	return c
}

// BreakerState reports the circuit breaker state: "closed", "half-open" or "open".
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one backend call. Token overrides the token carried by ctx.
type Request struct {
	Method string
	Path   string
	Body   any
	Token  string
}

// Do performs req and returns the raw response body of a 2xx response.
func (c *Client) Do(ctx context.Context, req Request) ([]byte, error) {
	route := routeLabel(req.Path)
	ctx, span := c.tracer.Start(ctx, "backend "+req.Method+" "+route, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	status := 0
	out, err := c.breaker.Execute(func() (interface{}, error) {
		body, code, err := c.roundTrip(ctx, req)
		status = code
		return body, err
	})
	recordRequest(req.Method, route, status, err, time.Since(start))

	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.path", req.Path),
		attribute.Int("http.response.status_code", status),
	)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = errors.Wrap(ErrUnavailable, err.Error())
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) roundTrip(ctx context.Context, req Request) ([]byte, int, error) {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, 0, errors.Wrap(err, "encode request body")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(ctx, req); token != "" {
		httpReq.Header.Set("Authorization", token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "%s %s", req.Method, req.Path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, "read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := strings.TrimSpace(string(raw))
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return nil, resp.StatusCode, &StatusError{
			Method:     req.Method,
			Path:       req.Path,
			StatusCode: resp.StatusCode,
			Body:       text,
		}
	}
	return raw, resp.StatusCode, nil
}

func (c *Client) token(ctx context.Context, req Request) string {
	if req.Token != "" {
		return req.Token
	}
	token, _ := ctx.Value(constants.AuthTokenKey).(string)
	return token
}

// WithToken stores the authorization token used for calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, constants.AuthTokenKey, token)
}

func (c *Client) GetCollection(ctx context.Context, path string) ([]map[string]any, error) {
	raw, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	return DecodeCollection(raw)
}

func (c *Client) GetItem(ctx context.Context, path string) (map[string]any, error) {
	raw, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, err
	}
	return DecodeItem(raw)
}

// Mutate performs a write and checks the success flag of the response.
func (c *Client) Mutate(ctx context.Context, method, path string, body any) error {
	raw, err := c.Do(ctx, Request{Method: method, Path: path, Body: body})
	if err != nil {
		return err
	}
	return Ack(raw)
}
