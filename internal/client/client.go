package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/metrics"
)

// Client sends GraphQL documents to one fixed endpoint. It does not retry,
// authenticate or cache; the caller's context bounds every call.
type Client struct {
	endpoint   string
	httpClient *http.Client
	metrics    *metrics.Collector
	tracer     trace.Tracer
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics records every call on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) { c.metrics = collector }
}

// WithTracer wraps every call in a client span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) { c.tracer = tracer }
}

// WithLogger sets the logger used for failed calls.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		tracer:     noop.NewTracerProvider().Tracer("taskboard/client"),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the GraphQL endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

var operationPattern = regexp.MustCompile(`^\s*(?:query|mutation)\s+([_A-Za-z][_0-9A-Za-z]*)`)

// operationName returns the name of the first named operation, or "anonymous".
func operationName(document string) string {
	if m := operationPattern.FindStringSubmatch(document); m != nil {
		return m[1]
	}
	return "anonymous"
}

// Execute posts document with variables and decodes the response data into
// out (which may be nil). Transport failures, non-2xx statuses and
// undecodable bodies return an ErrorTypeTransport AppError; a non-empty
// errors array returns an ErrorTypeGraphQL AppError.
func (c *Client) Execute(ctx context.Context, document string, variables map[string]interface{}, out interface{}) (err error) {
	name := operationName(document)
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "graphql.client "+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.operation.name", name),
			attribute.String("server.address", c.endpoint),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.logger.Debug("graphql request failed", zap.String("operation", name), zap.Error(err))
		}
		span.End()
		if c.metrics != nil {
			c.metrics.RecordClientRequest(name, time.Since(start), err)
		}
	}()

	body, err := json.Marshal(request{Query: document, Variables: variables, OperationName: operationNameOrEmpty(name)})
	if err != nil {
		return apperrors.NewInvalidInputError("variables", variables, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return apperrors.NewTransportError(c.endpoint, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewTransportError(c.endpoint, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewTransportError(c.endpoint, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.NewTransportError(c.endpoint, resp.StatusCode, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	var decoded response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return apperrors.NewTransportError(c.endpoint, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}

	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		codes := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			messages = append(messages, e.Message)
			if e.Extensions.Code != "" {
				codes = append(codes, e.Extensions.Code)
			}
		}
		return apperrors.NewGraphQLError(name, messages).WithContext("codes", codes)
	}

	if out != nil && len(decoded.Data) > 0 {
		if err := json.Unmarshal(decoded.Data, out); err != nil {
			return apperrors.NewTransportError(c.endpoint, resp.StatusCode, fmt.Errorf("decode data: %w", err))
		}
	}
	return nil
}

func operationNameOrEmpty(name string) string {
	if name == "anonymous" {
		return ""
	}
	return name
}
