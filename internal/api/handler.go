package api

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
)

// Request is the standard GraphQL-over-HTTP request body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler executes GraphQL requests against a schema.
type Handler struct {
	schema  *Schema
	metrics *metrics.Collector
	tracer  trace.Tracer
	logger  *zap.Logger
}

// NewHandler creates a GraphQL HTTP handler
func NewHandler(schema *Schema, collector *metrics.Collector, tracer trace.Tracer, logger *zap.Logger) *Handler {
	return &Handler{schema: schema, metrics: collector, tracer: tracer, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"errors": []map[string]string{{"message": err.Error()}},
		})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"errors": []map[string]string{{"message": "query is required"}},
		})
		return
	}

	schema := h.schema.GraphQLSchema()
	operation := rootField(&schema, req.Query, req.OperationName)

	ctx, span := h.tracer.Start(r.Context(), "graphql "+operation,
		trace.WithAttributes(
			attribute.String("graphql.operation.name", req.OperationName),
			attribute.String("graphql.root_field", operation),
		))
	defer span.End()

	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})

	h.metrics.RecordGraphQLOperation(operation, result.HasErrors())
	if result.HasErrors() {
		span.SetStatus(codes.Error, result.Errors[0].Message)
		h.logger.Debug("graphql operation returned errors",
			zap.String("operation", operation),
			zap.Int("errors", len(result.Errors)),
			zap.String("requestID", middleware.GetRequestID(r.Context())),
		)
	}

	writeJSON(w, http.StatusOK, result)
}

// invalidOperation labels documents that do not select a known root field.
const invalidOperation = "invalid"

// rootField names the first schema field selected by the operation the
// request runs. Metric labels and span names use it so their values stay
// within the schema.
func rootField(schema *graphql.Schema, query, operationName string) string {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return invalidOperation
	}

	var op *ast.OperationDefinition
	for _, def := range doc.Definitions {
		d, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName == "" {
			if op != nil {
				return invalidOperation
			}
			op = d
			continue
		}
		if d.Name != nil && d.Name.Value == operationName {
			op = d
			break
		}
	}
	if op == nil || op.SelectionSet == nil || len(op.SelectionSet.Selections) == 0 {
		return invalidOperation
	}

	var root *graphql.Object
	switch op.Operation {
	case ast.OperationTypeQuery:
		root = schema.QueryType()
	case ast.OperationTypeMutation:
		root = schema.MutationType()
	}
	field, ok := op.SelectionSet.Selections[0].(*ast.Field)
	if root == nil || !ok || field.Name == nil {
		return invalidOperation
	}
	if _, known := root.Fields()[field.Name.Value]; !known {
		return invalidOperation
	}
	return field.Name.Value
}

func decodeRequest(r *http.Request) (Request, error) {
	var req Request
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req.Query = q.Get("query")
		req.OperationName = q.Get("operationName")
		if vars := q.Get("variables"); vars != "" {
			if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
				return req, errInvalidVariables
			}
		}
		return req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errInvalidBody
	}
	return req, nil
}

type requestError string

func (e requestError) Error() string { return string(e) }

const (
	errInvalidBody      requestError = "request body must be a JSON object with a query"
	errInvalidVariables requestError = "variables must be a JSON object"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
