package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/lifecycle"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/service"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/tools"
	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/validation"
)

// Handler serves the interactive query API.
type Handler struct {
	queries        *service.QueryService
	logger         *zap.Logger
	serviceName    string
	queryMaxLength int
}

// NewHandler returns a new Handler for the query service.
func NewHandler(queries *service.QueryService, logger *zap.Logger, serviceName string, queryMaxLength int) *Handler {
	return &Handler{
		queries:        queries,
		logger:         logger,
		serviceName:    serviceName,
		queryMaxLength: queryMaxLength,
	}
}

// PostQuery handles POST /query. The answer is always 200 with displayable
// text; pipeline-level failures are legible answers, not HTTP errors.
func (h *Handler) PostQuery(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with a query field")
		return
	}

	q, err := validation.ValidateQuery(body.Query, h.queryMaxLength)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_QUERY", err.Error())
		return
	}

	answer := h.queries.Answer(r.Context(), q)
	writeJSON(w, http.StatusOK, map[string]string{
		"answer":    answer,
		"requestId": correlationID(r),
	})
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	WriteHealth(w, h.serviceName)
}

// WriteHealth writes the shared health response. Both binaries use it.
func WriteHealth(w http.ResponseWriter, serviceName string) {
	status := "healthy"
	statusCode := http.StatusOK
	if lifecycle.IsShuttingDown() {
		status = "shutting-down"
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, map[string]interface{}{
		"status":    status,
		"service":   serviceName,
		"version":   "dev",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ToolHandler serves the tool contract: discovery plus invocation.
type ToolHandler struct {
	registry    *tools.Registry
	logger      *zap.Logger
	serviceName string
}

// NewToolHandler returns a new ToolHandler over the registry.
func NewToolHandler(registry *tools.Registry, logger *zap.Logger, serviceName string) *ToolHandler {
	return &ToolHandler{
		registry:    registry,
		logger:      logger,
		serviceName: serviceName,
	}
}

// ListTools handles GET /tools: the discovery half of the contract.
func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tools": h.registry.Definitions(),
	})
}

// InvokeTool handles POST /tools/{name}. Tool output is always text; domain
// failures come back as 200 with the failure encoded in the content string.
func (h *ToolHandler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var body struct {
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON with an arguments object")
		return
	}
	args := string(body.Arguments)
	if args == "" {
		args = "{}"
	}

	out, err := h.registry.Execute(r.Context(), name, args)
	if err != nil {
		if errors.Is(err, tools.ErrUnknownTool) {
			writeError(w, r, http.StatusNotFound, "UNKNOWN_TOOL", err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "INVALID_ARGUMENTS", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"content":   out,
		"requestId": correlationID(r),
	})
}

// GetHealth handles GET /health for the tool server.
func (h *ToolHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	WriteHealth(w, h.serviceName)
}

func correlationID(r *http.Request) string {
	if v := r.Context().Value("correlation_id"); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code,
// message, and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": correlationID(r),
		},
	})
}
