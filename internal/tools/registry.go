package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ratnesh-181998/weather-mcp-a2a/internal/observability"
)

// ErrUnknownTool is returned by Execute for names no tool was registered under.
var ErrUnknownTool = errors.New("unknown tool")

// Registry holds the registered tools and dispatches invocations by name.
// Registration happens once at startup; afterwards the registry is read-only
// and safe for concurrent Execute calls.
type Registry struct {
	order     []string
	executors map[string]Executor
}

func NewRegistry() *Registry {
	return &Registry{executors: make(map[string]Executor)}
}

// Register adds a tool. Duplicate names are a wiring bug, not a runtime
// condition, so they fail loudly.
func (r *Registry) Register(e Executor) error {
	name := e.Definition().Function.Name
	if name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if _, exists := r.executors[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.executors[name] = e
	r.order = append(r.order, name)
	return nil
}

// Definitions returns all tool schemas in registration order, for discovery.
func (r *Registry) Definitions() []Tool {
	defs := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.executors[name].Definition())
	}
	return defs
}

// Execute invokes the named tool with the raw JSON arguments object.
func (r *Registry) Execute(ctx context.Context, name, arguments string) (string, error) {
	e, ok := r.executors[name]
	if !ok {
		observability.ToolInvocationsTotal.WithLabelValues(name, "unknown").Inc()
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	out, err := e.Execute(ctx, arguments)
	if err != nil {
		observability.ToolInvocationsTotal.WithLabelValues(name, "error").Inc()
		return "", err
	}
	observability.ToolInvocationsTotal.WithLabelValues(name, "ok").Inc()
	return out, nil
}
