// Package tools exposes the weather operations as independently invocable
// named tools with declared parameter schemas, for consumption by an external
// agent or orchestrator. Callers supply already-extracted arguments; there is
// no text-extraction step in this layer.
package tools

import "context"

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool is the schema describing one callable operation to an external caller.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function declares a tool's name, description and parameter schema. The
// description is what a language-model caller uses to decide when to invoke
// the tool, so it must say what the operation does, not how.
type Function struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// JSONSchema is a typed subset of JSON Schema sufficient for declaring scalar
// tool parameters. The top-level Parameters node is always type "object".
type JSONSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

// Executor is one invocable tool. Execute takes the raw JSON arguments object
// and returns displayable text unconditionally: domain failures (fetch
// failure, not found, bad coordinate values) are encoded in the returned
// string. The error return is reserved for contract-level problems such as
// unparseable argument JSON.
type Executor interface {
	Definition() Tool
	Execute(ctx context.Context, arguments string) (string, error)
}

// NewFunctionTool builds a Tool with the standard function type.
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
