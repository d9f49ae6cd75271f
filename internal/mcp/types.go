package mcp

import (
	"context"

	"awsmcp/internal/schema"
)

// MaxListPages bounds full-drain pagination loops. A provider that
// keeps returning continuation tokens past this many pages is treated
// as exhausted and the accumulated pages are returned.
const MaxListPages = 100

// ToolSafety gates registration under read-only mode.
type ToolSafety string

const (
	SafetyReadOnly    ToolSafety = "read_only"
	SafetyWrite       ToolSafety = "write"
	SafetyDestructive ToolSafety = "destructive"
)

// ToolHandler executes one tool against the provider. Arguments have
// already passed schema validation. The returned value is the reshaped
// success payload; failures travel as errors and are translated by the
// normalizer at the dispatch boundary.
type ToolHandler func(ctx context.Context, args schema.Args) (any, error)

// ToolSpec binds a tool name to its argument schema and executor.
// Immutable after registration.
type ToolSpec struct {
	Name        string
	Description string
	AdapterID   string
	Schema      schema.Schema
	Safety      ToolSafety
	Handler     ToolHandler
}

// ToolInfo is the catalog entry published for discovery.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}
