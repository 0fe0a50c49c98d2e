// Package tools defines the tool catalog the MCP server exposes. Every tool
// is a one-to-one forwarding wrapper around a single Ableton Live operation;
// composite behavior belongs to the calling agent.
package tools

import (
	"context"
)

// Category groups tools by the Live object they address.
type Category string

const (
	CategorySong     Category = "song"
	CategoryTrack    Category = "track"
	CategoryClip     Category = "clip"
	CategoryClipSlot Category = "clip_slot"
	CategoryScene    Category = "scene"
	CategoryView     Category = "view"
	CategoryDevice   Category = "device"
	CategoryBrowser  Category = "browser"
	CategoryExecutor Category = "executor"
	CategoryExport   Category = "export"
)

// Property describes a single parameter for the JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	// Items describes array element schema (required for type="array").
	Items *PropertyItems `json:"items,omitempty"`
}

// PropertyItems describes the schema of array elements.
type PropertyItems struct {
	Type string `json:"type"`
}

// Schema defines the JSON schema for tool arguments. This is what gets
// serialized into the MCP tools/list response.
type Schema struct {
	// Required lists parameters that must be provided.
	Required []string `json:"required"`

	// Properties describes each parameter.
	Properties map[string]Property `json:"properties"`
}

// ExecuteFunc is the signature for tool execution. The returned string is
// relayed verbatim to the host as text content.
type ExecuteFunc func(ctx context.Context, args map[string]any) (string, error)

// Tool is one exposed Live operation.
type Tool struct {
	// Name is the unique identifier, e.g. "song_set_tempo".
	Name string

	// Description explains what the tool does, for the calling agent.
	Description string

	// Category classifies the tool by Live object.
	Category Category

	// Schema defines the expected arguments.
	Schema Schema

	// Execute forwards the call to Live.
	Execute ExecuteFunc
}

// Validate checks the tool definition.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}

// Result wraps a tool execution with metadata.
type Result struct {
	// ToolName identifies which tool was executed.
	ToolName string

	// CallID correlates log lines of one execution.
	CallID string

	// Text is the output relayed to the host.
	Text string

	// Error is set if the tool failed.
	Error error

	// DurationMs is how long execution took.
	DurationMs int64
}

// IsSuccess reports whether the tool executed without error.
func (r *Result) IsSuccess() bool {
	return r.Error == nil
}
