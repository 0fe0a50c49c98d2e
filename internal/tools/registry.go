package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry holds all exposed tools and dispatches calls. It is thread-safe.
type Registry struct {
	log *zap.Logger

	mu    sync.RWMutex
	tools map[string]*Tool

	// byCategory provides fast lookup by category.
	byCategory map[Category][]*Tool
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		log:        log,
		tools:      make(map[string]*Tool),
		byCategory: make(map[Category][]*Tool),
	}
}

// Register adds a tool. Returns an error if the tool is invalid or the name
// is taken.
func (r *Registry) Register(tool *Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, tool.Name)
	}

	r.tools[tool.Name] = tool
	r.byCategory[tool.Category] = append(r.byCategory[tool.Category], tool)

	r.log.Debug("registered tool",
		zap.String("tool", tool.Name),
		zap.String("category", string(tool.Category)))
	return nil
}

// MustRegister registers a tool and panics on error. For static catalogs
// wired at startup.
func (r *Registry) MustRegister(tool *Tool) {
	if err := r.Register(tool); err != nil {
		panic(fmt.Sprintf("failed to register tool %s: %v", tool.Name, err))
	}
}

// Get returns a tool by name, or nil.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// Has reports whether a tool is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// GetByCategory returns all tools in a category, sorted by name.
func (r *Registry) GetByCategory(category Category) []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, len(r.byCategory[category]))
	copy(tools, r.byCategory[category])
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// All returns every registered tool, sorted by name for a stable tools/list.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Names returns all tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute runs a tool by name. Returns ErrToolNotFound if missing.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (*Result, error) {
	tool := r.Get(name)
	if tool == nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return r.ExecuteTool(ctx, tool, args)
}

// ExecuteTool runs a specific tool with the given arguments.
func (r *Registry) ExecuteTool(ctx context.Context, tool *Tool, args map[string]any) (*Result, error) {
	callID := uuid.NewString()
	start := time.Now()

	if err := validateArgs(tool, args); err != nil {
		return &Result{
			ToolName:   tool.Name,
			CallID:     callID,
			Error:      err,
			DurationMs: time.Since(start).Milliseconds(),
		}, err
	}

	r.log.Debug("executing tool", zap.String("tool", tool.Name), zap.String("call_id", callID))
	text, err := tool.Execute(ctx, args)
	duration := time.Since(start)

	if err != nil {
		r.log.Warn("tool failed",
			zap.String("tool", tool.Name),
			zap.String("call_id", callID),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		r.log.Debug("tool completed",
			zap.String("tool", tool.Name),
			zap.String("call_id", callID),
			zap.Duration("duration", duration))
	}

	return &Result{
		ToolName:   tool.Name,
		CallID:     callID,
		Text:       text,
		Error:      err,
		DurationMs: duration.Milliseconds(),
	}, err
}

// validateArgs checks that all required arguments are present. Shape
// checking only; values are coerced by the handlers.
func validateArgs(tool *Tool, args map[string]any) error {
	for _, required := range tool.Schema.Required {
		if _, ok := args[required]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingRequiredArg, required)
		}
	}
	return nil
}
