package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ldraney/ableton-mcp-server/internal/tools"
)

// maxLineSize bounds one JSON-RPC message. Note payloads can get big but
// nothing legitimate approaches this.
const maxLineSize = 10 * 1024 * 1024

// Server serves the tool registry over a stdio transport.
type Server struct {
	registry *tools.Registry
	log      *zap.Logger

	name    string
	version string

	in  io.Reader
	out io.Writer

	// writeMu serializes responses; tool calls run concurrently.
	writeMu sync.Mutex
}

// NewServer creates a stdio MCP server around the registry.
func NewServer(registry *tools.Registry, log *zap.Logger, name, version string, in io.Reader, out io.Writer) *Server {
	return &Server{
		registry: registry,
		log:      log,
		name:     name,
		version:  version,
		in:       in,
		out:      out,
	}
}

// Run reads requests until stdin closes or the context is cancelled. Each
// request is handled in its own goroutine so a slow browser scan does not
// block transport commands.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	lines := make(chan []byte)
	readErr := make(chan error, 1)

	// The reader stays outside the group: a blocked stdin read cannot be
	// interrupted, and shutdown must not wait for it.
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			readErr <- fmt.Errorf("mcp: read stdin: %w", err)
		}
	}()

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case line, ok := <-lines:
				if !ok {
					select {
					case err := <-readErr:
						return err
					default:
						return nil
					}
				}
				if len(line) == 0 {
					continue
				}
				lineCopy := line
				g.Go(func() error {
					s.handleLine(ctx, lineCopy)
					return nil
				})
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) handleLine(ctx context.Context, line []byte) {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("unparseable request", zap.Error(err))
		s.writeError(nil, codeParseError, "parse error: "+err.Error())
		return
	}

	s.log.Debug("request", zap.String("method", req.Method))

	switch req.Method {
	case "initialize":
		s.writeResult(req.ID, initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities:    capabilities{Tools: toolsCapability{ListChanged: false}},
			ServerInfo:      serverInfo{Name: s.name, Version: s.version},
		})

	case "notifications/initialized":
		// Notification, nothing to send.

	case "ping":
		s.writeResult(req.ID, struct{}{})

	case "tools/list":
		s.writeResult(req.ID, listToolsResult{Tools: s.describeTools()})

	case "tools/call":
		s.handleCall(ctx, &req)

	default:
		if req.isNotification() {
			s.log.Debug("ignoring notification", zap.String("method", req.Method))
			return
		}
		s.writeError(req.ID, codeMethodNotFound, "method not found: "+req.Method)
	}
}

func (s *Server) describeTools() []toolDescriptor {
	all := s.registry.All()
	descriptors := make([]toolDescriptor, 0, len(all))
	for _, tool := range all {
		required := tool.Schema.Required
		if required == nil {
			required = []string{}
		}
		properties := any(tool.Schema.Properties)
		if tool.Schema.Properties == nil {
			properties = map[string]tools.Property{}
		}
		descriptors = append(descriptors, toolDescriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: inputSchema{
				Type:       "object",
				Properties: properties,
				Required:   required,
			},
		})
	}
	return descriptors
}

func (s *Server) handleCall(ctx context.Context, req *request) {
	var params callParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(req.ID, codeInvalidParams, "invalid params: "+err.Error())
		return
	}
	if params.Name == "" {
		s.writeError(req.ID, codeInvalidParams, "invalid params: missing tool name")
		return
	}
	if params.Arguments == nil {
		params.Arguments = map[string]any{}
	}

	result, err := s.registry.Execute(ctx, params.Name, params.Arguments)
	switch {
	case errors.Is(err, tools.ErrToolNotFound):
		s.writeError(req.ID, codeMethodNotFound, err.Error())
	case errors.Is(err, tools.ErrMissingRequiredArg), errors.Is(err, tools.ErrInvalidArgType):
		s.writeError(req.ID, codeInvalidParams, err.Error())
	case err != nil:
		// Execution failures flow back as tool results so the calling
		// agent can read them.
		s.writeResult(req.ID, textResult(err.Error(), true))
	default:
		s.writeResult(req.ID, textResult(result.Text, false))
	}
}

func (s *Server) writeResult(id *json.RawMessage, result any) {
	s.write(response{JSONRPC: "2.0", ID: rawID(id), Result: result})
}

func (s *Server) writeError(id *json.RawMessage, code int, message string) {
	s.write(response{JSONRPC: "2.0", ID: rawID(id), Error: &rpcError{Code: code, Message: message}})
}

func rawID(id *json.RawMessage) json.RawMessage {
	if id == nil {
		return nil
	}
	return *id
}

func (s *Server) write(resp response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("marshal response failed", zap.Error(err))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.out.Write(append(data, '\n')); err != nil {
		s.log.Error("write response failed", zap.Error(err))
	}
}
