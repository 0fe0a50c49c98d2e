// Package mcp implements the stdio side of the Model Context Protocol:
// newline-delimited JSON-RPC 2.0 requests on stdin, responses on stdout.
// Log output must never touch stdout, it would corrupt the stream.
package mcp

import "encoding/json"

// protocolVersion is the MCP revision this server speaks.
const protocolVersion = "2024-11-05"

// JSON-RPC error codes used by the server.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// request is an incoming JSON-RPC message. A nil ID marks a notification,
// which never gets a response.
type request struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

func (r *request) isNotification() bool {
	return r.ID == nil
}

// response is an outgoing JSON-RPC message. ID is never omitted: a nil
// RawMessage marshals as the explicit null the protocol requires when the
// request id could not be determined.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError is the JSON-RPC error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// initializeResult is the handshake reply.
type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    capabilities `json:"capabilities"`
	ServerInfo      serverInfo   `json:"serverInfo"`
}

type capabilities struct {
	Tools toolsCapability `json:"tools"`
}

type toolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// toolDescriptor is one entry in the tools/list result.
type toolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema inputSchema `json:"inputSchema"`
}

// inputSchema is the JSON schema envelope MCP expects around the parameter
// properties.
type inputSchema struct {
	Type       string `json:"type"`
	Properties any    `json:"properties"`
	Required   any    `json:"required"`
}

type listToolsResult struct {
	Tools []toolDescriptor `json:"tools"`
}

// callParams are the tools/call request parameters.
type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// callResult wraps tool output as MCP text content. IsError distinguishes
// tool failures from protocol errors, which use the JSON-RPC error object.
type callResult struct {
	Content []contentItem `json:"content"`
	IsError bool          `json:"isError"`
}

type contentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResult(text string, isError bool) callResult {
	return callResult{
		Content: []contentItem{{Type: "text", Text: text}},
		IsError: isError,
	}
}
