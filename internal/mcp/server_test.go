package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ldraney/ableton-mcp-server/internal/tools"
)

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()

	reg := tools.NewRegistry(zap.NewNop())
	reg.MustRegister(&tools.Tool{
		Name:        "echo",
		Description: "Echo the value argument back.",
		Category:    tools.CategorySong,
		Schema: tools.Schema{
			Required: []string{"value"},
			Properties: map[string]tools.Property{
				"value": {Type: "string", Description: "Value to echo"},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return args["value"].(string), nil
		},
	})
	reg.MustRegister(&tools.Tool{
		Name:        "fail",
		Description: "Always fails.",
		Category:    tools.CategorySong,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return "", errors.New("device unreachable")
		},
	})
	return reg
}

// serve runs the server over the given input until EOF and returns every
// response keyed by request id. Responses with a null id key as "null".
func serve(t *testing.T, input string) map[string]map[string]any {
	t.Helper()

	var out bytes.Buffer
	srv := NewServer(testRegistry(t), zap.NewNop(), "test-server", "0.0.1", strings.NewReader(input), &out)
	require.NoError(t, srv.Run(context.Background()))

	responses := make(map[string]map[string]any)
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &resp))

		id := "null"
		if raw, ok := resp["id"]; ok && raw != nil {
			idBytes, err := json.Marshal(raw)
			require.NoError(t, err)
			id = string(idBytes)
		}
		responses[id] = resp
	}
	return responses
}

func result(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	res, ok := resp["result"].(map[string]any)
	require.True(t, ok, "expected result object, got %v", resp)
	return res
}

func rpcErrorOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	errObj, ok := resp["error"].(map[string]any)
	require.True(t, ok, "expected error object, got %v", resp)
	return errObj
}

func TestInitialize(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`+"\n")

	res := result(t, responses["1"])
	assert.Equal(t, "2024-11-05", res["protocolVersion"])

	info := res["serverInfo"].(map[string]any)
	assert.Equal(t, "test-server", info["name"])
	assert.Equal(t, "0.0.1", info["version"])

	caps := res["capabilities"].(map[string]any)
	_, ok := caps["tools"]
	assert.True(t, ok, "expected tools capability")
}

func TestInitializedNotificationGetsNoResponse(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","method":"notifications/initialized"}`+"\n")
	assert.Empty(t, responses)
}

func TestPing(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":"p1","method":"ping"}`+"\n")
	resp, ok := responses[`"p1"`]
	require.True(t, ok)
	assert.NotContains(t, resp, "error")
}

func TestToolsList(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`+"\n")

	res := result(t, responses["2"])
	list := res["tools"].([]any)
	require.Len(t, list, 2)

	// Sorted by name: echo before fail.
	echo := list[0].(map[string]any)
	assert.Equal(t, "echo", echo["name"])
	assert.NotEmpty(t, echo["description"])

	schema := echo["inputSchema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	props := schema["properties"].(map[string]any)
	_, ok := props["value"]
	assert.True(t, ok, "expected value property")
	assert.Equal(t, []any{"value"}, schema["required"])

	// Tools registered without a schema still serialize valid JSON schema.
	fail := list[1].(map[string]any)
	failSchema := fail["inputSchema"].(map[string]any)
	assert.Equal(t, "object", failSchema["type"])
	assert.NotNil(t, failSchema["properties"])
	assert.Equal(t, []any{}, failSchema["required"])
}

func TestToolsCall(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"value":"hello"}}}`+"\n")

	res := result(t, responses["3"])
	assert.Equal(t, false, res["isError"])

	content := res["content"].([]any)
	require.Len(t, content, 1)
	item := content[0].(map[string]any)
	assert.Equal(t, "text", item["type"])
	assert.Equal(t, "hello", item["text"])
}

func TestToolsCallExecutionErrorIsToolResult(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"fail","arguments":{}}}`+"\n")

	res := result(t, responses["4"])
	assert.Equal(t, true, res["isError"])

	content := res["content"].([]any)
	item := content[0].(map[string]any)
	assert.Contains(t, item["text"], "device unreachable")
}

func TestToolsCallUnknownTool(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"missing"}}`+"\n")

	errObj := rpcErrorOf(t, responses["5"])
	assert.Equal(t, float64(codeMethodNotFound), errObj["code"])
}

func TestToolsCallMissingRequiredArg(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"echo","arguments":{}}}`+"\n")

	errObj := rpcErrorOf(t, responses["6"])
	assert.Equal(t, float64(codeInvalidParams), errObj["code"])
	assert.Contains(t, errObj["message"], "value")
}

func TestUnknownMethod(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","id":7,"method":"resources/list"}`+"\n")

	errObj := rpcErrorOf(t, responses["7"])
	assert.Equal(t, float64(codeMethodNotFound), errObj["code"])
}

func TestUnknownNotificationIgnored(t *testing.T) {
	responses := serve(t, `{"jsonrpc":"2.0","method":"notifications/cancelled"}`+"\n")
	assert.Empty(t, responses)
}

func TestParseError(t *testing.T) {
	responses := serve(t, "this is not json\n")

	errObj := rpcErrorOf(t, responses["null"])
	assert.Equal(t, float64(codeParseError), errObj["code"])
}

func TestParseErrorCarriesNullID(t *testing.T) {
	// When the request id cannot be determined, the response must carry an
	// explicit null id, not omit the member.
	var out bytes.Buffer
	srv := NewServer(testRegistry(t), zap.NewNop(), "test-server", "0.0.1", strings.NewReader("not json\n"), &out)
	require.NoError(t, srv.Run(context.Background()))

	assert.Contains(t, out.String(), `"id":null`)
}

func TestMultipleRequests(t *testing.T) {
	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo","arguments":{"value":"a"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"echo","arguments":{"value":"b"}}}`,
	}, "\n") + "\n"

	responses := serve(t, input)
	require.Len(t, responses, 3)

	a := result(t, responses["2"])["content"].([]any)[0].(map[string]any)
	b := result(t, responses["3"])["content"].([]any)[0].(map[string]any)
	assert.Equal(t, "a", a["text"])
	assert.Equal(t, "b", b["text"])
}
