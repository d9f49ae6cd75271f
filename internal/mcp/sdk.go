package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkjsonrpc "github.com/modelcontextprotocol/go-sdk/jsonrpc"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterSDKTools publishes the dispatcher's registry on an MCP
// server. The transport delivers raw arguments; everything after that
// goes through Dispatch.
func RegisterSDKTools(server *sdkmcp.Server, d *Dispatcher) ([]string, error) {
	if server == nil || d == nil {
		return nil, fmt.Errorf("server and dispatcher are required")
	}
	toolNames := d.reg.Names()
	for _, spec := range d.reg.Specs() {
		tool := &sdkmcp.Tool{
			Name:        spec.Name,
			Description: spec.Description,
			InputSchema: spec.Schema.JSONSchema(),
		}
		server.AddTool(tool, toolHandler(d, spec.Name))
	}
	return toolNames, nil
}

func toolHandler(d *Dispatcher, toolName string) sdkmcp.ToolHandler {
	return func(callCtx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		args := map[string]any{}
		if req != nil && req.Params != nil && len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
				return nil, &sdkjsonrpc.Error{Code: sdkjsonrpc.CodeInvalidParams, Message: fmt.Sprintf("invalid arguments: %v", err)}
			}
		}
		env := d.Dispatch(callCtx, toolName, args)
		return buildCallToolResult(env), nil
	}
}

func buildCallToolResult(env Envelope) *sdkmcp.CallToolResult {
	res := &sdkmcp.CallToolResult{StructuredContent: env}
	if env.IsError() {
		res.IsError = true
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: env.Message}}
		return res
	}
	data, err := json.Marshal(env)
	if err != nil {
		res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: fmt.Sprintf("%v", env.Data)}}
		return res
	}
	res.Content = []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}}
	return res
}
