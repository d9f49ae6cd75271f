package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"awsmcp/internal/schema"
)

func TestRegisterSDKToolsRequiresServerAndDispatcher(t *testing.T) {
	d, _ := testDispatcher(t)
	if _, err := RegisterSDKTools(nil, d); err == nil {
		t.Fatal("expected error for nil server")
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "test"}, nil)
	if _, err := RegisterSDKTools(server, nil); err == nil {
		t.Fatal("expected error for nil dispatcher")
	}
}

func TestRegisterSDKToolsReturnsToolNames(t *testing.T) {
	d, _ := testDispatcher(t, newSpec("list_vpcs", SafetyReadOnly), newSpec("create_vpc", SafetyWrite))
	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "test", Version: "test"}, nil)

	names, err := RegisterSDKTools(server, d)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(names) != 2 || names[0] != "create_vpc" || names[1] != "list_vpcs" {
		t.Fatalf("unexpected tool names %v", names)
	}
}

func TestToolHandlerReturnsOKEnvelope(t *testing.T) {
	spec := newSpec("describe_vpc", SafetyReadOnly)
	spec.Handler = func(ctx context.Context, args schema.Args) (any, error) {
		return map[string]any{"id": "vpc-1"}, nil
	}
	d, _ := testDispatcher(t, spec)

	res, err := toolHandler(d, "describe_vpc")(context.Background(), &sdkmcp.CallToolRequest{
		Params: &sdkmcp.CallToolParamsRaw{Arguments: json.RawMessage(`{}`)},
	})
	if err != nil {
		t.Fatalf("tool handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result %v", res)
	}
	env := res.StructuredContent.(Envelope)
	if env.IsError() {
		t.Fatalf("unexpected envelope %v", env)
	}
}

func TestToolHandlerFailureSetsIsError(t *testing.T) {
	spec := newSpec("describe_vpc", SafetyReadOnly)
	spec.Handler = func(ctx context.Context, args schema.Args) (any, error) {
		return nil, NotFoundf("vpc does not exist")
	}
	d, _ := testDispatcher(t, spec)

	res, err := toolHandler(d, "describe_vpc")(context.Background(), &sdkmcp.CallToolRequest{
		Params: &sdkmcp.CallToolParamsRaw{Arguments: json.RawMessage(`{}`)},
	})
	if err != nil {
		t.Fatalf("tool handler: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	env := res.StructuredContent.(Envelope)
	if env.Kind != KindNotFound {
		t.Fatalf("expected NotFound, got %s", env.Kind)
	}
}

func TestToolHandlerRejectsMalformedArguments(t *testing.T) {
	d, _ := testDispatcher(t, newSpec("list_vpcs", SafetyReadOnly))

	_, err := toolHandler(d, "list_vpcs")(context.Background(), &sdkmcp.CallToolRequest{
		Params: &sdkmcp.CallToolParamsRaw{Arguments: json.RawMessage(`{not json`)},
	})
	if err == nil {
		t.Fatal("expected error for malformed arguments")
	}
}
