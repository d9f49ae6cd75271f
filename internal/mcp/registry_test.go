package mcp

import (
	"context"
	"errors"
	"testing"

	"awsmcp/internal/config"
	"awsmcp/internal/schema"
)

func noopHandler(ctx context.Context, args schema.Args) (any, error) {
	return nil, nil
}

func newSpec(name string, safety ToolSafety) ToolSpec {
	return ToolSpec{
		Name:        name,
		Description: name,
		AdapterID:   "test",
		Safety:      safety,
		Handler:     noopHandler,
	}
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	reg := NewRegistry(nil)
	if err := reg.Add(newSpec("list_things", SafetyReadOnly)); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := reg.Add(newSpec("list_things", SafetyReadOnly))
	if !errors.Is(err, ErrDuplicateTool) {
		t.Fatalf("expected ErrDuplicateTool, got %v", err)
	}
}

func TestRegistryRejectsEmptyNameAndNilHandler(t *testing.T) {
	reg := NewRegistry(nil)
	if err := reg.Add(ToolSpec{Handler: noopHandler}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := reg.Add(ToolSpec{Name: "broken"}); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestRegistryReadOnlyFiltersWriteTools(t *testing.T) {
	cfg := &config.Config{ReadOnly: true}
	reg := NewRegistry(cfg)
	if err := reg.Add(newSpec("list_things", SafetyReadOnly)); err != nil {
		t.Fatalf("read-only add: %v", err)
	}
	if err := reg.Add(newSpec("create_thing", SafetyWrite)); err != nil {
		t.Fatalf("write add: %v", err)
	}
	if err := reg.Add(newSpec("delete_thing", SafetyDestructive)); err != nil {
		t.Fatalf("destructive add: %v", err)
	}

	names := reg.Names()
	if len(names) != 1 || names[0] != "list_things" {
		t.Fatalf("expected only list_things, got %v", names)
	}
	if _, ok := reg.Get("create_thing"); ok {
		t.Fatal("create_thing should not be registered in read-only mode")
	}
}

func TestRegistryListSortedWithSchema(t *testing.T) {
	reg := NewRegistry(nil)
	spec := newSpec("b_tool", SafetyReadOnly)
	spec.Schema = schema.Schema{Fields: []schema.Field{
		{Name: "vpc_id", Type: schema.String, Required: true},
	}}
	if err := reg.Add(spec); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := reg.Add(newSpec("a_tool", SafetyReadOnly)); err != nil {
		t.Fatalf("add: %v", err)
	}

	infos := reg.List()
	if len(infos) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(infos))
	}
	if infos[0].Name != "a_tool" || infos[1].Name != "b_tool" {
		t.Fatalf("expected sorted order, got %s, %s", infos[0].Name, infos[1].Name)
	}
	required, _ := infos[1].InputSchema["required"].([]string)
	if len(required) != 1 || required[0] != "vpc_id" {
		t.Fatalf("expected vpc_id required in schema, got %v", infos[1].InputSchema["required"])
	}
}
