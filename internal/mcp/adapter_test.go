package mcp

import (
	"context"
	"testing"

	"awsmcp/internal/config"
)

type stubAdapter struct{ id string }

func (a *stubAdapter) ID() string      { return a.id }
func (a *stubAdapter) Version() string { return "test" }
func (a *stubAdapter) Init(ctx context.Context, cfg *config.Config) error {
	return nil
}
func (a *stubAdapter) Register(reg Registry) error {
	return reg.Add(newSpec(a.id+"_tool", SafetyReadOnly))
}

func TestAdapterFactoryRegistration(t *testing.T) {
	if err := RegisterAdapter("stub-a", func() Adapter { return &stubAdapter{id: "stub-a"} }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := RegisterAdapter("stub-a", func() Adapter { return &stubAdapter{id: "stub-a"} }); err == nil {
		t.Fatal("expected error for duplicate adapter id")
	}
	if err := RegisterAdapter("", func() Adapter { return nil }); err == nil {
		t.Fatal("expected error for empty adapter id")
	}
	if err := RegisterAdapter("stub-b", nil); err == nil {
		t.Fatal("expected error for nil factory")
	}

	factory, ok := AdapterFactoryFor("stub-a")
	if !ok {
		t.Fatal("registered factory not found")
	}
	adapter := factory()
	if adapter.ID() != "stub-a" {
		t.Fatalf("expected stub-a, got %s", adapter.ID())
	}

	ids := RegisteredAdapters()
	found := false
	for _, id := range ids {
		if id == "stub-a" {
			found = true
		}
	}
	if !found {
		t.Fatalf("stub-a missing from %v", ids)
	}
}
