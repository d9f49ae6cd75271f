package mcp

import (
	"context"
	"fmt"
	"time"

	"awsmcp/internal/audit"
	"awsmcp/internal/config"
	"awsmcp/internal/schema"
)

// Dispatcher is the single entry point for tool calls. Every call,
// valid or not, terminates in a well-formed envelope; nothing
// propagates as an unhandled fault.
type Dispatcher struct {
	reg   *ToolRegistry
	cfg   *config.Config
	audit *audit.Logger
}

func NewDispatcher(reg *ToolRegistry, cfg *config.Config, auditLogger *audit.Logger) *Dispatcher {
	return &Dispatcher{reg: reg, cfg: cfg, audit: auditLogger}
}

func (d *Dispatcher) Registry() *ToolRegistry {
	return d.reg
}

// Dispatch drives lookup, validation, execution and normalization for
// one tool call. Validation failures short-circuit before any provider
// contact.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, rawArgs map[string]any) Envelope {
	spec, ok := d.reg.Get(toolName)
	if !ok {
		env := Failure(KindUnknownTool, fmt.Sprintf("tool %s is not registered", toolName), nil)
		d.logAudit(spec.AdapterID, toolName, env)
		return env
	}

	args, verr := schema.Validate(spec.Schema, rawArgs)
	if verr != nil {
		env := validationFailure(verr)
		d.logAudit(spec.AdapterID, toolName, env)
		return env
	}

	execCtx, cancel := withToolTimeout(ctx, d.cfg, toolName)
	data, err := d.execute(execCtx, spec, args)
	cancel()

	var env Envelope
	if err != nil {
		env = Normalize(err)
	} else {
		env = OK(data)
	}
	d.logAudit(spec.AdapterID, toolName, env)
	return env
}

// execute shields the dispatcher from a panicking handler; a panic is
// reported as an Unknown failure rather than taking the process down.
func (d *Dispatcher) execute(ctx context.Context, spec ToolSpec, args schema.Args) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %s panicked: %v", spec.Name, r)
			data = nil
		}
	}()
	return spec.Handler(ctx, args)
}

func (d *Dispatcher) logAudit(adapterID, toolName string, env Envelope) {
	if d.audit == nil {
		return
	}
	event := audit.Event{
		Timestamp: time.Now().UTC(),
		Adapter:   adapterID,
		Tool:      toolName,
		Outcome:   env.Status,
	}
	if env.IsError() {
		event.Kind = string(env.Kind)
		event.Error = env.Message
	}
	d.audit.Log(event)
}
