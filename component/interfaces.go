package component

import (
	"context"

	"github.com/kbukum/oasisdoc/observability"
	"github.com/kbukum/oasisdoc/provider"
)

// Component is a lifecycle-managed part of the service.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string
	// Start initializes and starts the component.
	Start(ctx context.Context) error
	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error
	// Health returns the current health status of the component.
	Health(ctx context.Context) observability.Health
}

// Collaborator wraps an external provider that has no lifecycle of its own
// (the completion API, the whisper sidecar). Start and Stop are no-ops and
// Health probes IsAvailable. An unreachable collaborator reports degraded:
// the service still answers, individual requests fail.
func Collaborator(p provider.Provider) Component {
	return &collaborator{p: p}
}

type collaborator struct {
	p provider.Provider
}

func (c *collaborator) Name() string                { return c.p.Name() }
func (c *collaborator) Start(context.Context) error { return nil }
func (c *collaborator) Stop(context.Context) error  { return nil }

func (c *collaborator) Health(ctx context.Context) observability.Health {
	if c.p.IsAvailable(ctx) {
		return observability.Health{Name: c.p.Name(), Status: observability.HealthStatusUp}
	}
	return observability.Health{Name: c.p.Name(), Status: observability.HealthStatusDegraded, Message: "unreachable"}
}

// Hooks is a Component built from functions. Nil functions are no-ops and a
// nil HealthFunc reports up.
type Hooks struct {
	ComponentName string
	StartFunc     func(ctx context.Context) error
	StopFunc      func(ctx context.Context) error
	HealthFunc    func(ctx context.Context) observability.Health
}

func (h *Hooks) Name() string { return h.ComponentName }

func (h *Hooks) Start(ctx context.Context) error {
	if h.StartFunc == nil {
		return nil
	}
	return h.StartFunc(ctx)
}

func (h *Hooks) Stop(ctx context.Context) error {
	if h.StopFunc == nil {
		return nil
	}
	return h.StopFunc(ctx)
}

func (h *Hooks) Health(ctx context.Context) observability.Health {
	if h.HealthFunc == nil {
		return observability.Health{Name: h.ComponentName, Status: observability.HealthStatusUp}
	}
	return h.HealthFunc(ctx)
}
