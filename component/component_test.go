package component

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/oasisdoc/observability"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(context.Context) error {
	*m.events = append(*m.events, "start:"+m.name)
	return m.startErr
}

func (m *mockComponent) Stop(context.Context) error {
	*m.events = append(*m.events, "stop:"+m.name)
	return m.stopErr
}

func (m *mockComponent) Health(context.Context) observability.Health {
	return observability.Health{Name: m.name, Status: observability.HealthStatusUp}
}

type fakeProvider struct {
	name      string
	available bool
}

func (f fakeProvider) Name() string                     { return f.name }
func (f fakeProvider) IsAvailable(context.Context) bool { return f.available }

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(nil)
	var events []string

	if err := r.Register(&mockComponent{name: "server", events: &events}); err != nil {
		t.Fatal(err)
	}
	err := r.Register(&mockComponent{name: "server", events: &events})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Errorf("expected duplicate error, got %v", err)
	}
	if r.Get("server") == nil || r.Get("missing") != nil {
		t.Error("Get returned the wrong component")
	}
}

func TestRegistry_StartStopOrder(t *testing.T) {
	r := NewRegistry(nil)
	var events []string
	for _, name := range []string{"telemetry", "llm", "server"} {
		if err := r.Register(&mockComponent{name: name, events: &events}); err != nil {
			t.Fatal(err)
		}
	}

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll: %v", err)
	}

	want := []string{
		"start:telemetry", "start:llm", "start:server",
		"stop:server", "stop:llm", "stop:telemetry",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"telemetry", "llm", "server"}, r.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestRegistry_StartFailureRollsBack(t *testing.T) {
	r := NewRegistry(nil)
	var events []string
	bindErr := errors.New("address in use")
	_ = r.Register(&mockComponent{name: "telemetry", events: &events})
	_ = r.Register(&mockComponent{name: "server", startErr: bindErr, events: &events})
	_ = r.Register(&mockComponent{name: "never", events: &events})

	err := r.StartAll(context.Background())
	if !errors.Is(err, bindErr) {
		t.Fatalf("expected bind error, got %v", err)
	}
	want := []string{"start:telemetry", "start:server", "stop:telemetry"}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}

	// Nothing is left running, so a second stop is a no-op.
	events = nil
	if err := r.StopAll(context.Background()); err != nil || len(events) != 0 {
		t.Errorf("StopAll after rollback: err=%v events=%v", err, events)
	}
}

func TestRegistry_StopErrorsJoined(t *testing.T) {
	r := NewRegistry(nil)
	var events []string
	errA, errB := errors.New("flush failed"), errors.New("drain failed")
	_ = r.Register(&mockComponent{name: "a", stopErr: errA, events: &events})
	_ = r.Register(&mockComponent{name: "b", stopErr: errB, events: &events})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	err := r.StopAll(context.Background())
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected both stop errors, got %v", err)
	}
}

func TestRegistry_HealthAll(t *testing.T) {
	r := NewRegistry(nil)
	var events []string
	_ = r.Register(&mockComponent{name: "server", events: &events})
	_ = r.Register(Collaborator(fakeProvider{name: "openai-llm", available: true}))
	_ = r.Register(Collaborator(fakeProvider{name: "whisper", available: false}))

	want := []observability.Health{
		{Name: "server", Status: observability.HealthStatusUp},
		{Name: "openai-llm", Status: observability.HealthStatusUp},
		{Name: "whisper", Status: observability.HealthStatusDegraded, Message: "unreachable"},
	}
	if diff := cmp.Diff(want, r.HealthAll(context.Background())); diff != "" {
		t.Errorf("health (-want +got):\n%s", diff)
	}
}

func TestHooks(t *testing.T) {
	var stopped bool
	h := &Hooks{
		ComponentName: "telemetry",
		StopFunc: func(context.Context) error {
			stopped = true
			return nil
		},
	}

	if err := h.Start(context.Background()); err != nil {
		t.Errorf("nil StartFunc should be a no-op, got %v", err)
	}
	if err := h.Stop(context.Background()); err != nil || !stopped {
		t.Errorf("Stop: err=%v stopped=%v", err, stopped)
	}
	if got := h.Health(context.Background()); got.Status != observability.HealthStatusUp || got.Name != "telemetry" {
		t.Errorf("Health = %+v", got)
	}

	h.HealthFunc = func(context.Context) observability.Health {
		return observability.Health{Name: "telemetry", Status: observability.HealthStatusDown}
	}
	if got := h.Health(context.Background()); got.Status != observability.HealthStatusDown {
		t.Errorf("HealthFunc not used: %+v", got)
	}
}
