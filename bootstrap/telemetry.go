package bootstrap

import (
	"context"
	"errors"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/oasisdoc/component"
	"github.com/kbukum/oasisdoc/observability"
)

// Telemetry returns a component that installs the OTLP tracer and meter
// providers on start and flushes them on stop. With cfg.Enabled false it
// does nothing and the global no-op providers stay in place.
func Telemetry(cfg observability.Config) component.Component {
	t := &telemetry{cfg: cfg}
	return &component.Hooks{
		ComponentName: "telemetry",
		StartFunc:     t.start,
		StopFunc:      t.stop,
		HealthFunc:    t.health,
	}
}

type telemetry struct {
	cfg observability.Config
	tp  *sdktrace.TracerProvider
	mp  *sdkmetric.MeterProvider
}

func (t *telemetry) start(ctx context.Context) error {
	if !t.cfg.Enabled {
		return nil
	}
	tp, err := observability.InitTracer(ctx, t.cfg.TracerConfig())
	if err != nil {
		return err
	}
	mp, err := observability.InitMeter(ctx, t.cfg.MeterConfig())
	if err != nil {
		return errors.Join(err, tp.Shutdown(ctx))
	}
	t.tp, t.mp = tp, mp
	return nil
}

func (t *telemetry) stop(ctx context.Context) error {
	var errs []error
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	t.tp, t.mp = nil, nil
	return errors.Join(errs...)
}

func (t *telemetry) health(context.Context) observability.Health {
	h := observability.Health{Name: "telemetry", Status: observability.HealthStatusUp}
	if !t.cfg.Enabled {
		h.Message = "disabled"
	}
	return h
}
