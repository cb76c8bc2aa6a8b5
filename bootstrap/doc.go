// Package bootstrap runs the oasisd process lifecycle: it applies and
// validates the typed config, initializes logging, starts registered
// components in order, runs hooks, waits for SIGINT/SIGTERM (or runs a
// finite task) and shuts everything down within a graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(bootstrap.Telemetry(cfg.Observability))
//	app.RegisterComponent(srv)
//	return app.Run(ctx)
package bootstrap
