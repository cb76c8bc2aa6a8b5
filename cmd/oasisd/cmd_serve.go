package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/oasisdoc/bootstrap"
	"github.com/kbukum/oasisdoc/component"
	"github.com/kbukum/oasisdoc/internal/api"
	"github.com/kbukum/oasisdoc/logger"
	"github.com/kbukum/oasisdoc/server"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Starts the HTTP API:

  POST /generate_documentation   {"transcript": "..."}
  POST /transcribe               multipart audio upload in field "file"
  GET  /elements                 element catalogue
  GET  /health, /info

The process shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags.configFile, flags.envFile)
			if err != nil {
				return err
			}
			return runServe(cmd, cfg)
		},
	}
}

func runServe(cmd *cobra.Command, cfg *Config) error {
	app, err := bootstrap.NewApp(cfg, bootstrap.WithGracefulTimeout(cfg.Server.ShutdownTimeout+5*time.Second))
	if err != nil {
		return err
	}
	d, err := buildDeps(cfg, app.Logger)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, app.Logger, d.metrics)
	srv.RegisterDefaultEndpoints(cfg.Name, app.Components.HealthAll)
	api.NewHandler(d.service, app.Logger).Register(srv.GinEngine())

	for _, c := range []component.Component{
		bootstrap.Telemetry(cfg.Observability),
		component.Collaborator(d.llm),
		component.Collaborator(d.whisper),
		srv,
	} {
		if err := app.RegisterComponent(c); err != nil {
			return err
		}
	}
	app.OnReady(func(context.Context) error {
		app.Logger.Info("Accepting requests", logger.Fields(
			"addr", srv.Addr(),
			"elements", len(d.service.Elements()),
		))
		return nil
	})
	return app.Run(cmd.Context())
}
