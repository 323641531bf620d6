package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/showfinder/internal/server"
	"github.com/desertthunder/showfinder/internal/shared"
	"github.com/desertthunder/showfinder/internal/web"
)

// Serve runs the web frontend until the process is interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port > 0 {
		cfg.Port = port
	}

	logger := shared.WithLogger(r.logger, "component", "web")
	app, err := web.New(web.Deps{
		Catalog: r.catalog,
		Tracker: r.tracker,
		Logger:  logger,
		MapsKey: r.config.Maps.APIKey,
		Now:     time.Now,
	})
	if err != nil {
		return fmt.Errorf("failed to build web app: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestID, server.Logger(logger), server.Recover(logger))
	app.Register(router)

	addr := cfg.Addr()
	r.writePlain("Serving on http://%s\n", addr)
	return server.Run(ctx, addr, router, logger)
}
