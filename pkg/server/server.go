// Package server assembles the deploychat dispatcher from configuration.
//
// It lives in pkg/ so another host can embed the dispatcher and wrap its
// handler:
//
//	srv, err := server.New(ctx, config.Load())
//	http.ListenAndServe(":8080", srv.Handler)
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/agentoven/deploychat/internal/api"
	"github.com/agentoven/deploychat/internal/api/handlers"
	"github.com/agentoven/deploychat/internal/chat"
	"github.com/agentoven/deploychat/internal/config"
	"github.com/agentoven/deploychat/internal/deployapi"
	"github.com/agentoven/deploychat/internal/intent"
	"github.com/agentoven/deploychat/internal/panel"
	"github.com/agentoven/deploychat/internal/telemetry"
	"github.com/agentoven/deploychat/internal/workspace"
)

// Server holds the initialized dispatcher.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Chat runs request cycles directly, for hosts that skip HTTP.
	Chat *chat.Handler

	// Panel renders details pages and reply fragments.
	Panel *panel.Renderer

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc telemetry.ShutdownFunc
}

// New validates cfg and wires every component.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	shutdown, err := telemetry.Init(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	client := deployapi.New(cfg.Model)
	log.Info().Str("endpoint", client.PredictURL()).Msg("✅ Deployment API client initialized")

	chatHandler := chat.NewHandler(client, workspace.NewGitResolver(), intent.New(nil))
	renderer := panel.New(cfg.Panel.BaseURL)

	h := handlers.New(chatHandler, renderer)
	return &Server{
		Handler:      api.NewRouter(cfg, h),
		Chat:         chatHandler,
		Panel:        renderer,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}
