// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/handler"
	"github.com/sivanov/vaulty/internal/logger"
)

// server wires the single HTTP(S) listener to the signal-driven graceful
// shutdown sequence.
type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer constructs the server around the handlers bundle built by the
// handler package and the server section of the application configuration.
func NewServer(handlers *handler.Handlers, cfg config.Server, log *logger.Logger) (Server, error) {
	log.Info().Msg("creating new server...")

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, log),
		logger:     log,
	}, nil
}

// RunServer blocks until SIGTERM, SIGINT, or SIGQUIT is received, then
// shuts down gracefully.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	idleConnectionsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("address", s.httpServer.cfg.Address).Msg("launching HTTP server")
	go s.httpServer.RunServer(ctx)

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shutdown gracefully")
}

// Shutdown gracefully stops the listener and releases its resources.
func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}
