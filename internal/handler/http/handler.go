// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/sivanov/vaulty/internal/authz"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/service"
)

// Handler is the root HTTP handler for the data-plane secrets API.
//
// It holds references to the domain service layer, the data-plane
// authorizer, and a structured logger so that every sub-handler and
// middleware can access business logic and emit consistent,
// context-enriched log entries.
//
// Handler is constructed once at application startup via [NewHandler] and
// its routes are registered in routes.go. It is not safe to copy a Handler
// after construction.
type Handler struct {
	// services provides access to the secret service. Sub-handlers delegate
	// domain work exclusively through this field.
	services *service.Services

	// authorizer evaluates the data-plane authorization decision procedure
	// for every request (header parsing is done by the auth middleware;
	// authorizer.Check takes it from the store lookup onward).
	authorizer *authz.DataPlane

	// delayMillis is the constant-time delay applied before every
	// Unauthorized or InternalServerError response is written.
	delayMillis uint64

	// logger is the structured logger used by the handler and all
	// middleware for request-scoped and diagnostic log output.
	logger *logger.Logger

	// admin serves the WebSocket upgrade mounted at GET /. It is an
	// http.Handler rather than a concrete type so this package does not
	// need to import internal/admin's WebSocket dependency directly.
	admin http.Handler
}

// NewHandler constructs a [Handler] with the provided service container,
// data-plane authorizer, unsuccessful-attempt delay, admin-channel handler,
// and logger.
func NewHandler(services *service.Services, authorizer *authz.DataPlane, delayMillis uint64, admin http.Handler, log *logger.Logger) *Handler {
	log.Debug().Msg("http handler created")
	return &Handler{
		services:    services,
		authorizer:  authorizer,
		delayMillis: delayMillis,
		admin:       admin,
		logger:      log,
	}
}
