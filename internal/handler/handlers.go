// Package handler provides initialization logic for the single inbound
// transport the vaulty server exposes: one HTTP(S) listener that serves
// the data-plane secrets API and the admin WebSocket upgrade side by side.
// The package exposes a Handlers struct so the application entrypoint can
// construct every handler in one place before handing the result to
// internal/server.
package handler

import (
	"github.com/sivanov/vaulty/internal/admin"
	"github.com/sivanov/vaulty/internal/authz"
	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/handler/http"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/service"
)

// Handlers groups every initialized inbound transport handler. Today that
// is a single HTTP handler; the struct exists as a seam for the server
// package, which never constructs a handler itself.
type Handlers struct {
	// HTTP serves both the data-plane routes and the admin WebSocket
	// upgrade mounted at GET /.
	HTTP *http.Handler
}

// NewHandlers constructs the Handlers bundle from the service layer, the
// data-plane authorizer, and the full application configuration.
//
// Construction never fails: every fallible dependency (store, keychain)
// has already been validated by the time services and authorizer are
// handed in.
func NewHandlers(services *service.Services, authorizer *authz.DataPlane, cfg *config.StructuredConfig, log *logger.Logger) *Handlers {
	log.Info().Msg("creating new handlers...")

	adminHandler := admin.NewHandler(services, cfg.Users, cfg.NodeName, log)
	httpHandler := http.NewHandler(services, authorizer, cfg.AccessKeys.DelayUnsuccessfulAttemptsMillis, adminHandler, log)

	return &Handlers{HTTP: httpHandler}
}
