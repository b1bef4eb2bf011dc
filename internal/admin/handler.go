// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package admin

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sivanov/vaulty/internal/authz"
	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/service"
)

// upgrader has no origin restriction: the admin channel is authenticated by
// username/password on the first frame, not by the browser same-origin
// model, so CheckOrigin would only add false confidence.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades GET / to the admin WebSocket channel. Every successful
// upgrade runs one session synchronously, from login to connection close.
type Handler struct {
	services *service.Services
	usersCfg config.Users
	nodeName string
	logger   *logger.Logger
}

// NewHandler constructs a [Handler] bound to the given service layer,
// login-delay configuration, and node name reported on a granted login.
func NewHandler(services *service.Services, usersCfg config.Users, nodeName string, log *logger.Logger) *Handler {
	return &Handler{
		services: services,
		usersCfg: usersCfg,
		nodeName: nodeName,
		logger:   log.GetChildLogger(),
	}
}

// ServeHTTP upgrades the connection and blocks until the session ends.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requester, ok := authz.RemoteIP(r)
	if !ok {
		h.logger.Error().Str("remote_addr", r.RemoteAddr).Msg("failed to parse admin session remote IP")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("admin websocket upgrade failed")
		return
	}

	sess := newSession(conn, h.services, h.usersCfg, h.nodeName, requester, h.logger)
	sess.run(r.Context())
}
