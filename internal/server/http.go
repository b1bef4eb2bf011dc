// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/logger"
)

// restartBackoff is how long RunServer waits before re-binding the listener
// after an unexpected failure, so a transient condition (port briefly held
// by the outgoing process during a restart, a momentary EMFILE) doesn't
// spin the retry loop hot.
const restartBackoff = time.Second

type httpServer struct {
	server *http.Server
	cfg    config.Server
	logger *logger.Logger
}

// newHTTPServer builds the single listener serving both the data-plane
// routes and the admin WebSocket upgrade. Keep-alives are disabled: per
// the timeout model, idle connections are shed rather than held open, and
// there are no other application-level request timeouts.
func newHTTPServer(h http.Handler, cfg config.Server, log *logger.Logger) *httpServer {
	srv := &http.Server{
		Addr:    cfg.Address,
		Handler: h,
	}
	srv.SetKeepAlivesEnabled(false)

	return &httpServer{server: srv, cfg: cfg, logger: log}
}

// RunServer binds the listener and serves until ctx is cancelled. An
// unexpected listener failure (anything but the graceful-shutdown sentinel
// http.ErrServerClosed) is logged and retried after restartBackoff rather
// than treated as fatal, per the top-level wiring's "graceful restart on
// listener failure" behavior.
func (h *httpServer) RunServer(ctx context.Context) {
	for {
		var err error
		if h.cfg.TLSCertFile != "" && h.cfg.TLSKeyFile != "" {
			err = h.server.ListenAndServeTLS(h.cfg.TLSCertFile, h.cfg.TLSKeyFile)
		} else {
			err = h.server.ListenAndServe()
		}

		if errors.Is(err, http.ErrServerClosed) {
			return
		}

		h.logger.Error().Err(err).Msg("HTTP listener failed, restarting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(restartBackoff):
		}
	}
}

func (h *httpServer) Shutdown() {
	if err := h.server.Shutdown(context.Background()); err != nil {
		h.logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}
