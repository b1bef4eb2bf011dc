// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sivanov/vaulty/internal/app"
	"github.com/sivanov/vaulty/internal/authz"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/utils"
	"github.com/sivanov/vaulty/models"
)

// Permission aliases for route registration in routes.go, named after the
// endpoint they guard rather than the underlying models.Permission value.
const (
	permissionListSecrets    = models.ListSecrets
	permissionDecryptSecrets = models.DecryptSecrets
	permissionCreateSecrets  = models.CreateSecrets
	permissionDeleteSecrets  = models.DeleteSecrets
)

// authorize returns middleware that runs the data-plane authorization
// decision procedure (internal/authz.DataPlane.Check) against the vault
// named in the URL and the given required permission.
//
// On any Unauthorized or error outcome the constant-time delay configured
// on h.delayMillis is applied before the response is written, so the two
// cases are indistinguishable in timing from outside. On Authorized, the
// access key's last_used stamp is refreshed in a background goroutine —
// best-effort, and never blocks the response.
func (h *Handler) authorize(want models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)
			vault := chi.URLParam(r, "vault")

			creds, err := authz.ParseAuthorizationHeader(r.Header.Get("Authorization"))
			if err != nil {
				h.denyUnauthorized(w, r)
				return
			}

			requester, ok := authz.RemoteIP(r)
			if !ok {
				log.Error().Str("remote_addr", r.RemoteAddr).Msg("failed to parse remote IP")
				h.denyInternalError(w, r)
				return
			}

			decision, err := h.authorizer.Check(vault, creds, requester, want)
			if err != nil {
				log.Error().Err(err).Str("vault", vault).Msg("authorization check failed")
				h.denyInternalError(w, r)
				return
			}

			if decision != authz.Authorized {
				h.denyUnauthorized(w, r)
				return
			}

			go func() {
				if err := h.authorizer.RefreshLastUsed(vault, creds.AccessKey); err != nil {
					h.logger.Warn().Err(err).Str("vault", vault).Str("access_key", creds.AccessKey).
						Msg("failed to refresh access key last_used")
				}
			}()

			ctx := context.WithValue(r.Context(), utils.AccessKeyCtxKey, creds.AccessKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// denyUnauthorized suspends for the configured delay and writes a 401 with
// the uniform MsgUnauthorized body.
func (h *Handler) denyUnauthorized(w http.ResponseWriter, r *http.Request) {
	authz.Delay(r.Context(), h.delayMillis)
	http.Error(w, app.MsgUnauthorized, http.StatusUnauthorized)
}

// denyInternalError suspends for the configured delay and writes a 500.
// Per §7, internal errors are delayed identically to authorization
// denials so the two remain indistinguishable in timing.
func (h *Handler) denyInternalError(w http.ResponseWriter, r *http.Request) {
	authz.Delay(r.Context(), h.delayMillis)
	http.Error(w, app.MsgInternalServerError, http.StatusInternalServerError)
}
