// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sivanov/vaulty/internal/app"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/utils"
	"github.com/sivanov/vaulty/models"
)

// listSecrets serves GET /{vault}: the names and creation timestamps of
// every secret in the vault, requiring ListSecrets.
func (h *Handler) listSecrets(w http.ResponseWriter, r *http.Request) {
	vault := chi.URLParam(r, "vault")

	response, err := h.services.Secrets.ListSecrets(r.Context(), vault)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Str("vault", vault).Msg("failed to list secrets")
		h.denyInternalError(w, r)
		return
	}

	if _, err := utils.WriteJSON(w, response, http.StatusOK); err != nil {
		logger.FromRequest(r).Error().Err(err).Str("vault", vault).Msg("failed to write response")
	}
}

// getSecret serves GET /{vault}/{secret_name}: the raw plaintext body,
// requiring DecryptSecrets.
func (h *Handler) getSecret(w http.ResponseWriter, r *http.Request) {
	vault := chi.URLParam(r, "vault")
	name := chi.URLParam(r, "secret_name")

	plaintext, found, err := h.services.Secrets.FindSecret(r.Context(), vault, name)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Str("vault", vault).Str("secret_name", name).
			Msg("failed to retrieve secret")
		h.denyInternalError(w, r)
		return
	}
	if !found {
		http.Error(w, app.MsgNotFound, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(plaintext)
}

// upsertSecret serves POST and PUT /{vault}/{secret_name}: inserts a new
// secret or overwrites an existing one, requiring CreateSecrets. The
// request body is read up to models.MaxSecretSize+1 bytes so that an
// oversize body can be distinguished from a body exactly at the limit.
func (h *Handler) upsertSecret(w http.ResponseWriter, r *http.Request) {
	vault := chi.URLParam(r, "vault")
	name := chi.URLParam(r, "secret_name")

	body, err := io.ReadAll(io.LimitReader(r.Body, models.MaxSecretSize+1))
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("failed to read request body")
		h.denyInternalError(w, r)
		return
	}

	if len(body) == 0 {
		http.Error(w, app.MsgEmptyBody, http.StatusUnprocessableEntity)
		return
	}
	if len(body) > models.MaxSecretSize {
		http.Error(w, app.MsgBodyTooLarge, http.StatusUnprocessableEntity)
		return
	}

	created, err := h.services.Secrets.InsertSecret(r.Context(), vault, name, body)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Str("vault", vault).Str("secret_name", name).
			Msg("failed to insert secret")
		h.denyInternalError(w, r)
		return
	}

	if created {
		w.WriteHeader(http.StatusCreated)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// deleteSecret serves DELETE /{vault}/{secret_name}, requiring DeleteSecrets.
func (h *Handler) deleteSecret(w http.ResponseWriter, r *http.Request) {
	vault := chi.URLParam(r, "vault")
	name := chi.URLParam(r, "secret_name")

	deleted, err := h.services.Secrets.DeleteSecret(r.Context(), vault, name)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Str("vault", vault).Str("secret_name", name).
			Msg("failed to delete secret")
		h.denyInternalError(w, r)
		return
	}

	if !deleted {
		http.Error(w, app.MsgNotFound, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
