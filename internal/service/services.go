// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/crypto"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/store"
)

// Services aggregates the four domain services behind the admin channel and
// the data plane. It is constructed once at startup and shared by every
// session and request handler.
type Services struct {
	Users      UserService
	Vaults     VaultService
	AccessKeys AccessKeyService
	Secrets    SecretService
}

// NewServices wires the domain services over the given store and keychain.
// Construction never fails: every dependency has already been validated by
// the time store and keychain are handed in (store.Open and
// crypto.LoadKeychain are the fallible steps, run earlier in startup).
func NewServices(s *store.Store, keychain *crypto.Keychain, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	log.Info().Msg("creating new services...")

	return &Services{
		Users:      NewUserService(s, cfg.Users, log),
		Vaults:     NewVaultService(s, log),
		AccessKeys: NewAccessKeyService(s, keychain, cfg.AccessKeys, log),
		Secrets:    NewSecretService(s, keychain, log),
	}
}
