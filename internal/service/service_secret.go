// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sivanov/vaulty/internal/crypto"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/store"
	"github.com/sivanov/vaulty/models"
)

type secretService struct {
	store    *store.Store
	keychain *crypto.Keychain
	logger   *logger.Logger
}

// NewSecretService builds the SecretService implementation.
func NewSecretService(s *store.Store, keychain *crypto.Keychain, log *logger.Logger) SecretService {
	return &secretService{store: s, keychain: keychain, logger: log.GetChildLogger()}
}

// InsertSecret envelope-encrypts plaintext and upserts it under (vault, name).
func (s *secretService) InsertSecret(ctx context.Context, vault, name string, plaintext []byte) (bool, error) {
	body, err := s.keychain.Encrypt(plaintext)
	if err != nil {
		return false, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	result, err := s.store.UpsertSecret(vault, name, body)
	if err != nil {
		return false, fmt.Errorf("failed to store secret: %w", err)
	}

	return result == store.Created, nil
}

func (s *secretService) ListSecrets(ctx context.Context, vault string) (models.ListSecretsResponse, error) {
	secrets, err := s.store.ListSecrets(vault)
	if err != nil {
		return models.ListSecretsResponse{}, fmt.Errorf("failed to list secrets: %w", err)
	}

	return models.ListSecretsResponse{Vault: vault, Secrets: secrets}, nil
}

// FindSecret retrieves and decrypts a secret's plaintext body.
func (s *secretService) FindSecret(ctx context.Context, vault, name string) ([]byte, bool, error) {
	doc, err := s.store.FindSecret(vault, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to look up secret: %w", err)
	}

	plaintext, err := s.keychain.Decrypt(doc.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decrypt secret: %w", err)
	}

	return plaintext, true, nil
}

func (s *secretService) DeleteSecret(ctx context.Context, vault, name string) (bool, error) {
	result, err := s.store.DeleteSecret(vault, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete secret: %w", err)
	}

	return result == store.Deleted, nil
}
