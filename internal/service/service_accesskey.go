// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/crypto"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/store"
	"github.com/sivanov/vaulty/models"
)

// maxAccessKeyCollisionRetries bounds the collision-retry loop in
// CreateAccessKey; exhausting it surfaces as an error rather than looping
// forever against a pathologically full vault.
const maxAccessKeyCollisionRetries = 100

type accessKeyService struct {
	store    *store.Store
	keychain *crypto.Keychain
	cfg      config.AccessKeys
	logger   *logger.Logger
}

// NewAccessKeyService builds the AccessKeyService implementation.
func NewAccessKeyService(s *store.Store, keychain *crypto.Keychain, cfg config.AccessKeys, log *logger.Logger) AccessKeyService {
	return &accessKeyService{store: s, keychain: keychain, cfg: cfg, logger: log.GetChildLogger()}
}

// CreateAccessKey mints a fresh (access_key, secret_access_key) pair. Only
// the access_key is retried on collision: a secret_access_key collision
// cannot happen in the store (it is never persisted in plaintext, only its
// signature, which is deterministic but keyed to the distinct access_key
// path it is filed under).
func (a *accessKeyService) CreateAccessKey(ctx context.Context, caller Caller, params models.CreateAccessKeyParams) (models.IssuedAccessKey, error) {
	if params.Vault == "" {
		return models.IssuedAccessKey{}, fmt.Errorf("%w: vault is required", ErrInvalidDataProvided)
	}

	sg, err := parseSecurityGroups(params.SG)
	if err != nil {
		return models.IssuedAccessKey{}, err
	}

	secretAccessKey, err := RandomKey(a.cfg.SecretAccessKeyLength)
	if err != nil {
		return models.IssuedAccessKey{}, err
	}

	signature, err := a.keychain.SignSecretAccessKey(secretAccessKey)
	if err != nil {
		return models.IssuedAccessKey{}, fmt.Errorf("failed to sign secret access key: %w", err)
	}

	doc := models.AccessKey{
		SecretAccessKeySignature: signature,
		Permission:               params.Permission,
		SG:                       sg,
		Created:                  time.Now().UTC().Format(time.RFC3339),
	}

	for attempt := 0; attempt < maxAccessKeyCollisionRetries; attempt++ {
		accessKey, err := RandomKey(a.cfg.AccessKeyLength)
		if err != nil {
			return models.IssuedAccessKey{}, err
		}

		result, err := a.store.CreateAccessKey(params.Vault, accessKey, doc)
		if err != nil {
			return models.IssuedAccessKey{}, fmt.Errorf("failed to create access key: %w", err)
		}

		if result == store.Created {
			return models.IssuedAccessKey{AccessKey: accessKey, SecretAccessKey: secretAccessKey}, nil
		}
	}

	return models.IssuedAccessKey{}, fmt.Errorf("failed to generate a unique access key after %d attempts", maxAccessKeyCollisionRetries)
}

func (a *accessKeyService) ListAccessKeys(ctx context.Context, caller Caller, vault string) ([]models.AccessKeySummary, error) {
	keys, err := a.store.ListAccessKeys(vault)
	if err != nil {
		return nil, fmt.Errorf("failed to list access keys: %w", err)
	}
	return keys, nil
}

func (a *accessKeyService) FindAccessKey(ctx context.Context, caller Caller, vault, accessKey string) (models.AccessKeySummary, bool, error) {
	key, err := a.store.FindAccessKey(vault, accessKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.AccessKeySummary{}, false, nil
		}
		return models.AccessKeySummary{}, false, fmt.Errorf("failed to look up access key: %w", err)
	}

	return models.AccessKeySummary{
		AccessKey:  accessKey,
		Permission: key.Permission,
		SG:         key.SG,
		Created:    key.Created,
		LastUsed:   key.LastUsed,
	}, true, nil
}

func (a *accessKeyService) DeleteAccessKey(ctx context.Context, caller Caller, vault, accessKey string) (models.SimpleResult, error) {
	result, err := a.store.DeleteAccessKey(vault, accessKey)
	if err != nil {
		return "", fmt.Errorf("failed to delete access key: %w", err)
	}

	if result == store.NotFound {
		return models.ResultNotFound, nil
	}
	return models.ResultDeleted, nil
}

func (a *accessKeyService) ChangePermissionForAccessKey(ctx context.Context, caller Caller, vault, accessKey string, permission []models.Permission) (models.SimpleResult, error) {
	result, err := a.store.ChangeAccessKeyPermission(vault, accessKey, permission)
	if err != nil {
		return "", fmt.Errorf("failed to change permission: %w", err)
	}

	if result == store.UpdateNotFound {
		return models.ResultNotFound, nil
	}
	return models.ResultUpdated, nil
}

func (a *accessKeyService) ChangeSGForAccessKey(ctx context.Context, caller Caller, vault, accessKey string, sg []string) (models.SimpleResult, error) {
	parsed, err := parseSecurityGroups(sg)
	if err != nil {
		return "", err
	}

	result, err := a.store.ChangeAccessKeySG(vault, accessKey, parsed)
	if err != nil {
		return "", fmt.Errorf("failed to change security groups: %w", err)
	}

	if result == store.UpdateNotFound {
		return models.ResultNotFound, nil
	}
	return models.ResultUpdated, nil
}
