// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/store"
	"github.com/sivanov/vaulty/models"
)

type vaultService struct {
	store  *store.Store
	logger *logger.Logger
}

// NewVaultService builds the VaultService implementation.
func NewVaultService(s *store.Store, log *logger.Logger) VaultService {
	return &vaultService{store: s, logger: log.GetChildLogger()}
}

func (v *vaultService) ListVaults(ctx context.Context, caller Caller) ([]models.VaultSummary, error) {
	vaults, err := v.store.ListVaults()
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}
	return vaults, nil
}

func (v *vaultService) FindVault(ctx context.Context, caller Caller, vault string) (models.VaultSummary, bool, error) {
	summary, err := v.store.FindVault(vault)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.VaultSummary{}, false, nil
		}
		return models.VaultSummary{}, false, fmt.Errorf("failed to look up vault: %w", err)
	}
	return summary, true, nil
}

// DeleteVault is grantable to any logged-in user, a coarse authorization
// grant carried over unchanged from the source this service is modeled on.
func (v *vaultService) DeleteVault(ctx context.Context, caller Caller, vault string) (models.SimpleResult, error) {
	result, err := v.store.DeleteVault(vault)
	if err != nil {
		return "", fmt.Errorf("failed to delete vault: %w", err)
	}

	if result == store.NotFound {
		return models.ResultNotFound, nil
	}
	return models.ResultDeleted, nil
}
