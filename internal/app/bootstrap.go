// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"context"
	"fmt"

	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/service"
	"github.com/sivanov/vaulty/models"
)

// bootstrapPasswordLength is the length of the random password generated
// for the first-run root admin account.
const bootstrapPasswordLength = 20

// rootUsername is the account name the first-run bootstrap creates.
const rootUsername = "root"

// Bootstrap creates the initial Admin account when the database was just
// created (store.InitializeStateCreated), restricted to 127.0.0.1/32 since
// nothing else could have authenticated yet. The generated password is
// emitted to the structured log exactly once, at Info level, and is never
// recoverable afterward.
//
// A bootstrapping caller cannot go through the normal admin-authenticated
// path (no account exists yet to authenticate as), so Bootstrap constructs
// its own privileged Caller rather than requiring one from the network.
func Bootstrap(ctx context.Context, services *service.Services, log *logger.Logger) error {
	password, err := service.RandomKey(bootstrapPasswordLength)
	if err != nil {
		return fmt.Errorf("failed to generate bootstrap password: %w", err)
	}

	caller := service.Caller{Username: rootUsername, Role: models.RoleAdmin}
	result, err := services.Users.CreateUser(ctx, caller, models.CreateUserParams{
		Username: rootUsername,
		Password: password,
		Role:     models.RoleAdmin,
		SG:       []string{"127.0.0.1/32"},
	})
	if err != nil {
		return fmt.Errorf("failed to create bootstrap user: %w", err)
	}
	if result != models.ResultCreated {
		return fmt.Errorf("bootstrap user creation returned unexpected result %q", result)
	}

	log.Info().Str("user", rootUsername).Str("password", password).
		Msg("first-run bootstrap created the initial admin account")

	return nil
}
