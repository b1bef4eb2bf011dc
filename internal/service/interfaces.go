// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the business logic behind every admin-channel
// command and data-plane route: user authentication and management, vault
// bookkeeping, access-key issuance, and secret envelope encryption, each
// wired to internal/store, internal/crypto, and internal/authz.
package service

import (
	"context"
	"net"

	"github.com/sivanov/vaulty/models"
)

// Caller identifies the logged-in admin-session user evaluating an
// authorization decision for a command. The zero value is never passed to
// a service method; the WebSocket session only reaches the Command state
// after a successful login.
type Caller struct {
	Username string
	Role     models.UserRole
}

// IsAdmin reports whether the caller holds the Admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// UserService implements user authentication and the user-management admin
// commands.
type UserService interface {
	Login(ctx context.Context, requester net.IP, username, password string) (LoginOutcome, error)
	CreateUser(ctx context.Context, caller Caller, params models.CreateUserParams) (models.SimpleResult, error)
	FindUser(ctx context.Context, caller Caller, username string) (models.ListUsersEntry, bool, error)
	ListUsers(ctx context.Context, caller Caller) ([]models.ListUsersEntry, error)
	DeleteUser(ctx context.Context, caller Caller, username string) (models.SimpleResult, error)
	PromoteUser(ctx context.Context, caller Caller, username string) (models.SimpleResult, error)
	DemoteUser(ctx context.Context, caller Caller, username string) (models.SimpleResult, error)
	ChangePasswordForUser(ctx context.Context, caller Caller, username, password string) (models.SimpleResult, error)
	ChangeSGForUser(ctx context.Context, caller Caller, username string, sg []string) (models.SimpleResult, error)
}

// VaultService implements the vault-management admin commands.
type VaultService interface {
	ListVaults(ctx context.Context, caller Caller) ([]models.VaultSummary, error)
	FindVault(ctx context.Context, caller Caller, vault string) (models.VaultSummary, bool, error)
	DeleteVault(ctx context.Context, caller Caller, vault string) (models.SimpleResult, error)
}

// AccessKeyService implements the access-key-management admin commands.
type AccessKeyService interface {
	CreateAccessKey(ctx context.Context, caller Caller, params models.CreateAccessKeyParams) (models.IssuedAccessKey, error)
	ListAccessKeys(ctx context.Context, caller Caller, vault string) ([]models.AccessKeySummary, error)
	FindAccessKey(ctx context.Context, caller Caller, vault, accessKey string) (models.AccessKeySummary, bool, error)
	DeleteAccessKey(ctx context.Context, caller Caller, vault, accessKey string) (models.SimpleResult, error)
	ChangePermissionForAccessKey(ctx context.Context, caller Caller, vault, accessKey string, permission []models.Permission) (models.SimpleResult, error)
	ChangeSGForAccessKey(ctx context.Context, caller Caller, vault, accessKey string, sg []string) (models.SimpleResult, error)
}

// SecretService implements the secret-management admin commands and backs
// the data-plane HTTP routes.
//
// InsertSecret's bool return reports whether the secret was newly created
// (true) as opposed to overwriting an existing one (false), the detail the
// HTTP layer needs to choose between 201 and 200.
type SecretService interface {
	InsertSecret(ctx context.Context, vault, name string, plaintext []byte) (created bool, err error)
	ListSecrets(ctx context.Context, vault string) (models.ListSecretsResponse, error)
	FindSecret(ctx context.Context, vault, name string) (plaintext []byte, found bool, err error)
	DeleteSecret(ctx context.Context, vault, name string) (deleted bool, err error)
}
