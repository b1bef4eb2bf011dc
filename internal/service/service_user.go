// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/sivanov/vaulty/internal/authz"
	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/crypto"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/store"
	"github.com/sivanov/vaulty/models"
)

// usernamePattern restricts a new user's key to the charset spec.md §3
// requires: letters, digits, underscore, hyphen.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// LoginOutcome is the result of UserService.Login. Role is only meaningful
// when Successful is true.
type LoginOutcome struct {
	Successful bool
	Role       models.UserRole
}

type userService struct {
	store  *store.Store
	cfg    config.Users
	logger *logger.Logger
}

// NewUserService builds the UserService implementation.
func NewUserService(s *store.Store, cfg config.Users, log *logger.Logger) UserService {
	return &userService{store: s, cfg: cfg, logger: log.GetChildLogger()}
}

// Login runs the admin-path authentication decision procedure: user lookup,
// security-group check, Argon2id password verification, and a best-effort
// last_login stamp on success. The constant-time delay on failure is the
// caller's responsibility, since only the caller (the session handler) owns
// the connection's closing behavior.
func (u *userService) Login(ctx context.Context, requester net.IP, username, password string) (LoginOutcome, error) {
	user, err := u.store.FindUser(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginOutcome{}, nil
		}
		return LoginOutcome{}, fmt.Errorf("failed to look up user: %w", err)
	}

	inSG, err := authz.IPInSecurityGroups(requester, user.SG)
	if err != nil {
		return LoginOutcome{}, err
	}
	if !inSG {
		return LoginOutcome{}, nil
	}

	if !crypto.VerifyPassword(user.PasswordHash, password) {
		return LoginOutcome{}, nil
	}

	if err := u.store.RefreshUserLastLogin(username, time.Now().UTC().Format(time.RFC3339)); err != nil {
		u.logger.Warn().Err(err).Str("user", username).Msg("failed to refresh last_login")
	}

	return LoginOutcome{Successful: true, Role: user.Role}, nil
}

func (u *userService) CreateUser(ctx context.Context, caller Caller, params models.CreateUserParams) (models.SimpleResult, error) {
	if !caller.IsAdmin() {
		return models.ResultDenied, nil
	}

	if params.Username == "" || params.Password == "" {
		return "", fmt.Errorf("%w: username and password are required", ErrInvalidDataProvided)
	}

	if !usernamePattern.MatchString(params.Username) {
		return "", fmt.Errorf("%w: username %q must match [A-Za-z0-9_-]+", ErrInvalidDataProvided, params.Username)
	}

	sg, err := parseSecurityGroups(params.SG)
	if err != nil {
		return "", err
	}

	hash, err := crypto.HashPassword(params.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := u.store.CreateUser(params.Username, models.User{
		PasswordHash: hash,
		Role:         params.Role,
		SG:           sg,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	if result == store.Exists {
		return models.ResultExists, nil
	}
	return models.ResultCreated, nil
}

func (u *userService) FindUser(ctx context.Context, caller Caller, username string) (models.ListUsersEntry, bool, error) {
	user, err := u.store.FindUser(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ListUsersEntry{}, false, nil
		}
		return models.ListUsersEntry{}, false, fmt.Errorf("failed to look up user: %w", err)
	}

	return models.ListUsersEntry{Username: username, Role: user.Role, LastLogin: user.LastLogin}, true, nil
}

func (u *userService) ListUsers(ctx context.Context, caller Caller) ([]models.ListUsersEntry, error) {
	users, err := u.store.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	entries := make([]models.ListUsersEntry, 0, len(users))
	for username, user := range users {
		entries = append(entries, models.ListUsersEntry{Username: username, Role: user.Role, LastLogin: user.LastLogin})
	}
	return entries, nil
}

func (u *userService) DeleteUser(ctx context.Context, caller Caller, username string) (models.SimpleResult, error) {
	if !caller.IsAdmin() {
		return models.ResultDenied, nil
	}

	result, err := u.store.DeleteUser(username)
	if err != nil {
		return "", fmt.Errorf("failed to delete user: %w", err)
	}

	if result == store.NotFound {
		return models.ResultNotFound, nil
	}
	return models.ResultDeleted, nil
}

func (u *userService) PromoteUser(ctx context.Context, caller Caller, username string) (models.SimpleResult, error) {
	if !caller.IsAdmin() {
		return models.ResultDenied, nil
	}

	user, err := u.store.FindUser(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ResultNotFound, nil
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Role == models.RoleAdmin {
		return models.ResultNoChange, nil
	}

	if _, err := u.store.SetUserRole(username, models.RoleAdmin); err != nil {
		return "", fmt.Errorf("failed to promote user: %w", err)
	}
	return models.ResultPromoted, nil
}

func (u *userService) DemoteUser(ctx context.Context, caller Caller, username string) (models.SimpleResult, error) {
	if !caller.IsAdmin() {
		return models.ResultDenied, nil
	}

	user, err := u.store.FindUser(username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ResultNotFound, nil
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Role == models.RoleUser {
		return models.ResultNoChange, nil
	}

	if _, err := u.store.SetUserRole(username, models.RoleUser); err != nil {
		return "", fmt.Errorf("failed to demote user: %w", err)
	}
	return models.ResultDemoted, nil
}

func (u *userService) ChangePasswordForUser(ctx context.Context, caller Caller, username, password string) (models.SimpleResult, error) {
	if !caller.IsAdmin() && caller.Username != username {
		return models.ResultDenied, nil
	}

	if password == "" {
		return "", fmt.Errorf("%w: password is required", ErrInvalidDataProvided)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	result, err := u.store.ChangeUserPassword(username, hash)
	if err != nil {
		return "", fmt.Errorf("failed to change password: %w", err)
	}

	if result == store.UpdateNotFound {
		return models.ResultNotFound, nil
	}
	return models.ResultUpdated, nil
}

func (u *userService) ChangeSGForUser(ctx context.Context, caller Caller, username string, sg []string) (models.SimpleResult, error) {
	if !caller.IsAdmin() && caller.Username != username {
		return models.ResultDenied, nil
	}

	parsed, err := parseSecurityGroups(sg)
	if err != nil {
		return "", err
	}

	result, err := u.store.ChangeUserSG(username, parsed)
	if err != nil {
		return "", fmt.Errorf("failed to change security groups: %w", err)
	}

	if result == store.UpdateNotFound {
		return models.ResultNotFound, nil
	}
	return models.ResultUpdated, nil
}
