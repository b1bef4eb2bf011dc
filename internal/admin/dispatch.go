// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package admin

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/sivanov/vaulty/models"
)

// dispatch decodes cmd's body into the parameter struct its tag implies,
// calls the matching service method with the session's authenticated
// caller, and shapes the result into the value commandLoop marshals back.
// Any non-nil error here becomes a per-request ErrorFrame; the session
// itself stays open.
func (s *session) dispatch(ctx context.Context, cmd models.AdminCommand) (any, error) {
	switch cmd.Tag {

	case "CreateUser":
		var p models.CreateUserParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid CreateUser parameters: %w", err)
		}
		result, err := s.services.Users.CreateUser(ctx, s.caller, p)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "FindUser":
		var p models.FindUserParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid FindUser parameters: %w", err)
		}
		entry, found, err := s.services.Users.FindUser(ctx, s.caller, p.Username)
		if err != nil {
			return nil, err
		}
		if !found {
			return json.RawMessage(models.NotFoundFrame), nil
		}
		return models.FoundFrame{Found: entry}, nil

	case "ListUsers":
		users, err := s.services.Users.ListUsers(ctx, s.caller)
		if err != nil {
			return nil, err
		}
		return models.ListUsersResponse{Users: users}, nil

	case "DeleteUser":
		var p models.DeleteUserParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid DeleteUser parameters: %w", err)
		}
		result, err := s.services.Users.DeleteUser(ctx, s.caller, p.Username)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "PromoteUser":
		var p models.PromoteUserParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid PromoteUser parameters: %w", err)
		}
		result, err := s.services.Users.PromoteUser(ctx, s.caller, p.Username)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "DemoteUser":
		var p models.DemoteUserParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid DemoteUser parameters: %w", err)
		}
		result, err := s.services.Users.DemoteUser(ctx, s.caller, p.Username)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "ChangePasswordForUser":
		var p models.ChangePasswordForUserParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid ChangePasswordForUser parameters: %w", err)
		}
		result, err := s.services.Users.ChangePasswordForUser(ctx, s.caller, p.Username, p.Password)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "ChangeSgForUser":
		var p models.ChangeSgForUserParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid ChangeSgForUser parameters: %w", err)
		}
		result, err := s.services.Users.ChangeSGForUser(ctx, s.caller, p.Username, p.SG)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "CreateAccessKey":
		var p models.CreateAccessKeyParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid CreateAccessKey parameters: %w", err)
		}
		issued, err := s.services.AccessKeys.CreateAccessKey(ctx, s.caller, p)
		if err != nil {
			return nil, err
		}
		return issued, nil

	case "ListAccessKeys":
		var p models.ListAccessKeysParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid ListAccessKeys parameters: %w", err)
		}
		keys, err := s.services.AccessKeys.ListAccessKeys(ctx, s.caller, p.Vault)
		if err != nil {
			return nil, err
		}
		return models.ListAccessKeysResponse{AccessKeys: keys}, nil

	case "FindAccessKey":
		var p models.FindAccessKeyParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid FindAccessKey parameters: %w", err)
		}
		summary, found, err := s.services.AccessKeys.FindAccessKey(ctx, s.caller, p.Vault, p.AccessKey)
		if err != nil {
			return nil, err
		}
		if !found {
			return json.RawMessage(models.NotFoundFrame), nil
		}
		return models.FoundFrame{Found: summary}, nil

	case "DeleteAccessKey":
		var p models.DeleteAccessKeyParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid DeleteAccessKey parameters: %w", err)
		}
		result, err := s.services.AccessKeys.DeleteAccessKey(ctx, s.caller, p.Vault, p.AccessKey)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "ChangePermissionForAccessKey":
		var p models.ChangePermissionForAccessKeyParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid ChangePermissionForAccessKey parameters: %w", err)
		}
		result, err := s.services.AccessKeys.ChangePermissionForAccessKey(ctx, s.caller, p.Vault, p.AccessKey, p.Permission)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "ChangeSgForAccessKey":
		var p models.ChangeSgForAccessKeyParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid ChangeSgForAccessKey parameters: %w", err)
		}
		result, err := s.services.AccessKeys.ChangeSGForAccessKey(ctx, s.caller, p.Vault, p.AccessKey, p.SG)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "ListVaults":
		vaults, err := s.services.Vaults.ListVaults(ctx, s.caller)
		if err != nil {
			return nil, err
		}
		return models.ListVaultsResponse{Vaults: vaults}, nil

	case "FindVault":
		var p models.FindVaultParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid FindVault parameters: %w", err)
		}
		summary, found, err := s.services.Vaults.FindVault(ctx, s.caller, p.Vault)
		if err != nil {
			return nil, err
		}
		if !found {
			return json.RawMessage(models.NotFoundFrame), nil
		}
		return models.FoundFrame{Found: summary}, nil

	case "DeleteVault":
		var p models.DeleteVaultParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid DeleteVault parameters: %w", err)
		}
		result, err := s.services.Vaults.DeleteVault(ctx, s.caller, p.Vault)
		if err != nil {
			return nil, err
		}
		return models.ResultFrame{Result: result}, nil

	case "InsertSecret":
		var p models.InsertSecretParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid InsertSecret parameters: %w", err)
		}
		plaintext, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, fmt.Errorf("data is not valid base64: %w", err)
		}
		if len(plaintext) > models.MaxSecretSize {
			return nil, fmt.Errorf("secret exceeds maximum size of %d bytes", models.MaxSecretSize)
		}

		created, err := s.services.Secrets.InsertSecret(ctx, p.Vault, p.SecretName, plaintext)
		if err != nil {
			return nil, err
		}
		if created {
			return models.ResultFrame{Result: models.ResultCreated}, nil
		}
		return models.ResultFrame{Result: models.ResultUpdated}, nil

	case "ListSecrets":
		var p models.ListSecretsParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid ListSecrets parameters: %w", err)
		}
		response, err := s.services.Secrets.ListSecrets(ctx, p.Vault)
		if err != nil {
			return nil, err
		}
		return response, nil

	case "FindSecret":
		var p models.FindSecretParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid FindSecret parameters: %w", err)
		}
		plaintext, found, err := s.services.Secrets.FindSecret(ctx, p.Vault, p.SecretName)
		if err != nil {
			return nil, err
		}
		if !found {
			return json.RawMessage(models.NotFoundFrame), nil
		}
		return models.FoundFrame{Found: models.FoundSecretPayload{
			Data: base64.StdEncoding.EncodeToString(plaintext),
		}}, nil

	case "DeleteSecret":
		var p models.DeleteSecretParams
		if err := json.Unmarshal(cmd.Body, &p); err != nil {
			return nil, fmt.Errorf("invalid DeleteSecret parameters: %w", err)
		}
		deleted, err := s.services.Secrets.DeleteSecret(ctx, p.Vault, p.SecretName)
		if err != nil {
			return nil, err
		}
		if deleted {
			return models.ResultFrame{Result: models.ResultDeleted}, nil
		}
		return models.ResultFrame{Result: models.ResultNotFound}, nil

	default:
		return nil, fmt.Errorf("unknown admin command %q", cmd.Tag)
	}
}
