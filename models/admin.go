package models

import (
	"encoding/json"
	"fmt"
)

// AdminCommand is the externally-tagged union carried by every inbound
// admin WebSocket text frame: a JSON object with exactly one key naming the
// command and a body holding its parameters (or an empty array/object for
// parameterless commands, e.g. {"ListVaults":[]}).
type AdminCommand struct {
	// Tag is the single object key identifying which command this frame
	// carries (e.g. "CreateUser", "ListVaults").
	Tag string
	// Body is the raw JSON value associated with Tag, to be unmarshalled
	// into the command-specific parameter struct by the dispatcher.
	Body json.RawMessage
}

// UnmarshalJSON decodes a single-key JSON object into an AdminCommand.
// A frame with zero or more than one top-level key is rejected, matching
// the "tagged union" wire contract described for the admin channel.
func (c *AdminCommand) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage, 1)
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("admin command is not a JSON object: %w", err)
	}

	if len(raw) != 1 {
		return fmt.Errorf("admin command frame must have exactly one tag, got %d", len(raw))
	}

	for tag, body := range raw {
		c.Tag = tag
		c.Body = body
	}

	return nil
}

// LoginRequest is the first inbound frame of every admin session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse answers a LoginRequest. NodeName is populated only on
// Granted; on Denied it is always absent (null on the wire).
type LoginResponse struct {
	Result   string  `json:"result"`
	NodeName *string `json:"node_name"`
}

// ErrorFrame is written back on any per-request failure in the Command
// state. It never closes the connection.
type ErrorFrame struct {
	Error string `json:"error"`
}

// --- user management parameters ---

type CreateUserParams struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
	SG       []string `json:"sg"`
}

type FindUserParams struct {
	Username string `json:"username"`
}

type DeleteUserParams struct {
	Username string `json:"username"`
}

type PromoteUserParams struct {
	Username string `json:"username"`
}

type DemoteUserParams struct {
	Username string `json:"username"`
}

type ChangePasswordForUserParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangeSgForUserParams struct {
	Username string   `json:"username"`
	SG       []string `json:"sg"`
}

// --- access key management parameters ---

type CreateAccessKeyParams struct {
	Vault      string       `json:"vault"`
	Permission []Permission `json:"permission"`
	SG         []string     `json:"sg"`
}

type ListAccessKeysParams struct {
	Vault string `json:"vault"`
}

type FindAccessKeyParams struct {
	Vault     string `json:"vault"`
	AccessKey string `json:"access_key"`
}

type DeleteAccessKeyParams struct {
	Vault     string `json:"vault"`
	AccessKey string `json:"access_key"`
}

type ChangePermissionForAccessKeyParams struct {
	Vault      string       `json:"vault"`
	AccessKey  string       `json:"access_key"`
	Permission []Permission `json:"permission"`
}

type ChangeSgForAccessKeyParams struct {
	Vault     string   `json:"vault"`
	AccessKey string   `json:"access_key"`
	SG        []string `json:"sg"`
}

// --- vault management parameters ---

type FindVaultParams struct {
	Vault string `json:"vault"`
}

type DeleteVaultParams struct {
	Vault string `json:"vault"`
}

// --- secret management parameters ---

type InsertSecretParams struct {
	Vault      string `json:"vault"`
	SecretName string `json:"secret_name"`
	Data       string `json:"data"` // base64 plaintext
}

type ListSecretsParams struct {
	Vault string `json:"vault"`
}

type FindSecretParams struct {
	Vault      string `json:"vault"`
	SecretName string `json:"secret_name"`
}

type DeleteSecretParams struct {
	Vault      string `json:"vault"`
	SecretName string `json:"secret_name"`
}

// --- result enums shared across admin command responses ---

// SimpleResult is the small vocabulary most admin mutations answer with.
type SimpleResult string

const (
	ResultCreated  SimpleResult = "Created"
	ResultExists   SimpleResult = "Exists"
	ResultDeleted  SimpleResult = "Deleted"
	ResultNotFound SimpleResult = "NotFound"
	ResultUpdated  SimpleResult = "Updated"
	ResultDenied   SimpleResult = "Denied"
	ResultPromoted SimpleResult = "Promoted"
	ResultDemoted  SimpleResult = "Demoted"
	ResultNoChange SimpleResult = "NoChange"
)

// ResultFrame wraps SimpleResult as the uniform response body for commands
// that only report an outcome (e.g. {"result":"Deleted"}).
type ResultFrame struct {
	Result SimpleResult `json:"result"`
}

// FoundFrame wraps a positive Find* result: {"Found": {...}}.
type FoundFrame struct {
	Found any `json:"Found"`
}

// NotFoundFrame is the constant returned by a Find* command with no match:
// the bare JSON string "NotFound".
const NotFoundFrame = `"NotFound"`

// ListUsersEntry is one row of a ListUsers response.
type ListUsersEntry struct {
	Username  string   `json:"username"`
	Role      UserRole `json:"role"`
	LastLogin *string  `json:"last_login,omitempty"`
}

// ListUsersResponse answers ListUsers.
type ListUsersResponse struct {
	Users []ListUsersEntry `json:"users"`
}

// ListVaultsResponse answers ListVaults.
type ListVaultsResponse struct {
	Vaults []VaultSummary `json:"vaults"`
}

// ListAccessKeysResponse answers ListAccessKeys.
type ListAccessKeysResponse struct {
	AccessKeys []AccessKeySummary `json:"access_keys"`
}

// ListSecretsResponse answers ListSecrets (admin path) and the data-plane
// LIST route, sharing the same shape.
type ListSecretsResponse struct {
	Vault   string          `json:"vault"`
	Secrets []SecretSummary `json:"secrets"`
}
