package models

// Vault is the persisted value for the "vault_name" key in the vaults
// table. A vault is created implicitly by its first child secret or access
// key and carries counters mirroring the child rows so FindVault/ListVaults
// stay O(1) in children.
type Vault struct {
	// Created is the RFC-3339 creation timestamp, set once on first child
	// insertion.
	Created string `json:"created"`
	// SecretsCount is the number of rows in the secrets table whose
	// composite key's vault component equals this vault's name.
	SecretsCount int64 `json:"secrets_count"`
	// AccessKeysCount is the number of rows in the access_keys table whose
	// composite key's vault component equals this vault's name.
	AccessKeysCount int64 `json:"access_keys_count"`
}

// VaultSummary pairs a Vault's name with its persisted fields, the shape
// returned by ListVaults and FindVault.
type VaultSummary struct {
	Vault           string `json:"vault"`
	Created         string `json:"created"`
	SecretsCount    int64  `json:"secrets_count"`
	AccessKeysCount int64  `json:"access_keys_count"`
}

// VaultCounterOp identifies which counter on a Vault row a child insert or
// delete must adjust, and in which direction.
type VaultCounterOp int

const (
	IncreaseSecrets VaultCounterOp = iota
	IncreaseAccessKeys
	DecreaseSecrets
	DecreaseAccessKeys
)
