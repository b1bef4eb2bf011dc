package models

// Permission is one of the capabilities an access key can be granted over
// the secrets of its vault.
type Permission string

const (
	ListSecrets    Permission = "ListSecrets"
	DeleteSecrets  Permission = "DeleteSecrets"
	CreateSecrets  Permission = "CreateSecrets"
	DecryptSecrets Permission = "DecryptSecrets"
)

// HasPermission reports whether want is present in granted.
func HasPermission(granted []Permission, want Permission) bool {
	for _, p := range granted {
		if p == want {
			return true
		}
	}
	return false
}

// AccessKey is the persisted value for the composite key
// (vault_name, access_key_id) in the access_keys table. The plaintext
// secret-access-key is never stored; only an ECDSA-P256 signature over it
// (DER-encoded, base64-stored) is kept, so possession of the signature
// alone proves nothing without the plaintext.
type AccessKey struct {
	// SecretAccessKeySignature is base64(DER(ECDSA-P256-Sign(secret_access_key))).
	SecretAccessKeySignature string `json:"secret_access_key"`
	// Permission is the set of capabilities granted to this key.
	Permission []Permission `json:"permission"`
	// SG restricts the source IPs this key is honored from.
	SG []SecurityGroup `json:"sg"`
	// Created is the RFC-3339 creation timestamp.
	Created string `json:"created"`
	// LastUsed is the RFC-3339 timestamp of the most recent authorized use,
	// updated best-effort in a separate write transaction.
	LastUsed *string `json:"last_used,omitempty"`
}

// AccessKeySummary pairs an AccessKey's identifier with its persisted
// fields, the shape returned by ListAccessKeys and FindAccessKey.
type AccessKeySummary struct {
	AccessKey string          `json:"access_key"`
	Permission []Permission   `json:"permission"`
	SG         []SecurityGroup `json:"sg"`
	Created    string          `json:"created"`
	LastUsed   *string         `json:"last_used,omitempty"`
}

// IssuedAccessKey is returned exactly once, at creation time, and carries
// the plaintext secret-access-key that is never stored or shown again.
type IssuedAccessKey struct {
	AccessKey       string `json:"access_key"`
	SecretAccessKey string `json:"secret_access_key"`
}
