package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidServerConfig indicates the listener address is empty or
	// only one of TLSCertFile/TLSKeyFile was provided.
	ErrInvalidServerConfig = errors.New("invalid server configuration")
	// ErrInvalidSecretsConfig indicates one or more secret-envelope
	// key-material paths are missing.
	ErrInvalidSecretsConfig = errors.New("invalid secrets configuration")
	// ErrInvalidAccessKeysConfig indicates one or more access-key
	// ECDSA key-material paths are missing.
	ErrInvalidAccessKeysConfig = errors.New("invalid access keys configuration")
)
