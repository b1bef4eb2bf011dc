// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the vaulty
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Server holds listener address and TLS settings.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds the embedded KV store path.
	Storage Storage `envPrefix:"STORAGE_"`

	// Secrets holds key-material file paths for the envelope crypto pipeline.
	Secrets Secrets `envPrefix:"SECRETS_"`

	// AccessKeys holds ECDSA key-material paths and access-key generation
	// parameters.
	AccessKeys AccessKeys `envPrefix:"ACCESS_KEYS_"`

	// Users holds login-delay parameters for the admin authentication path.
	Users Users `envPrefix:"USERS_"`

	// Logger holds structured-logging sink configuration.
	Logger Logger `envPrefix:"LOGGER_"`

	// NodeName identifies this node in admin login responses. Defaults to
	// the OS hostname when empty.
	NodeName string `env:"NODE_NAME"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Server holds the network address and TLS settings for the single
// HTTP(S)+WebSocket listener.
type Server struct {
	// Address is the TCP address the listener binds, in "host:port" form.
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS"`

	// TLSCertFile, when non-empty along with TLSKeyFile, switches the
	// listener to HTTPS. Plain HTTP and TLS are mutually exclusive.
	// Env: SERVER_TLS_CERT_FILE
	TLSCertFile string `env:"TLS_CERT_FILE"`

	// TLSKeyFile is the PEM private key paired with TLSCertFile.
	// Env: SERVER_TLS_KEY_FILE
	TLSKeyFile string `env:"TLS_KEY_FILE"`
}

// Storage holds the embedded KV store location.
type Storage struct {
	// DataFile is the path to the bbolt database file backing the four
	// logical tables (users, vaults, access_keys, secrets).
	// Env: STORAGE_DATA_FILE
	DataFile string `env:"DATA_FILE"`
}

// Secrets holds the key-material paths for the secret envelope pipeline
// (AES-256-GCM + RSA-PKCS#1-v1.5 block chaining).
type Secrets struct {
	// RSAPrivateKeyFile is a PKCS#8 PEM RSA private key.
	// Env: SECRETS_RSA_PRIVATE_KEY_FILE
	RSAPrivateKeyFile string `env:"RSA_PRIVATE_KEY_FILE"`

	// RSAPublicKeyFile is a SubjectPublicKeyInfo PEM RSA public key.
	// Env: SECRETS_RSA_PUBLIC_KEY_FILE
	RSAPublicKeyFile string `env:"RSA_PUBLIC_KEY_FILE"`

	// AESKeyFile holds a base64-encoded 32-byte AES-256 key, whitespace
	// trimmed.
	// Env: SECRETS_AES_KEY_FILE
	AESKeyFile string `env:"AES_KEY_FILE"`

	// AESIVFile holds a base64-encoded value whose first 12 bytes are used
	// as the AES-GCM nonce for every encryption on this node.
	// Env: SECRETS_AES_IV_FILE
	AESIVFile string `env:"AES_IV_FILE"`
}

// AccessKeys holds ECDSA key-material paths and access-key generation
// parameters.
type AccessKeys struct {
	// SigningKeyFile is a PKCS#8 PEM ECDSA-P256 private key used to sign
	// freshly minted secret-access-keys.
	// Env: ACCESS_KEYS_SIGNING_KEY_FILE
	SigningKeyFile string `env:"SIGNING_KEY_FILE"`

	// VerifyingKeyFile is a SubjectPublicKeyInfo PEM ECDSA-P256 public key
	// used to verify secret-access-keys on the data plane.
	// Env: ACCESS_KEYS_VERIFYING_KEY_FILE
	VerifyingKeyFile string `env:"VERIFYING_KEY_FILE"`

	// AccessKeyLength is the number of characters generated for a new
	// access_key identifier.
	// Env: ACCESS_KEYS_ACCESS_KEY_LENGTH
	AccessKeyLength int `env:"ACCESS_KEY_LENGTH"`

	// SecretAccessKeyLength is the number of characters generated for a new
	// secret_access_key.
	// Env: ACCESS_KEYS_SECRET_ACCESS_KEY_LENGTH
	SecretAccessKeyLength int `env:"SECRET_ACCESS_KEY_LENGTH"`

	// DelayUnsuccessfulAttemptsMillis is the constant-time delay applied
	// before every denied or failed data-plane authorization response.
	// Env: ACCESS_KEYS_DELAY_UNSUCCESSFUL_ATTEMPTS_MILLIS
	DelayUnsuccessfulAttemptsMillis uint64 `env:"DELAY_UNSUCCESSFUL_ATTEMPTS_MILLIS"`
}

// Users holds login-delay parameters for the admin channel's
// user-authentication path.
type Users struct {
	// DelayUnsuccessfulAttemptsMillis is the constant-time delay applied
	// before every Denied admin login response.
	// Env: USERS_DELAY_UNSUCCESSFUL_ATTEMPTS_MILLIS
	DelayUnsuccessfulAttemptsMillis uint64 `env:"DELAY_UNSUCCESSFUL_ATTEMPTS_MILLIS"`
}

// Logger holds structured-logging sink configuration.
type Logger struct {
	// LogFilePath, when non-empty, is an additional sink every log entry is
	// written to alongside stdout. The file is opened append-only and
	// created if missing; stdout is always written regardless.
	// Env: LOGGER_LOG_FILE_PATH
	LogFilePath string `env:"LOG_FILE_PATH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in zero-value fields that must never be empty at
// runtime, mirroring the defaults the original implementation hard-codes.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.AccessKeys.AccessKeyLength == 0 {
		cfg.AccessKeys.AccessKeyLength = 20
	}
	if cfg.AccessKeys.SecretAccessKeyLength == 0 {
		cfg.AccessKeys.SecretAccessKeyLength = 40
	}
	if cfg.AccessKeys.DelayUnsuccessfulAttemptsMillis == 0 {
		cfg.AccessKeys.DelayUnsuccessfulAttemptsMillis = 1000
	}
	if cfg.Users.DelayUnsuccessfulAttemptsMillis == 0 {
		cfg.Users.DelayUnsuccessfulAttemptsMillis = 1000
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = "0.0.0.0:8443"
	}
	if cfg.Storage.DataFile == "" {
		cfg.Storage.DataFile = "vaulty.db"
	}
	if cfg.NodeName == "" {
		if hostname, err := os.Hostname(); err == nil {
			cfg.NodeName = hostname
		}
	}
}

// PingInterval is the fixed interval between admin session liveness pings.
const PingInterval = time.Second
