// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"SERVER_ADDRESS":       "localhost:8443",
		"SERVER_TLS_CERT_FILE": "/certs/node.pem",
		"SERVER_TLS_KEY_FILE":  "/certs/node.key",

		"STORAGE_DATA_FILE": "/var/data/vaulty.db",

		"SECRETS_RSA_PRIVATE_KEY_FILE": "/keys/rsa_private.pem",
		"SECRETS_RSA_PUBLIC_KEY_FILE":  "/keys/rsa_public.pem",
		"SECRETS_AES_KEY_FILE":         "/keys/aes.key",
		"SECRETS_AES_IV_FILE":          "/keys/aes.iv",

		"ACCESS_KEYS_SIGNING_KEY_FILE":                      "/keys/ak_signing.pem",
		"ACCESS_KEYS_VERIFYING_KEY_FILE":                    "/keys/ak_verifying.pem",
		"ACCESS_KEYS_ACCESS_KEY_LENGTH":                     "24",
		"ACCESS_KEYS_SECRET_ACCESS_KEY_LENGTH":               "48",
		"ACCESS_KEYS_DELAY_UNSUCCESSFUL_ATTEMPTS_MILLIS":     "1500",

		"USERS_DELAY_UNSUCCESSFUL_ATTEMPTS_MILLIS": "2000",

		"NODE_NAME": "node-a",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "localhost:8443", cfg.Server.Address)
	assert.Equal(t, "/certs/node.pem", cfg.Server.TLSCertFile)
	assert.Equal(t, "/certs/node.key", cfg.Server.TLSKeyFile)

	assert.Equal(t, "/var/data/vaulty.db", cfg.Storage.DataFile)

	assert.Equal(t, "/keys/rsa_private.pem", cfg.Secrets.RSAPrivateKeyFile)
	assert.Equal(t, "/keys/rsa_public.pem", cfg.Secrets.RSAPublicKeyFile)
	assert.Equal(t, "/keys/aes.key", cfg.Secrets.AESKeyFile)
	assert.Equal(t, "/keys/aes.iv", cfg.Secrets.AESIVFile)

	assert.Equal(t, "/keys/ak_signing.pem", cfg.AccessKeys.SigningKeyFile)
	assert.Equal(t, "/keys/ak_verifying.pem", cfg.AccessKeys.VerifyingKeyFile)
	assert.Equal(t, 24, cfg.AccessKeys.AccessKeyLength)
	assert.Equal(t, 48, cfg.AccessKeys.SecretAccessKeyLength)
	assert.Equal(t, uint64(1500), cfg.AccessKeys.DelayUnsuccessfulAttemptsMillis)

	assert.Equal(t, uint64(2000), cfg.Users.DelayUnsuccessfulAttemptsMillis)

	assert.Equal(t, "node-a", cfg.NodeName)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"NODE_NAME":      "solo",
		"SERVER_ADDRESS": "localhost:8443",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "solo", cfg.NodeName)
	assert.Equal(t, "localhost:8443", cfg.Server.Address)
	assert.Empty(t, cfg.Server.TLSCertFile)

	// Others untouched
	assert.Empty(t, cfg.Secrets.RSAPrivateKeyFile)
	assert.Empty(t, cfg.Storage.DataFile)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, Server{}, cfg.Server)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Secrets{}, cfg.Secrets)
	assert.Equal(t, AccessKeys{}, cfg.AccessKeys)
	assert.Equal(t, Users{}, cfg.Users)
}

func TestParseEnv_OnlySecrets(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"SECRETS_AES_KEY_FILE": "/keys/aes.key",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/keys/aes.key", cfg.Secrets.AESKeyFile)
	assert.Empty(t, cfg.Secrets.RSAPrivateKeyFile)
}

func TestParseEnv_InvalidInteger(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"ACCESS_KEYS_ACCESS_KEY_LENGTH": "not-a-number",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"SERVER_ADDRESS",
		"SERVER_TLS_CERT_FILE",
		"SERVER_TLS_KEY_FILE",

		"STORAGE_DATA_FILE",

		"SECRETS_RSA_PRIVATE_KEY_FILE",
		"SECRETS_RSA_PUBLIC_KEY_FILE",
		"SECRETS_AES_KEY_FILE",
		"SECRETS_AES_IV_FILE",

		"ACCESS_KEYS_SIGNING_KEY_FILE",
		"ACCESS_KEYS_VERIFYING_KEY_FILE",
		"ACCESS_KEYS_ACCESS_KEY_LENGTH",
		"ACCESS_KEYS_SECRET_ACCESS_KEY_LENGTH",
		"ACCESS_KEYS_DELAY_UNSUCCESSFUL_ATTEMPTS_MILLIS",

		"USERS_DELAY_UNSUCCESSFUL_ATTEMPTS_MILLIS",

		"NODE_NAME",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
