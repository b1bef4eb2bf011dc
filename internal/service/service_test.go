// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/crypto"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/store"
)

// newTestStore opens a fresh bbolt-backed Store in a temp directory,
// closed automatically when the test ends.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, _, err := store.Open(filepath.Join(t.TempDir(), "vaulty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testAccessKeysConfig() config.AccessKeys {
	return config.AccessKeys{
		AccessKeyLength:                 20,
		SecretAccessKeyLength:           40,
		DelayUnsuccessfulAttemptsMillis: 1000,
	}
}

func testLogger() *logger.Logger {
	return logger.Nop()
}

func adminCaller(username string) Caller {
	return Caller{Username: username, Role: "Admin"}
}

func userCaller(username string) Caller {
	return Caller{Username: username, Role: "User"}
}

// newTestKeychain generates fresh RSA/ECDSA/AES key material, writes it to
// PEM/base64 files under a temp directory, and loads it through the same
// crypto.LoadKeychain path production startup uses.
func newTestKeychain(t *testing.T) *crypto.Keychain {
	t.Helper()

	dir := t.TempDir()

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	writePKCS8PEM(t, filepath.Join(dir, "rsa_private.pem"), rsaKey)
	writePKIXPEM(t, filepath.Join(dir, "rsa_public.pem"), &rsaKey.PublicKey)

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	writePKCS8PEM(t, filepath.Join(dir, "ecdsa_signing.pem"), ecKey)
	writePKIXPEM(t, filepath.Join(dir, "ecdsa_verifying.pem"), &ecKey.PublicKey)

	aesKey := make([]byte, 32)
	_, err = rand.Read(aesKey)
	require.NoError(t, err)
	writeBase64File(t, filepath.Join(dir, "aes_key"), aesKey)

	aesNonce := make([]byte, 12)
	_, err = rand.Read(aesNonce)
	require.NoError(t, err)
	writeBase64File(t, filepath.Join(dir, "aes_nonce"), aesNonce)

	keychain, err := crypto.LoadKeychain(
		config.Secrets{
			RSAPrivateKeyFile: filepath.Join(dir, "rsa_private.pem"),
			RSAPublicKeyFile:  filepath.Join(dir, "rsa_public.pem"),
			AESKeyFile:        filepath.Join(dir, "aes_key"),
			AESIVFile:         filepath.Join(dir, "aes_nonce"),
		},
		config.AccessKeys{
			SigningKeyFile:   filepath.Join(dir, "ecdsa_signing.pem"),
			VerifyingKeyFile: filepath.Join(dir, "ecdsa_verifying.pem"),
		},
	)
	require.NoError(t, err)

	return keychain
}

func writePKCS8PEM(t *testing.T, path string, key any) {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	writePEM(t, path, "PRIVATE KEY", der)
}

func writePKIXPEM(t *testing.T, path string, key any) {
	t.Helper()
	der, err := x509.MarshalPKIXPublicKey(key)
	require.NoError(t, err)
	writePEM(t, path, "PUBLIC KEY", der)
}

func writePEM(t *testing.T, path, blockType string, der []byte) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, pem.Encode(f, &pem.Block{Type: blockType, Bytes: der}))
}

func writeBase64File(t *testing.T, path string, raw []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(base64.StdEncoding.EncodeToString(raw)), 0600))
}
