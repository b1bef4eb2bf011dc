// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	"github.com/sivanov/vaulty/internal/config"
)

// Keychain holds every piece of key material the node needs for its
// lifetime: the RSA pair and AES key+nonce protecting secret bodies, and
// the ECDSA pair attesting access-key signatures. It is built once at
// startup by [LoadKeychain] and passed by reference to every collaborator
// that needs it — never stored in a package-level global.
type Keychain struct {
	rsaPrivate *rsa.PrivateKey
	rsaPublic  *rsa.PublicKey

	aesKey   []byte // 32 bytes
	aesNonce []byte // 12 bytes, reused for every AES-GCM call on this node

	ecdsaSigning   *ecdsa.PrivateKey
	ecdsaVerifying *ecdsa.PublicKey
}

// LoadKeychain reads every key-material file named in cfg and ak, validates
// their lengths, and returns a ready-to-use *Keychain. cmd/server calls
// [LoadSecretsKeyMaterial] and [LoadAccessKeyMaterial] separately so a
// failure in one or the other maps to its own exit code (3 and 4
// respectively); LoadKeychain is the convenience form for tests and any
// caller that doesn't need that distinction.
func LoadKeychain(cfg config.Secrets, ak config.AccessKeys) (*Keychain, error) {
	rsaPriv, rsaPub, aesKey, aesNonce, err := LoadSecretsKeyMaterial(cfg)
	if err != nil {
		return nil, err
	}

	ecdsaSign, ecdsaVerify, err := LoadAccessKeyMaterial(ak)
	if err != nil {
		return nil, err
	}

	return &Keychain{
		rsaPrivate:     rsaPriv,
		rsaPublic:      rsaPub,
		aesKey:         aesKey,
		aesNonce:       aesNonce,
		ecdsaSigning:   ecdsaSign,
		ecdsaVerifying: ecdsaVerify,
	}, nil
}

// NewKeychain assembles a *Keychain from already-loaded key material. It lets
// cmd/server call [LoadSecretsKeyMaterial] and [LoadAccessKeyMaterial]
// separately, mapping each to its own startup exit code, while still handing
// the rest of the application a single *Keychain.
func NewKeychain(rsaPriv *rsa.PrivateKey, rsaPub *rsa.PublicKey, aesKey, aesNonce []byte, ecdsaSigning *ecdsa.PrivateKey, ecdsaVerifying *ecdsa.PublicKey) *Keychain {
	return &Keychain{
		rsaPrivate:     rsaPriv,
		rsaPublic:      rsaPub,
		aesKey:         aesKey,
		aesNonce:       aesNonce,
		ecdsaSigning:   ecdsaSigning,
		ecdsaVerifying: ecdsaVerifying,
	}
}

// LoadSecretsKeyMaterial reads the RSA pair and AES key+nonce backing the
// secret envelope pipeline. Any failure here is fatal at startup (exit
// code 3, see cmd/server).
func LoadSecretsKeyMaterial(cfg config.Secrets) (rsaPriv *rsa.PrivateKey, rsaPub *rsa.PublicKey, aesKey, aesNonce []byte, err error) {
	rsaPriv, err = loadRSAPrivateKey(cfg.RSAPrivateKeyFile)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load rsa private key: %w", err)
	}

	rsaPub, err = loadRSAPublicKey(cfg.RSAPublicKeyFile)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load rsa public key: %w", err)
	}

	if rsaPriv.Size() < minRSAModulusSize || rsaPub.Size() < minRSAModulusSize {
		return nil, nil, nil, nil, fmt.Errorf("rsa key modulus too small: need at least %d bytes", minRSAModulusSize)
	}

	aesKey, err = loadBase64File(cfg.AESKeyFile, 32)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load aes key: %w", err)
	}

	aesIV, err := loadBase64File(cfg.AESIVFile, 12)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load aes nonce: %w", err)
	}

	return rsaPriv, rsaPub, aesKey, aesIV[:12], nil
}

// LoadAccessKeyMaterial reads the ECDSA-P256 pair attesting access-key
// signatures. Any failure here is fatal at startup (exit code 4, see
// cmd/server).
func LoadAccessKeyMaterial(ak config.AccessKeys) (signing *ecdsa.PrivateKey, verifying *ecdsa.PublicKey, err error) {
	signing, err = loadECDSASigningKey(ak.SigningKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ecdsa signing key: %w", err)
	}

	verifying, err = loadECDSAVerifyingKey(ak.VerifyingKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load ecdsa verifying key: %w", err)
	}

	return signing, verifying, nil
}

func readPEMBlock(filename string) (*pem.Block, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", filename, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block found in %q", filename)
	}

	return block, nil
}

func loadRSAPrivateKey(filename string) (*rsa.PrivateKey, error) {
	block, err := readPEMBlock(filename)
	if err != nil {
		return nil, err
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pkcs8 private key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%q does not contain an RSA private key", filename)
	}

	return rsaKey, nil
}

func loadRSAPublicKey(filename string) (*rsa.PublicKey, error) {
	block, err := readPEMBlock(filename)
	if err != nil {
		return nil, err
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%q does not contain an RSA public key", filename)
	}

	return rsaKey, nil
}

func loadECDSASigningKey(filename string) (*ecdsa.PrivateKey, error) {
	block, err := readPEMBlock(filename)
	if err != nil {
		return nil, err
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pkcs8 private key: %w", err)
	}

	ecKey, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%q does not contain an ECDSA private key", filename)
	}

	return ecKey, nil
}

func loadECDSAVerifyingKey(filename string) (*ecdsa.PublicKey, error) {
	block, err := readPEMBlock(filename)
	if err != nil {
		return nil, err
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	ecKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%q does not contain an ECDSA public key", filename)
	}

	return ecKey, nil
}

// loadBase64File reads filename, trims surrounding whitespace, base64
// decodes it, and requires the decoded value be at least wantLen bytes.
func loadBase64File(filename string, wantLen int) ([]byte, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", filename, err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to base64-decode %q: %w", filename, err)
	}

	if len(decoded) < wantLen {
		return nil, fmt.Errorf("%q decodes to %d bytes, want at least %d", filename, len(decoded), wantLen)
	}

	return decoded, nil
}
