// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// SignSecretAccessKey signs the plaintext secret-access-key handed to a
// caller at access-key creation time. The returned value is a DER-encoded
// ECDSA signature, base64-encoded for storage alongside the access key —
// the plaintext secret-access-key itself is never persisted.
func (k *Keychain) SignSecretAccessKey(secretAccessKey string) (string, error) {
	digest := sha256.Sum256([]byte(secretAccessKey))

	sig, err := ecdsa.SignASN1(rand.Reader, k.ecdsaSigning, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign secret access key: %w", err)
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}

// VerifySecretAccessKey checks a caller-supplied secret-access-key against
// the signature stored for an access key. Returns ErrSignatureMismatch on
// any failure to verify (malformed signature, malformed encoding, or a
// genuine mismatch); those cases are all the caller needs to distinguish.
func (k *Keychain) VerifySecretAccessKey(signature, secretAccessKey string) error {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrSignatureMismatch
	}

	digest := sha256.Sum256([]byte(secretAccessKey))

	if !ecdsa.VerifyASN1(k.ecdsaVerifying, digest[:], sig) {
		return ErrSignatureMismatch
	}

	return nil
}
