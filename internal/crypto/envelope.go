// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"fmt"
)

// Encrypt protects a secret body for storage: AES-256-GCM first, under the
// keychain's fixed key and nonce, then RSA-PKCS#1-v1.5 over fixed-size
// chunks of the AES output. The result is base64-encoded, ready to drop
// straight into a models.Secret.Body field.
func (k *Keychain) Encrypt(plaintext []byte) (string, error) {
	if len(plaintext) == 0 {
		return "", ErrEmptySecret
	}

	block, err := aes.NewCipher(k.aesKey)
	if err != nil {
		return "", fmt.Errorf("failed to initialize aes cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to initialize gcm mode: %w", err)
	}

	sealed := gcm.Seal(nil, k.aesNonce, plaintext, nil)

	// PKCS#1-v1.5 caps a single block's plaintext at modulus size - 11
	// bytes; clamp SecretBlockSize down to that ceiling so encryption never
	// fails with ErrMessageTooLong regardless of the configured key size.
	blockSize := SecretBlockSize
	if max := k.rsaPublic.Size() - 11; max < blockSize {
		blockSize = max
	}

	var ciphertext []byte
	for offset := 0; offset < len(sealed); offset += blockSize {
		end := offset + blockSize
		if end > len(sealed) {
			end = len(sealed)
		}

		encBlock, err := rsa.EncryptPKCS1v15(rand.Reader, k.rsaPublic, sealed[offset:end])
		if err != nil {
			return "", fmt.Errorf("failed to rsa-encrypt block: %w", err)
		}
		ciphertext = append(ciphertext, encBlock...)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt reverses Encrypt. The stored ciphertext is chunked by the RSA
// modulus size — PKCS#1-v1.5 ciphertext blocks are always modulus-sized
// regardless of how large the corresponding plaintext block was — decrypted
// block by block, reassembled, and finally opened with AES-GCM.
func (k *Keychain) Decrypt(stored string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to base64-decode secret envelope: %w", err)
	}

	modulusSize := k.rsaPrivate.Size()
	if modulusSize == 0 || len(ciphertext)%modulusSize != 0 || len(ciphertext) == 0 {
		return nil, ErrMalformedEnvelope
	}

	var sealed []byte
	for offset := 0; offset < len(ciphertext); offset += modulusSize {
		chunk := ciphertext[offset : offset+modulusSize]

		decBlock, err := rsa.DecryptPKCS1v15(rand.Reader, k.rsaPrivate, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to rsa-decrypt block: %w", err)
		}
		sealed = append(sealed, decBlock...)
	}

	block, err := aes.NewCipher(k.aesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize aes cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gcm mode: %w", err)
	}

	plaintext, err := gcm.Open(nil, k.aesNonce, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open aes-gcm envelope: %w", err)
	}

	return plaintext, nil
}
