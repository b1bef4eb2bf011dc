// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accessKeyAlphabet is the character set access keys and secret access keys
// are drawn from.
const accessKeyAlphabet = "1234567890qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM"

// RandomKey returns a random string of length n drawn uniformly from
// accessKeyAlphabet using the OS CSPRNG. Used for access keys, secret
// access keys, and the first-run bootstrap admin password alike.
func RandomKey(n int) (string, error) {
	alphabetLen := big.NewInt(int64(len(accessKeyAlphabet)))

	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random key: %w", err)
		}
		out[i] = accessKeyAlphabet[idx.Int64()]
	}

	return string(out), nil
}
