// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// ErrEmptySecret is returned by Encrypt when asked to protect a zero-length
// plaintext. Vaulty secrets are opaque but never empty.
var ErrEmptySecret = errors.New("crypto: secret body must not be empty")

// ErrMalformedEnvelope is returned by Decrypt when the stored ciphertext is
// not a whole number of RSA-modulus-sized blocks.
var ErrMalformedEnvelope = errors.New("crypto: malformed secret envelope")

// ErrSignatureMismatch is returned by VerifySecretAccessKey when the
// supplied secret-access-key does not match the stored signature.
var ErrSignatureMismatch = errors.New("crypto: secret-access-key signature mismatch")
