package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestKeychain builds a Keychain from freshly generated in-memory keys,
// bypassing LoadKeychain's file loading so tests don't need fixture files
// on disk.
func newTestKeychain(t *testing.T) *Keychain {
	t.Helper()

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	aesKey := make([]byte, 32)
	_, err = rand.Read(aesKey)
	require.NoError(t, err)

	aesNonce := make([]byte, 12)
	_, err = rand.Read(aesNonce)
	require.NoError(t, err)

	return &Keychain{
		rsaPrivate:     rsaKey,
		rsaPublic:      &rsaKey.PublicKey,
		aesKey:         aesKey,
		aesNonce:       aesNonce,
		ecdsaSigning:   ecKey,
		ecdsaVerifying: &ecKey.PublicKey,
	}
}
