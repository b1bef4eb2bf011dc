// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/sivanov/vaulty/internal/crypto"
	"github.com/sivanov/vaulty/internal/store"
	"github.com/sivanov/vaulty/models"
)

// authorizationScheme is the case-insensitive token that must prefix the
// Authorization header on every data-plane request:
// "Authorization: VAULTY <access_key>:<secret_access_key>".
const authorizationScheme = "VAULTY"

// ErrMissingCredentials is returned when the Authorization header is
// absent or does not carry the VAULTY scheme and access_key:secret_access_key
// pair.
var ErrMissingCredentials = errors.New("authz: missing or malformed Authorization header")

// Credentials is the (access_key, secret_access_key) pair extracted from a
// data-plane request's Authorization header.
type Credentials struct {
	AccessKey       string
	SecretAccessKey string
}

// ParseAuthorizationHeader extracts a Credentials pair from the raw value
// of an Authorization header, or ErrMissingCredentials if the header is
// absent or malformed.
func ParseAuthorizationHeader(header string) (Credentials, error) {
	if len(header) < len(authorizationScheme) {
		return Credentials{}, ErrMissingCredentials
	}

	if !strings.EqualFold(header[:len(authorizationScheme)], authorizationScheme) {
		return Credentials{}, ErrMissingCredentials
	}

	rest := strings.TrimSpace(header[len(authorizationScheme):])

	accessKey, secretAccessKey, ok := strings.Cut(rest, ":")
	if !ok || accessKey == "" || secretAccessKey == "" {
		return Credentials{}, ErrMissingCredentials
	}

	return Credentials{AccessKey: accessKey, SecretAccessKey: secretAccessKey}, nil
}

// Decision is the outcome of a data-plane authorization check.
type Decision int

const (
	// Unauthorized covers every denial branch: unknown access key, IP
	// outside every configured security group, signature mismatch, and
	// missing permission. The data plane never distinguishes these from
	// the outside, by design.
	Unauthorized Decision = iota
	Authorized
)

// DataPlane evaluates the authorization decision procedure for the
// secrets HTTP routes: header parsing is the caller's responsibility
// (see ParseAuthorizationHeader); DataPlane.Check takes it from the
// store lookup onward.
type DataPlane struct {
	store    *store.Store
	keychain *crypto.Keychain
}

// NewDataPlane builds a DataPlane authorizer over the given store and
// keychain.
func NewDataPlane(s *store.Store, k *crypto.Keychain) *DataPlane {
	return &DataPlane{store: s, keychain: k}
}

// Check runs the full decision procedure for one data-plane request:
// look up (vault, access_key), validate its security groups against
// requester, verify the supplied secret-access-key's signature, and
// confirm the permission grant. Any malformed stored security group is
// surfaced as an error (a 500 at the HTTP layer), never silently treated
// as a denial.
func (d *DataPlane) Check(vault string, creds Credentials, requester net.IP, want models.Permission) (Decision, error) {
	key, err := d.store.FindAccessKey(vault, creds.AccessKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Unauthorized, nil
		}
		return Unauthorized, fmt.Errorf("failed to look up access key: %w", err)
	}

	inSG, err := IPInSecurityGroups(requester, key.SG)
	if err != nil {
		return Unauthorized, err
	}
	if !inSG {
		return Unauthorized, nil
	}

	if err := d.keychain.VerifySecretAccessKey(key.SecretAccessKeySignature, creds.SecretAccessKey); err != nil {
		if errors.Is(err, crypto.ErrSignatureMismatch) {
			return Unauthorized, nil
		}
		return Unauthorized, fmt.Errorf("failed to verify secret access key: %w", err)
	}

	if !models.HasPermission(key.Permission, want) {
		return Unauthorized, nil
	}

	return Authorized, nil
}

// RefreshLastUsed best-effort stamps the access key's last_used field in
// a standalone write transaction, decoupled from the authorization
// decision above.
func (d *DataPlane) RefreshLastUsed(vault, accessKey string) error {
	return d.store.RefreshAccessKeyLastUsed(vault, accessKey)
}
