// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// vaulty server's data-plane handlers and admin-channel dispatcher.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies, WebSocket error frames, or log entries to describe
// the outcome of an operation. Keeping them in one place ensures consistent
// wording across both transports.
package app

const (
	// MsgUnauthorized is the data-plane body on every 401 response,
	// regardless of which branch of the authorization decision procedure
	// failed — the caller is never told which.
	MsgUnauthorized = "unauthorized"

	// MsgInternalServerError is written on any 500 response or admin error
	// frame caused by a transient storage or crypto failure.
	MsgInternalServerError = "internal server error"

	// MsgNotFound is the data-plane body on a 404 for a missing secret.
	MsgNotFound = "not found"

	// MsgEmptyBody is returned when a secret insert/update request carries
	// an empty request body.
	MsgEmptyBody = "request body must not be empty"

	// MsgBodyTooLarge is returned when a secret insert/update request body
	// exceeds models.MaxSecretSize.
	MsgBodyTooLarge = "request body exceeds maximum secret size"

	// MsgInvalidSecurityGroup is returned on the admin channel when a
	// supplied CIDR string fails to parse.
	MsgInvalidSecurityGroup = "invalid security group"
)
