// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// ErrInvalidDataProvided is returned when a command's parameters fail
// basic structural validation (empty required field, malformed CIDR,
// unparseable security group) before any store access is attempted.
var ErrInvalidDataProvided = errors.New("service: invalid data provided")

// ErrForbidden is returned when a caller is logged in but lacks the
// privilege the requested command requires (e.g. a non-Admin user trying
// to change another user's password).
var ErrForbidden = errors.New("service: forbidden")
