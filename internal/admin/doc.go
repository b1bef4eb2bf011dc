// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package admin implements the administrative WebSocket channel: a single
// long-lived connection per session, carrying JSON text frames through a
// Login -> Command state machine. The first frame authenticates the caller
// against the user store; every subsequent frame is a tagged-union admin
// command dispatched to the domain service layer, with a background ping
// keeping the connection's liveness independent of command traffic.
package admin
