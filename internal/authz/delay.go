// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import (
	"context"
	"time"
)

// Delay blocks for ms milliseconds before a denial response is written,
// on both the data-plane authorization path and the admin login path.
// Holding callers to a single shared helper keeps the two paths from
// drifting into observably different timing behavior.
func Delay(ctx context.Context, ms uint64) {
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
