// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sivanov/vaulty/models"
)

// parseSecurityGroups converts the wire form of a security-group list
// ("<network>/<prefix>" strings, e.g. "10.0.0.0/8") into stored
// models.SecurityGroup values. A malformed entry is reported as
// ErrInvalidDataProvided; the network literal and prefix range are
// re-validated by internal/authz at evaluation time, not here.
func parseSecurityGroups(raw []string) ([]models.SecurityGroup, error) {
	parsed := make([]models.SecurityGroup, 0, len(raw))

	for _, entry := range raw {
		network, prefixStr, ok := strings.Cut(entry, "/")
		if !ok || network == "" {
			return nil, fmt.Errorf("%w: invalid security group %q", ErrInvalidDataProvided, entry)
		}

		prefix, err := strconv.Atoi(prefixStr)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid security group prefix %q", ErrInvalidDataProvided, entry)
		}

		parsed = append(parsed, models.SecurityGroup{Network: network, Prefix: prefix})
	}

	return parsed, nil
}
