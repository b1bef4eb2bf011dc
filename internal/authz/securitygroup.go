// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package authz implements the data-plane authorization decision procedure
// and the shared security-group/constant-time-delay primitives the admin
// login path reuses.
package authz

import (
	"fmt"
	"net"

	"github.com/sivanov/vaulty/models"
)

// ErrInvalidNetwork is returned when a stored security group's network
// field is not a parseable IP literal.
var ErrInvalidNetwork = fmt.Errorf("authz: invalid security group network")

// ErrInvalidPrefix is returned when a stored security group's prefix
// exceeds the address family's maximum (32 for IPv4, 128 for IPv6). This
// is treated as a server-side configuration error, not a client error.
var ErrInvalidPrefix = fmt.Errorf("authz: invalid security group prefix")

// IPInSecurityGroups reports whether requester is contained in at least
// one of the given CIDR blocks. A malformed stored security group (bad
// network literal or out-of-range prefix) is a configuration error and
// aborts the check rather than silently skipping the offending entry.
func IPInSecurityGroups(requester net.IP, groups []models.SecurityGroup) (bool, error) {
	for _, sg := range groups {
		contained, err := ipInSecurityGroup(requester, sg)
		if err != nil {
			return false, err
		}
		if contained {
			return true, nil
		}
	}

	return false, nil
}

func ipInSecurityGroup(requester net.IP, sg models.SecurityGroup) (bool, error) {
	network := net.ParseIP(sg.Network)
	if network == nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidNetwork, sg.Network)
	}

	maxPrefix := 32
	bits := net.IPv4len * 8
	if network.To4() == nil {
		maxPrefix = 128
		bits = net.IPv6len * 8
	}

	if sg.Prefix < 0 || sg.Prefix > maxPrefix {
		return false, fmt.Errorf("%w: %d", ErrInvalidPrefix, sg.Prefix)
	}

	ipNet := &net.IPNet{
		IP:   network.Mask(net.CIDRMask(sg.Prefix, bits)),
		Mask: net.CIDRMask(sg.Prefix, bits),
	}

	return ipNet.Contains(requester), nil
}
