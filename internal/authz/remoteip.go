// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package authz

import (
	"net"
	"net/http"
)

// RemoteIP extracts and parses the requester's IP from r.RemoteAddr,
// shared by the data-plane authorization middleware and the admin
// channel's login path so both apply the same security-group check
// against the same notion of "requester".
func RemoteIP(r *http.Request) (net.IP, bool) {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	ip := net.ParseIP(host)
	return ip, ip != nil
}
