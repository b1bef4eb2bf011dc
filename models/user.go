package models

// UserRole classifies an account's administrative privilege level.
type UserRole string

const (
	// RoleAdmin may manage users, vaults, and access keys.
	RoleAdmin UserRole = "Admin"
	// RoleUser may only manage their own password and security groups.
	RoleUser UserRole = "User"
)

// SecurityGroup restricts the source IPs from which a credential is
// accepted to a single CIDR block.
type SecurityGroup struct {
	// Network is the IP literal half of the "<ip>/<prefix>" wire form.
	Network string `json:"network"`
	// Prefix is the CIDR prefix length; valid values are 0-32 for IPv4
	// addresses and 0-128 for IPv6 addresses.
	Prefix int `json:"prefix"`
}

// User is the persisted value for the "username" key in the users table.
// Key: username, unique, case-sensitive, restricted to [A-Za-z0-9_-].
type User struct {
	// PasswordHash is the Argon2id hash of the account password.
	PasswordHash string `json:"password"`
	// Role is the account's administrative privilege level.
	Role UserRole `json:"role"`
	// LastLogin is the RFC-3339 timestamp of the last successful login,
	// absent until the first one.
	LastLogin *string `json:"last_login,omitempty"`
	// SG is the list of security groups a login request's source IP must
	// fall within.
	SG []SecurityGroup `json:"sg"`
}
