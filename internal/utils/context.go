// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, and other common operations shared between the data-plane and
// admin-channel transports.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AccessKeyCtxKey is the key used to store the data-plane caller's
// access_key identifier in the request context, once the authorization
// middleware has confirmed it. Used together with GetAccessKeyFromContext
// for type-safe retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AccessKeyCtxKey, "AKIA...")
var AccessKeyCtxKey = contextKey("access_key")

// GetAccessKeyFromContext retrieves the authorized access_key identifier
// from the context.
//
// Returns the access key string and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	accessKey, ok := utils.GetAccessKeyFromContext(ctx)
//	if !ok {
//	    // handle missing access key in context
//	}
func GetAccessKeyFromContext(ctx context.Context) (string, bool) {
	accessKey, ok := ctx.Value(AccessKeyCtxKey).(string)
	return accessKey, ok
}
