// Package utils provides general-purpose helper utilities
// used across different parts of the daemon.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, and unverified
// JWT token inspection.
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

// TraceIDCtxKey is the key used to store the request trace identifier in the
// context. Used together with GetTraceIDFromContext for type-safe retrieval
// of the trace ID from context.Context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.TraceIDCtxKey, "bdfb42cf")
var TraceIDCtxKey = contextKey("traceID")

// GetTraceIDFromContext retrieves the request trace identifier from the
// context.
//
// Returns the trace ID string and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
//
// Example usage:
//
//	traceID, ok := utils.GetTraceIDFromContext(ctx)
//	if !ok {
//	    // handle missing trace ID in context
//	}
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok
}
