// Package transport defines the handler contracts between the HTTP layer
// and the conversion engine: the TextConverter interface, the optional
// ConversionStore interface for history persistence, middleware for
// cross-cutting behavior (recovery, request IDs, logging), and the mapping
// from API errors to HTTP status codes.
package transport
