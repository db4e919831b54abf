// Package storage provides utilities shared across conversion-history
// store implementations, including sentinel errors and tenant context
// helpers.
//
// Store adapters (memory, postgres) implement the transport.ConversionStore
// interface defined in pkg/transport/handler.go. This package contains
// only shared types and helpers, not the interface itself.
package storage
