// Package api defines the wire types for the relayout conversion API:
// request and response schemas, the structured error taxonomy, conversion
// record IDs, and request validation. It depends only on the standard
// library so that every other layer can import it.
package api
