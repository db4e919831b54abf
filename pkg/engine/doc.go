// Package engine orchestrates conversion requests between the transport
// layer and the layout transcoder. It parses layout names, runs the
// conversion, records metrics, and optionally persists history records.
package engine
