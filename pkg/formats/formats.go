// Package formats provides parsers for the animation script formats:
// animation count/rate tables (animation.cfg) and animation event tables.
//
// Parsers never log. Non-fatal problems are returned as Diagnostics so the
// caller can decide where they go.
package formats
