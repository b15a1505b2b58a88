// Package inventory answers application inventory queries.
//
// Only applications with a resolvable launch entry point are reported.
// Results are recomputed from live host state on every call.
package inventory
