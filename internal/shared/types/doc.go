// Package types provides shared data structures for the host bridge.
//
// This package defines the values that cross the bridge boundary, so
// every component and the channel agree on one representation.
//
// Core Types:
//   - ApplicationRecord: Launchable application as reported to the caller
//   - Service, Tool, Parameter: Operation descriptors used for validation
//   - Result: Exactly one success value or one Failure per request
//   - Error: Classified component failure carrying an ErrorKind
//
// Example Usage:
//
//	rec := types.ApplicationRecord{
//	    Name:    "Calculator",
//	    Package: "com.android.calculator2",
//	}
//	return types.Ok(rec)
package types
