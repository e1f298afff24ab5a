// Package catalog loads the trip catalog document and exposes it as an
// immutable, indexed list.
//
// A catalog is read from a Source (a local file or an HTTP URL) and decoded
// from JSON shaped {"trips": [...]}. Every load failure is reported as a
// *LoadError so callers can show a single "failed to load trips" state with
// a retry action.
package catalog
