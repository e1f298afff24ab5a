// Package cache provides a file-backed TTL cache for remote catalog payloads.
//
// Entries are stored as one JSON file per key under a cache directory. Writes
// go through a temp file and rename so readers never see partial entries.
// Expired entries are reported as ErrCacheExpired and removed on read.
package cache
