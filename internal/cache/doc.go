// Package cache provides file-based caching of command results with TTL
// expiration.
//
// Each distinct command string maps to exactly one JSON file under the cache
// directory, named by the SHA-256 hash of the command text. Key features:
//   - File-based storage (cross-platform, no external dependencies)
//   - TTL freshness: an entry is valid only while now < created_at + ttl
//   - Atomic writes via temp-file-and-rename, so a concurrent reader never
//     observes a partially written entry
//   - Missing, corrupt, and expired entries are all reported as typed
//     errors that callers treat as a cache miss
//
// There is no background eviction: an expired entry stays on disk until the
// next miss for the same command overwrites it in place, which bounds
// storage to one file per distinct command.
package cache
