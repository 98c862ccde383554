package cache

import (
	"encoding/json"
	"errors"
	"time"
)

// Entry is a single cached command result with TTL metadata.
// Entries are immutable once written; replacing a result writes a whole new
// entry with a fresh CreatedAt.
type Entry struct {
	// Command is the exact command text used as the cache key.
	// No normalization is applied: whitespace differences are distinct keys.
	Command string `json:"command"`

	// Stdout is the captured standard output, byte for byte.
	Stdout []byte `json:"stdout"`

	// Stderr is the captured standard error, byte for byte.
	Stderr []byte `json:"stderr"`

	// ExitCode is the command's exit code. Non-zero codes are first-class
	// cacheable results.
	ExitCode int `json:"exit_code"`

	// CreatedAt is when the entry was written.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the entry stops being fresh.
	ExpiresAt time.Time `json:"expires_at"`

	// TTLSeconds is the time-to-live the entry was stored with.
	TTLSeconds int64 `json:"ttl_seconds"`
}

// NewEntry creates an entry for a just-executed command, created now and
// expiring ttlSeconds later.
func NewEntry(command string, stdout, stderr []byte, exitCode int, ttlSeconds int64) *Entry {
	now := time.Now()
	return &Entry{
		Command:    command,
		Stdout:     stdout,
		Stderr:     stderr,
		ExitCode:   exitCode,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(ttlSeconds) * time.Second),
		TTLSeconds: ttlSeconds,
	}
}

// IsExpired reports whether the entry is past its expiration time.
// An entry is fresh strictly while now < created_at + ttl.
func (e *Entry) IsExpired() bool {
	return !time.Now().Before(e.ExpiresAt)
}

// IsValid reports whether the entry is still fresh. Inverse of IsExpired.
func (e *Entry) IsValid() bool {
	return !e.IsExpired()
}

// Age returns the duration since the entry was created.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CreatedAt)
}

// TimeUntilExpiration returns the remaining freshness window, or 0 if the
// entry has already expired.
func (e *Entry) TimeUntilExpiration() time.Duration {
	remaining := time.Until(e.ExpiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// MarshalJSON implements json.Marshaler. Timestamps are formatted as
// RFC3339Nano so sub-second freshness survives the round trip; stdout and
// stderr fall through to encoding/json's base64 []byte encoding, which keeps
// arbitrary binary output intact.
func (e *Entry) MarshalJSON() ([]byte, error) {
	type alias Entry
	return json.Marshal(&struct {
		*alias

		CreatedAt string `json:"created_at"`
		ExpiresAt string `json:"expires_at"`
	}{
		alias:     (*alias)(e),
		CreatedAt: e.CreatedAt.Format(time.RFC3339Nano),
		ExpiresAt: e.ExpiresAt.Format(time.RFC3339Nano),
	})
}

// UnmarshalJSON implements json.Unmarshaler, parsing the RFC3339Nano
// timestamps written by MarshalJSON.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if e == nil {
		return errors.New("cannot unmarshal into nil Entry")
	}
	type alias Entry
	aux := &struct {
		*alias

		CreatedAt string `json:"created_at"`
		ExpiresAt string `json:"expires_at"`
	}{
		alias: (*alias)(e),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339Nano, aux.CreatedAt)
	if err != nil {
		return err
	}

	e.ExpiresAt, err = time.Parse(time.RFC3339Nano, aux.ExpiresAt)
	if err != nil {
		return err
	}

	return nil
}
