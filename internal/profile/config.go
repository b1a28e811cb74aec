package profile

import "time"

// Config holds configuration for the profile syncer.
type Config struct {
	// Buffer is the size of the pending save channel.
	Buffer int
	// Timeout bounds a single Save call.
	Timeout time.Duration
	// DropOnOverflow makes Push non-blocking when the buffer is full.
	DropOnOverflow bool
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Buffer:         64,
		Timeout:        2 * time.Second,
		DropOnOverflow: true,
	}
}
