// Package ids generates and checks the identifiers used across the service.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a lexicographically sortable identifier, used as the primary
// key for users, projects and comments. Monotonic entropy keeps ids minted
// within the same millisecond ordered.
func New() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}

// Valid reports whether s parses as an identifier produced by New. Handlers
// use it to reject malformed path ids before touching the store.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
