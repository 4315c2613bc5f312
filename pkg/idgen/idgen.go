// Package idgen generates client-side identifiers for locally created tasks.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator returns a new identifier on every call.
type Generator interface {
	NewID() string
}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewID implements Generator.
func (UUID) NewID() string {
	return uuid.NewString()
}

var namespace = uuid.MustParse("5b1d7f3e-2f0c-4c55-9d27-7a0f6c8f2a11")

// Stable derives a name-based (version 5) UUID from key. Processes loading
// the same file agree on the ids of tasks that carry none.
func Stable(key string) string {
	return uuid.NewSHA1(namespace, []byte(key)).String()
}

// Sequence generates predictable ids, prefix1, prefix2, ... It is meant for
// tests and demos.
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%d", s.Prefix, s.n)
}
