// Package cache stores generated price explanations so identical prompts do
// not hit the language model twice.
package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/spaolacci/murmur3"
)

// Store returns "" with a nil error on a miss.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, val string) error
}

// Key derives a compact cache key from its parts.
func Key(parts ...string) string {
	return fmt.Sprintf("%016x", murmur3.Sum64([]byte(strings.Join(parts, "\x00"))))
}
