// Package codec centralizes metadata encoding for persisted snapshots.
//
// Snapshots are self-describing: the codec name is recorded in the
// header, and readers resolve it through ByName before decoding the
// phase section. Changing codecs is a compatibility boundary for bytes
// written by older versions.
package codec

import (
	"fmt"
	"sync"
)

// Codec encodes and decodes values. Implementations must be safe for
// concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

var (
	mu       sync.RWMutex
	registry = map[string]Codec{
		JSON{}.Name(): JSON{},
	}
)

// Register makes c resolvable through ByName under its Name. Snapshots
// written with a codec can only be read back while that codec is
// registered, so custom codecs should register in an init function.
// Registering a name twice replaces the earlier codec.
func Register(c Codec) {
	mu.Lock()
	defer mu.Unlock()
	registry[c.Name()] = c
}

// ByName returns a registered codec by its stable name.
func ByName(name string) (Codec, bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := registry[name]
	return c, ok
}

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
