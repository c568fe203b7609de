package snapshot

import (
	"errors"
	"fmt"
)

// ErrBadMagic is returned when a blob does not start with the snapshot
// magic bytes.
var ErrBadMagic = errors.New("not a crystal map snapshot")

// ErrUnsupportedVersion indicates a snapshot written by an unknown
// format version.
type ErrUnsupportedVersion struct {
	Version uint16
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported snapshot version %d", e.Version)
}

// ErrUnknownCodec indicates a snapshot whose header names a codec this
// build does not provide.
type ErrUnknownCodec struct {
	Name string
}

func (e *ErrUnknownCodec) Error() string {
	return fmt.Sprintf("unknown snapshot codec %q", e.Name)
}

// ErrCorrupt indicates truncated or inconsistent snapshot bytes.
type ErrCorrupt struct {
	Section string
	Reason  string
}

func (e *ErrCorrupt) Error() string {
	if e.Section == "" {
		return "corrupt snapshot: " + e.Reason
	}
	return fmt.Sprintf("corrupt snapshot section %q: %s", e.Section, e.Reason)
}
