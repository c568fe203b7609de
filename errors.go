package orient

import (
	"errors"
	"fmt"

	"github.com/hexark/orient/blobstore"
	"github.com/hexark/orient/snapshot"
)

var (
	// ErrNotFound is returned when no snapshot exists under the given name.
	ErrNotFound = errors.New("snapshot not found")
)

// ErrCorruptSnapshot indicates snapshot bytes that could not be decoded.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCorruptSnapshot struct {
	Name  string
	cause error
}

func (e *ErrCorruptSnapshot) Error() string {
	return fmt.Sprintf("corrupt snapshot %q: %v", e.Name, e.cause)
}

func (e *ErrCorruptSnapshot) Unwrap() error { return e.cause }

func translateError(name string, err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Undecodable bytes normalization.
	if errors.Is(err, snapshot.ErrBadMagic) {
		return &ErrCorruptSnapshot{Name: name, cause: err}
	}
	var corrupt *snapshot.ErrCorrupt
	if errors.As(err, &corrupt) {
		return &ErrCorruptSnapshot{Name: name, cause: err}
	}
	var version *snapshot.ErrUnsupportedVersion
	if errors.As(err, &version) {
		return &ErrCorruptSnapshot{Name: name, cause: err}
	}
	var unknown *snapshot.ErrUnknownCodec
	if errors.As(err, &unknown) {
		return &ErrCorruptSnapshot{Name: name, cause: err}
	}

	return err
}
