package doc

import (
	"fmt"

	"github.com/google/uuid"
)

// groupedHexLen is the length of the 8-4-4-4-12 textual form.
const groupedHexLen = 36

// ID is an opaque 128-bit node identifier. Version and variant bits are
// carried but never interpreted.
type ID uuid.UUID

// NilID is the all-zero identifier.
var NilID ID

// ParseID decodes the canonical grouped-hex form of an identifier.
// Upper- and lower-case hex digits are both accepted; braces, the urn:uuid:
// prefix and the unhyphenated 32-digit form are not.
func ParseID(s string) (ID, error) {
	if len(s) != groupedHexLen {
		return NilID, fmt.Errorf("%w: %q has length %d, want %d", ErrMalformedIdentifier, s, len(s), groupedHexLen)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return NilID, fmt.Errorf("%w: %q: %v", ErrMalformedIdentifier, s, err)
	}
	return ID(u), nil
}

// String returns the lowercase hyphenated hex form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether id is the all-zero identifier.
func (id ID) IsNil() bool {
	return id == NilID
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IDSource mints identifiers for new nodes.
type IDSource interface {
	NewID() ID
}

// IDFunc adapts a function to IDSource.
type IDFunc func() ID

// NewID calls f.
func (f IDFunc) NewID() ID {
	return f()
}

// RandomIDs mints random (version 4) identifiers.
type RandomIDs struct{}

// NewID returns a fresh random identifier.
func (RandomIDs) NewID() ID {
	return ID(uuid.New())
}

// SequenceIDs mints deterministic identifiers whose last eight bytes hold an
// incrementing counter, starting at 1. It is not safe for concurrent use.
type SequenceIDs struct {
	next uint64
}

// NewID returns the next identifier in the sequence.
func (s *SequenceIDs) NewID() ID {
	s.next++
	var id ID
	n := s.next
	for i := len(id) - 1; i >= len(id)-8; i-- {
		id[i] = byte(n)
		n >>= 8
	}
	return id
}
