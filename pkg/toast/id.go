package toast

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewID allocates a notification identifier. ULIDs combine a monotonic
// millisecond timestamp with 80 bits of randomness, which keeps the
// in-session collision probability negligible. Collisions are not
// detected; if one occurs the last writer wins.
func NewID() ID {
	return ID(ulid.Make().String())
}

// ResolveID returns the caller-supplied identifier if it is non-empty,
// otherwise a freshly allocated one. Whitespace-only identifiers count
// as empty.
func ResolveID(candidate ID) ID {
	if strings.TrimSpace(string(candidate)) != "" {
		return candidate
	}
	return NewID()
}
