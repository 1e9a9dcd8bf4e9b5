package ids

import (
	"fmt"

	"github.com/segmentio/ksuid"
)

// New returns a fresh sortable identifier.
func New() string {
	return ksuid.New().String()
}

// NewPrefixed returns an identifier with a collection prefix, e.g. "pay_...".
func NewPrefixed(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, ksuid.New().String())
}
