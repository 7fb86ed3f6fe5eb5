// Package nameset guards the single name namespace shared by resources,
// resource collections, and tasks (spec Open Question, resolved: all three
// kinds must be globally unique, not just unique within their own kind).
package nameset

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
)

// Kind identifies which collection a name was registered under, purely for
// the collision error message.
type Kind string

const (
	KindResource   Kind = "resource"
	KindCollection Kind = "resource collection"
	KindTask       Kind = "task"
)

// Set tracks every name claimed so far, regardless of kind, and rejects
// re-registration under any kind once a name is taken.
type Set struct {
	claimed *set.Set[string]
	kinds   map[string]Kind
}

// New returns an empty name set.
func New() *Set {
	return &Set{
		claimed: set.New[string](0),
		kinds:   make(map[string]Kind),
	}
}

// Claim registers name under kind. It returns an error describing the
// existing registration if name is already taken under any kind.
func (s *Set) Claim(name string, kind Kind) error {
	if s.claimed.Contains(name) {
		return fmt.Errorf("name %q already registered as a %s; cannot register as a %s", name, s.kinds[name], kind)
	}
	s.claimed.Insert(name)
	s.kinds[name] = kind
	return nil
}

// Contains reports whether name has been claimed under any kind.
func (s *Set) Contains(name string) bool {
	return s.claimed.Contains(name)
}
