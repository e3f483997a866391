// Package animset builds and indexes per-model animation sets.
//
// A set is built once at startup or on a full reset, from an animation table
// and an animation event table per archetype, and is read-only afterwards.
// Readers get the published set without locking.
package animset

import (
	"fmt"
	"strings"
)

// Archetype is one of the fixed character model categories.
type Archetype uint8

const (
	ArchetypeHuman Archetype = iota
	ArchetypeAlien

	NumArchetypes
)

var archetypeNames = [NumArchetypes]string{
	ArchetypeHuman: "human",
	ArchetypeAlien: "alien",
}

func (a Archetype) String() string {
	if a < NumArchetypes {
		return archetypeNames[a]
	}
	return fmt.Sprintf("archetype(%d)", uint8(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Archetype) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseArchetype resolves an archetype name, ignoring case.
func ParseArchetype(name string) (Archetype, error) {
	for a, n := range archetypeNames {
		if strings.EqualFold(name, n) {
			return Archetype(a), nil
		}
	}
	return 0, fmt.Errorf("unknown archetype %q", name)
}
