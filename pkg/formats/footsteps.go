package formats

import (
	"fmt"
	"strings"
)

// Footsteps selects the footstep sound class of an animation.
type Footsteps uint8

const (
	FootstepsUnset Footsteps = iota
	FootstepsNormal
	FootstepsBoot
	FootstepsFlesh
	FootstepsMech
	FootstepsEnergy
)

var footstepsNames = [...]string{
	FootstepsUnset:  "unset",
	FootstepsNormal: "normal",
	FootstepsBoot:   "boot",
	FootstepsFlesh:  "flesh",
	FootstepsMech:   "mech",
	FootstepsEnergy: "energy",
}

// footstepsKeywords maps event file keywords to footstep classes.
// "default" is the file spelling of FootstepsNormal.
var footstepsKeywords = []struct {
	keyword string
	value   Footsteps
}{
	{"default", FootstepsNormal},
	{"boot", FootstepsBoot},
	{"flesh", FootstepsFlesh},
	{"mech", FootstepsMech},
	{"energy", FootstepsEnergy},
}

// ParseFootsteps resolves an event file keyword, ignoring case.
func ParseFootsteps(keyword string) (Footsteps, bool) {
	for _, k := range footstepsKeywords {
		if strings.EqualFold(keyword, k.keyword) {
			return k.value, true
		}
	}
	return FootstepsUnset, false
}

func (f Footsteps) String() string {
	if int(f) < len(footstepsNames) {
		return footstepsNames[f]
	}
	return fmt.Sprintf("footsteps(%d)", uint8(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Footsteps) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
