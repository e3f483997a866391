package animset

import (
	"github.com/Faultbox/animset/internal/config"
	"github.com/Faultbox/animset/pkg/formats"
)

// ModelInfo holds the animation set of one archetype.
type ModelInfo struct {
	Archetype Archetype `yaml:"archetype"`
	ModelName string    `yaml:"model_name"` // tag the event file must carry
	Humanoid  bool      `yaml:"humanoid"`
	TablePath string    `yaml:"table"`
	EventPath string    `yaml:"events"`

	// AnimationGroup names the clips gameplay code expects, by slot.
	AnimationGroup []string `yaml:"animation_group"`
	// GroupIndices maps each AnimationGroup slot to an index into Animations, -1 if missing.
	GroupIndices []int `yaml:"group_indices"`

	Animations    []formats.Animation `yaml:"animations"`
	NumAnimations int                 `yaml:"num_animations"`
}

// NewModelInfo creates an empty model for archetype a with slots group slots.
func NewModelInfo(a Archetype, mc config.ModelConfig, slots int) *ModelInfo {
	group := make([]string, slots)
	copy(group, mc.AnimationGroup)

	indices := make([]int, slots)
	for i := range indices {
		indices[i] = -1
	}

	return &ModelInfo{
		Archetype:      a,
		ModelName:      mc.ModelName,
		Humanoid:       mc.Humanoid,
		TablePath:      mc.Table,
		EventPath:      mc.Events,
		AnimationGroup: group,
		GroupIndices:   indices,
	}
}

// Animation returns the animation at index i, or nil.
func (mi *ModelInfo) Animation(i int) *formats.Animation {
	if mi == nil || i < 0 || i >= mi.NumAnimations {
		return nil
	}
	return &mi.Animations[i]
}

// GroupAnimation returns the animation bound to a group slot, or nil.
func (mi *ModelInfo) GroupAnimation(slot int) *formats.Animation {
	if mi == nil || slot < 0 || slot >= len(mi.GroupIndices) {
		return nil
	}
	return mi.Animation(mi.GroupIndices[slot])
}

// AnimationsByMoveType returns the indices of animations classified as mt, in table order.
func (mi *ModelInfo) AnimationsByMoveType(mt formats.MoveType) []int {
	if mi == nil {
		return nil
	}
	var out []int
	for i := 0; i < mi.NumAnimations; i++ {
		if mi.Animations[i].MoveType == mt {
			out = append(out, i)
		}
	}
	return out
}

// Names returns the animation names in table order.
func (mi *ModelInfo) Names() []string {
	if mi == nil {
		return nil
	}
	names := make([]string, mi.NumAnimations)
	for i := range names {
		names[i] = mi.Animations[i].Name
	}
	return names
}

// Missing returns the group names that did not resolve to an animation.
func (mi *ModelInfo) Missing() []string {
	if mi == nil {
		return nil
	}
	var out []string
	for slot, idx := range mi.GroupIndices {
		if idx < 0 && mi.AnimationGroup[slot] != "" {
			out = append(out, mi.AnimationGroup[slot])
		}
	}
	return out
}
