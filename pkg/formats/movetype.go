package formats

import (
	"fmt"
	"strings"
)

// MoveType classifies an animation by the movement it represents.
type MoveType uint8

const (
	MoveTypeUnset MoveType = iota
	MoveTypeNone
	MoveTypeIdle
	MoveTypeIdleCrouch
	MoveTypeWalk
	MoveTypeWalkCrouch
	MoveTypeWalkBack
	MoveTypeWalkBackCrouch
	MoveTypeRun
	MoveTypeRunCrouch
	MoveTypeRunBack
	MoveTypeRunBackCrouch
	MoveTypeStep
	MoveTypeSwim
	MoveTypeIdleSwim
	MoveTypeRunSwim
	MoveTypeSwimCrouch
	MoveTypeRunSwimCrouch
	MoveTypeSwimBack
	MoveTypeSwimBackCrouch
	MoveTypeCrawl
	MoveTypeCrawlCrouch
	MoveTypeJump
	MoveTypeJumpCrouch
	MoveTypePreJump
	MoveTypePreJumpCrouch
	MoveTypePreJumpBack
	MoveTypePreJumpBackCrouch
	MoveTypeFJump
	MoveTypeFJumpCrouch
	MoveTypeFBJump
	MoveTypeFBJumpCrouch
	MoveTypeBJump
	MoveTypeBJumpCrouch
	MoveTypePreRun
	MoveTypePreRunCrouch
	MoveTypePreRunBack
	MoveTypePreRunBackCrouch

	NumMoveTypes
)

var moveTypeNames = [NumMoveTypes]string{
	MoveTypeUnset:             "unset",
	MoveTypeNone:              "none",
	MoveTypeIdle:              "idle",
	MoveTypeIdleCrouch:        "idlecr",
	MoveTypeWalk:              "walk",
	MoveTypeWalkCrouch:        "walkcr",
	MoveTypeWalkBack:          "walkback",
	MoveTypeWalkBackCrouch:    "walkbackcr",
	MoveTypeRun:               "run",
	MoveTypeRunCrouch:         "runcr",
	MoveTypeRunBack:           "runback",
	MoveTypeRunBackCrouch:     "runbackcr",
	MoveTypeStep:              "step",
	MoveTypeSwim:              "swim",
	MoveTypeIdleSwim:          "idleswim",
	MoveTypeRunSwim:           "runswim",
	MoveTypeSwimCrouch:        "crouchswim",
	MoveTypeRunSwimCrouch:     "runcrouchswim",
	MoveTypeSwimBack:          "swimback",
	MoveTypeSwimBackCrouch:    "swimbackcr",
	MoveTypeCrawl:             "crawl",
	MoveTypeCrawlCrouch:       "crawlcrouch",
	MoveTypeJump:              "jump",
	MoveTypeJumpCrouch:        "jumpcr",
	MoveTypePreJump:           "prejump",
	MoveTypePreJumpCrouch:     "prejumpcr",
	MoveTypePreJumpBack:       "prejumpback",
	MoveTypePreJumpBackCrouch: "prejumpbackcr",
	MoveTypeFJump:             "fjump",
	MoveTypeFJumpCrouch:       "fjumpcr",
	MoveTypeFBJump:            "fbjump",
	MoveTypeFBJumpCrouch:      "fbjumpcr",
	MoveTypeBJump:             "bjump",
	MoveTypeBJumpCrouch:       "bjumpcr",
	MoveTypePreRun:            "prerun",
	MoveTypePreRunCrouch:      "preruncr",
	MoveTypePreRunBack:        "prerunback",
	MoveTypePreRunBackCrouch:  "prerunbackcr",
}

// MoveTypeAlias pairs an event file keyword with the movement type it selects.
type MoveTypeAlias struct {
	Keyword  string
	MoveType MoveType
}

// moveTypeAliases is the complete keyword table. Several keywords select the
// same movement type; older event files use all of them.
var moveTypeAliases = []MoveTypeAlias{
	{"none", MoveTypeNone},
	{"idle", MoveTypeIdle},
	{"stand", MoveTypeIdle},
	{"walk", MoveTypeWalk},
	{"run", MoveTypeRun},
	{"step", MoveTypeStep},

	{"idlecr", MoveTypeIdleCrouch},
	{"idlecrouch", MoveTypeIdleCrouch},
	{"crouch", MoveTypeIdleCrouch},
	{"walkcr", MoveTypeWalkCrouch},
	{"walkcrouch", MoveTypeWalkCrouch},
	{"crouchwalk", MoveTypeWalkCrouch},
	{"runcr", MoveTypeRunCrouch},
	{"runcrouch", MoveTypeRunCrouch},

	{"idleswim", MoveTypeIdleSwim},
	{"swim", MoveTypeSwim},
	{"runswim", MoveTypeRunSwim},
	{"crouchswim", MoveTypeSwimCrouch},
	{"runcrouchswim", MoveTypeRunSwimCrouch},
	{"swimback", MoveTypeSwimBack},
	{"swimbackcrouch", MoveTypeSwimBackCrouch},
	{"swimbackcr", MoveTypeSwimBackCrouch},

	{"crawl", MoveTypeCrawl},
	{"crawlwalk", MoveTypeCrawl},
	{"crawlrun", MoveTypeCrawl},
	{"crawlcrouch", MoveTypeCrawlCrouch},
	{"crawlwalkcrouch", MoveTypeCrawlCrouch},
	{"crawlwalkcr", MoveTypeCrawlCrouch},
	{"crawlruncrouch", MoveTypeCrawlCrouch},
	{"crawlruncr", MoveTypeCrawlCrouch},

	{"walkback", MoveTypeWalkBack},
	{"walkbackcrouch", MoveTypeWalkBackCrouch},
	{"walkbackcr", MoveTypeWalkBackCrouch},
	{"runback", MoveTypeRunBack},
	{"runbackcrouch", MoveTypeRunBackCrouch},
	{"runbackcr", MoveTypeRunBackCrouch},

	{"jump", MoveTypeJump},
	{"jumpcrouch", MoveTypeJumpCrouch},
	{"jumpcr", MoveTypeJumpCrouch},
	{"fjump", MoveTypeFJump},
	{"fjumpcrouch", MoveTypeFJumpCrouch},
	{"fjumpcr", MoveTypeFJumpCrouch},
	{"fbjump", MoveTypeFBJump},
	{"fbjumpcrouch", MoveTypeFBJumpCrouch},
	{"fbjumpcr", MoveTypeFBJumpCrouch},
	{"bjump", MoveTypeBJump},
	{"bjumpcrouch", MoveTypeBJumpCrouch},
	{"bjumpcr", MoveTypeBJumpCrouch},

	{"prejump", MoveTypePreJump},
	{"prejumpcrouch", MoveTypePreJumpCrouch},
	{"prejumpcr", MoveTypePreJumpCrouch},
	{"prejumpback", MoveTypePreJumpBack},
	{"prejumpbackcrouch", MoveTypePreJumpBackCrouch},
	{"prejumpbackcr", MoveTypePreJumpBackCrouch},
	{"prefall", MoveTypePreJump},
	{"prefallcrouch", MoveTypePreJumpCrouch},
	{"prefallcr", MoveTypePreJumpCrouch},

	{"prerun", MoveTypePreRun},
	{"preruncrouch", MoveTypePreRunCrouch},
	{"preruncr", MoveTypePreRunCrouch},
	{"prerunback", MoveTypePreRunBack},
	{"prerunbackcrouch", MoveTypePreRunBackCrouch},
	{"prerunbackcr", MoveTypePreRunBackCrouch},
}

// ParseMoveType resolves an event file keyword, ignoring case.
func ParseMoveType(keyword string) (MoveType, bool) {
	for _, a := range moveTypeAliases {
		if strings.EqualFold(keyword, a.Keyword) {
			return a.MoveType, true
		}
	}
	return MoveTypeUnset, false
}

// MoveTypeAliases returns a copy of the keyword table in lookup order.
func MoveTypeAliases() []MoveTypeAlias {
	out := make([]MoveTypeAlias, len(moveTypeAliases))
	copy(out, moveTypeAliases)
	return out
}

// Aliases returns every keyword that selects m.
func (m MoveType) Aliases() []string {
	var out []string
	for _, a := range moveTypeAliases {
		if a.MoveType == m {
			out = append(out, a.Keyword)
		}
	}
	return out
}

// IsCrouch reports whether m is one of the crouched variants.
func (m MoveType) IsCrouch() bool {
	switch m {
	case MoveTypeIdleCrouch, MoveTypeWalkCrouch, MoveTypeWalkBackCrouch,
		MoveTypeRunCrouch, MoveTypeRunBackCrouch, MoveTypeSwimCrouch,
		MoveTypeRunSwimCrouch, MoveTypeSwimBackCrouch, MoveTypeCrawlCrouch,
		MoveTypeJumpCrouch, MoveTypePreJumpCrouch, MoveTypePreJumpBackCrouch,
		MoveTypeFJumpCrouch, MoveTypeFBJumpCrouch, MoveTypeBJumpCrouch,
		MoveTypePreRunCrouch, MoveTypePreRunBackCrouch:
		return true
	}
	return false
}

func (m MoveType) String() string {
	if m < NumMoveTypes {
		return moveTypeNames[m]
	}
	return fmt.Sprintf("movetype(%d)", uint8(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m MoveType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
