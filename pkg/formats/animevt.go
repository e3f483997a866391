package formats

import (
	"fmt"
	"os"
	"strings"

	"github.com/Faultbox/animset/pkg/encoding"
)

// Event file keywords.
const (
	keywordVersion    = "version"
	keywordFootsteps  = "footsteps"
	keywordHeadOffset = "headoffset"
	keywordSound      = "sound"
	keywordAnimNum    = "animNum"
	keywordMoveType   = "movetype"

	headOffsetArgs = 3
)

// EventResult reports what ApplyAnimationEvents did.
type EventResult struct {
	Version    int
	HasVersion bool
	ModelName  string // tag read from the file
	Matched    bool   // tag matched the requested model
	Records    int    // complete records applied
	Aborted    bool   // stopped early on truncated or unrecognised input

	Diagnostics []Diagnostic
}

// eventState is a state of the event file parser.
type eventState uint8

const (
	stateExpectKeyword eventState = iota
	stateExpectFootstepsArg
	stateExpectHeadOffsetArgs
	stateExpectSoundArg
	stateExpectAnimNumArg
	stateExpectMoveTypeArg
	stateDone
	stateAborted
)

// ApplyAnimationEvents overlays an animation event file onto anims in place.
//
// The file starts with an optional "version <n>" preamble followed by a model
// tag. If the tag does not match modelName (ignoring case) nothing is applied.
// Then up to len(anims) records follow, each led by one of footsteps,
// headoffset, sound, animNum or movetype.
//
// The record at position i sets the footsteps of anims[i]. movetype records
// apply to the animation selected by the last animNum record, or anims[0]
// before any animNum record. A record led by any other keyword stops parsing
// with a KindUnknownRecord diagnostic. Changes made before the parser stops
// are kept.
func ApplyAnimationEvents(data []byte, modelName string, anims []Animation) EventResult {
	p := &eventParser{
		tok:   NewTokenizer(data),
		anims: anims,
	}
	if !p.readHeader(modelName) {
		return p.result
	}
	p.run()
	return p.result
}

// ApplyAnimationEventsFile applies an event file from disk.
func ApplyAnimationEventsFile(path, modelName string, anims []Animation) (EventResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EventResult{}, fmt.Errorf("reading animation events: %w", err)
	}
	return ApplyAnimationEvents(encoding.DecodeText(data), modelName, anims), nil
}

type eventParser struct {
	tok    *Tokenizer
	anims  []Animation
	state  eventState
	record int // index of the record being read
	cursor int // animation selected by animNum
	args   int // headoffset arguments still to consume
	result EventResult
}

// readHeader consumes the preamble and model tag. It returns false if the
// records should not be applied.
func (p *eventParser) readHeader(modelName string) bool {
	token, ok := p.tok.Next()
	if !ok {
		return false
	}

	if strings.EqualFold(token, keywordVersion) {
		if token, ok = p.tok.Next(); !ok {
			return false
		}
		p.result.Version = parseInt(token)
		p.result.HasVersion = true

		if token, ok = p.tok.Next(); !ok {
			return false
		}
	}

	p.result.ModelName = token
	p.result.Matched = strings.EqualFold(token, modelName)
	return p.result.Matched
}

func (p *eventParser) run() {
	for p.state != stateDone && p.state != stateAborted {
		if p.state == stateExpectKeyword && p.record >= len(p.anims) {
			p.state = stateDone
			break
		}

		token, ok := p.tok.Next()
		if !ok {
			p.state = p.endOfInput()
			break
		}
		p.state = p.step(token)
	}
	p.result.Aborted = p.state == stateAborted
}

func (p *eventParser) step(token string) eventState {
	switch p.state {
	case stateExpectKeyword:
		return p.keyword(token)

	case stateExpectFootstepsArg:
		if fs, ok := ParseFootsteps(token); ok {
			p.anims[p.record].Footsteps = fs
		} else {
			p.diag(KindUnknownKeyword, token, fmt.Sprintf("unknown footsteps type '%s'", token))
		}
		return p.endRecord()

	case stateExpectHeadOffsetArgs:
		p.args--
		if p.args > 0 {
			return stateExpectHeadOffsetArgs
		}
		return p.endRecord()

	case stateExpectSoundArg:
		return p.endRecord()

	case stateExpectAnimNumArg:
		n := parseInt(token)
		if n < 0 || n >= len(p.anims) {
			p.diag(KindIndexOutOfRange, token, fmt.Sprintf("animNum %d out of range", n))
		} else {
			p.cursor = n
		}
		return p.endRecord()

	case stateExpectMoveTypeArg:
		if mt, ok := ParseMoveType(token); ok {
			p.anims[p.cursor].MoveType = mt
		} else {
			p.diag(KindUnknownKeyword, token, fmt.Sprintf("unknown movetype '%s'", token))
		}
		return p.endRecord()
	}
	return p.state
}

func (p *eventParser) keyword(token string) eventState {
	switch {
	case strings.EqualFold(token, keywordFootsteps):
		return stateExpectFootstepsArg
	case strings.EqualFold(token, keywordHeadOffset):
		p.args = headOffsetArgs
		return stateExpectHeadOffsetArgs
	case strings.EqualFold(token, keywordSound):
		return stateExpectSoundArg
	case strings.EqualFold(token, keywordAnimNum):
		return stateExpectAnimNumArg
	case strings.EqualFold(token, keywordMoveType):
		return stateExpectMoveTypeArg
	}
	p.diag(KindUnknownRecord, token, fmt.Sprintf("unknown event record '%s'", token))
	return stateAborted
}

func (p *eventParser) endRecord() eventState {
	p.record++
	p.result.Records++
	return stateExpectKeyword
}

// endOfInput decides the final state when the tokenizer runs dry.
func (p *eventParser) endOfInput() eventState {
	if p.state == stateExpectKeyword {
		return stateDone
	}
	p.diag(KindRecordTruncated, "", fmt.Sprintf("event file ends inside record %d", p.record))
	return stateAborted
}

func (p *eventParser) diag(kind DiagnosticKind, token, msg string) {
	p.result.Diagnostics = append(p.result.Diagnostics, Diagnostic{
		Kind:    kind,
		Line:    p.tok.Line(),
		Token:   token,
		Message: msg,
	})
}
