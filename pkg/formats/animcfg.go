package formats

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Faultbox/animset/pkg/encoding"
)

// Animation config limits.
const (
	MaxNameLength         = 63 // bytes; longer names are truncated
	DefaultMaxAnimations  = 64
	soundAnimationName    = "sound"
	millisecondsPerSecond = 1000
)

// Animation config errors.
var (
	ErrEmptyAnimationConfig = errors.New("empty animation config")
	ErrInvalidCapacity      = errors.New("animation capacity must be positive")
)

// Animation describes one named animation clip.
type Animation struct {
	Name       string `yaml:"name"`
	FirstFrame int    `yaml:"first_frame"`
	NumFrames  int    `yaml:"num_frames"`
	Reversed   bool   `yaml:"reversed,omitempty"`
	Flipflop   bool   `yaml:"flipflop,omitempty"`

	// Milliseconds per frame. Zero for placeholder clips.
	FrameLerp   int `yaml:"frame_lerp"`
	InitialLerp int `yaml:"initial_lerp"`

	Footsteps Footsteps `yaml:"footsteps"`
	MoveType  MoveType  `yaml:"movetype"`
}

// HasTiming reports whether frame timing was computed for the clip.
func (a *Animation) HasTiming() bool {
	return a.FrameLerp != 0 || a.InitialLerp != 0
}

// AnimationConfig is a parsed animation count/rate table.
type AnimationConfig struct {
	// Animations holds the complete records in file order.
	// cap(Animations) is the table capacity and is never exceeded.
	Animations  []Animation
	Capacity    int
	Diagnostics []Diagnostic
}

// ParseAnimationConfig parses an animation table of "name firstFrame numFrames fps" records.
//
// At most capacity records are read. A record cut short by end of input is
// dropped; the records before it are kept. A record count different from
// capacity is reported as a KindCountMismatch diagnostic, not an error.
func ParseAnimationConfig(data []byte, capacity int) (*AnimationConfig, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	if len(data) == 0 {
		return nil, ErrEmptyAnimationConfig
	}

	cfg := &AnimationConfig{
		Animations: make([]Animation, 0, capacity),
		Capacity:   capacity,
	}
	tok := NewTokenizer(data)

	for {
		if len(cfg.Animations) == capacity {
			if extra, ok := tok.Next(); ok {
				cfg.diag(KindCapacityExceeded, tok.Line(), extra,
					fmt.Sprintf("table is full at %d animations, ignoring the rest", capacity))
			}
			break
		}

		rec, ok := readRecord(tok)
		if !ok {
			if rec.name != "" {
				cfg.diag(KindRecordTruncated, rec.line, rec.name,
					fmt.Sprintf("incomplete record for animation '%s'", rec.name))
			}
			break
		}
		cfg.Animations = append(cfg.Animations, rec.animation())
	}

	if len(cfg.Animations) != capacity {
		cfg.diag(KindCountMismatch, 0, "",
			fmt.Sprintf("should have exactly %d animations, found %d", capacity, len(cfg.Animations)))
	}

	return cfg, nil
}

// ParseAnimationConfigFile parses an animation table from disk.
func ParseAnimationConfigFile(path string, capacity int) (*AnimationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading animation config: %w", err)
	}
	return ParseAnimationConfig(encoding.DecodeText(data), capacity)
}

func (c *AnimationConfig) diag(kind DiagnosticKind, line int, token, msg string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Kind: kind, Line: line, Token: token, Message: msg})
}

// tableRecord holds the raw tokens of one table record.
type tableRecord struct {
	line       int
	name       string
	firstFrame string
	numFrames  string
	fps        string
}

// readRecord reads the four tokens of a record. ok is false when input ends first;
// rec.name is set if the record was started.
func readRecord(tok *Tokenizer) (rec tableRecord, ok bool) {
	fields := []*string{&rec.name, &rec.firstFrame, &rec.numFrames, &rec.fps}
	for i, field := range fields {
		token, more := tok.Next()
		if !more {
			return rec, false
		}
		if i == 0 {
			rec.line = tok.Line()
		}
		*field = token
	}
	return rec, true
}

func (r tableRecord) animation() Animation {
	anim := Animation{
		Name:       truncateName(r.name),
		FirstFrame: parseInt(r.firstFrame),
	}

	frames := parseInt(r.numFrames)
	switch {
	case frames < 0:
		anim.Reversed = true
		anim.NumFrames = -frames
	case frames > 0:
		anim.Flipflop = true
		anim.NumFrames = frames
	}

	// Placeholders and the sound track carry no timing
	if frames == 0 || strings.EqualFold(anim.Name, soundAnimationName) {
		return anim
	}

	lerp := frameLerp(parseFloat(r.fps))
	anim.FrameLerp = lerp
	anim.InitialLerp = lerp
	return anim
}

// frameLerp converts frames per second to milliseconds per frame.
// A rate of exactly zero is treated as 1 fps.
func frameLerp(fps float64) int {
	if fps == 0 || math.IsNaN(fps) {
		fps = 1
	}
	ms := millisecondsPerSecond / fps
	switch {
	case ms > math.MaxInt32:
		return math.MaxInt32
	case ms < math.MinInt32:
		return math.MinInt32
	}
	return int(ms)
}

func truncateName(name string) string {
	if len(name) <= MaxNameLength {
		return name
	}
	cut := MaxNameLength
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}
