package animset

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/animset/internal/assets"
	"github.com/Faultbox/animset/internal/config"
	"github.com/Faultbox/animset/pkg/formats"
)

const scenarioTable = "walk 0 10 20\nrun 10 -10 40\nsound 0 0 0\n"

func newHumanModel() *ModelInfo {
	return NewModelInfo(ArchetypeHuman, testAnimationConfig().Human, 4)
}

func TestParseAnimationTable(t *testing.T) {
	logs := observeLogs(t, zapcore.WarnLevel)
	loader := mapLoader{"human/animation.cfg": scenarioTable}
	mi := newHumanModel()

	anims, err := ParseAnimationTable(loader, "human/animation.cfg", mi, 3)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if len(anims) != 3 || mi.NumAnimations != 3 {
		t.Fatalf("expected 3 animations, got %d (model %d)", len(anims), mi.NumAnimations)
	}
	if &mi.Animations[0] != &anims[0] {
		t.Error("expected the model to own the returned table")
	}
	if mi.Animations[1].FrameLerp != 25 || !mi.Animations[1].Reversed {
		t.Errorf("unexpected run record %+v", mi.Animations[1])
	}
	if logs.Len() != 0 {
		t.Errorf("expected no warnings for a full table, got %v", logs.All())
	}
}

func TestParseAnimationTable_CountMismatchWarns(t *testing.T) {
	logs := observeLogs(t, zapcore.WarnLevel)
	loader := mapLoader{"t.cfg": "walk 0 10 20\n"}
	mi := newHumanModel()

	if _, err := ParseAnimationTable(loader, "t.cfg", mi, 3); err != nil {
		t.Fatalf("count mismatch must not fail: %v", err)
	}
	if mi.NumAnimations != 1 {
		t.Errorf("expected partial table published, got %d", mi.NumAnimations)
	}

	entries := logsOfKind(logs, formats.KindCountMismatch)
	if len(entries) != 1 {
		t.Fatalf("expected 1 count mismatch warning, got %d", len(entries))
	}
	if entries[0].ContextMap()["path"] != "t.cfg" {
		t.Errorf("expected warning to name the resource, got %v", entries[0].ContextMap())
	}
}

func TestParseAnimationTable_Missing(t *testing.T) {
	mi := newHumanModel()

	_, err := ParseAnimationTable(mapLoader{}, "nope.cfg", mi, 3)
	if !errors.Is(err, ErrResourceMissing) {
		t.Errorf("expected ErrResourceMissing, got %v", err)
	}
	if !errors.Is(err, assets.ErrNotFound) {
		t.Errorf("expected loader error to be kept, got %v", err)
	}
	if mi.NumAnimations != 0 {
		t.Error("expected no animations")
	}

	_, err = ParseAnimationTable(mapLoader{"empty.cfg": ""}, "empty.cfg", mi, 3)
	if !errors.Is(err, ErrResourceMissing) {
		t.Errorf("expected ErrResourceMissing for empty table, got %v", err)
	}
}

func TestParseAnimationEvents_Scenario(t *testing.T) {
	loader := mapLoader{
		"t.cfg": "idle 0 1 10\nwalk 1 8 15\n",
		"t.evt": "human\nfootsteps boot\nmovetype walk\n",
	}
	mi := newHumanModel()
	if _, err := ParseAnimationTable(loader, "t.cfg", mi, 2); err != nil {
		t.Fatalf("failed to parse table: %v", err)
	}

	ParseAnimationEvents(loader, "t.evt", mi, true)

	if mi.Animations[0].Footsteps != formats.FootstepsBoot {
		t.Errorf("expected boot, got %s", mi.Animations[0].Footsteps)
	}
	if mi.Animations[0].MoveType != formats.MoveTypeWalk {
		t.Errorf("expected walk, got %s", mi.Animations[0].MoveType)
	}
	if mi.Animations[1].Footsteps != formats.FootstepsUnset || mi.Animations[1].MoveType != formats.MoveTypeUnset {
		t.Errorf("expected second animation untouched, got %+v", mi.Animations[1])
	}
}

func TestParseAnimationEvents_MissingIsNoop(t *testing.T) {
	logs := observeLogs(t, zapcore.WarnLevel)
	loader := mapLoader{"t.cfg": "idle 0 1 10\n"}
	mi := newHumanModel()
	ParseAnimationTable(loader, "t.cfg", mi, 1)
	before := append([]formats.Animation(nil), mi.Animations...)

	ParseAnimationEvents(loader, "t.evt", mi, true)

	if !reflect.DeepEqual(before, mi.Animations) {
		t.Errorf("expected animations untouched, got %+v", mi.Animations)
	}
	if logs.Len() != 0 {
		t.Errorf("missing events must not warn, got %v", logs.All())
	}
}

func TestParseAnimationEvents_OtherModel(t *testing.T) {
	loader := mapLoader{
		"t.cfg": "idle 0 1 10\n",
		"t.evt": "version 1 alien footsteps mech",
	}
	mi := newHumanModel()
	ParseAnimationTable(loader, "t.cfg", mi, 1)

	ParseAnimationEvents(loader, "t.evt", mi, true)

	if mi.Animations[0].Footsteps != formats.FootstepsUnset {
		t.Errorf("expected footsteps unset, got %s", mi.Animations[0].Footsteps)
	}
}

func TestParseAnimationEvents_Idempotent(t *testing.T) {
	loader := mapLoader{
		"t.cfg": scenarioTable,
		"t.evt": "human footsteps flesh animNum 2 movetype prerunback",
	}

	once := newHumanModel()
	ParseAnimationTable(loader, "t.cfg", once, 3)
	ParseAnimationEvents(loader, "t.evt", once, true)

	twice := newHumanModel()
	ParseAnimationTable(loader, "t.cfg", twice, 3)
	ParseAnimationEvents(loader, "t.evt", twice, true)
	ParseAnimationEvents(loader, "t.evt", twice, true)

	if !reflect.DeepEqual(once.Animations, twice.Animations) {
		t.Errorf("expected identical state, got %+v vs %+v", once.Animations, twice.Animations)
	}
}

func TestParseAnimationEvents_WarnsOnUnknownKeyword(t *testing.T) {
	logs := observeLogs(t, zapcore.WarnLevel)
	loader := mapLoader{
		"t.cfg": "idle 0 1 10\nwalk 1 8 15\n",
		"t.evt": "human footsteps wood jump",
	}
	mi := newHumanModel()
	ParseAnimationTable(loader, "t.cfg", mi, 2)

	ParseAnimationEvents(loader, "t.evt", mi, true)

	if len(logsOfKind(logs, formats.KindUnknownKeyword)) != 1 {
		t.Errorf("expected unknown keyword warning, got %v", logs.All())
	}
	if len(logsOfKind(logs, formats.KindUnknownRecord)) != 1 {
		t.Errorf("expected unknown record warning, got %v", logs.All())
	}
}

func TestInitAnimationSetForArchetype(t *testing.T) {
	loader := mapLoader{"t.cfg": scenarioTable}
	mi := NewModelInfo(ArchetypeHuman, config.ModelConfig{
		ModelName:      "human",
		AnimationGroup: []string{"RUN", "walk", "swim"},
	}, 4)
	ParseAnimationTable(loader, "t.cfg", mi, 3)

	InitAnimationSetForArchetype(mi)

	want := []int{1, 0, -1, -1}
	if !reflect.DeepEqual(mi.GroupIndices, want) {
		t.Errorf("expected %v, got %v", want, mi.GroupIndices)
	}
}
