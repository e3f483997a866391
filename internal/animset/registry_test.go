package animset

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/animset/internal/assets"
	"github.com/Faultbox/animset/pkg/formats"
)

func testLoader() mapLoader {
	return mapLoader{
		"human/animation.cfg": "walk 0 10 20\nrun 10 -10 40\njump 20 5 10\n",
		"human/animation.evt": "human\nmovetype walk\nanimNum 1\nmovetype run\n",
	}
}

func TestRegistry_InitAnimationSets(t *testing.T) {
	logs := observeLogs(t, zapcore.WarnLevel)
	r := New(testAnimationConfig(), testLoader())

	if r.Current() != nil {
		t.Fatal("expected no set before the first build")
	}

	set := r.InitAnimationSets()
	if set != r.Current() {
		t.Error("expected the built set to be published")
	}

	human := r.ModelInfo(ArchetypeHuman)
	if human == nil || human.NumAnimations != 3 {
		t.Fatalf("expected 3 human animations, got %+v", human)
	}
	wantGroup := []int{0, 1, 2, -1}
	for slot, want := range wantGroup {
		if human.GroupIndices[slot] != want {
			t.Errorf("slot %d: expected %d, got %d", slot, want, human.GroupIndices[slot])
		}
	}
	if human.Animations[0].MoveType != formats.MoveTypeWalk || human.Animations[1].MoveType != formats.MoveTypeRun {
		t.Errorf("expected movetypes applied, got %s %s", human.Animations[0].MoveType, human.Animations[1].MoveType)
	}

	alien := r.ModelInfo(ArchetypeAlien)
	if alien == nil || alien.NumAnimations != 0 {
		t.Fatalf("expected empty alien model, got %+v", alien)
	}
	if alien.GroupIndices[0] != -1 {
		t.Errorf("expected unresolved alien group, got %v", alien.GroupIndices)
	}
	if logs.FilterMessage("no animations for archetype").Len() != 1 {
		t.Errorf("expected a warning for the missing alien table, got %v", logs.All())
	}
}

func TestRegistry_Rebuild(t *testing.T) {
	loader := testLoader()
	r := New(testAnimationConfig(), loader)

	first := r.InitAnimationSets()
	loader["human/animation.cfg"] = "idle 0 1 10\n"
	second := r.InitAnimationSets()

	if first.Generation == second.Generation {
		t.Error("expected a new generation on rebuild")
	}
	if first.Models[ArchetypeHuman].NumAnimations != 3 {
		t.Errorf("expected the old set untouched, got %d", first.Models[ArchetypeHuman].NumAnimations)
	}
	if r.ModelInfo(ArchetypeHuman).NumAnimations != 1 {
		t.Errorf("expected the new set published, got %d", r.ModelInfo(ArchetypeHuman).NumAnimations)
	}
}

func TestRegistry_ClientIndex(t *testing.T) {
	r := New(testAnimationConfig(), testLoader())
	r.InitAnimationSets()

	if r.MaxClients() != 64 {
		t.Errorf("expected 64 client slots, got %d", r.MaxClients())
	}
	if r.ModelInfoForClient(3) != nil {
		t.Error("expected nil for an unassigned client")
	}

	if err := r.AssignClient(0, ArchetypeHuman); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}
	if err := r.AssignClient(3, ArchetypeAlien); err != nil {
		t.Fatalf("failed to assign: %v", err)
	}

	human := r.ModelInfo(ArchetypeHuman)
	tests := []struct {
		id   int
		want *ModelInfo
	}{
		{0, human},
		{3, r.ModelInfo(ArchetypeAlien)},
		{-1, human},
		{64, human},
		{99999, human},
	}
	for _, tt := range tests {
		if got := r.ModelInfoForClient(tt.id); got != tt.want {
			t.Errorf("client %d: expected %p, got %p", tt.id, tt.want, got)
		}
	}

	r.ReleaseClient(3)
	if r.ModelInfoForClient(3) != nil {
		t.Error("expected nil after release")
	}
	r.ReleaseClient(-5)
}

func TestRegistry_ClientFollowsRebuild(t *testing.T) {
	loader := testLoader()
	r := New(testAnimationConfig(), loader)
	r.InitAnimationSets()
	r.AssignClient(1, ArchetypeHuman)

	loader["human/animation.cfg"] = "idle 0 1 10\n"
	r.InitAnimationSets()

	if got := r.ModelInfoForClient(1); got != r.ModelInfo(ArchetypeHuman) || got.NumAnimations != 1 {
		t.Errorf("expected client to see the rebuilt model, got %+v", got)
	}
}

func TestRegistry_AssignClientErrors(t *testing.T) {
	r := New(testAnimationConfig(), testLoader())

	if err := r.AssignClient(-1, ArchetypeHuman); err == nil {
		t.Error("expected error for negative id")
	}
	if err := r.AssignClient(64, ArchetypeHuman); err == nil {
		t.Error("expected error for id past the table")
	}
	if err := r.AssignClient(0, NumArchetypes); err == nil {
		t.Error("expected error for invalid archetype")
	}
}

func TestRegistry_NoClients(t *testing.T) {
	cfg := testAnimationConfig()
	cfg.MaxClients = 0
	r := New(cfg, testLoader())
	r.InitAnimationSets()

	if r.ModelInfoForClient(0) != nil {
		t.Error("expected nil with no client slots")
	}
}

func TestRegistry_ConcurrentReaders(t *testing.T) {
	r := New(testAnimationConfig(), testLoader())
	r.InitAnimationSets()
	r.AssignClient(0, ArchetypeHuman)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if mi := r.ModelInfoForClient(j); mi != nil {
					IndexOfAnimation("run", mi)
				}
			}
		}()
	}
	for i := 0; i < 5; i++ {
		r.InitAnimationSets()
	}
	wg.Wait()
}

func TestRegistry_WithAssetManager(t *testing.T) {
	dir := t.TempDir()
	humanDir := filepath.Join(dir, "human")
	if err := os.MkdirAll(humanDir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"animation.cfg": "// human clips\nwalk 0 10 20\nrun 10 -10 40\njump 20 5 10\n",
		"animation.evt": "version 2\nhuman\nfootsteps flesh\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(humanDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	mgr := assets.NewManager()
	defer mgr.Close()
	if err := mgr.AddDir(dir); err != nil {
		t.Fatalf("failed to add dir: %v", err)
	}

	r := New(testAnimationConfig(), mgr)
	r.InitAnimationSets()

	human := r.ModelInfo(ArchetypeHuman)
	if human.NumAnimations != 3 {
		t.Fatalf("expected 3 animations, got %d", human.NumAnimations)
	}
	if human.Animations[0].Footsteps != formats.FootstepsFlesh {
		t.Errorf("expected flesh footsteps, got %s", human.Animations[0].Footsteps)
	}
	if a := AnimationByName("RUN", human); a == nil || !a.Reversed {
		t.Errorf("expected reversed run, got %+v", a)
	}
}
