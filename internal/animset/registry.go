package animset

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/animset/internal/config"
	"github.com/Faultbox/animset/internal/logger"
)

// Set is one published build of every archetype's animations.
// It is never modified after publication.
type Set struct {
	Generation uuid.UUID                 `yaml:"generation"`
	BuiltAt    time.Time                 `yaml:"built_at"`
	Models     [NumArchetypes]*ModelInfo `yaml:"models"`
}

// ModelInfo returns the model of archetype a, or nil.
func (s *Set) ModelInfo(a Archetype) *ModelInfo {
	if s == nil || a >= NumArchetypes {
		return nil
	}
	return s.Models[a]
}

// Registry owns the animation sets and the per-client model index.
type Registry struct {
	cfg    config.AnimationConfig
	loader Loader

	set atomic.Pointer[Set]

	// clients[i] holds archetype+1 for client i, 0 if unassigned
	clients []atomic.Int32

	// serializes rebuilds
	mu sync.Mutex
}

// New creates a registry. Call InitAnimationSets before querying it.
func New(cfg config.AnimationConfig, loader Loader) *Registry {
	return &Registry{
		cfg:     cfg,
		loader:  loader,
		clients: make([]atomic.Int32, cfg.MaxClients),
	}
}

// InitAnimationSets builds every archetype and publishes the result.
// It is called at startup and on a full reset; readers keep seeing the
// previous set until the new one is complete.
func (r *Registry) InitAnimationSets() *Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := &Set{
		Generation: uuid.New(),
		BuiltAt:    time.Now(),
	}
	for a := Archetype(0); a < NumArchetypes; a++ {
		set.Models[a] = r.buildModel(a)
	}
	r.set.Store(set)

	logger.Info("animation sets built",
		zap.Stringer("generation", set.Generation),
		zap.Int("human", set.Models[ArchetypeHuman].NumAnimations),
		zap.Int("alien", set.Models[ArchetypeAlien].NumAnimations))

	return set
}

func (r *Registry) buildModel(a Archetype) *ModelInfo {
	mc := r.modelConfig(a)
	mi := NewModelInfo(a, mc, r.cfg.MaxScriptModels)

	if _, err := ParseAnimationTable(r.loader, mc.Table, mi, r.cfg.MaxAnimations); err != nil {
		logger.Warn("no animations for archetype",
			zap.Stringer("archetype", a),
			zap.Error(err))
	} else {
		ParseAnimationEvents(r.loader, mc.Events, mi, mc.Humanoid)
	}

	InitAnimationSetForArchetype(mi)

	if missing := mi.Missing(); len(missing) > 0 {
		logger.Debug("animation group has unresolved clips",
			zap.Stringer("archetype", a),
			zap.Strings("missing", missing))
	}
	return mi
}

func (r *Registry) modelConfig(a Archetype) config.ModelConfig {
	if a == ArchetypeAlien {
		return r.cfg.Alien
	}
	return r.cfg.Human
}

// Current returns the published set, or nil before the first build.
func (r *Registry) Current() *Set {
	return r.set.Load()
}

// ModelInfo returns the current model of archetype a, or nil.
func (r *Registry) ModelInfo(a Archetype) *ModelInfo {
	return r.Current().ModelInfo(a)
}

// MaxClients returns the number of client slots.
func (r *Registry) MaxClients() int {
	return len(r.clients)
}

// AssignClient binds a client slot to an archetype.
func (r *Registry) AssignClient(clientID int, a Archetype) error {
	if clientID < 0 || clientID >= len(r.clients) {
		return fmt.Errorf("client %d out of range [0, %d)", clientID, len(r.clients))
	}
	if a >= NumArchetypes {
		return fmt.Errorf("client %d: invalid archetype %d", clientID, a)
	}
	r.clients[clientID].Store(int32(a) + 1)
	return nil
}

// ReleaseClient clears a client slot. Out of range ids are ignored.
func (r *Registry) ReleaseClient(clientID int) {
	if clientID >= 0 && clientID < len(r.clients) {
		r.clients[clientID].Store(0)
	}
}

// ModelInfoForClient returns the model assigned to a client, or nil if the
// slot is unassigned. Out of range ids read slot 0 instead of failing; this
// runs every frame and must not break on a stale id.
func (r *Registry) ModelInfoForClient(clientID int) *ModelInfo {
	if len(r.clients) == 0 {
		return nil
	}
	if clientID < 0 || clientID >= len(r.clients) {
		clientID = 0
	}

	a := r.clients[clientID].Load()
	if a == 0 {
		return nil
	}
	return r.Current().ModelInfo(Archetype(a - 1))
}
