package animset

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/animset/internal/assets"
	"github.com/Faultbox/animset/internal/config"
	"github.com/Faultbox/animset/internal/logger"
	"github.com/Faultbox/animset/pkg/formats"
)

// mapLoader serves resources from memory.
type mapLoader map[string]string

func (m mapLoader) LoadText(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", assets.ErrNotFound, path)
	}
	return []byte(data), nil
}

// observeLogs routes the global logger to an observer for the test.
func observeLogs(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(nil) })
	return logs
}

func testAnimationConfig() config.AnimationConfig {
	return config.AnimationConfig{
		MaxAnimations:   3,
		MaxScriptModels: 4,
		MaxClients:      64,
		Human: config.ModelConfig{
			ModelName:      "human",
			Table:          "human/animation.cfg",
			Events:         "human/animation.evt",
			Humanoid:       true,
			AnimationGroup: []string{"walk", "RUN", "jump"},
		},
		Alien: config.ModelConfig{
			ModelName:      "alien",
			Table:          "alien/animation.cfg",
			Events:         "alien/animation.evt",
			AnimationGroup: []string{"idle"},
		},
	}
}

// logsOfKind returns the observed entries carrying a diagnostic kind.
func logsOfKind(logs *observer.ObservedLogs, kind formats.DiagnosticKind) []observer.LoggedEntry {
	return logs.Filter(func(e observer.LoggedEntry) bool {
		return e.ContextMap()["kind"] == kind.String()
	}).All()
}
