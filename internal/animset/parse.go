package animset

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/animset/internal/logger"
	"github.com/Faultbox/animset/pkg/formats"
)

// ErrResourceMissing means a table resource was absent or empty.
// The archetype then has no animations; this is not fatal.
var ErrResourceMissing = errors.New("animation resource missing")

// Loader reads text resources. *assets.Manager implements it.
type Loader interface {
	LoadText(path string) ([]byte, error)
}

// ParseAnimationTable loads the animation count/rate table at path into mi.
//
// At most capacity animations are read. Problems inside the table are logged
// as warnings and the partial table is still stored; only a missing or empty
// resource returns an error.
func ParseAnimationTable(loader Loader, path string, mi *ModelInfo, capacity int) ([]formats.Animation, error) {
	data, err := loader.LoadText(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResourceMissing, path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrResourceMissing, path)
	}

	table, err := formats.ParseAnimationConfig(data, capacity)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	logDiagnostics(path, table.Diagnostics)

	mi.Animations = table.Animations
	mi.NumAnimations = len(table.Animations)

	return table.Animations, nil
}

// ParseAnimationEvents overlays the event table at path onto mi's animations.
// It must run after ParseAnimationTable. A missing resource or a file for
// another model leaves the animations as they are.
func ParseAnimationEvents(loader Loader, path string, mi *ModelInfo, isHumanoid bool) {
	log := logger.Named("animset")

	data, err := loader.LoadText(path)
	if err != nil || len(data) == 0 {
		log.Debug("no animation events", zap.String("path", path), zap.Error(err))
		return
	}

	res := formats.ApplyAnimationEvents(data, mi.ModelName, mi.Animations[:mi.NumAnimations])
	if !res.Matched {
		log.Debug("animation events are for another model",
			zap.String("path", path),
			zap.String("want", mi.ModelName),
			zap.String("got", res.ModelName))
		return
	}
	logDiagnostics(path, res.Diagnostics)

	log.Debug("applied animation events",
		zap.String("path", path),
		zap.Int("version", res.Version),
		zap.Int("records", res.Records),
		zap.Bool("humanoid", isHumanoid),
		zap.Bool("aborted", res.Aborted))
}

// InitAnimationSetForArchetype resolves every animation group slot of mi to an
// index into its animations.
func InitAnimationSetForArchetype(mi *ModelInfo) {
	for slot := range mi.GroupIndices {
		mi.GroupIndices[slot] = -1
		if name := mi.AnimationGroup[slot]; name != "" {
			mi.GroupIndices[slot] = IndexOfAnimation(name, mi)
		}
	}
}

// logDiagnostics reports parser diagnostics. Truncated records are expected at
// the end of hand-edited files and only show at debug level.
func logDiagnostics(path string, diags []formats.Diagnostic) {
	log := logger.Named("animset")
	for _, d := range diags {
		fields := []zap.Field{
			zap.String("path", path),
			zap.Stringer("kind", d.Kind),
		}
		if d.Line > 0 {
			fields = append(fields, zap.Int("line", d.Line))
		}
		if d.Token != "" {
			fields = append(fields, zap.String("token", d.Token))
		}

		if d.Kind == formats.KindRecordTruncated {
			log.Debug(d.Message, fields...)
		} else {
			log.Warn(d.Message, fields...)
		}
	}
}
