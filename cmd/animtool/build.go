package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/animset/internal/animset"
	"github.com/Faultbox/animset/internal/assets"
	"github.com/Faultbox/animset/internal/config"
	"github.com/Faultbox/animset/internal/logger"
	"github.com/Faultbox/animset/internal/watch"
)

var errNoResources = errors.New("no search paths or archives configured")

// newManager opens every configured resource location. Later entries are
// searched first, so packs override loose files.
func newManager(cfg *config.Config) (*assets.Manager, error) {
	if len(cfg.Data.SearchPaths) == 0 && len(cfg.Data.Archives) == 0 {
		return nil, errNoResources
	}

	mgr := assets.NewManager()
	for _, dir := range cfg.Data.SearchPaths {
		if err := mgr.AddDir(dir); err != nil {
			mgr.Close()
			return nil, err
		}
	}
	for _, archive := range cfg.Data.Archives {
		if err := mgr.AddArchive(archive); err != nil {
			mgr.Close()
			return nil, err
		}
	}

	logger.Debug("resource sources", zap.Strings("order", mgr.Sources()))
	return mgr, nil
}

func cmdDump(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	output := fs.String("o", "", "Write YAML to file instead of stdout")
	fs.Parse(args)

	mgr, err := newManager(cfg)
	if err != nil {
		logger.Error("failed to open resources", zap.Error(err))
		os.Exit(1)
	}
	defer mgr.Close()

	reg := animset.New(cfg.Animation, mgr)
	if err := writeSet(reg.InitAnimationSets(), *output); err != nil {
		logger.Error("failed to dump animation sets", zap.Error(err))
		os.Exit(1)
	}

	// -watch keeps the dump current
	if cfg.Watch.Enabled {
		runWatch(cfg, mgr, reg, func(set *animset.Set) {
			if err := writeSet(set, *output); err != nil {
				logger.Error("failed to dump animation sets", zap.Error(err))
			}
		})
	}
}

func writeSet(set *animset.Set, output string) error {
	data, err := yaml.Marshal(set)
	if err != nil {
		return fmt.Errorf("encoding animation sets: %w", err)
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (generation %s)\n", output, set.Generation)
	return nil
}

func cmdWatch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	fs.Parse(args)

	mgr, err := newManager(cfg)
	if err != nil {
		logger.Error("failed to open resources", zap.Error(err))
		os.Exit(1)
	}
	defer mgr.Close()

	reg := animset.New(cfg.Animation, mgr)
	reg.InitAnimationSets()

	runWatch(cfg, mgr, reg, func(set *animset.Set) {
		for _, mi := range set.Models {
			if missing := mi.Missing(); len(missing) > 0 {
				logger.Warn("animation group incomplete after reload",
					zap.Stringer("archetype", mi.Archetype),
					zap.Strings("missing", missing))
			}
		}
	})
}

// runWatch rebuilds reg whenever a resource changes, until interrupted.
func runWatch(cfg *config.Config, mgr *assets.Manager, reg *animset.Registry, onReload func(*animset.Set)) {
	dirs := watchDirs(cfg)
	w, err := watch.New(cfg.Watch.Debounce, dirs...)
	if err != nil {
		logger.Error("failed to start watcher", zap.Error(err))
		os.Exit(1)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching animation resources", zap.Strings("dirs", dirs))

	err = w.Run(ctx, func(changed []string) {
		if err := mgr.Reload(); err != nil {
			logger.Warn("failed to reload packs", zap.Error(err))
		}
		onReload(reg.InitAnimationSets())
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watch stopped", zap.Error(err))
		return
	}
	logger.Info("watch stopped")
}

// watchDirs returns the directories holding the table and event files of
// both archetypes, plus the directories of configured packs.
func watchDirs(cfg *config.Config) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	models := []config.ModelConfig{cfg.Animation.Human, cfg.Animation.Alien}
	for _, root := range cfg.Data.SearchPaths {
		for _, mc := range models {
			add(filepath.Dir(filepath.Join(root, filepath.FromSlash(mc.Table))))
			add(filepath.Dir(filepath.Join(root, filepath.FromSlash(mc.Events))))
		}
	}
	for _, archive := range cfg.Data.Archives {
		add(filepath.Dir(archive))
	}
	return dirs
}
