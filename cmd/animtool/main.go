// animtool is a CLI utility for checking and inspecting animation sets.
package main

import (
	"flag"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/animset/internal/animset"
	"github.com/Faultbox/animset/internal/config"
	"github.com/Faultbox/animset/internal/logger"
	"github.com/Faultbox/animset/pkg/encoding"
	"github.com/Faultbox/animset/pkg/formats"
	"github.com/Faultbox/animset/pkg/pk3"
)

func main() {
	config.ParseFlags()
	args := config.Args()

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "help", "-h", "--help":
		printUsage()
		return
	case "movetypes", "mt":
		cmdMoveTypes(args)
		return
	case "check":
		cmdCheck(args)
		return
	case "pak":
		cmdPak(args)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	switch command {
	case "dump":
		cmdDump(cfg, args)
	case "lookup", "find":
		cmdLookup(cfg, args)
	case "watch":
		cmdWatch(cfg, args)
	case "init":
		cmdInit(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`animtool - animation set utility

Usage:
  animtool [flags] <command> [options]

Commands:
  check <table.cfg> [table.evt]      Parse resources and print diagnostics
  dump                               Build both archetypes and print YAML
  lookup <archetype> <name>          Resolve an animation name to its index
  movetypes                          List movement type keywords
  pak <file.pk3> [pattern]           List files in a pack
  watch                              Rebuild animation sets on change
  init [path]                        Write the default config file

Flags:
  -config <path>  -data <dir>  -pack <file.pk3>  -debug  -log <file>

Examples:
  animtool check models/players/human/animation.cfg models/players/human/animation.evt
  animtool -data ./base dump
  animtool lookup human run_forward
  animtool movetypes`)
}

func cmdCheck(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	model := fs.String("model", "", "Model tag expected in the event file (default: table directory name)")
	capacity := fs.Int("max", formats.DefaultMaxAnimations, "Table capacity")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: animtool check [-model name] [-max n] <table.cfg> [table.evt]")
		os.Exit(1)
	}

	tablePath := fs.Arg(0)
	table, err := formats.ParseAnimationConfigFile(tablePath, *capacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	problems := printDiagnostics(tablePath, table.Diagnostics)
	fmt.Printf("%s: %d/%d animations\n", tablePath, len(table.Animations), table.Capacity)

	if fs.NArg() > 1 {
		eventPath := fs.Arg(1)
		name := *model
		if name == "" {
			name = path.Base(path.Dir(encoding.NormalizePath(tablePath)))
		}

		res, err := formats.ApplyAnimationEventsFile(eventPath, name, table.Animations)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !res.Matched {
			fmt.Printf("%s: model %q does not match %q, nothing applied\n", eventPath, res.ModelName, name)
		} else {
			problems += printDiagnostics(eventPath, res.Diagnostics)
			fmt.Printf("%s: %d records applied\n", eventPath, res.Records)
		}
	}

	fmt.Println()
	printAnimations(table.Animations)

	if problems > 0 {
		os.Exit(2)
	}
}

// printDiagnostics prints diags and returns how many of them are problems.
func printDiagnostics(name string, diags []formats.Diagnostic) int {
	problems := 0
	for _, d := range diags {
		fmt.Printf("%s:%s\n", name, d)
		if d.Kind != formats.KindRecordTruncated {
			problems++
		}
	}
	return problems
}

func printAnimations(anims []formats.Animation) {
	fmt.Printf("  %-3s %-24s %6s %6s %5s %-8s %s\n", "#", "name", "first", "frames", "lerp", "steps", "movetype")
	for i, a := range anims {
		flags := ""
		if a.Reversed {
			flags = " (reversed)"
		} else if a.Flipflop {
			flags = " (flipflop)"
		}
		fmt.Printf("  %-3d %-24s %6d %6d %5d %-8s %s%s\n",
			i, a.Name, a.FirstFrame, a.NumFrames, a.FrameLerp, a.Footsteps, a.MoveType, flags)
	}
}

func cmdLookup(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Fail when the name is unknown")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: animtool lookup [-strict] <archetype> <name>")
		os.Exit(1)
	}

	archetype, err := animset.ParseArchetype(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mgr, err := newManager(cfg)
	if err != nil {
		logger.Error("failed to open resources", zap.Error(err))
		os.Exit(1)
	}
	defer mgr.Close()

	reg := animset.New(cfg.Animation, mgr)
	reg.InitAnimationSets()
	mi := reg.ModelInfo(archetype)

	name := fs.Arg(1)
	context := fmt.Sprintf("%s animations (%s)", archetype, mi.TablePath)
	idx, err := animset.IndexOfToken(name, mi.Names(), *strict, context)
	if err != nil {
		logger.Error("lookup failed", zap.Error(err))
		os.Exit(1)
	}

	a := mi.Animation(idx)
	if a == nil || !strings.EqualFold(a.Name, name) {
		fmt.Printf("%s: %q not found, using index %d\n", archetype, name, idx)
		return
	}
	fmt.Printf("%s: %s = %d\n", archetype, a.Name, idx)
	printAnimations([]formats.Animation{*a})
}

func cmdMoveTypes(args []string) {
	byType := make(map[formats.MoveType][]string)
	for _, alias := range formats.MoveTypeAliases() {
		byType[alias.MoveType] = append(byType[alias.MoveType], alias.Keyword)
	}

	filter := ""
	if len(args) > 0 {
		filter = strings.ToLower(args[0])
	}

	for mt := formats.MoveTypeNone; mt < formats.NumMoveTypes; mt++ {
		if filter != "" && !strings.Contains(mt.String(), filter) {
			continue
		}
		crouch := ""
		if mt.IsCrouch() {
			crouch = " [crouch]"
		}
		fmt.Printf("%-3d %-16s %s%s\n", int(mt), mt, strings.Join(byType[mt], ", "), crouch)
	}
}

func cmdPak(args []string) {
	fs := flag.NewFlagSet("pak", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N files (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: animtool pak [-n N] <file.pk3> [pattern]")
		os.Exit(1)
	}

	archive, err := pk3.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	files := archive.List()
	sort.Strings(files)

	pattern := ""
	if fs.NArg() > 1 {
		pattern = strings.ToLower(fs.Arg(1))
	}

	count := 0
	for _, f := range files {
		if pattern != "" {
			matched, _ := path.Match(pattern, path.Base(f))
			if !matched && !strings.Contains(f, pattern) {
				continue
			}
		}
		fmt.Println(f)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}

	fmt.Fprintf(os.Stderr, "\n%d files\n", count)
}

func cmdInit(cfg *config.Config, args []string) {
	var err error
	dest := ""
	if len(args) > 0 {
		dest = args[0]
		err = cfg.SaveTo(dest)
	} else {
		err = cfg.Save()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if dest == "" {
		dest = config.ConfigDir()
	}
	fmt.Printf("Config written to %s\n", dest)
}
