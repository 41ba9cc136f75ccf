// objtool is a CLI utility for inspecting Wavefront OBJ models.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-obj/internal/assets"
	"github.com/Faultbox/midgard-obj/internal/config"
	"github.com/Faultbox/midgard-obj/internal/logger"
	"github.com/Faultbox/midgard-obj/pkg/formats"
	"github.com/Faultbox/midgard-obj/pkg/wavefront"
)

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	assets *assets.Manager
	loader *wavefront.Loader
}

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
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

	a := newApp(cfg)
	defer a.assets.Close()

	command := args[0]
	args = args[1:]

	switch command {
	case "info":
		err = a.cmdInfo(args)
	case "groups":
		err = a.cmdGroups(args)
	case "materials", "mtl":
		err = a.cmdMaterials(args)
	case "dump":
		err = a.cmdDump(args)
	case "watch":
		err = a.cmdWatch(args)
	case "config":
		err = a.cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func newApp(cfg *config.Config) *app {
	mgr := assets.NewManager(cfg.Assets.Root)
	loader := wavefront.NewLoader(mgr,
		wavefront.WithLogger(logger.Named("wavefront")),
		wavefront.WithOptions(loaderOptions(cfg)),
	)
	return &app{cfg: cfg, assets: mgr, loader: loader}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ/MTL model utility

Usage:
  objtool [flags] <command> [args]

Commands:
  info <model.obj>        Show vertex, face and triangle counts and bounds
  groups <model.obj>      List groups with their material and index range
  materials <model.obj>   List materials from the model's mtllib
  dump <model.obj>        Print a YAML summary of the assembled model
  watch <model.obj>       Re-parse the model every time it changes
  config [save|<path>]    Print the effective configuration, or write it
                          to the user config dir (save) or a file

Model names are resolved against the assets root (default ./assets).

Flags:
  -config <file>   Config file (default ./objtool.yaml)
  -assets <dir>    Assets root directory
  -normalize       Normalize synthesized normals
  -no-materials    Do not load the mtllib of a model
  -debug           Enable debug logging
  -log-file <file> Also write logs to file

Examples:
  objtool info models/cube.obj
  objtool -assets ./data dump scene.obj
  objtool -normalize watch models/ship.obj`)
}

// exitCode maps parse error kinds to distinct exit statuses.
func exitCode(err error) int {
	switch {
	case errors.Is(err, formats.ErrIO):
		return 2
	case errors.Is(err, formats.ErrMalformedNumber),
		errors.Is(err, formats.ErrUnsupportedArity),
		errors.Is(err, formats.ErrDanglingReference),
		errors.Is(err, formats.ErrMissingContext):
		return 3
	default:
		return 1
	}
}
