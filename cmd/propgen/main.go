// propgen generates parametric props and writes them as mesh files.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/config"
	"github.com/Faultbox/propforge/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "list", "ls":
		err = cmdList(args)
	case "build", "b":
		err = cmdBuild(args)
	case "random", "r":
		err = cmdRandom(args)
	case "params":
		err = cmdParams(args)
	case "pack":
		err = cmdPack(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`propgen - parametric prop generator

Usage:
  propgen <command> [options]

Commands:
  list [-params]                       List asset kinds and their parameters
  build <asset> [-params file]         Build an asset from defaults or a params file
  random <asset> [-seed N] [-count N]  Build seeded random variations
  params <asset> [-seed N] [-o file]   Print default or random parameters
  pack <rects.yaml>                    Pack rectangles into a minimal atlas

Common options:
  -config file   Config file (default ./propforge.yaml)
  -out dir       Output directory
  -format f      obj, stl or 3mf
  -debug         Debug logging

Examples:
  propgen build drawer -format obj
  propgen build mug -params mug.toml -out ./props
  propgen random stool -seed 42 -count 5
  propgen params drinkcan -seed 7 -o can.yaml`)
}

// setup parses the shared flags and brings up config and logging. It
// returns the remaining positional arguments.
func setup(fs *flag.FlagSet, args []string) (*config.Config, []string, error) {
	flags := config.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.Logging.LoggerOptions())
	assets.PackConfig = cfg.Atlas

	logger.Debug("config loaded",
		zap.String("out", cfg.Output.Dir),
		zap.Float64("padding", cfg.Atlas.Padding),
		zap.Float64("growth", cfg.Atlas.Growth),
	)
	return cfg, fs.Args(), nil
}

func kindArg(fs *flag.FlagSet, rest []string) (*assets.Kind, error) {
	if len(rest) < 1 {
		return nil, fmt.Errorf("usage: propgen %s <asset>", fs.Name())
	}
	return assets.Builtin().Kind(rest[0])
}
