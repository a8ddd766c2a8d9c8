// cmd/strata-resolve/main.go
//
// Headless resolution: builds the environment from the project config,
// resolves one resource (or dotted module name), and reports the winning
// source and size. Useful for scripting and for debugging shadowing.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kingrea/strata/internal/config"
	"github.com/kingrea/strata/internal/launch"
	"github.com/kingrea/strata/internal/logging"
	"github.com/kingrea/strata/internal/source"
)

func main() {
	resourceName := flag.String("resource", "", "slash-separated resource path to resolve")
	moduleName := flag.String("module", "", "dotted module name to resolve (e.g. community.review)")
	projectDir := flag.String("project", "", "path to the project directory (defaults to cwd)")
	runtimeRoots := flag.String("runtime", "", "comma-separated roots for a simulated runtime loader")
	flag.Parse()

	if strings.TrimSpace(*resourceName) == "" && strings.TrimSpace(*moduleName) == "" {
		die("--resource or --module is required")
	}

	project := *projectDir
	if project == "" {
		var err error
		project, err = os.Getwd()
		if err != nil {
			die("determine working directory: %v", err)
		}
	}
	absoluteProject, err := filepath.Abs(project)
	if err != nil {
		die("resolve project dir: %v", err)
	}
	cfg, err := config.NewConfig(absoluteProject)
	if err != nil {
		die("load config: %v", err)
	}
	log := logging.New("strata-resolve")

	system := source.NewDirSource("system", cfg.SystemLocations()...)
	early := source.NewDirSource("early-extension", cfg.EarlyLocations()...)
	if err := launch.Create(system, early,
		launch.WithOwnLocation(cfg.OwnLocation()),
		launch.WithLogger(log),
	); err != nil {
		die("create environment: %v", err)
	}
	env := launch.MustGet()

	if roots := strings.TrimSpace(*runtimeRoots); roots != "" {
		runtime := source.NewDirSource("runtime", strings.Split(roots, ",")...)
		if err := env.CaptureRuntimeLoader(runtime); err != nil {
			die("capture runtime loader: %v", err)
		}
	}

	name := strings.TrimSpace(*resourceName)
	if name == "" {
		name = launch.ModuleResourcePath(*moduleName)
	}
	src, err := env.FindLoaderFor(name)
	if err != nil {
		die("%v", err)
	}
	stream, err := env.FindResourceStream(name)
	if err != nil {
		die("%v", err)
	}
	defer stream.Close()
	data, err := io.ReadAll(stream)
	if err != nil {
		die("read %s: %v", name, err)
	}
	fmt.Printf("%s ← %s (%d bytes)\n", name, src.Name(), len(data))
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
