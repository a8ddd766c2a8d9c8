// cmd/strata/main.go
//
// Entry point for the strata inspector. Startup mirrors the host lifecycle
// the environment is built for:
//
// 1. Construct the system and early-extension loaders and create the
//    environment (early phase).
// 2. Resolve and register the configured plugin modules through it.
// 3. Construct the runtime loader, capture it (late phase) so the known
//    locations propagate into it, and widen it with whatever locations the
//    registered modules contributed.
// 4. Launch the TUI to inspect the result.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/strata/internal/config"
	"github.com/kingrea/strata/internal/launch"
	"github.com/kingrea/strata/internal/logging"
	"github.com/kingrea/strata/internal/module"
	"github.com/kingrea/strata/internal/source"
	"github.com/kingrea/strata/internal/tui"
	"github.com/kingrea/strata/plugins"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitStrataDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .strata directory: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.New("strata")

	system := source.NewDirSource("system", cfg.SystemLocations()...)
	early := source.NewDirSource("early-extension", cfg.EarlyLocations()...)
	if err := launch.Create(system, early,
		launch.WithOwnLocation(cfg.OwnLocation()),
		launch.WithLogger(log),
	); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating launch environment: %v\n", err)
		os.Exit(1)
	}
	env := launch.MustGet()

	reg := module.NewRegistry()
	if err := plugins.RegisterEnvironmentModules(reg, env, cfg.Modules()); err != nil {
		log.Warn().Err(err).Msg("module registration incomplete")
	}

	runtime := source.NewDirSource("runtime")
	if err := env.CaptureRuntimeLoader(runtime); err != nil {
		fmt.Fprintf(os.Stderr, "Error capturing runtime loader: %v\n", err)
		os.Exit(1)
	}
	contributed, err := plugins.ContributedLocations(reg)
	if err != nil {
		log.Warn().Err(err).Msg("could not collect module locations")
	}
	for _, loc := range contributed {
		if err := runtime.AddLocation(loc); err != nil {
			log.Warn().Err(err).Str("location", loc).Msg("could not widen runtime loader")
		}
	}

	p := tea.NewProgram(
		tui.NewApp(env, reg),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
