package plugins

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kingrea/strata/internal/launch"
	"github.com/kingrea/strata/internal/module"
	"github.com/kingrea/strata/internal/reader"
)

// fakeResolver serves buffered module sources by qualified name, standing in
// for the launch environment.
type fakeResolver struct {
	sources map[string]string
}

func (f *fakeResolver) ModuleReader(qualifiedName string) (*reader.ModuleReader, error) {
	src, ok := f.sources[qualifiedName]
	if !ok {
		return nil, fmt.Errorf("fake: module %s: %w", qualifiedName, launch.ErrModuleNotFound)
	}
	return reader.New(qualifiedName, launch.ModuleResourcePath(qualifiedName), []byte(src)), nil
}

func TestRegisterEnvironmentModules(t *testing.T) {
	env := &fakeResolver{sources: map[string]string{
		"community.review": goModuleSource,
	}}
	reg := module.NewRegistry()
	if err := RegisterEnvironmentModules(reg, env, []string{"community.review"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	mod, err := reg.Resolve("community-review", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if mod.Info().Version != "1.0.0" {
		t.Fatalf("unexpected module: %+v", mod.Info())
	}
	if len(mod.Locations()) != 1 {
		t.Fatalf("unexpected locations: %v", mod.Locations())
	}
}

func TestRegisterEnvironmentModulesMissing(t *testing.T) {
	env := &fakeResolver{sources: map[string]string{}}
	reg := module.NewRegistry()
	err := RegisterEnvironmentModules(reg, env, []string{"community.absent"})
	if err == nil || !strings.Contains(err.Error(), "community.absent") {
		t.Fatalf("expected resolution failure, got %v", err)
	}
}

func TestRegisterEnvironmentModulesDuplicate(t *testing.T) {
	env := &fakeResolver{sources: map[string]string{
		"community.review": goModuleSource,
		"community.copy":   goModuleSource,
	}}
	reg := module.NewRegistry()
	err := RegisterEnvironmentModules(reg, env, []string{"community.review", "community.copy"})
	if err == nil || !strings.Contains(err.Error(), "duplicate module id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestContributedLocations(t *testing.T) {
	env := &fakeResolver{sources: map[string]string{
		"community.review": goModuleSource,
	}}
	reg := module.NewRegistry()
	if err := RegisterEnvironmentModules(reg, env, []string{"community.review"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	locations, err := ContributedLocations(reg)
	if err != nil {
		t.Fatalf("contributed: %v", err)
	}
	if len(locations) != 1 || locations[0] != "./extra/review" {
		t.Fatalf("unexpected locations: %v", locations)
	}
}
