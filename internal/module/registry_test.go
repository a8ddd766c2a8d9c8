package module

import (
	"strings"
	"testing"
)

type staticModule struct {
	info      Info
	locations []string
}

func (m *staticModule) Info() Info          { return m.info }
func (m *staticModule) Locations() []string { return m.locations }

func staticFactory(info Info, locations ...string) Factory {
	return func(Config) (Module, error) {
		return &staticModule{info: info, locations: locations}, nil
	}
}

func TestRegistryRegisterAndResolve(t *testing.T) {
	reg := NewRegistry()
	info := Info{ID: "review", Version: "1.0.0"}
	if err := reg.Register("review", staticFactory(info, "/opt/review")); err != nil {
		t.Fatalf("register: %v", err)
	}
	mod, err := reg.Resolve("review", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if mod.Info().ID != "review" {
		t.Fatalf("unexpected module: %+v", mod.Info())
	}
	if len(mod.Locations()) != 1 {
		t.Fatalf("unexpected locations: %v", mod.Locations())
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := NewRegistry()
	info := Info{ID: "review", Version: "1.0.0"}
	if err := reg.Register("review", staticFactory(info)); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := reg.Register("review", staticFactory(info))
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Resolve("nope", nil); err == nil {
		t.Fatalf("expected unknown id error")
	}
}

func TestRegistryValidatesInfo(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("bad", staticFactory(Info{ID: "bad"})); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := reg.Resolve("bad", nil); err == nil {
		t.Fatalf("expected validation failure for missing version")
	}
}

func TestRegistryIDsSorted(t *testing.T) {
	reg := NewRegistry()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := reg.Register(id, staticFactory(Info{ID: id, Version: "1"})); err != nil {
			t.Fatalf("register %s: %v", id, err)
		}
	}
	ids := reg.IDs()
	if len(ids) != 3 || ids[0] != "alpha" || ids[2] != "zeta" {
		t.Fatalf("unexpected order: %v", ids)
	}
}
