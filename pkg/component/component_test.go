package component

import "testing"

func TestIdentityStableAndDistinct(t *testing.T) {
	a := NewIdentity("Button", "src/ui/Button.tsx")
	b := NewIdentity("Button", "src/ui/Button.tsx")
	if a != b {
		t.Error("identity must be deterministic for the same name and path")
	}

	other := NewIdentity("Button", "src/legacy/Button.tsx")
	if a == other {
		t.Error("same name in different files must not collide")
	}

	if got := a.Name(); got != "Button" {
		t.Errorf("Name() = %q, want Button", got)
	}
}

func TestSummaryID(t *testing.T) {
	s := &Summary{Name: "Card", FullPath: "src/Card.tsx"}
	if s.ID() != NewIdentity("Card", "src/Card.tsx") {
		t.Error("ID() must match NewIdentity over the summary fields")
	}
}

func TestRegistryResolveByName(t *testing.T) {
	button := &Summary{Name: "Button", FullPath: "src/components/Button.tsx"}
	r := NewRegistry([]*Summary{button})

	got, ok := r.Resolve("Button")
	if !ok || got != button {
		t.Fatal("bare name should resolve directly")
	}
}

func TestRegistryResolveByPathSuffix(t *testing.T) {
	button := &Summary{Name: "Button", FullPath: "src/components/Button.tsx"}
	r := NewRegistry([]*Summary{button})

	for _, spec := range []string{"./components/Button", "../components/Button", "./Button.tsx"} {
		got, ok := r.Resolve(spec)
		if !ok || got != button {
			t.Errorf("Resolve(%q) failed, want Button", spec)
		}
	}
}

func TestRegistryResolveByExportName(t *testing.T) {
	group := &Summary{
		Name:     "ButtonGroup",
		FullPath: "src/components/ButtonGroup.tsx",
		Exports:  []string{"ButtonGroup", "PrimaryButton"},
	}
	r := NewRegistry([]*Summary{group})

	got, ok := r.Resolve("PrimaryButton")
	if !ok || got != group {
		t.Fatal("export name should resolve when no component carries it")
	}
}

func TestRegistryResolvePrefersDirectName(t *testing.T) {
	card := &Summary{Name: "Card", FullPath: "src/billing/Card.tsx"}
	deck := &Summary{
		Name:     "Deck",
		FullPath: "src/game/Deck.tsx",
		Exports:  []string{"Card"},
	}
	r := NewRegistry([]*Summary{deck, card})

	got, ok := r.Resolve("Card")
	if !ok || got != card {
		t.Error("a component named Card must win over an export named Card")
	}
}

func TestRegistryResolveMisses(t *testing.T) {
	r := NewRegistry([]*Summary{{Name: "Button", FullPath: "src/Button.tsx"}})

	if _, ok := r.Resolve(""); ok {
		t.Error("empty specifier must not resolve")
	}
	if _, ok := r.Resolve("react"); ok {
		t.Error("external packages must not resolve")
	}
	if _, ok := r.Resolve("./hooks/useCart"); ok {
		t.Error("unknown relative import must not resolve")
	}
}

func TestRegistryAddIgnoresInvalid(t *testing.T) {
	r := NewRegistry(nil)
	r.Add(nil)
	r.Add(&Summary{Name: ""})
	if len(r.All()) != 0 {
		t.Error("nil and unnamed summaries must not be indexed")
	}
}
