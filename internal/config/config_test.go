package config

import (
	"reflect"
	"testing"

	"github.com/DevByProxy/fensterchef/internal/action"
	"github.com/DevByProxy/fensterchef/internal/bind"
)

func TestDefaultConfigurationRoundTripsThroughYAML(t *testing.T) {
	original := DefaultConfiguration()
	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(original, got) {
		t.Errorf("round trip changed the configuration:\nwant %+v\ngot  %+v", original, got)
	}
}

func TestResolveBindingsAppliesContextModifiers(t *testing.T) {
	bindings, err := ResolveBindings(DefaultConfiguration())
	if err != nil {
		t.Fatalf("ResolveBindings: %v", err)
	}

	// Reload is defined with only Shift but the keyboard context adds
	// Mod4, so the effective binding requires both.
	b, ok := bindings.Keys.Lookup(ModMod4|ModShift, 0, bind.Trigger{Kind: bind.Key, Value: 'r'}, bind.OnPress)
	if !ok {
		t.Fatalf("Mod4+Shift+r should be bound")
	}
	if len(b.Actions) != 1 || b.Actions[0].Code != action.ReloadConfiguration {
		t.Errorf("Mod4+Shift+r actions = %+v, want [ReloadConfiguration]", b.Actions)
	}

	// Plain Mod4+r (no Shift) is a different binding entirely.
	b, ok = bindings.Keys.Lookup(ModMod4, 0, bind.Trigger{Kind: bind.Key, Value: 'r'}, bind.OnPress)
	if !ok || b.Actions[0].Code != action.RemoveFrame {
		t.Errorf("Mod4+r = %+v, want RemoveFrame", b)
	}
}

func TestResolveBindingsRunActionCarriesFallbackCommand(t *testing.T) {
	bindings, err := ResolveBindings(DefaultConfiguration())
	if err != nil {
		t.Fatalf("ResolveBindings: %v", err)
	}
	b, ok := bindings.Keys.Lookup(ModMod4, 0, bind.Trigger{Kind: bind.Key, Value: xkReturn}, bind.OnPress)
	if !ok {
		t.Fatalf("Mod4+Return should be bound")
	}
	want := `[ -n "$TERMINAL" ] && exec "$TERMINAL" || exec xterm`
	if b.Actions[0].Code != action.Run || b.Actions[0].Parameter.Str != want {
		t.Errorf("Mod4+Return = %+v, want Run(%q)", b.Actions[0], want)
	}
}

func TestResolveBindingsQuitRequiresControlAndShift(t *testing.T) {
	bindings, err := ResolveBindings(DefaultConfiguration())
	if err != nil {
		t.Fatalf("ResolveBindings: %v", err)
	}
	_, ok := bindings.Keys.Lookup(ModMod4|ModControl, 0, bind.Trigger{Kind: bind.Key, Value: 'e'}, bind.OnPress)
	if ok {
		t.Errorf("Mod4+Control+e alone should not quit")
	}
	b, ok := bindings.Keys.Lookup(ModMod4|ModControl|ModShift, 0, bind.Trigger{Kind: bind.Key, Value: 'e'}, bind.OnPress)
	if !ok || b.Actions[0].Code != action.Quit {
		t.Errorf("Mod4+Control+Shift+e = %+v, want Quit", b)
	}
}

func TestResolveBindingsMouseButtonsUseContextModifiers(t *testing.T) {
	bindings, err := ResolveBindings(DefaultConfiguration())
	if err != nil {
		t.Fatalf("ResolveBindings: %v", err)
	}
	b, ok := bindings.Buttons.Lookup(ModMod4, 0, bind.Trigger{Kind: bind.Button, Value: 3}, bind.OnPress)
	if !ok || b.Actions[0].Code != action.InitiateMove {
		t.Errorf("Mod4+button3 = %+v, want InitiateMove", b)
	}
}

func TestLoadMergesUserBindingsOverDefaults(t *testing.T) {
	userYAML := []byte(`
keyboard:
  modifiers: [mod4]
  ignore_modifiers: [lock, mod2, mod3, mod5]
  keys:
    - key: 122
      actions:
        - code: quit
`)
	cfg, bindings, err := Load(userYAML)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.OverlapPercentage != 80 {
		t.Errorf("unset field should keep its default, got %d", cfg.General.OverlapPercentage)
	}

	// The user's own binding is present. 122 is 'z', unused by the defaults.
	b, ok := bindings.Keys.Lookup(ModMod4, 0, bind.Trigger{Kind: bind.Key, Value: 122}, bind.OnPress)
	if !ok || b.Actions[0].Code != action.Quit {
		t.Errorf("user binding on key 122 missing or wrong: %+v", b)
	}

	// A default binding the user never mentioned still fires.
	b, ok = bindings.Keys.Lookup(ModMod4, 0, bind.Trigger{Kind: bind.Key, Value: 'q'}, bind.OnPress)
	if !ok || b.Actions[0].Code != action.CloseWindow {
		t.Errorf("default binding on 'q' should survive the merge, got %+v", b)
	}
}

func TestParseModifiersRejectsUnknownName(t *testing.T) {
	if _, err := ParseModifiers([]string{"bogus"}); err == nil {
		t.Errorf("expected an error for an unknown modifier name")
	}
}

func TestWMOptionsProjectsTilingFields(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Tiling.AutoFillVoid = true
	opts := cfg.WMOptions()
	if !opts.AutoFillVoid {
		t.Errorf("WMOptions did not carry AutoFillVoid through")
	}
}
