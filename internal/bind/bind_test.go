package bind

import (
	"testing"

	"github.com/DevByProxy/fensterchef/internal/action"
)

func TestLookupMasksIgnoreModifiers(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Binding{
		Modifiers: 0x40,
		Trigger:   Trigger{Kind: Key, Value: 'q'},
		Flags:     OnPress,
		Actions:   []action.Action{{Code: action.CloseWindow}},
	})

	// CapsLock (bit 0x2) is held but ignored; the effective modifiers
	// should still match the binding.
	_, ok := tbl.Lookup(0x42, 0x2, Trigger{Kind: Key, Value: 'q'}, OnPress)
	if !ok {
		t.Fatalf("lookup should match after masking ignored modifiers")
	}
	_, ok = tbl.Lookup(0x40, 0, Trigger{Kind: Key, Value: 'r'}, OnPress)
	if ok {
		t.Errorf("lookup matched an unrelated trigger")
	}
}

func TestAddReplacesSameKey(t *testing.T) {
	tbl := NewTable()
	trig := Trigger{Kind: Key, Value: 'q'}
	tbl.Add(Binding{Modifiers: 1, Trigger: trig, Flags: OnPress, Actions: []action.Action{{Code: action.Quit}}})
	tbl.Add(Binding{Modifiers: 1, Trigger: trig, Flags: OnPress, Actions: []action.Action{{Code: action.CloseWindow}}})

	if tbl.Len() != 1 {
		t.Fatalf("Add with a duplicate key should replace, not append; len = %d", tbl.Len())
	}
	b, _ := tbl.Lookup(1, 0, trig, OnPress)
	if b.Actions[0].Code != action.CloseWindow {
		t.Errorf("second Add should have replaced the first binding's actions")
	}
}

func TestMergeDefaultsIsNonDestructive(t *testing.T) {
	user := NewTable()
	trig := Trigger{Kind: Key, Value: 'q'}
	user.Add(Binding{Modifiers: 1, Trigger: trig, Flags: OnPress, Actions: []action.Action{{Code: action.CloseWindow}}})

	defaults := NewTable()
	defaults.Add(Binding{Modifiers: 1, Trigger: trig, Flags: OnPress, Actions: []action.Action{{Code: action.Quit}}})
	defaults.Add(Binding{Modifiers: 1, Trigger: Trigger{Kind: Key, Value: 'v'}, Flags: OnPress, Actions: []action.Action{{Code: action.SplitVertically}}})

	user.MergeDefaults(defaults)

	if user.Len() != 2 {
		t.Fatalf("expected 2 bindings after merge, got %d", user.Len())
	}
	b, _ := user.Lookup(1, 0, trig, OnPress)
	if b.Actions[0].Code != action.CloseWindow {
		t.Errorf("user binding was overwritten by default-merge")
	}
	_, ok := user.Lookup(1, 0, Trigger{Kind: Key, Value: 'v'}, OnPress)
	if !ok {
		t.Errorf("default binding with a fresh key was not appended")
	}
}

func TestMergeDefaultsIsIdempotent(t *testing.T) {
	user := NewTable()
	defaults := NewTable()
	defaults.Add(Binding{
		Modifiers: 1,
		Trigger:   Trigger{Kind: Key, Value: 'r'},
		Flags:     OnPress,
		Actions:   []action.Action{{Code: action.ReloadConfiguration}},
	})

	user.MergeDefaults(defaults)
	firstLen := user.Len()
	user.MergeDefaults(defaults)

	if user.Len() != firstLen {
		t.Fatalf("merging defaults twice changed the table size: %d then %d", firstLen, user.Len())
	}
}

func TestMergeDefaultsDeepCopiesParameters(t *testing.T) {
	user := NewTable()
	defaults := NewTable()
	defaults.Add(Binding{
		Modifiers: 1,
		Trigger:   Trigger{Kind: Key, Value: 'p'},
		Flags:     OnPress,
		Actions:   []action.Action{{Code: action.Run, Parameter: action.StringValue("xterm")}},
	})

	user.MergeDefaults(defaults)
	b, _ := user.Lookup(1, 0, Trigger{Kind: Key, Value: 'p'}, OnPress)
	b.Actions[0].Parameter.Str = "mutated"

	original, _ := defaults.Lookup(1, 0, Trigger{Kind: Key, Value: 'p'}, OnPress)
	if original.Actions[0].Parameter.Str != "xterm" {
		t.Errorf("mutating the merged copy affected the defaults table")
	}
}

type recordingGrabber struct {
	keys    []uint16
	buttons []uint16
	ungrabs int
}

func (g *recordingGrabber) GrabKey(modifiers uint16, keysym uint32)   { g.keys = append(g.keys, modifiers) }
func (g *recordingGrabber) GrabButton(modifiers uint16, button uint32) {
	g.buttons = append(g.buttons, modifiers)
}
func (g *recordingGrabber) UngrabAll() { g.ungrabs++ }

func TestRegrabAllCoversIgnoreModifierSubsets(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Binding{Modifiers: 0x40, Trigger: Trigger{Kind: Key, Value: 'q'}, Flags: OnPress})

	g := &recordingGrabber{}
	RegrabAll(tbl, 0x3, g) // two ignore bits -> four subsets

	if g.ungrabs != 1 {
		t.Errorf("RegrabAll should ungrab once before regrabbing, got %d", g.ungrabs)
	}
	if len(g.keys) != 4 {
		t.Fatalf("expected one grab per subset of ignore modifiers, got %d", len(g.keys))
	}
}
