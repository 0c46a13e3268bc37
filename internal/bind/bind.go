// Package bind implements the input binding table: the lookup from a
// raw key or button event to an ordered action list, and the
// non-destructive merge of a default binding table over user-configured
// bindings. Grounded on taowm's actions map (config.go), generalized from
// taowm's single hard-coded keysym-to-function map to the data-driven
// (modifiers, trigger, flags) → []Action table this system's bindings
// require.
package bind

import "github.com/DevByProxy/fensterchef/internal/action"

// Kind distinguishes a keyboard trigger from a pointer button trigger.
type Kind int

const (
	Key Kind = iota
	Button
)

// Trigger identifies what fired: a keysym (Kind == Key) or a button index
// (Kind == Button).
type Trigger struct {
	Kind  Kind
	Value uint32
}

// Flags records which phase of the trigger a binding responds to. A
// binding may combine them, e.g. press and release for a drag handle.
type Flags uint8

const (
	OnPress   Flags = 1 << 0
	OnRelease Flags = 1 << 1
	WhileHeld Flags = 1 << 2
)

// Binding associates one (modifiers, trigger, flags) combination with an
// ordered action sequence.
type Binding struct {
	Modifiers uint16
	Flags     Flags
	Trigger   Trigger
	Actions   []action.Action
}

// key is the tuple Bindings are unique by.
type key struct {
	modifiers uint16
	trigger   Trigger
	flags     Flags
}

func (b Binding) key() key {
	return key{modifiers: b.Modifiers, trigger: b.Trigger, flags: b.Flags}
}

// Table is an ordered, unique-keyed set of bindings. Order matters only
// for MergeDefaults' determinism guarantee; lookup does not depend on it.
type Table struct {
	bindings []Binding
	index    map[key]int
}

// NewTable returns an empty binding table.
func NewTable() *Table {
	return &Table{index: make(map[key]int)}
}

// Add inserts b, replacing any existing binding with the same
// (modifiers, trigger, flags) key -- at most one binding per key, per the
// uniqueness rule bindings are defined under.
func (t *Table) Add(b Binding) {
	k := b.key()
	if i, ok := t.index[k]; ok {
		t.bindings[i] = b
		return
	}
	t.index[k] = len(t.bindings)
	t.bindings = append(t.bindings, b)
}

// Bindings returns every binding in table order. The slice is owned by t
// and must not be mutated.
func (t *Table) Bindings() []Binding { return t.bindings }

// Len reports how many bindings the table holds.
func (t *Table) Len() int { return len(t.bindings) }

// Lookup computes effective = rawModifiers &^ ignoreModifiers and returns
// the binding keyed by (effective, trig, flags), if any.
func (t *Table) Lookup(rawModifiers uint16, ignoreModifiers uint16, trig Trigger, flags Flags) (Binding, bool) {
	effective := rawModifiers &^ ignoreModifiers
	i, ok := t.index[key{modifiers: effective, trigger: trig, flags: flags}]
	if !ok {
		return Binding{}, false
	}
	return t.bindings[i], true
}

// MergeDefaults appends every binding from defaults whose key is not
// already present in t, in defaults' table order, leaving t's existing
// bindings untouched. This is the non-destructive default-merge: user
// bindings always win, and merging twice is idempotent because the
// second pass finds every default key already present. Each appended
// binding's actions are deep-copied so defaults remains independently
// owned by the caller.
func (t *Table) MergeDefaults(defaults *Table) {
	for _, b := range defaults.bindings {
		if _, ok := t.index[b.key()]; ok {
			continue
		}
		b.Actions = action.CloneAll(b.Actions)
		t.Add(b)
	}
}

// Clone returns a deep copy of t, independent of its action parameters.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, b := range t.bindings {
		b.Actions = action.CloneAll(b.Actions)
		out.Add(b)
	}
	return out
}

// Grabber is the root-window grab side effect the binding engine needs
// after (re)loading a configuration. internal/x11 implements it.
type Grabber interface {
	GrabKey(modifiers uint16, keysym uint32)
	GrabButton(modifiers uint16, button uint32)
	UngrabAll()
}

// subsets yields every subset of the set bits in mask, including 0 and
// mask itself, via the standard subset-enumeration trick.
func subsets(mask uint16) []uint16 {
	out := []uint16{0}
	for bit := uint16(1); bit != 0; bit <<= 1 {
		if mask&bit == 0 {
			continue
		}
		n := len(out)
		for i := 0; i < n; i++ {
			out = append(out, out[i]|bit)
		}
		if bit == 1<<15 {
			break
		}
	}
	return out
}

// RegrabAll ungrabs everything and re-grabs every binding in t, once per
// combination of (binding.Modifiers | subset-of-ignoreModifiers), so that
// lock-state modifiers (CapsLock, NumLock) held by the user do not
// suppress the trigger.
func RegrabAll(t *Table, ignoreModifiers uint16, g Grabber) {
	g.UngrabAll()
	subs := subsets(ignoreModifiers)
	for _, b := range t.bindings {
		for _, s := range subs {
			mods := b.Modifiers | s
			switch b.Trigger.Kind {
			case Key:
				g.GrabKey(mods, b.Trigger.Value)
			case Button:
				g.GrabButton(mods, b.Trigger.Value)
			}
		}
	}
}
