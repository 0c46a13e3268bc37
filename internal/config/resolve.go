package config

import (
	"fmt"

	"github.com/DevByProxy/fensterchef/internal/bind"
)

// ResolvedBindings holds the runtime binding tables and grab parameters
// produced by resolving a Configuration's Keyboard and Mouse sections.
type ResolvedBindings struct {
	Keys            *bind.Table
	KeyModifiers    uint16
	KeyIgnore       uint16
	Buttons         *bind.Table
	ButtonModifiers uint16
	ButtonIgnore    uint16
	ResizeTolerance int32
}

// ResolveBindings builds the runtime binding tables for c's Keyboard and
// Mouse sections, converting every name (modifier, action code, flag) to
// its numeric form and returning the first error encountered, tagged with
// the offending key or button so a bad configuration file is easy to fix.
func ResolveBindings(c *Configuration) (*ResolvedBindings, error) {
	keyMods, err := ParseModifiers(c.Keyboard.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("keyboard.modifiers: %w", err)
	}
	keyIgnore, err := ParseModifiers(c.Keyboard.IgnoreModifiers)
	if err != nil {
		return nil, fmt.Errorf("keyboard.ignore_modifiers: %w", err)
	}
	keys := bind.NewTable()
	for _, k := range c.Keyboard.Keys {
		b, err := k.resolve(keyMods)
		if err != nil {
			return nil, fmt.Errorf("keyboard key %d: %w", k.Key, err)
		}
		keys.Add(b)
	}

	buttonMods, err := ParseModifiers(c.Mouse.Modifiers)
	if err != nil {
		return nil, fmt.Errorf("mouse.modifiers: %w", err)
	}
	buttonIgnore, err := ParseModifiers(c.Mouse.IgnoreModifiers)
	if err != nil {
		return nil, fmt.Errorf("mouse.ignore_modifiers: %w", err)
	}
	buttons := bind.NewTable()
	for _, bt := range c.Mouse.Buttons {
		b, err := bt.resolve(buttonMods)
		if err != nil {
			return nil, fmt.Errorf("mouse button %d: %w", bt.Button, err)
		}
		buttons.Add(b)
	}

	return &ResolvedBindings{
		Keys:            keys,
		KeyModifiers:    keyMods,
		KeyIgnore:       keyIgnore,
		Buttons:         buttons,
		ButtonModifiers: buttonMods,
		ButtonIgnore:    buttonIgnore,
		ResizeTolerance: c.Mouse.ResizeTolerance,
	}, nil
}

// resolve turns k into a bind.Binding, OR-ing its intrinsic modifiers with
// the keyboard context's base modifiers, so e.g. a default binding that
// specifies only "shift" ends up grabbed as Mod4+Shift once the context's
// Mod4 base is applied.
func (k KeyBinding) resolve(contextModifiers uint16) (bind.Binding, error) {
	mods, err := ParseModifiers(k.Modifiers)
	if err != nil {
		return bind.Binding{}, err
	}
	flags, err := flagsFromNames(k.Flags)
	if err != nil {
		return bind.Binding{}, err
	}
	actions, err := ResolveActions(k.Actions)
	if err != nil {
		return bind.Binding{}, err
	}
	return bind.Binding{
		Modifiers: mods | contextModifiers,
		Flags:     flags,
		Trigger:   bind.Trigger{Kind: bind.Key, Value: k.Key},
		Actions:   actions,
	}, nil
}

func (b ButtonBinding) resolve(contextModifiers uint16) (bind.Binding, error) {
	mods, err := ParseModifiers(b.Modifiers)
	if err != nil {
		return bind.Binding{}, err
	}
	flags, err := flagsFromNames(b.Flags)
	if err != nil {
		return bind.Binding{}, err
	}
	actions, err := ResolveActions(b.Actions)
	if err != nil {
		return bind.Binding{}, err
	}
	return bind.Binding{
		Modifiers: mods | contextModifiers,
		Flags:     flags,
		Trigger:   bind.Trigger{Kind: bind.Button, Value: b.Button},
		Actions:   actions,
	}, nil
}
