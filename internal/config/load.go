package config

import "gopkg.in/yaml.v3"

// Load parses data as a user configuration, starting from
// DefaultConfiguration so any field the file omits keeps its default
// value, then merges the default key and mouse bindings over the user's
// bindings non-destructively: a user binding on a given trigger always
// wins, and any default trigger the user never mentioned still fires.
func Load(data []byte) (*Configuration, *ResolvedBindings, error) {
	cfg := DefaultConfiguration()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, nil, err
		}
	}

	bindings, err := ResolveBindings(cfg)
	if err != nil {
		return nil, nil, err
	}

	defaultBindings, err := ResolveBindings(DefaultConfiguration())
	if err != nil {
		return nil, nil, err
	}
	bindings.Keys.MergeDefaults(defaultBindings.Keys)
	bindings.Buttons.MergeDefaults(defaultBindings.Buttons)

	return cfg, bindings, nil
}
