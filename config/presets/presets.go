// Package presets holds named configurations that can be selected instead
// of the defaults.
package presets

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pegfed/go-pegfed/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exist := presets[name]; exist {
		panic(fmt.Sprintf("preset with name %s already exists", name))
	}
	presets[name] = conf
}

// Options returns the names of all registered presets.
func Options() []string {
	return slices.Sorted(maps.Keys(presets))
}

// Get the preset with the name.
func Get(name string) (config.Config, error) {
	conf, exists := presets[name]
	if !exists {
		return config.Config{}, fmt.Errorf("preset %s is not registered. select one from the options %+s", name, Options())
	}
	return conf, nil
}
