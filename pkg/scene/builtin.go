package scene

import (
	"fmt"
	"sort"
)

// builtinScenes maps scene names accepted on the command line to constructors
var builtinScenes = map[string]func() *Scene{
	"cornell": NewCornellScene,
	"simple":  NewSimpleScene,
}

// Builtin returns a fresh copy of a named built-in scene
func Builtin(name string) (*Scene, error) {
	constructor, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, BuiltinNames())
	}
	return constructor(), nil
}

// BuiltinNames lists the built-in scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
