// Package content embeds the world files shipped with the binary.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

//go:embed worlds/*.yaml
var worlds embed.FS

// Names lists the embedded worlds by file name without extension.
func Names() []string {
	entries, err := fs.ReadDir(worlds, "worlds")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Definition parses the embedded world called name.
//
// Postcondition: Returns the parsed Definition or a non-nil error if no
// world has that name or it fails to parse.
func Definition(name string) (*world.Definition, error) {
	data, err := worlds.ReadFile(path.Join("worlds", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("embedded world %q not found (have %v)", name, Names())
	}
	def, err := world.ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("embedded world %q: %w", name, err)
	}
	return def, nil
}
