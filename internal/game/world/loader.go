package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HookBinder turns the name of an authored use hook into a UseAction.
type HookBinder interface {
	BindUse(hook string) (UseAction, error)
}

// yamlWorldFile is the top-level YAML structure for world files.
type yamlWorldFile struct {
	World yamlWorld `yaml:"world"`
}

// yamlWorld is the YAML representation of a world.
type yamlWorld struct {
	Intro                  []string   `yaml:"intro"`
	Start                  string     `yaml:"start"`
	Rooms                  []yamlRoom `yaml:"rooms"`
	Inventory              []yamlItem `yaml:"inventory"`
	Scripts                string     `yaml:"scripts"`
	ScriptFile             string     `yaml:"script_file"`
	ScriptInstructionLimit int        `yaml:"script_instruction_limit"`
}

// yamlRoom is the YAML representation of a room.
type yamlRoom struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Items       []yamlItem `yaml:"items"`
	Exits       []yamlExit `yaml:"exits"`
}

// yamlItem is the YAML representation of an item.
type yamlItem struct {
	Name        string   `yaml:"name"`
	Synonyms    []string `yaml:"synonyms"`
	Description string   `yaml:"description"`
	Flags       []string `yaml:"flags"`
	OnUse       string   `yaml:"on_use"`
}

// yamlExit is the YAML representation of an exit. Mutual defaults to true.
type yamlExit struct {
	Direction string `yaml:"direction"`
	Target    string `yaml:"target"`
	Mutual    *bool  `yaml:"mutual"`
}

// Definition is a parsed but not yet assembled world file. Each call to
// Build produces a fresh World, so one Definition serves every playthrough.
type Definition struct {
	// Scripts is the Lua source defining the world's use hooks.
	Scripts string
	// ScriptInstructionLimit overrides the default per-call opcode budget. 0 = default.
	ScriptInstructionLimit int

	raw yamlWorld
}

// ParseDefinition parses a world definition from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the world schema.
// Postcondition: Returns a Definition whose rooms, exits and flags are
// well-formed, or a non-nil error.
func ParseDefinition(data []byte) (*Definition, error) {
	var file yamlWorldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing world YAML: %w", err)
	}
	def := &Definition{
		Scripts:                file.World.Scripts,
		ScriptInstructionLimit: file.World.ScriptInstructionLimit,
		raw:                    file.World,
	}
	if _, err := def.config(nil); err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}
	return def, nil
}

// LoadDefinitionFromFile reads a world definition from path. A script_file
// entry is resolved relative to the world file and appended to Scripts.
//
// Precondition: path must point to a valid YAML world file.
// Postcondition: Returns a Definition or a non-nil error.
func LoadDefinitionFromFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("loading world from %s: %w", path, err)
	}
	if def.raw.ScriptFile != "" {
		scriptPath := def.raw.ScriptFile
		if !filepath.IsAbs(scriptPath) {
			scriptPath = filepath.Join(filepath.Dir(path), scriptPath)
		}
		src, err := os.ReadFile(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("reading script file %s: %w", scriptPath, err)
		}
		def.Scripts = strings.TrimSpace(def.Scripts + "\n" + string(src))
	}
	return def, nil
}

// Hooks returns the name of every use hook referenced by the definition, in
// declaration order and without duplicates.
func (d *Definition) Hooks() []string {
	var hooks []string
	seen := make(map[string]bool)
	add := func(items []yamlItem) {
		for _, yi := range items {
			if yi.OnUse != "" && !seen[yi.OnUse] {
				seen[yi.OnUse] = true
				hooks = append(hooks, yi.OnUse)
			}
		}
	}
	add(d.raw.Inventory)
	for _, yr := range d.raw.Rooms {
		add(yr.Items)
	}
	return hooks
}

// Build assembles a fresh World from the definition, binding every on_use
// hook through binder.
//
// Precondition: binder may be nil only if no item declares on_use.
// Postcondition: Returns a validated World or a non-nil error.
func (d *Definition) Build(binder HookBinder) (*World, error) {
	if binder == nil && len(d.Hooks()) > 0 {
		return nil, fmt.Errorf("world declares use hooks %v but no hook binder was given", d.Hooks())
	}
	cfg, err := d.config(binder)
	if err != nil {
		return nil, err
	}
	return Build(cfg)
}

// config converts the parsed YAML structures into a WorldConfig. With a nil
// binder, hooks are checked for presence only.
func (d *Definition) config(binder HookBinder) (WorldConfig, error) {
	yw := d.raw
	cfg := WorldConfig{
		Intro: yw.Intro,
		Start: yw.Start,
	}
	if yw.Start == "" {
		return WorldConfig{}, fmt.Errorf("start must not be empty")
	}
	if len(yw.Rooms) == 0 {
		return WorldConfig{}, fmt.Errorf("world must contain at least one room")
	}

	for _, yr := range yw.Rooms {
		if strings.TrimSpace(yr.Name) == "" {
			return WorldConfig{}, fmt.Errorf("room name must not be empty")
		}
		rc := RoomConfig{
			Name:        yr.Name,
			Description: strings.TrimSpace(yr.Description),
		}
		for _, yi := range yr.Items {
			ic, err := convertYAMLItem(yi, binder)
			if err != nil {
				return WorldConfig{}, fmt.Errorf("room %q: %w", yr.Name, err)
			}
			rc.Items = append(rc.Items, ic)
		}
		cfg.Rooms = append(cfg.Rooms, rc)

		for _, ye := range yr.Exits {
			dir, ok := ParseDirection(ye.Direction)
			if !ok {
				return WorldConfig{}, fmt.Errorf("room %q: unknown exit direction %q", yr.Name, ye.Direction)
			}
			if ye.Target == "" {
				return WorldConfig{}, fmt.Errorf("room %q: exit %s has empty target", yr.Name, dir)
			}
			cfg.Exits = append(cfg.Exits, ExitConfig{
				From:      yr.Name,
				Direction: dir,
				To:        ye.Target,
				OneWay:    ye.Mutual != nil && !*ye.Mutual,
			})
		}
	}

	for _, yi := range yw.Inventory {
		ic, err := convertYAMLItem(yi, binder)
		if err != nil {
			return WorldConfig{}, fmt.Errorf("inventory: %w", err)
		}
		cfg.Inventory = append(cfg.Inventory, ic)
	}
	return cfg, nil
}

func convertYAMLItem(yi yamlItem, binder HookBinder) (ItemConfig, error) {
	if strings.TrimSpace(yi.Name) == "" {
		return ItemConfig{}, fmt.Errorf("item name must not be empty")
	}
	ic := ItemConfig{
		Name:        yi.Name,
		Synonyms:    yi.Synonyms,
		Description: strings.TrimSpace(yi.Description),
	}
	for _, f := range yi.Flags {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			return ItemConfig{}, fmt.Errorf("item %q: empty flag", yi.Name)
		}
		ic.Flags = append(ic.Flags, Flag(f))
	}
	if yi.OnUse != "" && binder != nil {
		action, err := binder.BindUse(yi.OnUse)
		if err != nil {
			return ItemConfig{}, fmt.Errorf("item %q: binding on_use %q: %w", yi.Name, yi.OnUse, err)
		}
		ic.OnUse = action
	}
	return ic, nil
}
