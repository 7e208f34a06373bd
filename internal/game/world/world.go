package world

import (
	"errors"
	"fmt"
	"strings"
)

// ExitConfig declares an exit between two rooms by name.
type ExitConfig struct {
	// From is the name of the room the exit leaves.
	From string
	// Direction is the direction of travel from From.
	Direction Direction
	// To is the name of the destination room.
	To string
	// OneWay suppresses the automatic reverse exit.
	OneWay bool
}

// WorldConfig declares a complete world.
type WorldConfig struct {
	// Intro lines are shown once before play starts.
	Intro []string
	// Rooms are created in order.
	Rooms []RoomConfig
	// Exits are connected after every room exists.
	Exits []ExitConfig
	// Start names the starting room.
	Start string
	// Inventory declares items the player starts with.
	Inventory []ItemConfig
}

// World is the collection of rooms and exits for one playthrough, together
// with the starting room, the intro text and the player's inventory.
type World struct {
	intro     []string
	rooms     []*Room
	byName    map[string]*Room
	start     *Room
	inventory *Inventory
}

// New creates an empty world for incremental authoring.
func New() *World {
	return &World{
		byName:    make(map[string]*Room),
		inventory: NewInventory(),
	}
}

// Build assembles and validates a world from cfg.
//
// Postcondition: Returns a validated World or a non-nil error.
func Build(cfg WorldConfig) (*World, error) {
	w := New()
	w.SetIntro(cfg.Intro...)
	for _, rc := range cfg.Rooms {
		if _, err := w.AddRoom(rc); err != nil {
			return nil, err
		}
	}
	for _, ec := range cfg.Exits {
		from, ok := w.Room(ec.From)
		if !ok {
			return nil, fmt.Errorf("exit %s from unknown room %q", ec.Direction, ec.From)
		}
		to, ok := w.Room(ec.To)
		if !ok {
			return nil, fmt.Errorf("room %q: exit %s targets unknown room %q", ec.From, ec.Direction, ec.To)
		}
		if ec.Direction.IsZero() {
			return nil, fmt.Errorf("room %q: exit to %q has no direction", ec.From, ec.To)
		}
		from.ConnectTo(ec.Direction, to, !ec.OneWay)
	}
	if cfg.Start != "" {
		start, ok := w.Room(cfg.Start)
		if !ok {
			return nil, fmt.Errorf("start room %q not found", cfg.Start)
		}
		w.SetStart(start)
	}
	for _, ic := range cfg.Inventory {
		w.AddStartingItem(ic)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// AddRoom creates a room from cfg and adds it to the world.
//
// Precondition: cfg.Name must be non-empty and unique within the world.
// Postcondition: Returns the new room, or an error on an empty or duplicate name.
func (w *World) AddRoom(cfg RoomConfig) (*Room, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, errors.New("room name must not be empty")
	}
	if _, exists := w.byName[cfg.Name]; exists {
		return nil, fmt.Errorf("duplicate room name %q", cfg.Name)
	}
	r := NewRoom(cfg)
	w.rooms = append(w.rooms, r)
	w.byName[r.Name()] = r
	return r, nil
}

// MustAddRoom is AddRoom for authored content known to be valid. It panics
// on error.
func (w *World) MustAddRoom(cfg RoomConfig) *Room {
	r, err := w.AddRoom(cfg)
	if err != nil {
		panic(fmt.Sprintf("adding room: %v", err))
	}
	return r
}

// AddStartingItem creates an item in the player's starting inventory.
func (w *World) AddStartingItem(cfg ItemConfig) *Item {
	it := NewItem(cfg)
	w.inventory.Add(it)
	return it
}

// SetIntro sets the lines shown before play begins.
func (w *World) SetIntro(lines ...string) {
	w.intro = append([]string(nil), lines...)
}

// Intro returns the preamble joined by newlines, or "" if none was set.
func (w *World) Intro() string {
	return strings.Join(w.intro, "\n")
}

// SetStart designates the starting room.
//
// Precondition: r must belong to this world.
func (w *World) SetStart(r *Room) {
	w.start = r
}

// Start returns the starting room, or nil if none was designated.
func (w *World) Start() *Room { return w.start }

// Inventory returns the player's inventory.
func (w *World) Inventory() *Inventory { return w.inventory }

// Room returns the room with the given name.
//
// Postcondition: Returns (room, true) if found, or (nil, false).
func (w *World) Room(name string) (*Room, bool) {
	r, ok := w.byName[name]
	return r, ok
}

// Rooms returns every room in authoring order.
func (w *World) Rooms() []*Room {
	return append([]*Room(nil), w.rooms...)
}

// RoomCount returns the number of rooms.
func (w *World) RoomCount() int { return len(w.rooms) }

// Validate checks world invariants.
//
// Postcondition: Returns nil if valid, or an error describing the first violation.
func (w *World) Validate() error {
	if len(w.rooms) == 0 {
		return errors.New("world must contain at least one room")
	}
	if w.start == nil {
		return errors.New("world has no starting room")
	}
	if w.byName[w.start.Name()] != w.start {
		return fmt.Errorf("starting room %q is not part of the world", w.start.Name())
	}
	for _, r := range w.rooms {
		for _, e := range r.Exits() {
			if e.Target == nil || w.byName[e.Target.Name()] != e.Target {
				return fmt.Errorf("room %q: exit %s targets a room outside the world", r.Name(), e.Direction)
			}
		}
		for _, it := range r.contents {
			if strings.TrimSpace(it.Name()) == "" {
				return fmt.Errorf("room %q: item name must not be empty", r.Name())
			}
		}
	}
	return nil
}
