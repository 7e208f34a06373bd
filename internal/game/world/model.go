// Package world provides the game world model: directions, rooms, items and
// the exit graph connecting rooms.
package world

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Flag is a capability tag on an item. The vocabulary is open: content may
// define flags of its own, but the engine only understands the constants below.
type Flag string

// Flags understood by the engine.
const (
	FlagUsable    Flag = "usable"
	FlagFixed     Flag = "fixed"
	FlagDrinkable Flag = "drinkable"
	FlagEdible    Flag = "edible"
	FlagPressable Flag = "pressable"
)

// KnownFlags lists the flags understood by the engine.
var KnownFlags = []Flag{FlagUsable, FlagFixed, FlagDrinkable, FlagEdible, FlagPressable}

// Outcome is the result of invoking an item's use action.
type Outcome int

const (
	// NoEffect leaves the item where it is.
	NoEffect Outcome = iota
	// Destroy removes the item from whichever container holds it.
	Destroy
)

// Game is the set of session facilities a use action may reach.
type Game interface {
	// Say writes lines to the player.
	Say(lines ...string)
	// GameOver announces a loss and stops the session with a soft quit.
	GameOver()
	// Win announces a victory and stops the session with a soft quit.
	Win()
	// CurrentRoom returns the room the player is in.
	CurrentRoom() *Room
	// Room looks up a room of the world by name.
	Room(name string) (*Room, bool)
}

// UseContext is passed to a use action when the player uses an item.
type UseContext struct {
	// Item is the item being used.
	Item *Item
	// Room is the room holding the item, or nil if it is carried.
	Room *Room
	// Verb is the verb the player typed, e.g. "press".
	Verb string
	// Game exposes the session facilities.
	Game Game
}

// UseAction is an authored callback invoked when an item is used.
type UseAction func(ctx UseContext) Outcome

// container owns items. Room and Inventory are the only implementations.
type container interface {
	removeItem(it *Item) bool
}

// ItemConfig declares an item. It is the only way to create items.
type ItemConfig struct {
	// Name is the canonical display name.
	Name string
	// Synonyms are alternate names used when resolving player input.
	Synonyms []string
	// Description is shown by examine; empty means no description.
	Description string
	// Flags are the item's capability tags.
	Flags []Flag
	// OnUse is invoked when the item is used; nil means the item has no action.
	OnUse UseAction
}

// Item is a manipulable object. At any time an item in play is owned by
// exactly one container: a room or the player's inventory.
type Item struct {
	name        string
	synonyms    []string
	description string
	flags       []Flag
	onUse       UseAction
	owner       container
}

// NewItem creates an unowned item from cfg.
//
// Precondition: cfg.Name must be non-empty.
// Postcondition: Returns an item owned by no container.
func NewItem(cfg ItemConfig) *Item {
	it := &Item{
		name:        cfg.Name,
		synonyms:    append([]string(nil), cfg.Synonyms...),
		description: cfg.Description,
		onUse:       cfg.OnUse,
	}
	for _, f := range cfg.Flags {
		if !it.HasFlag(f) {
			it.flags = append(it.flags, f)
		}
	}
	return it
}

// Name returns the canonical display name.
func (it *Item) Name() string { return it.name }

// Synonyms returns a copy of the alternate names.
func (it *Item) Synonyms() []string { return append([]string(nil), it.synonyms...) }

// Names returns the name followed by every synonym.
func (it *Item) Names() []string {
	return append([]string{it.name}, it.synonyms...)
}

// Description returns the authored description, possibly empty.
func (it *Item) Description() string { return it.description }

// Flags returns a copy of the item's flags.
func (it *Item) Flags() []Flag { return append([]Flag(nil), it.flags...) }

// HasFlag reports whether the item carries f.
func (it *Item) HasFlag(f Flag) bool {
	for _, have := range it.flags {
		if have == f {
			return true
		}
	}
	return false
}

// UseAction returns the authored use action, or nil.
func (it *Item) UseAction() UseAction { return it.onUse }

// Location returns the room holding the item, or nil if the item is carried
// or has been destroyed.
func (it *Item) Location() *Room {
	r, _ := it.owner.(*Room)
	return r
}

// Carried reports whether the item is in an inventory.
func (it *Item) Carried() bool {
	_, ok := it.owner.(*Inventory)
	return ok
}

// Destroy removes the item from its container.
//
// Postcondition: The item is owned by no container.
func (it *Item) Destroy() {
	it.detach()
}

func (it *Item) detach() {
	if it.owner != nil {
		it.owner.removeItem(it)
		it.owner = nil
	}
}

func removeFrom(items []*Item, it *Item) ([]*Item, bool) {
	for i, have := range items {
		if have == it {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}

// RoomConfig declares a room and the items initially in it.
type RoomConfig struct {
	// Name is the lowercase noun phrase used in prose, e.g. "a living room".
	Name string
	// Description is the full room description.
	Description string
	// Items are created and placed in the room.
	Items []ItemConfig
}

// Exit is a directed edge from a room.
type Exit struct {
	Direction Direction
	Target    *Room
}

// Room represents a location in the game world.
type Room struct {
	name        string
	title       string
	description string
	contents    []*Item
	exits       map[Direction]*Room
	exitOrder   []Direction
}

// NewRoom creates a room from cfg with its items placed inside it.
//
// Precondition: cfg.Name must be non-empty.
// Postcondition: Every item declared in cfg is owned by the returned room.
func NewRoom(cfg RoomConfig) *Room {
	r := &Room{
		name:        cfg.Name,
		title:       TitleCase(cfg.Name),
		description: cfg.Description,
		exits:       make(map[Direction]*Room),
	}
	for _, ic := range cfg.Items {
		r.AddItem(NewItem(ic))
	}
	return r
}

// Name returns the lowercase prose name.
func (r *Room) Name() string { return r.name }

// Title returns the capitalized display form of the name.
func (r *Room) Title() string { return r.title }

// Description returns the full description.
func (r *Room) Description() string { return r.description }

// Contents returns a snapshot of the items in the room, in placement order.
func (r *Room) Contents() []*Item {
	return append([]*Item(nil), r.contents...)
}

// Items is an alias of Contents so rooms can serve as item sources.
func (r *Room) Items() []*Item { return r.Contents() }

// AddItem moves it into the room, taking it from any previous container.
//
// Postcondition: it.Location() == r and it appears last in r.Contents().
func (r *Room) AddItem(it *Item) {
	it.detach()
	r.contents = append(r.contents, it)
	it.owner = r
}

// RemoveItem takes it out of the room.
//
// Postcondition: Returns true if it was in the room; it is then owned by no container.
func (r *Room) RemoveItem(it *Item) bool {
	if it.owner != r {
		return false
	}
	it.detach()
	return true
}

func (r *Room) removeItem(it *Item) bool {
	var ok bool
	r.contents, ok = removeFrom(r.contents, it)
	return ok
}

// ConnectTo sets the exit in direction d to target. When mutual is true the
// reverse exit on target, in d.Opposite(), is set back to r.
//
// Precondition: d must be a vocabulary direction; target must be non-nil.
func (r *Room) ConnectTo(d Direction, target *Room, mutual bool) {
	r.setExit(d, target)
	if mutual {
		target.setExit(d.Opposite(), r)
	}
}

// Connect is ConnectTo with mutual set.
func (r *Room) Connect(d Direction, target *Room) {
	r.ConnectTo(d, target, true)
}

func (r *Room) setExit(d Direction, target *Room) {
	if _, exists := r.exits[d]; !exists {
		r.exitOrder = append(r.exitOrder, d)
	}
	r.exits[d] = target
}

// Exit returns the room reached by going in direction d.
//
// Postcondition: Returns (room, true) if an exit exists, or (nil, false).
func (r *Room) Exit(d Direction) (*Room, bool) {
	target, ok := r.exits[d]
	return target, ok
}

// Exits returns every exit in the order it was first declared.
func (r *Room) Exits() []Exit {
	out := make([]Exit, 0, len(r.exitOrder))
	for _, d := range r.exitOrder {
		out = append(out, Exit{Direction: d, Target: r.exits[d]})
	}
	return out
}

// smallWords stay lowercase in titles unless they lead.
var smallWords = map[string]bool{"of": true, "the": true, "a": true, "an": true}

// TitleCase capitalizes each word of s except small words after the first.
//
// Postcondition: "the atrium" → "The Atrium"; "a house of cards" → "A House of Cards".
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if i != 0 && smallWords[w] {
			continue
		}
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
