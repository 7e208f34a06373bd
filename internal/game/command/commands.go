// Package command provides the verb registry, the input tokenizer and the
// parser that turns a line of player input into a structured Command.
package command

import "github.com/cory-johannsen/adventure/internal/game/world"

// Categories for organizing verbs in help output.
const (
	CategoryMovement = "movement"
	CategoryWorld    = "world"
	CategorySystem   = "system"
)

// Kind identifies what a structured command does.
type Kind string

// Command kinds.
const (
	KindQuit      Kind = "quit"
	KindRestart   Kind = "restart"
	KindRepeat    Kind = "repeat"
	KindWait      Kind = "wait"
	KindInventory Kind = "inventory"
	KindLook      Kind = "look"
	KindExamine   Kind = "examine"
	KindUse       Kind = "use"
	KindGet       Kind = "get"
	KindPut       Kind = "put"
	KindMove      Kind = "move"
	KindHelp      Kind = "help"
)

// Scope says which item sources an object phrase is resolved against.
type Scope int

const (
	// ScopeNone: the verb takes no object.
	ScopeNone Scope = iota
	// ScopeInventoryAndRoom: inventory first, then the current room.
	ScopeInventoryAndRoom
	// ScopeRoom: the current room only.
	ScopeRoom
	// ScopeInventory: the inventory only.
	ScopeInventory
	// ScopeDirection: the rest of the input is a direction.
	ScopeDirection
)

// Verb defines a player-invocable verb.
type Verb struct {
	// Name is the canonical verb.
	Name string
	// Aliases are alternate spellings of the verb.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the verb in help output.
	Category string
	// Kind is the kind of command the verb produces.
	Kind Kind
	// Scope is where the verb's object is looked up.
	Scope Scope
	// Requires is the flag an item needs beyond usable for this verb; empty
	// for the generic "use".
	Requires world.Flag
	// NotFound is shown when the verb's object cannot be resolved.
	NotFound string
}

// Messages shown when an object phrase does not resolve.
const (
	MsgCannotSee   = "That doesn't seem to be something you can see."
	MsgCannotReach = "That doesn't seem to be something you can get at."
	MsgNotHere     = "That doesn't seem to be here."
	MsgNotCarried  = "You don't seem to have that."
)

// BuiltinVerbs returns every verb understood by the game.
func BuiltinVerbs() []Verb {
	return []Verb{
		// Movement
		{Name: "go", Help: "Move in a direction (go north, go ne, or just north)", Category: CategoryMovement, Kind: KindMove, Scope: ScopeDirection},

		// World
		{Name: "look", Aliases: []string{"l"}, Help: "Describe the room in full", Category: CategoryWorld, Kind: KindLook},
		{Name: "examine", Aliases: []string{"x"}, Help: "Examine something you carry or can see", Category: CategoryWorld, Kind: KindExamine, Scope: ScopeInventoryAndRoom, NotFound: MsgCannotSee},
		{Name: "use", Help: "Use something", Category: CategoryWorld, Kind: KindUse, Scope: ScopeInventoryAndRoom, NotFound: MsgCannotReach},
		{Name: "drink", Aliases: []string{"quaff"}, Help: "Drink something", Category: CategoryWorld, Kind: KindUse, Scope: ScopeInventoryAndRoom, Requires: world.FlagDrinkable, NotFound: MsgCannotReach},
		{Name: "eat", Help: "Eat something", Category: CategoryWorld, Kind: KindUse, Scope: ScopeInventoryAndRoom, Requires: world.FlagEdible, NotFound: MsgCannotReach},
		{Name: "press", Aliases: []string{"touch", "push"}, Help: "Press something", Category: CategoryWorld, Kind: KindUse, Scope: ScopeInventoryAndRoom, Requires: world.FlagPressable, NotFound: MsgCannotReach},
		{Name: "get", Aliases: []string{"take"}, Help: "Pick something up", Category: CategoryWorld, Kind: KindGet, Scope: ScopeRoom, NotFound: MsgNotHere},
		{Name: "drop", Help: "Put something down", Category: CategoryWorld, Kind: KindPut, Scope: ScopeInventory, NotFound: MsgNotCarried},
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "Show what you are carrying", Category: CategoryWorld, Kind: KindInventory},
		{Name: "wait", Aliases: []string{"z"}, Help: "Let time pass", Category: CategoryWorld, Kind: KindWait},

		// System
		{Name: "again", Aliases: []string{"."}, Help: "Repeat your last command", Category: CategorySystem, Kind: KindRepeat},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Kind: KindHelp},
		{Name: "restart", Help: "Start the game over", Category: CategorySystem, Kind: KindRestart},
		{Name: "bye", Help: "Leave the game", Category: CategorySystem, Kind: KindQuit},
	}
}
