// Package tinyhouse is the built-in Tiny House story.
package tinyhouse

import (
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Room names.
const (
	LivingRoom = "a living room"
	Atrium     = "the atrium"
	Yard       = "your yard"
	Cave       = "a mysterious cave"
)

// New authors a fresh Tiny House world. Every call returns an independent
// world, so button state never leaks between playthroughs.
//
// Postcondition: Returns a validated world starting in the living room.
func New() *world.World {
	w := world.New()
	w.SetIntro(
		"==== TINY HOUSE ADVENTURE ====",
		"",
		"It's no Colossal Cave Adventure, that's for sure.",
	)

	living := w.MustAddRoom(world.RoomConfig{
		Name:        LivingRoom,
		Description: "This is a room for living in. It looks rather un-lived-in. How ironic.",
		Items: []world.ItemConfig{{
			Name:        "blue potion",
			Synonyms:    []string{"potion"},
			Description: "A bubbly blue potion. It doesn't *seem* to be poisonous...",
			Flags:       []world.Flag{world.FlagUsable, world.FlagDrinkable},
			OnUse:       drinkPotion,
		}},
	})

	cave := w.MustAddRoom(world.RoomConfig{
		Name:        Cave,
		Description: "You never realized there was a cave under your yard, but well, here it is.",
		Items: []world.ItemConfig{{
			Name:        "yellow button",
			Synonyms:    []string{"button"},
			Description: "It's not as big as the red button, but it's happy with its size.",
			Flags:       []world.Flag{world.FlagUsable, world.FlagFixed, world.FlagPressable},
			OnUse:       pressYellowButton,
		}},
	})

	yard := w.MustAddRoom(world.RoomConfig{
		Name:        Yard,
		Description: "It's a yard. What more can I say?",
		Items: []world.ItemConfig{{
			Name:        "big red button",
			Synonyms:    []string{"big button", "red button", "button"},
			Description: "It's big. And red.",
			Flags:       []world.Flag{world.FlagUsable, world.FlagFixed, world.FlagPressable},
			OnUse:       redButton(cave),
		}},
	})

	atrium := w.MustAddRoom(world.RoomConfig{
		Name:        Atrium,
		Description: "This looks like an unusually wide entry area compared to the room it adjoins.",
	})

	living.Connect(world.South, atrium)
	atrium.Connect(world.South, yard)
	w.SetStart(living)
	return w
}

func drinkPotion(ctx world.UseContext) world.Outcome {
	ctx.Game.Say("You fool! It was poison!")
	ctx.Game.GameOver()
	return world.Destroy
}

func pressYellowButton(ctx world.UseContext) world.Outcome {
	ctx.Game.Say(
		"Your vision blanks out, and when you come to, you're surrounded by",
		"cute little foxes. You're not sure how they got here, but frankly",
		"you don't care either.",
	)
	ctx.Game.Win()
	return world.NoEffect
}

// redButton opens a one-way passage down to cave the first time it is pressed.
func redButton(cave *world.Room) world.UseAction {
	activated := false
	return func(ctx world.UseContext) world.Outcome {
		if activated {
			ctx.Game.Say("You press the button again, but nothing else happens.")
			return world.NoEffect
		}
		activated = true
		ctx.Game.Say(
			"As you press the button, you hear a faint rumbling sound.",
			"",
			"Suddenly, the ground opens up a little to your left, leaving",
			"an astonishingly neat hole down into the ground. Huh.",
		)
		ctx.Room.ConnectTo(world.Down, cave, false)
		return world.NoEffect
	}
}
