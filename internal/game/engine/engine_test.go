package engine

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/adventure/internal/frontend/console"
	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/session"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

func poison(ctx world.UseContext) world.Outcome {
	ctx.Game.Say("You fool! It was poison!")
	ctx.Game.GameOver()
	return world.Destroy
}

func testWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New()
	w.SetIntro("Hello")
	living := w.MustAddRoom(world.RoomConfig{
		Name:        "a living room",
		Description: "Living.",
		Items: []world.ItemConfig{
			{Name: "blue potion", Synonyms: []string{"potion"}, Description: "Bubbly.", Flags: []world.Flag{world.FlagUsable, world.FlagDrinkable}, OnUse: poison},
			{Name: "lamp"},
		},
	})
	atrium := w.MustAddRoom(world.RoomConfig{
		Name:        "the atrium",
		Description: "Atrium.",
		Items: []world.ItemConfig{
			{Name: "statue", Flags: []world.Flag{world.FlagFixed}},
			{Name: "rock", Flags: []world.Flag{world.FlagUsable}, OnUse: func(ctx world.UseContext) world.Outcome {
				ctx.Game.Say("You throw the rock.")
				return world.NoEffect
			}},
			{Name: "trophy", Flags: []world.Flag{world.FlagUsable, world.FlagPressable}, OnUse: func(ctx world.UseContext) world.Outcome {
				ctx.Game.Win()
				return world.NoEffect
			}},
		},
	})
	w.MustAddRoom(world.RoomConfig{Name: "a cellar", Description: "Damp."})
	w.MustAddRoom(world.RoomConfig{
		Name: "a closet",
		Items: []world.ItemConfig{
			{Name: "lever", Flags: []world.Flag{world.FlagUsable, world.FlagFixed, world.FlagPressable}, OnUse: func(ctx world.UseContext) world.Outcome {
				target, ok := ctx.Game.Room("a cellar")
				require.True(t, ok)
				ctx.Room.ConnectTo(world.Down, target, false)
				ctx.Game.Say("A trapdoor opens.")
				return world.NoEffect
			}},
			{Name: "match", Flags: []world.Flag{world.FlagUsable}, OnUse: func(ctx world.UseContext) world.Outcome {
				ctx.Game.Say("The match burns out.")
				return world.Destroy
			}},
		},
	})
	closet, _ := w.Room("a closet")
	living.Connect(world.South, atrium)
	living.Connect(world.East, closet)
	w.SetStart(living)
	require.NoError(t, w.Validate())
	return w
}

func play(t *testing.T, w *world.World, input string, opts ...Option) (string, session.QuitType, *Engine) {
	t.Helper()
	var out bytes.Buffer
	term := console.New(strings.NewReader(input), &out)
	e := New(w, term, zaptest.NewLogger(t), opts...)
	q, err := e.Run(context.Background())
	require.NoError(t, err)
	return out.String(), q, e
}

func TestRun_FirstRoomTranscript(t *testing.T) {
	out, q, _ := play(t, testWorld(t), "bye\n")
	want := "Hello\n" +
		"\n---\n\n" +
		"<< A Living Room >>\n" +
		"Living.\n" +
		"\n" +
		"To the south is the atrium.\n" +
		"To the east is a closet.\n" +
		"\n" +
		"Glancing around, you can see:\n" +
		"\tblue potion\n" +
		"\tlamp\n" +
		"\nWhat now?\n> " +
		"\n" +
		"Goodbye!\n"
	assert.Equal(t, want, out)
	assert.Equal(t, session.QuitHard, q)
}

func TestRun_NoIntro(t *testing.T) {
	w, err := world.Build(world.WorldConfig{Rooms: []world.RoomConfig{{Name: "a void", Description: "Nothing."}}, Start: "a void"})
	require.NoError(t, err)
	out, _, _ := play(t, w, "bye\n")
	assert.True(t, strings.HasPrefix(out, "<< A Void >>\nNothing.\n\nWhat now?"), out)
}

func TestRun_RevisitShowsTitleOnly(t *testing.T) {
	out, _, e := play(t, testWorld(t), "s\nn\nbye\n")
	assert.Equal(t, 2, strings.Count(out, "<< A Living Room >>"))
	assert.Equal(t, 1, strings.Count(out, "Living."))
	assert.Equal(t, 1, strings.Count(out, "<< The Atrium >>"))
	assert.Equal(t, 1, strings.Count(out, "Atrium."))
	assert.Equal(t, "a living room", e.Session().CurrentRoom().Name())
}

func TestRun_LookForcesFullDescription(t *testing.T) {
	out, _, _ := play(t, testWorld(t), "look\nl\nbye\n")
	assert.Equal(t, 3, strings.Count(out, "<< A Living Room >>"))
	assert.Equal(t, 3, strings.Count(out, "Living."))
	assert.Equal(t, 3, strings.Count(out, "Glancing around, you can see:"))
}

func TestRun_EndOfInputQuits(t *testing.T) {
	out, q, e := play(t, testWorld(t), "")
	assert.Equal(t, session.QuitHard, q)
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
	assert.False(t, e.Session().Running())
}

func TestRun_Restart(t *testing.T) {
	out, q, _ := play(t, testWorld(t), "restart\n")
	assert.Equal(t, session.QuitRestart, q)
	assert.NotContains(t, out, "Goodbye!")
}

func TestRun_NotUnderstood(t *testing.T) {
	out, _, _ := play(t, testWorld(t), "dance\n\nbye\n")
	assert.Equal(t, 2, strings.Count(out, MsgNotUnderstood+"\n"))
}

func TestRun_ParserMessagesShownVerbatim(t *testing.T) {
	out, _, _ := play(t, testWorld(t), "get sword\nexamine\nbye\n")
	assert.Contains(t, out, command.MsgNotHere+"\n")
	assert.Contains(t, out, "What do you want to examine?\n")
}

func TestRun_MoveWithoutExit(t *testing.T) {
	out, _, e := play(t, testWorld(t), "north\nbye\n")
	assert.Contains(t, out, MsgCantGo+"\n")
	assert.Equal(t, "a living room", e.Session().CurrentRoom().Name())
}

func TestRun_GetAndPut(t *testing.T) {
	w := testWorld(t)
	out, _, e := play(t, w, "get lamp\ni\ns\ndrop lamp\ni\nbye\n")
	assert.Contains(t, out, MsgTaken+"\n")
	assert.Contains(t, out, "You have:\n\tlamp\n")
	assert.Contains(t, out, MsgDropped+"\n")
	assert.Contains(t, out, MsgEmptyHanded+"\n")

	living, _ := w.Room("a living room")
	atrium, _ := w.Room("the atrium")
	assert.Len(t, living.Contents(), 1)
	names := []string{}
	for _, it := range atrium.Contents() {
		names = append(names, it.Name())
	}
	assert.Contains(t, names, "lamp")
	assert.True(t, e.Session().Inventory().Empty())
}

func TestRun_FixedItemStays(t *testing.T) {
	w := testWorld(t)
	out, _, e := play(t, w, "s\nget statue\nbye\n")
	assert.Contains(t, out, MsgFixed+"\n")
	atrium, _ := w.Room("the atrium")
	assert.Equal(t, "statue", atrium.Contents()[0].Name())
	assert.True(t, e.Session().Inventory().Empty())
}

func TestRun_ExamineAndInventory(t *testing.T) {
	out, _, _ := play(t, testWorld(t), "i\nx potion\nexamine lamp\nbye\n")
	assert.Contains(t, out, MsgEmptyHanded+"\n")
	assert.Contains(t, out, "Bubbly.\n")
	assert.Contains(t, out, MsgUnremarkable+"\n")
}

func TestRun_UseDestroysCarriedItem(t *testing.T) {
	w := testWorld(t)
	out, q, e := play(t, w, "get potion\nquaff potion\n")
	assert.Equal(t, session.QuitSoft, q)
	assert.True(t, strings.HasSuffix(out, "You fool! It was poison!\n\n"+BannerLose+"\n"), out)
	assert.True(t, e.Session().Inventory().Empty())
	living, _ := w.Room("a living room")
	for _, it := range living.Contents() {
		assert.NotEqual(t, "blue potion", it.Name())
	}
}

func TestRun_UseDestroysRoomItem(t *testing.T) {
	w := testWorld(t)
	_, q, e := play(t, w, "drink potion\n")
	assert.Equal(t, session.QuitSoft, q)
	living, _ := w.Room("a living room")
	require.Len(t, living.Contents(), 1)
	assert.Equal(t, "lamp", living.Contents()[0].Name())
	assert.True(t, e.Session().Inventory().Empty())
}

func TestRun_UseRefusals(t *testing.T) {
	out, _, _ := play(t, testWorld(t), "use lamp\ns\ndrink rock\npress rock\nuse rock\nbye\n")
	assert.Contains(t, out, "You can't use that right now.\n")
	assert.Contains(t, out, "You can't drink that!\n")
	assert.Contains(t, out, "You can't press that!\n")
	assert.Equal(t, 1, strings.Count(out, "You throw the rock.\n"))
}

func TestRun_Win(t *testing.T) {
	out, q, _ := play(t, testWorld(t), "s\npush trophy\n")
	assert.Equal(t, session.QuitSoft, q)
	assert.True(t, strings.HasSuffix(out, "\n"+BannerWin+"\n"))
}

func TestRun_UseActionOpensExit(t *testing.T) {
	out, _, e := play(t, testWorld(t), "e\nd\npress lever\nd\nbye\n")
	assert.Equal(t, 1, strings.Count(out, MsgCantGo))
	assert.Contains(t, out, "A trapdoor opens.\n")
	assert.Contains(t, out, "<< A Cellar >>\nDamp.\n")
	assert.Equal(t, "a cellar", e.Session().CurrentRoom().Name())
	_, back := e.Session().CurrentRoom().Exit(world.Up)
	assert.False(t, back)
}

func TestRun_Repeat(t *testing.T) {
	out, _, _ := play(t, testWorld(t), "again\nwait\nagain\n.\nbye\n")
	assert.Equal(t, 1, strings.Count(out, MsgNoRepeat))
	assert.Equal(t, 3, strings.Count(out, MsgWait))
}

func TestRun_RepeatStaleItem(t *testing.T) {
	w := testWorld(t)
	out, _, _ := play(t, w, "e\nuse match\nagain\nbye\n")
	assert.Equal(t, 1, strings.Count(out, "The match burns out."))
	assert.Contains(t, out, MsgGone+"\n")
	closet, _ := w.Room("a closet")
	assert.Len(t, closet.Contents(), 1)
}

func TestRun_Disambiguation(t *testing.T) {
	w, err := world.Build(world.WorldConfig{
		Rooms: []world.RoomConfig{{Name: "a hall", Items: []world.ItemConfig{
			{Name: "blue key", Description: "Blue."},
			{Name: "red key", Description: "Red."},
		}}},
		Start: "a hall",
	})
	require.NoError(t, err)
	out, _, _ := play(t, w, "x key\nsix\n2\nbye\n")
	assert.Contains(t, out, "\n'key' could mean multiple things:\n\tblue key (#1)\n\tred key (#2)\n\nWhich did you mean?\n#")
	assert.Contains(t, out, "\nI didn't understand that. Which did you mean again?\n#")
	assert.Contains(t, out, "Red.\n")
}

func TestRun_DisambiguationEndOfInput(t *testing.T) {
	w, err := world.Build(world.WorldConfig{
		Rooms: []world.RoomConfig{{Name: "a hall", Items: []world.ItemConfig{{Name: "blue key"}, {Name: "red key"}}}},
		Start: "a hall",
	})
	require.NoError(t, err)
	out, q, _ := play(t, w, "x key\n")
	assert.Equal(t, session.QuitHard, q)
	assert.Contains(t, out, command.MsgCannotSee+"\n")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestRun_Help(t *testing.T) {
	out, _, _ := play(t, testWorld(t), "help\nbye\n")
	assert.Contains(t, out, "Available commands:\n  Movement:\n")
	assert.Contains(t, out, "    examine    (x) - Examine something you carry or can see\n")
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	e := New(testWorld(t), console.New(strings.NewReader("wait\n"), &out), zaptest.NewLogger(t))
	q, err := e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, session.QuitHard, q)
	assert.False(t, e.Session().Running())
}

func TestRun_LogsDispatchWithSession(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	e := New(testWorld(t), console.New(strings.NewReader("wait\nbye\n"), &out), zap.New(core))
	_, err := e.Run(context.Background())
	require.NoError(t, err)

	dispatched := logs.FilterMessage("dispatching command").All()
	require.Len(t, dispatched, 2)
	fields := dispatched[0].ContextMap()
	assert.Equal(t, e.Session().ID(), fields["session"])
	assert.Equal(t, "wait", fields["command"])
	assert.Equal(t, "a living room", fields["room"])
}

func TestRun_ColorStylesKeepText(t *testing.T) {
	out, _, _ := play(t, testWorld(t), "bye\n", WithStyles(console.ColorStyles()))
	assert.Contains(t, out, "<< A Living Room >>")
}
