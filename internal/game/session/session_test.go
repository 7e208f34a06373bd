package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

func twoRoomWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.Build(world.WorldConfig{
		Rooms: []world.RoomConfig{
			{Name: "kitchen"},
			{Name: "pantry"},
		},
		Exits:     []world.ExitConfig{{From: "kitchen", Direction: world.North, To: "pantry"}},
		Start:     "kitchen",
		Inventory: []world.ItemConfig{{Name: "spoon"}},
	})
	require.NoError(t, err)
	return w
}

func TestNew_InitialState(t *testing.T) {
	w := twoRoomWorld(t)
	s := New(w)

	_, err := uuid.Parse(s.ID())
	assert.NoError(t, err)
	assert.Same(t, w, s.World())
	assert.Equal(t, "kitchen", s.CurrentRoom().Name())
	assert.Nil(t, s.PreviousRoom())
	assert.True(t, s.Arrived())
	assert.True(t, s.Running())
	assert.Equal(t, QuitSoft, s.QuitType())
	assert.Nil(t, s.PreviousCommand())
	assert.False(t, s.Seen(s.CurrentRoom()))
	require.Equal(t, 1, s.Inventory().Len())
	assert.Equal(t, "spoon", s.Inventory().Items()[0].Name())
}

func TestNew_DistinctIDs(t *testing.T) {
	w := twoRoomWorld(t)
	assert.NotEqual(t, New(w).ID(), New(w).ID())
}

func TestMoveTo_ArriveAndSettle(t *testing.T) {
	w := twoRoomWorld(t)
	s := New(w)
	kitchen := s.CurrentRoom()
	s.Settle()
	assert.False(t, s.Arrived())

	pantry, ok := w.Room("pantry")
	require.True(t, ok)
	old := s.MoveTo(pantry)
	assert.Same(t, kitchen, old)
	assert.Same(t, pantry, s.CurrentRoom())
	assert.True(t, s.Arrived())

	s.Settle()
	assert.Same(t, pantry, s.PreviousRoom())
	assert.False(t, s.Arrived())
}

func TestSeen(t *testing.T) {
	s := New(twoRoomWorld(t))
	r := s.CurrentRoom()
	s.MarkSeen(r)
	assert.True(t, s.Seen(r))
	other, _ := s.World().Room("pantry")
	assert.False(t, s.Seen(other))
}

func TestStop(t *testing.T) {
	for _, q := range []QuitType{QuitSoft, QuitHard, QuitRestart} {
		s := New(twoRoomWorld(t))
		s.Stop(q)
		assert.False(t, s.Running())
		assert.Equal(t, q, s.QuitType())
	}
}

func TestQuitType_String(t *testing.T) {
	assert.Equal(t, "soft", QuitSoft.String())
	assert.Equal(t, "hard", QuitHard.String())
	assert.Equal(t, "restart", QuitRestart.String())
	assert.Equal(t, "unknown", QuitType(42).String())
}

func TestSetPreviousCommand_IgnoresRepeat(t *testing.T) {
	s := New(twoRoomWorld(t))
	wait := &command.Command{Kind: command.KindWait, Verb: "wait"}
	s.SetPreviousCommand(wait)
	s.SetPreviousCommand(&command.Command{Kind: command.KindRepeat, Verb: "again"})
	s.SetPreviousCommand(nil)
	assert.Same(t, wait, s.PreviousCommand())
}
