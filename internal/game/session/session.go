// Package session tracks the state of one playthrough: where the player is,
// what they carry, which rooms they have seen and how the game ended.
package session

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// QuitType records how a session stopped.
type QuitType int

const (
	// QuitSoft ends the playthrough; the player may be offered another.
	QuitSoft QuitType = iota
	// QuitHard ends the program.
	QuitHard
	// QuitRestart starts a fresh playthrough without asking.
	QuitRestart
)

// String returns the name of the quit type.
func (q QuitType) String() string {
	switch q {
	case QuitSoft:
		return "soft"
	case QuitHard:
		return "hard"
	case QuitRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Session is the mutable state of one playthrough.
type Session struct {
	id       string
	world    *world.World
	current  *world.Room
	previous *world.Room
	seen     map[*world.Room]bool
	running  bool
	quit     QuitType
	lastCmd  *command.Command
}

// New starts a session in w's start room carrying w's starting inventory.
//
// Precondition: w must be non-nil and have a start room.
// Postcondition: The session is running with a soft quit type, no room seen
// and no previous command.
func New(w *world.World) *Session {
	return &Session{
		id:      uuid.New().String(),
		world:   w,
		current: w.Start(),
		seen:    make(map[*world.Room]bool),
		running: true,
		quit:    QuitSoft,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// World returns the world being played.
func (s *Session) World() *world.World { return s.world }

// CurrentRoom returns the room the player is in.
func (s *Session) CurrentRoom() *world.Room { return s.current }

// PreviousRoom returns the room the player was in when it was last described,
// or nil before the first description.
func (s *Session) PreviousRoom() *world.Room { return s.previous }

// Inventory returns the player's inventory.
func (s *Session) Inventory() *world.Inventory { return s.world.Inventory() }

// MoveTo places the player in room.
//
// Precondition: room must be non-nil.
// Postcondition: CurrentRoom returns room. Returns the room the player left.
func (s *Session) MoveTo(room *world.Room) *world.Room {
	old := s.current
	s.current = room
	return old
}

// Arrived reports whether the player is in a different room from the one
// last described.
func (s *Session) Arrived() bool { return s.current != s.previous }

// Settle records that the current room has been described on arrival.
func (s *Session) Settle() { s.previous = s.current }

// Seen reports whether room has been fully described before.
func (s *Session) Seen(room *world.Room) bool { return s.seen[room] }

// MarkSeen records that room has been fully described.
func (s *Session) MarkSeen(room *world.Room) { s.seen[room] = true }

// Running reports whether the session still accepts commands.
func (s *Session) Running() bool { return s.running }

// Stop ends the session with quit type q.
//
// Postcondition: Running returns false and QuitType returns q.
func (s *Session) Stop(q QuitType) {
	s.running = false
	s.quit = q
}

// QuitType returns how the session stopped. It is QuitSoft while running.
func (s *Session) QuitType() QuitType { return s.quit }

// PreviousCommand returns the last executed command, or nil.
func (s *Session) PreviousCommand() *command.Command { return s.lastCmd }

// SetPreviousCommand records cmd as the last executed command. Repeat
// commands are ignored so that repeating never repeats itself.
func (s *Session) SetPreviousCommand(cmd *command.Command) {
	if cmd == nil || cmd.Kind == command.KindRepeat {
		return
	}
	s.lastCmd = cmd
}
