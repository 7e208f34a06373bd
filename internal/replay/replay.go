// Package replay runs playthroughs back to back, building a fresh world and
// engine for each one and offering another game after a soft quit.
package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/engine"
	"github.com/cory-johannsen/adventure/internal/game/session"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// PlayAgainPrompt is printed after a game ends with a soft quit.
const PlayAgainPrompt = "\nPlay again? [y/N]  "

// gap separates consecutive games.
const gap = "\n\n\n\n\n"

// WorldFactory builds the world for one playthrough. The returned release
// function, if non-nil, is called once the playthrough ends.
type WorldFactory func() (*world.World, func(), error)

// Terminal is the line protocol the driver and its engines share.
type Terminal interface {
	engine.Terminal
	// Print writes text without a trailing newline.
	Print(text string)
	// ReadLine reads one line of input.
	ReadLine() (string, error)
}

// Driver owns the replay loop.
type Driver struct {
	newWorld WorldFactory
	term     Terminal
	logger   *zap.Logger
	opts     []engine.Option
}

// New creates a Driver. opts are passed to every engine it creates.
//
// Precondition: newWorld, term and logger must be non-nil.
func New(newWorld WorldFactory, term Terminal, logger *zap.Logger, opts ...engine.Option) *Driver {
	if newWorld == nil || term == nil || logger == nil {
		panic("replay.New: nil argument")
	}
	return &Driver{newWorld: newWorld, term: term, logger: logger, opts: opts}
}

// Run plays games until the player quits hard, declines another game, or
// input ends.
//
// Postcondition: Returns the number of games started. A non-nil error means
// a world could not be built, input failed, or ctx was cancelled.
func (d *Driver) Run(ctx context.Context) (int, error) {
	games := 0
	for {
		games++
		quit, err := d.playOnce(ctx, games)
		if err != nil {
			return games, err
		}

		switch quit {
		case session.QuitHard:
			return games, nil
		case session.QuitSoft:
			again, err := d.playAgain()
			if err != nil {
				return games, err
			}
			if !again {
				return games, nil
			}
		}
		d.term.Print(gap)
	}
}

func (d *Driver) playOnce(ctx context.Context, n int) (session.QuitType, error) {
	w, release, err := d.newWorld()
	if err != nil {
		return session.QuitHard, fmt.Errorf("building world for game %d: %w", n, err)
	}
	if release != nil {
		defer release()
	}

	e := engine.New(w, d.term, d.logger.With(zap.Int("game", n)), d.opts...)
	quit, err := e.Run(ctx)
	d.logger.Info("game ended",
		zap.Int("game", n),
		zap.String("session", e.Session().ID()),
		zap.Stringer("quit", quit),
	)
	return quit, err
}

// playAgain asks whether to start another game. Anything but an answer
// starting with y means no, and so does end of input.
func (d *Driver) playAgain() (bool, error) {
	d.term.Print(PlayAgainPrompt)
	answer, err := d.term.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, fmt.Errorf("reading replay answer: %w", err)
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y"), nil
}
