// Package engine runs one playthrough of a world: it describes rooms, reads
// commands from the player and executes them until the session stops.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/frontend/console"
	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/resolve"
	"github.com/cory-johannsen/adventure/internal/game/session"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Player-facing messages.
const (
	MsgNotUnderstood = "I didn't quite understand that."
	MsgCantGo        = "You can't go that way."
	MsgFixed         = "You can't seem to move that. You leave it where it is."
	MsgTaken         = "You put it in your inventory."
	MsgDropped       = "You find somewhere suitable, and put it down."
	MsgUnremarkable  = "There's nothing particularly remarkable about it."
	MsgEmptyHanded   = "You don't have anything on you right now."
	MsgWait          = "You wait around. Ho-hum."
	MsgNoRepeat      = "No previous command to repeat."
	MsgGone          = "That doesn't seem to be here anymore."
	MsgGoodbye       = "Goodbye!"
	MsgSeparator     = "\n---\n"
	BannerLose       = "==== Oh no! Game over, you lost. ===="
	BannerWin        = "==== Hooray! You won! ===="
)

// Terminal is the player-facing line protocol.
type Terminal interface {
	// Say writes each line followed by a newline.
	Say(lines ...string)
	// Ask shows a question and a prompt and reads one line.
	Ask(question, prompt string) (string, error)
}

// Engine drives a single session over a world.
type Engine struct {
	world    *world.World
	term     Terminal
	logger   *zap.Logger
	styles   console.Styles
	registry *command.Registry
	session  *session.Session
	parser   *command.Parser
}

// Option configures an Engine.
type Option func(*Engine)

// WithStyles sets the styles used for banners.
func WithStyles(s console.Styles) Option {
	return func(e *Engine) { e.styles = s }
}

// WithRegistry replaces the built-in verb registry.
func WithRegistry(r *command.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// New creates an Engine with a fresh session in w's start room.
//
// Precondition: w must be validated; term and logger must be non-nil.
// Postcondition: Returns an Engine whose session is running.
func New(w *world.World, term Terminal, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		world:   w,
		term:    term,
		logger:  logger,
		styles:  console.PlainStyles(),
		session: session.New(w),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = command.DefaultRegistry()
	}
	e.parser = command.NewParser(e.registry, resolve.NewResolver(e.session.Inventory(), term))
	e.logger = e.logger.With(zap.String("session", e.session.ID()))
	return e
}

// Session returns the engine's session.
func (e *Engine) Session() *session.Session { return e.session }

// Run plays the session until it stops. End of input acts as "bye".
//
// Postcondition: Returns the quit type the session stopped with. A non-nil
// error means input could not be read or ctx was cancelled; the session is
// then stopped with a hard quit.
func (e *Engine) Run(ctx context.Context) (session.QuitType, error) {
	e.logger.Info("session started", zap.String("room", e.session.CurrentRoom().Name()))

	if intro := e.world.Intro(); intro != "" {
		e.term.Say(intro, MsgSeparator)
	}

	for e.session.Running() {
		if err := ctx.Err(); err != nil {
			e.session.Stop(session.QuitHard)
			return session.QuitHard, err
		}

		if e.session.Arrived() {
			e.session.Settle()
			e.describeRoom(false)
		}

		line, err := e.term.Ask("What now?", "> ")
		if err != nil {
			if !errors.Is(err, io.EOF) {
				e.session.Stop(session.QuitHard)
				return session.QuitHard, fmt.Errorf("reading command: %w", err)
			}
			line = "bye"
		}
		e.term.Say()

		if err := e.Handle(line); err != nil {
			e.session.Stop(session.QuitHard)
			return session.QuitHard, err
		}
	}

	e.logger.Info("session stopped", zap.Stringer("quit", e.session.QuitType()))
	return e.session.QuitType(), nil
}

// Handle parses one line of input and carries it out.
//
// Postcondition: Exactly one of executing a command, showing the parser's
// message, or showing MsgNotUnderstood has happened. Returns an error only
// when reading a disambiguation answer failed.
func (e *Engine) Handle(line string) error {
	res, err := e.parser.Parse(line, e.session)
	if err != nil {
		return fmt.Errorf("parsing command: %w", err)
	}
	switch {
	case res.Command != nil:
		e.Execute(res.Command)
	case res.Message != "":
		e.term.Say(res.Message)
	default:
		e.logger.Debug("command not understood", zap.String("input", line))
		e.term.Say(MsgNotUnderstood)
	}
	return nil
}

// Execute carries out a structured command and records it as the previous
// command.
//
// Precondition: cmd must be non-nil.
func (e *Engine) Execute(cmd *command.Command) {
	if cmd.Kind == command.KindRepeat {
		prev := e.session.PreviousCommand()
		if prev == nil {
			e.term.Say(MsgNoRepeat)
			return
		}
		if prev.Item != nil && !e.reachable(prev.Item) {
			e.term.Say(MsgGone)
			return
		}
		cmd = prev
	}

	fields := []zap.Field{
		zap.String("room", e.session.CurrentRoom().Name()),
		zap.String("command", string(cmd.Kind)),
		zap.String("verb", cmd.Verb),
	}
	if cmd.Item != nil {
		fields = append(fields, zap.String("item", cmd.Item.Name()))
	}
	e.logger.Debug("dispatching command", fields...)

	switch cmd.Kind {
	case command.KindWait:
		e.term.Say(MsgWait)
	case command.KindLook:
		e.describeRoom(true)
	case command.KindInventory:
		e.showInventory()
	case command.KindExamine:
		e.examine(cmd.Item)
	case command.KindUse:
		e.use(cmd.Verb, cmd.Requires, cmd.Item)
	case command.KindGet:
		e.get(cmd.Item)
	case command.KindPut:
		e.put(cmd.Item)
	case command.KindMove:
		e.move(cmd.Direction)
	case command.KindHelp:
		e.showHelp()
	case command.KindRestart:
		e.session.Stop(session.QuitRestart)
	case command.KindQuit:
		e.term.Say(MsgGoodbye)
		e.session.Stop(session.QuitHard)
	default:
		e.logger.Warn("unhandled command kind", zap.String("command", string(cmd.Kind)))
	}

	e.session.SetPreviousCommand(cmd)
}

// Say writes lines to the player.
func (e *Engine) Say(lines ...string) { e.term.Say(lines...) }

// GameOver announces a loss and stops the session with a soft quit.
func (e *Engine) GameOver() {
	e.term.Say("", e.styles.RenderLose(BannerLose))
	e.session.Stop(session.QuitSoft)
}

// Win announces a victory and stops the session with a soft quit.
func (e *Engine) Win() {
	e.term.Say("", e.styles.RenderWin(BannerWin))
	e.session.Stop(session.QuitSoft)
}

// CurrentRoom returns the room the player is in.
func (e *Engine) CurrentRoom() *world.Room { return e.session.CurrentRoom() }

// Room looks up a room of the world by name.
func (e *Engine) Room(name string) (*world.Room, bool) { return e.world.Room(name) }

func (e *Engine) describeRoom(force bool) {
	room := e.session.CurrentRoom()
	e.term.Say(e.styles.RenderBanner("<< " + room.Title() + " >>"))

	if !force && e.session.Seen(room) {
		return
	}

	e.term.Say(room.Description())

	if exits := room.Exits(); len(exits) > 0 {
		lines := []string{""}
		for _, ex := range exits {
			lines = append(lines, fmt.Sprintf("%s is %s.", world.Capitalize(ex.Direction.Describe(false)), ex.Target.Name()))
		}
		e.term.Say(lines...)
	}

	if contents := room.Contents(); len(contents) > 0 {
		lines := []string{"", "Glancing around, you can see:"}
		for _, it := range contents {
			lines = append(lines, "\t"+it.Name())
		}
		e.term.Say(lines...)
	}

	e.session.MarkSeen(room)
}

func (e *Engine) showInventory() {
	inv := e.session.Inventory()
	if inv.Empty() {
		e.term.Say(MsgEmptyHanded)
		return
	}
	lines := []string{"You have:"}
	for _, it := range inv.Items() {
		lines = append(lines, "\t"+it.Name())
	}
	e.term.Say(lines...)
}

func (e *Engine) examine(it *world.Item) {
	if d := it.Description(); d != "" {
		e.term.Say(d)
		return
	}
	e.term.Say(MsgUnremarkable)
}

func (e *Engine) use(verb string, requires world.Flag, it *world.Item) {
	action := it.UseAction()
	if !it.HasFlag(world.FlagUsable) || action == nil {
		e.term.Say(fmt.Sprintf("You can't %s that right now.", verb))
		return
	}
	if requires != "" && !it.HasFlag(requires) {
		e.term.Say(fmt.Sprintf("You can't %s that!", verb))
		return
	}

	outcome := action(world.UseContext{
		Item: it,
		Room: it.Location(),
		Verb: verb,
		Game: e,
	})
	if outcome == world.Destroy {
		it.Destroy()
		e.logger.Debug("item destroyed", zap.String("item", it.Name()))
	}
}

func (e *Engine) get(it *world.Item) {
	if it.HasFlag(world.FlagFixed) {
		e.term.Say(MsgFixed)
		return
	}
	e.session.Inventory().Add(it)
	e.term.Say(MsgTaken)
}

func (e *Engine) put(it *world.Item) {
	e.session.CurrentRoom().AddItem(it)
	e.term.Say(MsgDropped)
}

func (e *Engine) move(d world.Direction) {
	target, ok := e.session.CurrentRoom().Exit(d)
	if !ok {
		e.term.Say(MsgCantGo)
		return
	}
	from := e.session.MoveTo(target)
	e.logger.Debug("moved",
		zap.String("from", from.Name()),
		zap.String("to", target.Name()),
		zap.Stringer("direction", d),
	)
}

func (e *Engine) showHelp() {
	labels := map[string]string{
		command.CategoryMovement: "Movement",
		command.CategoryWorld:    "World",
		command.CategorySystem:   "System",
	}
	lines := []string{"Available commands:"}
	byCategory := e.registry.VerbsByCategory()
	for _, cat := range []string{command.CategoryMovement, command.CategoryWorld, command.CategorySystem} {
		verbs := byCategory[cat]
		if len(verbs) == 0 {
			continue
		}
		lines = append(lines, "  "+labels[cat]+":")
		for _, v := range verbs {
			aliases := ""
			if len(v.Aliases) > 0 {
				aliases = " (" + strings.Join(v.Aliases, ", ") + ")"
			}
			lines = append(lines, fmt.Sprintf("    %-10s%s - %s", v.Name, aliases, v.Help))
		}
	}
	e.term.Say(lines...)
}

// reachable reports whether it is carried or lies in the current room.
func (e *Engine) reachable(it *world.Item) bool {
	return it.Carried() || it.Location() == e.session.CurrentRoom()
}
