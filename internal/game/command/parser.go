package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/resolve"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// ParseResult holds the tokens of a line of input.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command, lowercased.
	Args []string
	// RawArgs is the lowercased text after the command with its spacing kept.
	RawArgs string
}

// Parse splits a text line into a command word and arguments.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return ParseResult{}
	}

	fields := strings.Fields(line)
	result := ParseResult{Command: fields[0]}
	if len(fields) > 1 {
		result.Args = fields[1:]
		result.RawArgs = strings.TrimSpace(line[len(fields[0]):])
	}
	return result
}

// Words returns the command followed by its arguments.
func (p ParseResult) Words() []string {
	if p.Command == "" {
		return nil
	}
	return append([]string{p.Command}, p.Args...)
}

// Command is a parsed, fully resolved player command.
type Command struct {
	// Kind is what the command does.
	Kind Kind
	// Verb is the verb as typed, e.g. "quaff".
	Verb string
	// Requires is the extra flag the verb needs on the item, if any.
	Requires world.Flag
	// Item is the resolved object, for examine, use, get and put.
	Item *world.Item
	// Direction is the resolved direction, for move.
	Direction world.Direction
}

// Result is the outcome of parsing a line: a Command, a message explaining
// why the line could not become one, or neither when the line was not
// understood at all.
type Result struct {
	Command *Command
	Message string
}

// Empty reports whether the line was not understood at all.
func (r Result) Empty() bool {
	return r.Command == nil && r.Message == ""
}

// Context supplies the item sources an object phrase is resolved against.
type Context interface {
	CurrentRoom() *world.Room
	Inventory() *world.Inventory
}

// ItemResolver resolves an object phrase to a single item.
type ItemResolver interface {
	Resolve(query string, sources ...resolve.Source) (*world.Item, error)
}

// Parser turns lines of input into Results.
type Parser struct {
	registry *Registry
	resolver ItemResolver
}

// NewParser creates a Parser.
//
// Precondition: registry and resolver must be non-nil.
func NewParser(registry *Registry, resolver ItemResolver) *Parser {
	return &Parser{registry: registry, resolver: resolver}
}

// Parse interprets one line of input. Object phrases may trigger an
// interactive disambiguation through the resolver before Parse returns.
//
// Precondition: ctx.CurrentRoom() must be non-nil.
// Postcondition: Returns a Result; the error is non-nil only if reading a
// disambiguation answer failed for a reason other than end of input.
func (p *Parser) Parse(input string, ctx Context) (Result, error) {
	pr := Parse(input)
	if pr.Command == "" {
		return Result{}, nil
	}

	verb, ok := p.registry.Resolve(pr.Command)
	if !ok {
		// Directions are available bare, without "go".
		return moveResult(strings.Join(pr.Words(), " ")), nil
	}

	switch verb.Scope {
	case ScopeNone:
		return Result{Command: &Command{Kind: verb.Kind, Verb: pr.Command}}, nil
	case ScopeDirection:
		return moveResult(strings.Join(pr.Args, " ")), nil
	}

	if len(pr.Args) == 0 {
		return Result{Message: MissingObject(pr.Command)}, nil
	}

	var sources []resolve.Source
	switch verb.Scope {
	case ScopeInventoryAndRoom:
		sources = []resolve.Source{ctx.Inventory(), ctx.CurrentRoom()}
	case ScopeRoom:
		sources = []resolve.Source{ctx.CurrentRoom()}
	case ScopeInventory:
		sources = []resolve.Source{ctx.Inventory()}
	}

	item, err := p.resolver.Resolve(strings.Join(pr.Args, " "), sources...)
	if err != nil {
		if errors.Is(err, resolve.ErrNoMatch) || errors.Is(err, resolve.ErrCancelled) {
			return Result{Message: verb.NotFound}, nil
		}
		return Result{}, err
	}

	return Result{Command: &Command{
		Kind:     verb.Kind,
		Verb:     pr.Command,
		Requires: verb.Requires,
		Item:     item,
	}}, nil
}

// MissingObject is the message shown when an object verb is given no object.
func MissingObject(verb string) string {
	return fmt.Sprintf("What do you want to %s?", verb)
}

func moveResult(text string) Result {
	d, ok := world.ParseDirection(text)
	if !ok {
		return Result{}
	}
	return Result{Command: &Command{Kind: KindMove, Verb: "go", Direction: d}}
}
