// Package resolve maps free-text item references typed by the player to
// items in the world, using tiered fuzzy matching and, when several items
// tie, an interactive numbered choice.
package resolve

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Tier is a priority class of match. Lower tiers win.
type Tier int

const (
	// TierNone means no item matched.
	TierNone Tier = iota
	// TierExact: the query equals a name or synonym.
	TierExact
	// TierWord: the query equals one whitespace-delimited word of a name.
	TierWord
	// TierPrefix: a name starts with the query.
	TierPrefix
	// TierInitials: the first letters of a name's words spell the query.
	TierInitials
)

var tierNames = map[Tier]string{
	TierNone:     "none",
	TierExact:    "exact",
	TierWord:     "word",
	TierPrefix:   "prefix",
	TierInitials: "initials",
}

// String returns the tier name.
func (t Tier) String() string { return tierNames[t] }

// ErrNoMatch is returned by Resolve when no item matches the query.
var ErrNoMatch = errors.New("no matching item")

// ErrCancelled is returned by Resolve when the player declines to choose.
var ErrCancelled = errors.New("no item chosen")

// Source contributes candidate items. Both *world.Room and *world.Inventory
// satisfy it.
type Source interface {
	Items() []*world.Item
}

// Items adapts a plain item list into a Source.
type Items []*world.Item

// Items returns the list itself.
func (l Items) Items() []*world.Item { return l }

// Prompter is the player-facing side of disambiguation.
type Prompter interface {
	// Say writes lines to the player.
	Say(lines ...string)
	// Ask writes question and prompt and reads one line. It returns io.EOF
	// when input is exhausted.
	Ask(question, prompt string) (string, error)
}

// Match returns the highest-priority non-empty tier of items matching query
// across sources, in discovery order: sources in the given order, items in
// source order. Matching is case-insensitive over each item's name and
// synonyms.
//
// Postcondition: Returns (items, tier) with len(items) > 0, or (nil, TierNone).
func Match(query string, sources ...Source) ([]*world.Item, Tier) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, TierNone
	}

	var tiers [TierInitials + 1][]*world.Item
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, it := range src.Items() {
			names := lowerNames(it)
			if anyName(names, func(n string) bool { return n == q }) {
				tiers[TierExact] = append(tiers[TierExact], it)
			}
			if anyName(names, func(n string) bool { return containsWord(n, q) }) {
				tiers[TierWord] = append(tiers[TierWord], it)
			}
			if anyName(names, func(n string) bool { return strings.HasPrefix(n, q) }) {
				tiers[TierPrefix] = append(tiers[TierPrefix], it)
			}
			if anyName(names, func(n string) bool { return initials(n) == q }) {
				tiers[TierInitials] = append(tiers[TierInitials], it)
			}
		}
	}

	for tier := TierExact; tier <= TierInitials; tier++ {
		if len(tiers[tier]) > 0 {
			return tiers[tier], tier
		}
	}
	return nil, TierNone
}

func lowerNames(it *world.Item) []string {
	names := it.Names()
	for i, n := range names {
		names[i] = strings.ToLower(n)
	}
	return names
}

func anyName(names []string, pred func(string) bool) bool {
	for _, n := range names {
		if pred(n) {
			return true
		}
	}
	return false
}

func containsWord(name, word string) bool {
	for _, w := range strings.Fields(name) {
		if w == word {
			return true
		}
	}
	return false
}

// initials returns the first character of every word of name.
func initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// Resolver resolves item references for one player.
type Resolver struct {
	inventory *world.Inventory
	prompter  Prompter
}

// NewResolver creates a Resolver. The inventory is the default source when
// none is given.
//
// Precondition: inventory and prompter must be non-nil.
func NewResolver(inventory *world.Inventory, prompter Prompter) *Resolver {
	return &Resolver{inventory: inventory, prompter: prompter}
}

// Match is the package-level Match with the inventory as the default source.
func (r *Resolver) Match(query string, sources ...Source) ([]*world.Item, Tier) {
	if len(sources) == 0 {
		sources = []Source{r.inventory}
	}
	return Match(query, sources...)
}

// Resolve returns the single item query refers to. When the best tier holds
// several items the player is shown a numbered list and asked to pick one;
// non-numeric or out-of-range answers are asked again until the player
// answers with a valid number or an empty line.
//
// Postcondition: Returns (item, nil), or (nil, ErrNoMatch) when nothing
// matched, or (nil, ErrCancelled) when the player chose nothing.
func (r *Resolver) Resolve(query string, sources ...Source) (*world.Item, error) {
	matches, _ := r.Match(query, sources...)
	switch len(matches) {
	case 0:
		return nil, ErrNoMatch
	case 1:
		return matches[0], nil
	}

	lines := []string{"", fmt.Sprintf("'%s' could mean multiple things:", strings.ToLower(strings.TrimSpace(query)))}
	for i, it := range matches {
		where := ""
		if r.inventory.Contains(it) {
			where = ", in inventory"
		}
		lines = append(lines, fmt.Sprintf("\t%s (#%d%s)", it.Name(), i+1, where))
	}
	r.prompter.Say(lines...)

	question := "Which did you mean?"
	for {
		answer, err := r.prompter.Ask(question, "#")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("asking which item: %w", err)
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return nil, ErrCancelled
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(matches) {
			return matches[n-1], nil
		}
		question = "I didn't understand that. Which did you mean again?"
	}
}
