package world

import "strings"

// Atom is one of the six atomic directions.
type Atom uint8

// Atomic directions. The zero value is not a direction.
const (
	AtomNorth Atom = iota + 1
	AtomEast
	AtomSouth
	AtomWest
	AtomUp
	AtomDown
)

var atomNames = map[Atom]string{
	AtomNorth: "north",
	AtomEast:  "east",
	AtomSouth: "south",
	AtomWest:  "west",
	AtomUp:    "up",
	AtomDown:  "down",
}

// String returns the lowercase name of the atom.
func (a Atom) String() string {
	return atomNames[a]
}

// Opposite returns the opposite atom.
//
// Postcondition: a.Opposite().Opposite() == a for every valid atom.
func (a Atom) Opposite() Atom {
	switch a {
	case AtomNorth:
		return AtomSouth
	case AtomSouth:
		return AtomNorth
	case AtomEast:
		return AtomWest
	case AtomWest:
		return AtomEast
	case AtomUp:
		return AtomDown
	case AtomDown:
		return AtomUp
	default:
		return 0
	}
}

// IsVertical reports whether a is up or down.
func (a Atom) IsVertical() bool {
	return a == AtomUp || a == AtomDown
}

// Direction is either an atomic direction or a composite of one north/south
// atom followed by one east/west atom. Direction values are comparable and
// usable as map keys.
type Direction struct {
	first  Atom
	second Atom
}

// The fixed direction vocabulary.
var (
	North = Direction{first: AtomNorth}
	East  = Direction{first: AtomEast}
	South = Direction{first: AtomSouth}
	West  = Direction{first: AtomWest}
	Up    = Direction{first: AtomUp}
	Down  = Direction{first: AtomDown}

	Northeast = Direction{first: AtomNorth, second: AtomEast}
	Northwest = Direction{first: AtomNorth, second: AtomWest}
	Southwest = Direction{first: AtomSouth, second: AtomWest}
	Southeast = Direction{first: AtomSouth, second: AtomEast}
)

// Cardinal, SemiCardinal and Vertical partition the vocabulary.
var (
	Cardinal     = []Direction{North, East, South, West}
	SemiCardinal = []Direction{Northeast, Northwest, Southwest, Southeast}
	Vertical     = []Direction{Up, Down}
)

// AllDirections lists every direction in parse order: cardinals,
// semi-cardinals, then verticals.
var AllDirections = concatDirections(Cardinal, SemiCardinal, Vertical)

func concatDirections(groups ...[]Direction) []Direction {
	var out []Direction
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// IsZero reports whether d is the zero Direction, which is not part of the
// vocabulary.
func (d Direction) IsZero() bool {
	return d.first == 0
}

// IsComposite reports whether d is a semi-cardinal direction.
func (d Direction) IsComposite() bool {
	return d.second != 0
}

// IsVertical reports whether d is up or down.
func (d Direction) IsVertical() bool {
	return !d.IsComposite() && d.first.IsVertical()
}

// Parts returns the atoms making up d. For an atomic direction the second
// atom is zero.
func (d Direction) Parts() (Atom, Atom) {
	return d.first, d.second
}

// Opposite returns the opposite direction. Composites are reversed
// element-wise, so Northeast.Opposite() is Southwest.
//
// Postcondition: d.Opposite().Opposite() == d.
func (d Direction) Opposite() Direction {
	if d.IsComposite() {
		return Direction{first: d.first.Opposite(), second: d.second.Opposite()}
	}
	return Direction{first: d.first.Opposite()}
}

// String returns the concatenated lowercase name, e.g. "north" or "northeast".
func (d Direction) String() string {
	if d.IsComposite() {
		return d.first.String() + d.second.String()
	}
	return d.first.String()
}

// names returns every accepted input form for d, lowercase.
func (d Direction) names() []string {
	if d.IsComposite() {
		a, b := d.first.String(), d.second.String()
		return []string{
			a + b,
			a + " " + b,
			a + "-" + b,
			a[:1] + b[:1],
		}
	}
	name := d.first.String()
	return []string{name, name[:1]}
}

// ParseDirection matches free-form text against every accepted name form of
// every direction, case-insensitively.
//
// Postcondition: Returns (direction, true) on a match, or (Direction{}, false).
// Never panics, whatever the input.
func ParseDirection(text string) (Direction, bool) {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		return Direction{}, false
	}
	for _, d := range AllDirections {
		for _, name := range d.names() {
			if name == input {
				return d, true
			}
		}
	}
	return Direction{}, false
}

// Describe renders d for prose. Up and down become "above" and "below" with
// no prefix; every other direction is prefixed with "to the " unless
// omitPrefix is set. Composite parts are joined with a hyphen.
func (d Direction) Describe(omitPrefix bool) string {
	var desc string
	switch {
	case d.IsComposite():
		desc = Direction{first: d.first}.Describe(true) + "-" + Direction{first: d.second}.Describe(true)
	case d.first == AtomUp:
		return "above"
	case d.first == AtomDown:
		return "below"
	default:
		desc = d.first.String()
	}
	if omitPrefix {
		return desc
	}
	return "to the " + desc
}
