package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDirection_Opposite(t *testing.T) {
	pairs := [][2]Direction{
		{North, South},
		{East, West},
		{Up, Down},
		{Northeast, Southwest},
		{Northwest, Southeast},
	}
	for _, pair := range pairs {
		assert.Equal(t, pair[1], pair[0].Opposite())
		assert.Equal(t, pair[0], pair[1].Opposite())
	}
}

func TestPropertyOppositeIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		idx := rapid.IntRange(0, len(AllDirections)-1).Draw(t, "dir_idx")
		d := AllDirections[idx]
		assert.Equal(t, d, d.Opposite().Opposite(), "opposite should be an involution for %q", d)
		assert.NotEqual(t, d, d.Opposite())
	})
}

func TestDirection_CompositeParts(t *testing.T) {
	first, second := Northeast.Parts()
	assert.Equal(t, AtomNorth, first)
	assert.Equal(t, AtomEast, second)
	assert.True(t, Northeast.IsComposite())
	assert.False(t, North.IsComposite())

	first, second = South.Parts()
	assert.Equal(t, AtomSouth, first)
	assert.Equal(t, Atom(0), second)
}

func TestDirection_IsVertical(t *testing.T) {
	assert.True(t, Up.IsVertical())
	assert.True(t, Down.IsVertical())
	assert.False(t, North.IsVertical())
	assert.False(t, Southwest.IsVertical())
}

func TestAllDirections_Partition(t *testing.T) {
	assert.Len(t, AllDirections, 10)
	seen := make(map[Direction]bool)
	for _, d := range AllDirections {
		assert.False(t, seen[d], "duplicate direction %s", d)
		seen[d] = true
	}
}

func TestParseDirection_AcceptedForms(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
	}{
		{"north", North},
		{"n", North},
		{"N", North},
		{"East", East},
		{"e", East},
		{"south", South},
		{"s", South},
		{"west", West},
		{"w", West},
		{"up", Up},
		{"u", Up},
		{"down", Down},
		{"d", Down},
		{"northeast", Northeast},
		{"north east", Northeast},
		{"north-east", Northeast},
		{"ne", Northeast},
		{"NE", Northeast},
		{"northwest", Northwest},
		{"nw", Northwest},
		{"south-west", Southwest},
		{"sw", Southwest},
		{"South East", Southeast},
		{"se", Southeast},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.input)
		require.True(t, ok, "expected %q to parse", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseDirection_NoMatch(t *testing.T) {
	for _, input := range []string{"", "   ", "eastnorth", "en", "upward", "north_east", "x", "look"} {
		_, ok := ParseDirection(input)
		assert.False(t, ok, "expected %q not to parse", input)
	}
}

func TestPropertyParseDirectionNeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.String().Draw(t, "input")
		assert.NotPanics(t, func() { ParseDirection(input) })
	})
}

func TestPropertyEveryNameFormRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := AllDirections[rapid.IntRange(0, len(AllDirections)-1).Draw(t, "dir_idx")]
		names := d.names()
		name := names[rapid.IntRange(0, len(names)-1).Draw(t, "name_idx")]
		got, ok := ParseDirection(name)
		if !ok || got != d {
			t.Fatalf("name %q of %s parsed to (%s, %v)", name, d, got, ok)
		}
	})
}

func TestPropertyDescribeBareRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := AllDirections[rapid.IntRange(0, len(AllDirections)-1).Draw(t, "dir_idx")]
		if d.IsVertical() {
			return
		}
		got, ok := ParseDirection(d.Describe(true))
		if !ok || got != d {
			t.Fatalf("bare description %q of %s parsed to (%s, %v)", d.Describe(true), d, got, ok)
		}
	})
}

func TestDirection_Describe(t *testing.T) {
	assert.Equal(t, "to the north", North.Describe(false))
	assert.Equal(t, "north", North.Describe(true))
	assert.Equal(t, "to the north-east", Northeast.Describe(false))
	assert.Equal(t, "south-west", Southwest.Describe(true))
	assert.Equal(t, "above", Up.Describe(false))
	assert.Equal(t, "above", Up.Describe(true))
	assert.Equal(t, "below", Down.Describe(false))
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "west", West.String())
	assert.Equal(t, "southeast", Southeast.String())
	assert.Equal(t, "", Direction{}.String())
	assert.True(t, Direction{}.IsZero())
}
