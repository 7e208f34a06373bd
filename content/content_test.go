package content_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/adventure/content"
	"github.com/cory-johannsen/adventure/internal/frontend/console"
	"github.com/cory-johannsen/adventure/internal/game/dice"
	"github.com/cory-johannsen/adventure/internal/game/engine"
	"github.com/cory-johannsen/adventure/internal/game/session"
	"github.com/cory-johannsen/adventure/internal/scripting"
	"github.com/cory-johannsen/adventure/internal/story/tinyhouse"
)

func TestNames(t *testing.T) {
	assert.Contains(t, content.Names(), "tiny_house")
}

func TestDefinition_Unknown(t *testing.T) {
	_, err := content.Definition("no_such_world")
	assert.Error(t, err)
}

func TestDefinition_TinyHouseHooks(t *testing.T) {
	def, err := content.Definition("tiny_house")
	require.NoError(t, err)
	assert.Equal(t, []string{"drink_potion", "press_yellow_button", "press_red_button"}, def.Hooks())
	assert.Equal(t, 50000, def.ScriptInstructionLimit)
}

func playScripted(t *testing.T, input string) (string, session.QuitType) {
	t.Helper()
	def, err := content.Definition("tiny_house")
	require.NoError(t, err)
	logger := zaptest.NewLogger(t)
	w, m, err := scripting.BuildWorld(def, dice.NewLoggedRoller(dice.NewSeededSource(1), logger), logger)
	require.NoError(t, err)
	defer m.Close()

	var out bytes.Buffer
	e := engine.New(w, console.New(strings.NewReader(input), &out), logger)
	q, err := e.Run(context.Background())
	require.NoError(t, err)
	return out.String(), q
}

func playBuiltin(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	e := engine.New(tinyhouse.New(), console.New(strings.NewReader(input), &out), zaptest.NewLogger(t))
	_, err := e.Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestTinyHouse_ScriptedMatchesBuiltin(t *testing.T) {
	scripts := []string{
		"s\ns\npress button\npress button\nd\nlook\npress button\n",
		"x potion\nget potion\ndrink it\ndrink potion\n",
		"s\nn\ns\ns\nd\nbye\n",
	}
	for _, input := range scripts {
		scripted, _ := playScripted(t, input)
		assert.Equal(t, playBuiltin(t, input), scripted, input)
	}
}

func TestTinyHouse_ScriptedWin(t *testing.T) {
	out, q := playScripted(t, "s\ns\npress button\nd\npress button\n")
	assert.Equal(t, session.QuitSoft, q)
	assert.Contains(t, out, "<< A Mysterious Cave >>")
	assert.Contains(t, out, "==== Hooray! You won! ====")
}
