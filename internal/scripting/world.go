package scripting

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/dice"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// BuildWorld loads def's scripts into a new Manager and assembles a fresh
// world whose use hooks are bound to it.
//
// Precondition: def, roller and logger must be non-nil.
// Postcondition: Returns the world and its Manager, which the caller must
// Close when the playthrough ends, or a non-nil error.
func BuildWorld(def *world.Definition, roller *dice.Roller, logger *zap.Logger) (*world.World, *Manager, error) {
	m := NewManager(roller, logger)
	if def.Scripts != "" {
		if err := m.Load("world scripts", def.Scripts, def.ScriptInstructionLimit); err != nil {
			m.Close()
			return nil, nil, err
		}
	}
	w, err := def.Build(m)
	if err != nil {
		m.Close()
		return nil, nil, fmt.Errorf("building world: %w", err)
	}
	return w, m, nil
}
