package scripting

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/dice"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Manager owns the sandboxed LState of one world and binds its Lua functions
// as item use actions.
//
// Every execution gets a fresh instruction budget. Manager is safe for
// concurrent use; calls into the VM are serialized.
type Manager struct {
	mu     sync.Mutex
	L      *lua.LState
	cancel context.CancelFunc
	limit  int
	roller *dice.Roller
	logger *zap.Logger
}

// NewManager creates a Manager with no VM loaded.
//
// Precondition: roller and logger must be non-nil; NewManager panics otherwise.
// Postcondition: Returns a non-nil Manager.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{roller: roller, logger: logger}
}

// Load executes src in the manager's VM, creating the VM on first use with
// the given per-call instruction limit. Later loads share the same globals.
//
// Precondition: name identifies the source in error messages.
// Postcondition: Returns an error if src fails to compile or run.
func (m *Manager) Load(name, src string, instLimit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.L == nil {
		m.L, m.cancel = NewSandboxedState(instLimit)
		m.limit = instLimit
		m.RegisterModules(m.L)
	} else {
		m.rearmLocked()
	}

	if err := m.L.DoString(src); err != nil {
		return fmt.Errorf("scripting: loading %s: %w", name, err)
	}
	return nil
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if no VM
// is loaded or the hook is not defined. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never
// propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callLocked(hook, args...), nil
}

// BindUse returns a use action that calls the Lua function hook with a
// context table. Each bound action keeps its own state table across calls.
// A hook returning the string "destroy" destroys the item.
//
// Precondition: Load must have defined hook as a global function.
// Postcondition: Returns a non-nil UseAction, or an error if hook is not a
// Lua function.
func (m *Manager) BindUse(hook string) (world.UseAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.L == nil {
		return nil, fmt.Errorf("no scripts loaded for use hook %q", hook)
	}
	if _, ok := m.L.GetGlobal(hook).(*lua.LFunction); !ok {
		return nil, fmt.Errorf("use hook %q is not a Lua function", hook)
	}
	state := m.L.NewTable()

	return func(uc world.UseContext) world.Outcome {
		m.mu.Lock()
		defer m.mu.Unlock()

		ret := m.callLocked(hook, m.useContextTable(uc, state))
		if s, ok := ret.(lua.LString); ok && strings.EqualFold(string(s), "destroy") {
			return world.Destroy
		}
		return world.NoEffect
	}, nil
}

// Close releases the VM. Hooks called afterwards are no-ops.
//
// Postcondition: No VM is loaded.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
}

// callLocked runs hook with a fresh budget.
//
// Precondition: m.mu must be held.
func (m *Manager) callLocked(hook string, args ...lua.LValue) lua.LValue {
	if m.L == nil {
		m.logger.Info("scripting: no VM loaded", zap.String("hook", hook))
		return lua.LNil
	}

	fn := m.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil
	}

	m.rearmLocked()
	if err := m.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}

	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret
}

func (m *Manager) rearmLocked() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = rearm(m.L, m.limit)
}
