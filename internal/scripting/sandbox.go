// Package scripting provides a sandboxed GopherLua execution environment for
// the use hooks of YAML-authored worlds. Hooks reach the game only through
// the context table built for each call.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// script execution when the world does not override it.
const DefaultInstructionLimit = 100_000

// opcodeBudget is a context that cancels itself once Done has been polled
// more than its budget allows. The VM polls Done once per opcode, so the
// budget is an exact instruction count.
type opcodeBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// newOpcodeBudget returns a context that expires after n opcodes.
//
// Precondition: n > 0.
func newOpcodeBudget(n int) (context.Context, context.CancelFunc) {
	b := &opcodeBudget{}
	b.Context, b.cancel = context.WithCancel(context.Background())
	b.left.Store(int64(n))
	return b, b.cancel
}

func effectiveLimit(instLimit int) int {
	if instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return instLimit
}

// NewSandboxedState creates an LState with only the base, table, string and
// math libraries, no file or module loading, and an opcode budget armed.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil LState and the cancel function of its
// current instruction budget. The caller owns the LState and must call
// cancel and L.Close() when done.
func NewSandboxedState(instLimit int) (*lua.LState, context.CancelFunc) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	return L, rearm(L, instLimit)
}

// rearm gives L a fresh budget of instLimit opcodes.
//
// Postcondition: Returns the cancel function of the new budget.
func rearm(L *lua.LState, instLimit int) context.CancelFunc {
	ctx, cancel := newOpcodeBudget(effectiveLimit(instLimit))
	L.SetContext(ctx)
	return cancel
}
