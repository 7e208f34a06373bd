package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// RegisterModules registers the engine.log and engine.dice Lua tables into L.
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, logf := range levels {
		logf := logf
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			logf(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

// engine.dice.roll(expr) returns {dice = <sum of dice>, modifier = n, total = n}.
func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		expr := L.CheckString(1)
		result, err := m.roller.RollExpr(expr)
		if err != nil {
			L.RaiseError("engine.dice.roll: %s", err.Error())
			return 0
		}
		t := L.NewTable()
		L.SetField(t, "dice", lua.LNumber(result.Sum()))
		L.SetField(t, "modifier", lua.LNumber(result.Modifier))
		L.SetField(t, "total", lua.LNumber(result.Total()))
		L.Push(t)
		return 1
	}))
	return mod
}

// useContextTable builds the table passed to a use hook:
//
//	item_name, item_room (nil when carried), verb, state
//	say(...), game_over(), win(), current_room()
//	exit(dir) returns the name of the room that way, or nil
//	connect(dir, room_name [, mutual]) opens an exit from the item's room,
//	or from the current room when the item is carried
//
// Precondition: m.mu must be held.
func (m *Manager) useContextTable(uc world.UseContext, state *lua.LTable) *lua.LTable {
	L := m.L
	ctx := L.NewTable()

	L.SetField(ctx, "item_name", lua.LString(uc.Item.Name()))
	if uc.Room != nil {
		L.SetField(ctx, "item_room", lua.LString(uc.Room.Name()))
	}
	L.SetField(ctx, "verb", lua.LString(uc.Verb))
	L.SetField(ctx, "state", state)

	origin := func() *world.Room {
		if uc.Room != nil {
			return uc.Room
		}
		return uc.Game.CurrentRoom()
	}

	L.SetField(ctx, "say", L.NewFunction(func(L *lua.LState) int {
		lines := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			lines = append(lines, L.ToStringMeta(L.Get(i)).String())
		}
		uc.Game.Say(lines...)
		return 0
	}))
	L.SetField(ctx, "game_over", L.NewFunction(func(L *lua.LState) int {
		uc.Game.GameOver()
		return 0
	}))
	L.SetField(ctx, "win", L.NewFunction(func(L *lua.LState) int {
		uc.Game.Win()
		return 0
	}))
	L.SetField(ctx, "current_room", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(uc.Game.CurrentRoom().Name()))
		return 1
	}))
	L.SetField(ctx, "exit", L.NewFunction(func(L *lua.LState) int {
		d, ok := world.ParseDirection(L.CheckString(1))
		if !ok {
			L.ArgError(1, "unknown direction")
			return 0
		}
		target, ok := origin().Exit(d)
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(target.Name()))
		return 1
	}))
	L.SetField(ctx, "connect", L.NewFunction(func(L *lua.LState) int {
		d, ok := world.ParseDirection(L.CheckString(1))
		if !ok {
			L.ArgError(1, "unknown direction")
			return 0
		}
		name := L.CheckString(2)
		target, ok := uc.Game.Room(name)
		if !ok {
			L.ArgError(2, "unknown room "+name)
			return 0
		}
		mutual := L.OptBool(3, false)
		from := origin()
		from.ConnectTo(d, target, mutual)
		m.logger.Debug("scripting: exit opened",
			zap.String("from", from.Name()),
			zap.Stringer("direction", d),
			zap.String("to", target.Name()),
			zap.Bool("mutual", mutual),
		)
		return 0
	}))

	return ctx
}
