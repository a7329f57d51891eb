package lua

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/mindcmd/internal/command"
)

// ModuleName is the global table scripts use.
const ModuleName = "mind"

// script is one loaded Lua file and the commands it declared.
type script struct {
	state    *State
	source   string
	logger   *zap.Logger
	commands []*command.Command
}

// install registers the mind table in the script's state.
func (sc *script) install() {
	L := sc.state.L
	mod := L.NewTable()
	L.SetField(mod, "command", L.NewFunction(sc.declare))
	L.SetField(mod, "log", L.NewFunction(sc.log))
	L.SetGlobal(ModuleName, mod)

	// print goes to the log rather than stdout, which the CLI owns.
	L.SetGlobal("print", L.NewFunction(sc.log))
}

// log(...) writes its arguments to the logger at info level.
func (sc *script) log(L *lua.LState) int {
	msg := ""
	for i := 1; i <= L.GetTop(); i++ {
		if i > 1 {
			msg += " "
		}
		msg += L.Get(i).String()
	}
	sc.logger.Info(msg, zap.String("source", sc.source))
	return 0
}

// declare implements mind.command{...}.
func (sc *script) declare(L *lua.LState) int {
	opts := L.CheckTable(1)

	cmd, err := sc.build(opts)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	if err := cmd.Check(); err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	sc.commands = append(sc.commands, cmd)
	return 0
}

// build converts a definition table into a command.
func (sc *script) build(opts *lua.LTable) (*command.Command, error) {
	name := luaString(opts.RawGetString("name"))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidCommand)
	}

	execute, ok := opts.RawGetString("execute").(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%w: %s: execute must be a function", ErrInvalidCommand, name)
	}

	cmd := &command.Command{
		Name:        name,
		Description: luaString(opts.RawGetString("description")),
		Category:    luaString(opts.RawGetString("category")),
		Countable:   lua.LVAsBool(opts.RawGetString("countable")),
		Repeatable:  lua.LVAsBool(opts.RawGetString("repeatable")),
		Source:      sc.source,
		Execute:     sc.executeFunc(name, execute),
	}
	if cmd.Category == "" {
		cmd.Category = "Script"
	}

	if t, ok := opts.RawGetString("aliases").(*lua.LTable); ok {
		for i := 1; i <= t.Len(); i++ {
			cmd.Aliases = append(cmd.Aliases, t.RawGetInt(i).String())
		}
	}
	if t, ok := opts.RawGetString("examples").(*lua.LTable); ok {
		for i := 1; i <= t.Len(); i++ {
			cmd.Examples = append(cmd.Examples, t.RawGetInt(i).String())
		}
	}

	if t, ok := opts.RawGetString("args").(*lua.LTable); ok {
		for i := 1; i <= t.Len(); i++ {
			spec, err := argSpec(t.RawGetInt(i))
			if err != nil {
				return nil, fmt.Errorf("%w: %s: argument %d: %v", ErrInvalidCommand, name, i, err)
			}
			cmd.Args = append(cmd.Args, spec)
		}
	}

	switch g := opts.RawGetString("guard").(type) {
	case *lua.LFunction:
		cmd.Guard = sc.guardFunc(name, g)
	case *lua.LNilType:
	default:
		return nil, fmt.Errorf("%w: %s: guard must be a function", ErrInvalidCommand, name)
	}

	return cmd, nil
}

// argSpec converts {name=..., type=..., required=..., default=...}.
func argSpec(lv lua.LValue) (command.ArgSpec, error) {
	t, ok := lv.(*lua.LTable)
	if !ok {
		return command.ArgSpec{}, fmt.Errorf("expected a table, got %s", lv.Type())
	}

	typ, err := command.ParseArgType(luaString(t.RawGetString("type")))
	if err != nil {
		return command.ArgSpec{}, err
	}

	spec := command.ArgSpec{
		Name:        luaString(t.RawGetString("name")),
		Type:        typ,
		Required:    lua.LVAsBool(t.RawGetString("required")),
		Description: luaString(t.RawGetString("description")),
	}
	if d := t.RawGetString("default"); d != lua.LNil {
		spec.Default = toGo(d)
	}
	return spec, nil
}

// executeFunc wraps a Lua execute function.
func (sc *script) executeFunc(name string, fn *lua.LFunction) command.ExecuteFunc {
	return func(ctx context.Context, inv *command.Invocation) (command.Result, error) {
		rets, err := sc.state.Call(ctx, fn, invocationArgs(inv))
		if err != nil {
			return command.Result{}, fmt.Errorf("%s: %s", name, errorText(err))
		}
		return resultFromLua(rets), nil
	}
}

// guardFunc wraps a Lua guard function. Errors count as a failed guard.
func (sc *script) guardFunc(name string, fn *lua.LFunction) command.GuardFunc {
	return func(ctx context.Context, inv *command.Invocation) bool {
		rets, err := sc.state.Call(ctx, fn, invocationArgs(inv))
		if err != nil {
			sc.logger.Warn("lua guard failed", zap.String("command", name), zap.Error(err))
			return false
		}
		return len(rets) > 0 && lua.LVAsBool(rets[0])
	}
}

func invocationArgs(inv *command.Invocation) func(L *lua.LState) []lua.LValue {
	return func(L *lua.LState) []lua.LValue {
		return []lua.LValue{argsToTable(L, inv.Args), lua.LNumber(inv.Count)}
	}
}
