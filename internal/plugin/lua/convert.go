package lua

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/mindcmd/internal/command"
)

// argsToTable converts validated arguments to a Lua table keyed by name.
func argsToTable(L *lua.LState, args command.Args) *lua.LTable {
	t := L.CreateTable(0, len(args))
	for name, v := range args {
		t.RawSetString(name, valueToLua(v))
	}
	return t
}

func valueToLua(v command.Value) lua.LValue {
	switch v.Kind() {
	case command.KindNumber:
		return lua.LNumber(v.Number())
	case command.KindBool:
		return lua.LBool(v.Bool())
	default:
		return lua.LString(v.String())
	}
}

// toGo converts a Lua value to plain Go data. Tables with only the keys
// 1..n become slices; other tables become maps. Functions, userdata and
// cycles convert to nil.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		defer delete(visited, v)

		if n := v.Len(); n > 0 && countKeys(v) == n {
			out := make([]any, 0, n)
			for i := 1; i <= n; i++ {
				out = append(out, toGoVisited(v.RawGetInt(i), visited))
			}
			return out
		}
		out := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			out[k.String()] = toGoVisited(val, visited)
		})
		return out
	default:
		return nil
	}
}

func countKeys(t *lua.LTable) int {
	n := 0
	t.ForEach(func(_, _ lua.LValue) { n++ })
	return n
}

// resultFromLua interprets the values returned by an execute function.
func resultFromLua(rets []lua.LValue) command.Result {
	if len(rets) == 0 {
		return command.Success()
	}

	switch v := rets[0].(type) {
	case *lua.LNilType:
		return command.Success()
	case lua.LBool:
		if v {
			return command.Success()
		}
		return command.Failure("Command execution failed")
	case lua.LString:
		return command.SuccessWithMessage(string(v))
	case *lua.LTable:
		success := true
		if b, ok := v.RawGetString("success").(lua.LBool); ok {
			success = bool(b)
		}
		r := command.Result{
			Success: success,
			Message: luaString(v.RawGetString("message")),
			Error:   luaString(v.RawGetString("error")),
		}
		if data := v.RawGetString("data"); data != lua.LNil {
			r.Data = toGo(data)
		}
		if !r.Success && r.Error == "" {
			r.Error = "Command execution failed"
		}
		return r
	default:
		return command.SuccessWithMessage(v.String())
	}
}

func luaString(lv lua.LValue) string {
	if lv == lua.LNil {
		return ""
	}
	return lv.String()
}
