// Package lua registers commands written in Lua.
//
// Each script runs in its own sandboxed gopher-lua state with only the base,
// table, string and math libraries; file loading and require are removed.
// A script declares commands through the global mind table:
//
//	mind.command{
//	    name = "shout",
//	    aliases = {"sh"},
//	    description = "Upper-case a message",
//	    args = {{name = "text", type = "string", required = true}},
//	    countable = true,
//	    execute = function(args, count)
//	        return {message = string.rep(string.upper(args.text), math.max(count, 1), " ")}
//	    end,
//	}
//
// execute may return nothing (success), a string (success message), a
// boolean, or a table with success, message, error and data fields. Raising
// a Lua error fails the command with the error text. An optional guard
// function receives the same arguments and returns a boolean.
//
// Commands loaded from a file carry the source "lua:<file name>" so that
// reloading a script replaces exactly the commands it registered.
package lua
