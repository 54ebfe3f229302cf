// Package lua runs editor plugins written in Lua.
//
// A script declares its plugin as a global table:
//
//	plugin = {
//	    name = "shout",
//	    on_action = function(action)
//	        if action.name == "keydown" and action.key == "!" then
//	            editor.warn("no shouting")
//	            return true
//	        end
//	        return false
//	    end,
//	    update_config = function(cfg) end,
//	    destroy = function() end,
//	}
//
// on_action receives a table with the action name and the full text as
// code; key events add key and the modifier flags. Returning true aborts
// the action. The script's config is available as the global config.
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. dofile,
// loadfile, load and loadstring are removed and require only resolves
// those libraries. Each call runs under an execution timeout enforced
// through the state's context.
//
// # Editor module
//
// The editor global exposes id(), text(), save(), restore(pos), warn(msg)
// and debug(msg). save returns {start=, finish=, backward=}; restore takes
// the same shape.
package lua
