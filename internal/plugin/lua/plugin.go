package lua

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/caretjar/internal/dispatcher"
	"github.com/dshills/caretjar/internal/editor"
	"github.com/dshills/caretjar/internal/engine/position"
)

const (
	globalPlugin = "plugin"
	globalConfig = "config"
	moduleEditor = "editor"

	fieldName         = "name"
	fieldOnAction     = "on_action"
	fieldUpdateConfig = "update_config"
	fieldDestroy      = "destroy"
)

// Plugin is an editor plugin backed by a Lua script.
type Plugin struct {
	state *State
	host  dispatcher.Host
	name  string

	onAction     lua.LValue
	updateConfig lua.LValue
	destroy      lua.LValue
}

// Load runs script in a fresh sandboxed state bound to host and returns the
// plugin it declares. config is exposed to the script as the config global.
func Load(host dispatcher.Host, script string, config any, opts ...StateOption) (*Plugin, error) {
	s := NewState(opts...)
	p := &Plugin{state: s, host: host}

	s.RegisterModule(moduleEditor, p.editorModule())
	s.SetGlobal(globalConfig, ToLuaValue(s.L, config))

	if err := s.DoString(script); err != nil {
		s.Close()
		return nil, fmt.Errorf("load lua plugin: %w", err)
	}

	tbl, ok := s.GetGlobal(globalPlugin).(*lua.LTable)
	if !ok {
		s.Close()
		return nil, ErrNoPlugin
	}
	name, ok := tbl.RawGetString(fieldName).(lua.LString)
	if !ok || name == "" {
		s.Close()
		return nil, ErrNoName
	}
	p.name = string(name)
	p.onAction = tbl.RawGetString(fieldOnAction)
	if p.onAction.Type() != lua.LTFunction {
		s.Close()
		return nil, fmt.Errorf("%s: %w", p.name, ErrNoHandler)
	}
	p.updateConfig = tbl.RawGetString(fieldUpdateConfig)
	p.destroy = tbl.RawGetString(fieldDestroy)
	return p, nil
}

// LoadFile reads a script from path and loads it.
func LoadFile(host dispatcher.Host, path string, config any, opts ...StateOption) (*Plugin, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lua plugin: %w", err)
	}
	return Load(host, string(data), config, opts...)
}

// Factory returns a dispatcher.Factory that loads script for each editor.
// Load errors are logged through the host and reject the plugin.
func Factory(script string, opts ...StateOption) dispatcher.Factory {
	return func(host dispatcher.Host, config any) dispatcher.Plugin {
		p, err := Load(host, script, config, opts...)
		if err != nil {
			host.Warn("%v", err)
			return nil
		}
		return p
	}
}

// Name returns the name the script declared.
func (p *Plugin) Name() string { return p.name }

// OnAction calls the script's on_action with the action as a table. A truthy
// result aborts the action; script errors are logged and never abort.
func (p *Plugin) OnAction(a dispatcher.Action) bool {
	if p.state.IsClosed() {
		return false
	}
	results, err := p.state.CallValue(p.onAction, p.actionTable(a))
	if err != nil {
		p.host.Warn("lua plugin %q: %s: %v", p.name, a.Name, err)
		return false
	}
	return len(results) > 0 && lua.LVAsBool(results[0])
}

func (p *Plugin) actionTable(a dispatcher.Action) *lua.LTable {
	L := p.state.L
	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString(a.Name))
	tbl.RawSetString("code", lua.LString(a.Code))

	switch ev := a.Event.(type) {
	case *editor.KeyEvent:
		tbl.RawSetString("key", lua.LString(ev.Key))
		tbl.RawSetString("ctrl", lua.LBool(ev.Ctrl))
		tbl.RawSetString("meta", lua.LBool(ev.Meta))
		tbl.RawSetString("shift", lua.LBool(ev.Shift))
		tbl.RawSetString("alt", lua.LBool(ev.Alt))
	case *editor.ClipboardEvent:
		tbl.RawSetString("data", lua.LString(ev.Data()))
	}
	return tbl
}

// UpdateConfig calls the script's update_config if it has one.
func (p *Plugin) UpdateConfig(config any) {
	if p.state.IsClosed() {
		return
	}
	p.state.SetGlobal(globalConfig, ToLuaValue(p.state.L, config))
	if p.updateConfig.Type() != lua.LTFunction {
		return
	}
	if _, err := p.state.CallValue(p.updateConfig, p.state.GetGlobal(globalConfig)); err != nil {
		p.host.Warn("lua plugin %q: update config: %v", p.name, err)
	}
}

// Destroy calls the script's destroy if it has one and closes the state.
func (p *Plugin) Destroy() {
	if p.state.IsClosed() {
		return
	}
	if p.destroy.Type() == lua.LTFunction {
		if _, err := p.state.CallValue(p.destroy); err != nil {
			p.host.Warn("lua plugin %q: destroy: %v", p.name, err)
		}
	}
	p.state.Close()
}

func (p *Plugin) editorModule() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"id": func(L *lua.LState) int {
			L.Push(lua.LString(p.host.ID()))
			return 1
		},
		"text": func(L *lua.LState) int {
			L.Push(lua.LString(p.host.ToString()))
			return 1
		},
		"save": func(L *lua.LState) int {
			pos, err := p.host.Save()
			if err != nil {
				L.Push(lua.LNil)
				L.Push(lua.LString(err.Error()))
				return 2
			}
			tbl := L.NewTable()
			tbl.RawSetString("start", lua.LNumber(pos.Start))
			tbl.RawSetString("finish", lua.LNumber(pos.End))
			tbl.RawSetString("backward", lua.LBool(pos.Dir == position.DirBackward))
			L.Push(tbl)
			return 1
		},
		"restore": func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			pos := position.Position{
				Start: int(lua.LVAsNumber(tbl.RawGetString("start"))),
				End:   int(lua.LVAsNumber(tbl.RawGetString("finish"))),
				Dir:   position.DirForward,
			}
			if lua.LVAsBool(tbl.RawGetString("backward")) {
				pos.Dir = position.DirBackward
			}
			p.host.Restore(pos)
			return 0
		},
		"warn": func(L *lua.LState) int {
			p.host.Warn("%s", L.CheckString(1))
			return 0
		},
		"debug": func(L *lua.LState) int {
			p.host.Debug("%s", L.CheckString(1))
			return 0
		},
	}
}
