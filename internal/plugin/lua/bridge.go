package lua

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// ToLuaValue converts a Go value into a Lua value. Maps with string keys
// become tables; slices become 1-indexed array tables. Unsupported types
// are formatted with %v.
func ToLuaValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case []string:
		tbl := L.CreateTable(len(val), 0)
		for _, s := range val {
			tbl.Append(lua.LString(s))
		}
		return tbl
	case []any:
		tbl := L.CreateTable(len(val), 0)
		for _, item := range val {
			tbl.Append(ToLuaValue(L, item))
		}
		return tbl
	case map[string]any:
		tbl := L.CreateTable(0, len(val))
		for k, item := range val {
			tbl.RawSetString(k, ToLuaValue(L, item))
		}
		return tbl
	case map[string]string:
		tbl := L.CreateTable(0, len(val))
		for k, s := range val {
			tbl.RawSetString(k, lua.LString(s))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprintf("%v", val))
	}
}

// ToGoValue converts a Lua value into a Go value. Tables with only
// consecutive integer keys from 1 become []any; other tables become
// map[string]any. Functions and userdata convert to nil.
func ToGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(val)
	case lua.LString:
		return string(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case *lua.LTable:
		return tableToGo(val)
	default:
		return nil
	}
}

func tableToGo(tbl *lua.LTable) any {
	n := tbl.Len()
	count := 0
	array := true
	tbl.ForEach(func(k, _ lua.LValue) {
		count++
		num, ok := k.(lua.LNumber)
		if !ok {
			array = false
			return
		}
		i := int(num)
		if float64(num) != float64(i) || i < 1 || i > n {
			array = false
		}
	})
	if n > 0 && array && n == count {
		arr := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			arr = append(arr, ToGoValue(tbl.RawGetInt(i)))
		}
		return arr
	}

	m := make(map[string]any, count)
	tbl.ForEach(func(k, v lua.LValue) {
		m[k.String()] = ToGoValue(v)
	})
	return m
}

// TableKeys returns the string keys of tbl in sorted order.
func TableKeys(tbl *lua.LTable) []string {
	var keys []string
	tbl.ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			keys = append(keys, string(s))
		}
	})
	sort.Strings(keys)
	return keys
}
