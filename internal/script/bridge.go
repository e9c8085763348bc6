package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value into the plain Go values chain.Parse reads:
// sequences become []any, other tables map[string]any, whole numbers
// int64. Functions and userdata have no Go form and become nil.
func toGo(lv lua.LValue) any {
	return toGoVisited(lv, make(map[*lua.LTable]bool))
}

func toGoVisited(lv lua.LValue, visited map[*lua.LTable]bool) any {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
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
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo treats a table with keys 1..n and nothing else as a list.
// An empty table is a mapping, so {} reads as empty arguments.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && count == n {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoVisited(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprintf("%v", float64(kv))
		default:
			key = k.String()
		}
		m[key] = toGoVisited(v, visited)
	})
	return m
}

// span builds the {start=, stop=} table used for regions.
func span(L *lua.LState, start, stop int64) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("start", lua.LNumber(start))
	t.RawSetString("stop", lua.LNumber(stop))
	return t
}

// offsets reads a list of whole, non-negative numbers.
func offsets(lv lua.LValue) ([]int64, error) {
	t, ok := lv.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w, got %s", ErrBadReturn, lv.Type())
	}
	out := make([]int64, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		n, ok := t.RawGetInt(i).(lua.LNumber)
		if !ok || float64(n) != float64(int64(n)) || n < 0 {
			return nil, fmt.Errorf("%w: entry %d is %s", ErrBadReturn, i, t.RawGetInt(i).String())
		}
		out = append(out, int64(n))
	}
	return out, nil
}
