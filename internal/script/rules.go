// Package script loads Lua rules files. A rules file adjusts preview
// settings and may register allow predicates that veto individual files.
package script

import (
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/glimpse/internal/config"
)

// ErrNoRulesFile is returned by Load when the rules file does not exist.
var ErrNoRulesFile = errors.New("rules file not found")

// Rules holds the state of a loaded rules file.
//
// A rules file runs once at load time. It sees a single global module:
//
//	glimpse.set(path, value)  -- set a configuration value
//	glimpse.exclude(ext)      -- add an excluded extension
//	glimpse.allow(fn)         -- register a predicate called per file
//
// Allow predicates receive the candidate file path and must return a
// truthy value for the file to remain previewable.
type Rules struct {
	state *State
	cfg   *config.Config

	mu       sync.Mutex
	allowFns []*lua.LFunction
}

// Load executes the rules file at path against cfg. A missing file is
// reported with ErrNoRulesFile so callers can treat rules as optional.
func Load(path string, cfg *config.Config) (*Rules, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRulesFile, path)
		}
		return nil, err
	}

	r := newRules(cfg)
	if err := r.state.DoFile(path); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

// LoadString executes rules source code against cfg.
func LoadString(code string, cfg *config.Config) (*Rules, error) {
	r := newRules(cfg)
	if err := r.state.DoString(code); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}

func newRules(cfg *config.Config) *Rules {
	r := &Rules{state: NewState(), cfg: cfg}
	r.state.RegisterModule("glimpse", map[string]lua.LGFunction{
		"set":     r.luaSet,
		"exclude": r.luaExclude,
		"allow":   r.luaAllow,
	})
	return r
}

// Allowed reports whether every registered allow predicate accepts the
// file path. Predicate errors count as rejection.
func (r *Rules) Allowed(path string) bool {
	r.mu.Lock()
	fns := make([]*lua.LFunction, len(r.allowFns))
	copy(fns, r.allowFns)
	r.mu.Unlock()

	for _, fn := range fns {
		results, err := r.state.CallFunction(fn, lua.LString(path))
		if err != nil {
			return false
		}
		if len(results) == 0 || lua.LVIsFalse(results[0]) {
			return false
		}
	}
	return true
}

// AllowCount returns the number of registered allow predicates.
func (r *Rules) AllowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.allowFns)
}

// Close releases the underlying Lua state.
func (r *Rules) Close() error {
	return r.state.Close()
}

// luaSet implements glimpse.set(path, value).
func (r *Rules) luaSet(L *lua.LState) int {
	path := L.CheckString(1)
	value := luaToGo(L.CheckAny(2))

	if err := r.cfg.Set(path, value); err != nil {
		L.RaiseError("glimpse.set(%q): %v", path, err)
	}
	return 0
}

// luaExclude implements glimpse.exclude(ext).
func (r *Rules) luaExclude(L *lua.LState) int {
	ext := L.CheckString(1)

	current := r.cfg.Preview().ExcludedExtensions
	for _, e := range current {
		if e == ext {
			return 0
		}
	}

	if err := r.cfg.Set("preview.excludedExtensions", append(current, ext)); err != nil {
		L.RaiseError("glimpse.exclude(%q): %v", ext, err)
	}
	return 0
}

// luaAllow implements glimpse.allow(fn).
func (r *Rules) luaAllow(L *lua.LState) int {
	fn := L.CheckFunction(1)

	r.mu.Lock()
	r.allowFns = append(r.allowFns, fn)
	r.mu.Unlock()
	return 0
}

// luaToGo converts a Lua value to a Go value suitable for Config.Set.
// Integral numbers convert to int64, others to float64. Array-style
// tables convert to slices, everything else to string-keyed maps.
func luaToGo(lv lua.LValue) any {
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
		return tableToGo(v)
	default:
		return nil
	}
}

func tableToGo(t *lua.LTable) any {
	if n := t.Len(); n > 0 {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = luaToGo(t.RawGetInt(i))
		}
		return arr
	}

	m := make(map[string]any)
	t.ForEach(func(k, v lua.LValue) {
		m[k.String()] = luaToGo(v)
	})
	return m
}
