// Package config provides configuration parsing for go-bongo.
// This file implements the Lua configuration parser.

package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser parses Lua configuration files. The script assigns a table
// to bongo.config; the table uses the same keys as the YAML layout, with the
// sections window, decoration, sprites and osu (or keys).
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser with custom output.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes the Lua code and extracts configuration from bongo.config.
// Scripts that exceed the CPU or memory limits fail with an error.
func (p *LuaConfigParser) Parse(content []byte) (cfg *Config, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// golua panics when a hard limit is hit.
	defer func() {
		if r := recover(); r != nil {
			cfg, err = nil, fmt.Errorf("failed to execute Lua configuration: resource limit exceeded: %v", r)
		}
	}()

	p.initBongoGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	// Execute with resource limits
	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024, // 50 MB
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	thread := p.runtime.MainThread()
	_, err = rt.Call1(thread, rt.FunctionValue(closure))
	if err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initBongoGlobal resets the bongo global table before each parse.
func (p *LuaConfigParser) initBongoGlobal() {
	bongoTable := rt.NewTable()
	bongoTable.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("bongo"), rt.TableValue(bongoTable))
}

func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	bongoVal := p.runtime.GlobalEnv().Get(rt.StringValue("bongo"))
	if bongoVal == rt.NilValue {
		return &cfg, nil
	}

	bongoTable, ok := bongoVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("bongo is not a table")
	}

	configVal := bongoTable.Get(rt.StringValue("config"))
	if configVal == rt.NilValue {
		return &cfg, nil
	}
	configTable, ok := configVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("bongo.config is not a table")
	}

	if err := extractConfigTable(&cfg, configTable); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func extractConfigTable(cfg *Config, table *rt.Table) error {
	if t := getTableTable(table, "window"); t != nil {
		if err := extractWindow(&cfg.Window, t); err != nil {
			return err
		}
	}
	if t := getTableTable(table, "decoration"); t != nil {
		if err := extractDecoration(&cfg.Decoration, t); err != nil {
			return err
		}
	}
	if t := getTableTable(table, "sprites"); t != nil {
		fields := []struct {
			key    string
			target *string
		}{
			{"dir", &cfg.Sprites.Dir},
			{"background", &cfg.Sprites.Background},
			{"left_up", &cfg.Sprites.LeftUp},
			{"left_down", &cfg.Sprites.LeftDown},
			{"right_up", &cfg.Sprites.RightUp},
			{"right_down", &cfg.Sprites.RightDown},
		}
		for _, f := range fields {
			setString(f.target, getTableString(t, f.key))
		}
	}
	for _, section := range []string{"osu", "keys"} {
		t := getTableTable(table, section)
		if t == nil {
			continue
		}
		if err := extractKeys(&cfg.Keys, t, section); err != nil {
			return err
		}
	}
	return nil
}

func extractWindow(wc *WindowConfig, t *rt.Table) error {
	setString(&wc.Title, getTableString(t, "title"))
	setInt(&wc.Width, getTableInt(t, "width"))
	setInt(&wc.Height, getTableInt(t, "height"))
	setInt(&wc.GapX, getTableInt(t, "gap_x"))
	setInt(&wc.GapY, getTableInt(t, "gap_y"))
	setInt(&wc.FrameRate, getTableInt(t, "fps"))
	if val := getTableBool(t, "floating"); val != nil {
		wc.Floating = *val
	}
	if val := getTableString(t, "alignment"); val != nil {
		a, err := ParseAlignment(*val)
		if err != nil {
			return fmt.Errorf("window.alignment: %w", err)
		}
		wc.Alignment = a
	}
	return nil
}

func extractDecoration(dc *DecorationConfig, t *rt.Table) error {
	if val := getTableBool(t, "transparent"); val != nil {
		dc.Transparent = *val
	}
	setString(&dc.Mask, getTableString(t, "mask"))
	setInt(&dc.Opacity, getTableInt(t, "opacity"))
	if rgb := getTableTable(t, "rgb"); rgb != nil {
		var vals []int
		for _, v := range arrayValues(rgb) {
			n, ok := v.TryInt()
			if !ok {
				return fmt.Errorf("decoration.rgb: components must be integers")
			}
			vals = append(vals, int(n))
		}
		c, err := rgbFromInts(vals)
		if err != nil {
			return fmt.Errorf("decoration.rgb: %w", err)
		}
		dc.Background = c
	}
	if val := getTableString(t, "color"); val != nil {
		c, err := parseColor(*val)
		if err != nil {
			return fmt.Errorf("decoration.color: %w", err)
		}
		dc.Background = c
	}
	for _, key := range []string{"leftHanded", "left_handed"} {
		if val := getTableBool(t, key); val != nil {
			dc.LeftHanded = *val
		}
	}
	if val := getTableBool(t, "skip_taskbar"); val != nil {
		dc.SkipTaskbar = *val
	}
	if val := getTableBool(t, "skip_pager"); val != nil {
		dc.SkipPager = *val
	}
	return nil
}

func extractKeys(kc *KeyConfig, t *rt.Table, section string) error {
	for _, f := range []struct {
		keys   []string
		target *[]string
	}{
		{[]string{"left", "key1"}, &kc.Left},
		{[]string{"right", "key2"}, &kc.Right},
	} {
		for _, key := range f.keys {
			names, err := getTableKeys(t, key)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", section, key, err)
			}
			if len(names) > 0 {
				*f.target = names
				break
			}
		}
	}
	return nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Returns nil if the key doesn't exist or is not a boolean.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if b, ok := val.TryBool(); ok {
		return &b
	}

	// Handle string "true"/"false" for compatibility
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}

	return nil
}

// getTableString retrieves a string value from a Lua table.
// Returns nil if the key doesn't exist or is not a string.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if s, ok := val.TryString(); ok {
		return &s
	}

	return nil
}

// getTableInt retrieves an int value from a Lua table.
// Returns nil if the key doesn't exist or is not a number.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}

	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}

	// Try float conversion (truncate)
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}

	return nil
}

func getTableTable(table *rt.Table, key string) *rt.Table {
	if t, ok := table.Get(rt.StringValue(key)).TryTable(); ok {
		return t
	}
	return nil
}

// getTableKeys reads a key or a list of keys. Numbers are keysyms.
func getTableKeys(table *rt.Table, key string) ([]string, error) {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil, nil
	}
	if t, ok := val.TryTable(); ok {
		var names []string
		for _, v := range arrayValues(t) {
			name, ok := keyName(v)
			if !ok {
				return nil, fmt.Errorf("key must be a string or integer")
			}
			names = append(names, name)
		}
		return names, nil
	}
	name, ok := keyName(val)
	if !ok {
		return nil, fmt.Errorf("key must be a string or integer")
	}
	return []string{name}, nil
}

func keyName(v rt.Value) (string, bool) {
	if s, ok := v.TryString(); ok {
		return s, true
	}
	if n, ok := v.TryInt(); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

// arrayValues returns t[1], t[2], ... up to the first nil.
func arrayValues(t *rt.Table) []rt.Value {
	var vals []rt.Value
	for i := int64(1); ; i++ {
		v := t.Get(rt.IntValue(i))
		if v == rt.NilValue {
			return vals
		}
		vals = append(vals, v)
	}
}
