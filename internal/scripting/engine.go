package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hoverpick/hoverpick/internal/core/event"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Bindings are the Go callbacks exposed to scripts.
type Bindings struct {
	// SetActiveCamera selects a camera by name; false if no such camera.
	SetActiveCamera func(name string) bool
	// ClearActiveCamera drops the active reference.
	ClearActiveCamera func()
}

// Engine wraps a single gopher-lua VM for hover hooks.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir,
// in file name order. A missing directory yields an engine with no hooks.
func NewEngine(scriptsDir string, b Bindings, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	e.bind(b)

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// DoString runs a chunk of Lua, used for inline hooks and tests.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

func (e *Engine) bind(b Bindings) {
	e.vm.SetGlobal("log_info", e.vm.NewFunction(func(L *lua.LState) int {
		e.log.Info("lua", zap.String("msg", L.CheckString(1)))
		return 0
	}))
	e.vm.SetGlobal("set_active_camera", e.vm.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		ok := b.SetActiveCamera != nil && b.SetActiveCamera(name)
		L.Push(lua.LBool(ok))
		return 1
	}))
	e.vm.SetGlobal("clear_active_camera", e.vm.NewFunction(func(L *lua.LState) int {
		if b.ClearActiveCamera != nil {
			b.ClearActiveCamera()
		}
		return 0
	}))
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasHook reports whether a global function of that name is defined.
func (e *Engine) HasHook(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// OnHoverChanged calls on_hover_changed(prev, next) if the scripts define it.
// Script errors are logged and swallowed; a broken hook never stops the frame.
func (e *Engine) OnHoverChanged(prev, next string) {
	fn, ok := e.vm.GetGlobal("on_hover_changed").(*lua.LFunction)
	if !ok {
		return
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LString(prev), lua.LString(next)); err != nil {
		e.log.Error("lua on_hover_changed error", zap.Error(err))
	}
}

// Attach routes HoverChanged events to on_hover_changed.
func (e *Engine) Attach(bus *event.Bus) {
	event.Subscribe(bus, func(ev event.HoverChanged) {
		e.OnHoverChanged(ev.Prev, ev.Next)
	})
}

func (e *Engine) Close() {
	e.vm.Close()
}
