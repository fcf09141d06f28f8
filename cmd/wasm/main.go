//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/pathguide/internal/codeview"
	"github.com/inamate/pathguide/internal/engine"
	"github.com/inamate/pathguide/internal/sketch"
)

var eng *engine.Engine

func main() {
	var err error
	eng, err = engine.New(sketch.Config{
		Highlighter: codeview.NewChroma(codeview.DefaultLanguage, "github"),
	})
	if err != nil {
		js.Global().Get("console").Call("error", "pathguide: "+err.Error())
		return
	}

	// Create the guide API object
	pathguide := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	pathguide.Set("show", js.FuncOf(show))
	pathguide.Set("reset", js.FuncOf(reset))
	pathguide.Set("key", js.FuncOf(key))
	pathguide.Set("pointerMove", js.FuncOf(pointerMove))
	pathguide.Set("pointerDown", js.FuncOf(pointerDown))
	pathguide.Set("pointerDrag", js.FuncOf(pointerDrag))
	pathguide.Set("pointerUp", js.FuncOf(pointerUp))
	pathguide.Set("setSetting", js.FuncOf(setSetting))

	// --- Queries (frontend ← engine) ---
	pathguide.Set("render", js.FuncOf(render))
	pathguide.Set("frame", js.FuncOf(frame))
	pathguide.Set("code", js.FuncOf(code))
	pathguide.Set("codeHTML", js.FuncOf(codeHTML))
	pathguide.Set("settings", js.FuncOf(settings))
	pathguide.Set("links", js.FuncOf(links))

	// Register on global scope
	js.Global().Set("pathguide", pathguide)

	// Signal that WASM is ready
	js.Global().Set("pathguideWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func point(args []js.Value) (float64, float64, bool) {
	if len(args) < 2 {
		return 0, 0, false
	}
	return args[0].Float(), args[1].Float(), true
}

// --- Command Handlers ---

func show(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing sketch name"})
	}
	return result(eng.Show(args[0].String()))
}

func reset(this js.Value, args []js.Value) interface{} {
	return result(eng.Reset())
}

func key(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	used, err := eng.Key(args[0].String())
	if err != nil {
		return result(err)
	}
	return js.ValueOf(used)
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.PointerMove(x, y))
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return js.ValueOf(false)
	}
	return js.ValueOf(eng.PointerDown(x, y))
}

func pointerDrag(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return js.ValueOf(false)
	}
	moved, err := eng.PointerDrag(x, y)
	if err != nil {
		return result(err)
	}
	return js.ValueOf(moved)
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return nil
	}
	eng.PointerUp(x, y)
	return nil
}

func setSetting(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing setting name or value"})
	}
	var value any
	switch v := args[1]; v.Type() {
	case js.TypeBoolean:
		value = v.Bool()
	case js.TypeNumber:
		value = v.Float()
	default:
		value = v.String()
	}
	return result(eng.SetSetting(args[0].String(), value))
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func frame(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Frame())
}

func code(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Code())
}

func codeHTML(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CodeHTML())
}

func settings(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Settings())
}

func links(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Links())
}
