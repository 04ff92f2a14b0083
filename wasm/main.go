//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/mjibson/boxfmt"
)

func main() {
	js.Global().Set("FmtSQL", FmtSQL())
	select {}
}

func FmtSQL() js.Func {
	jsonFunc := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) != 2 {
			return "Invalid no of arguments passed"
		}
		input := args[0].String()
		width := args[1].Int()

		opts := boxfmt.DefaultOptions()
		opts.Pretty.Margin = width
		if err := opts.Pretty.Validate(); err != nil {
			return err.Error()
		}
		pretty, err := boxfmt.FmtSQL(opts, []string{input})
		if err != nil {
			return err.Error()
		}
		return pretty
	})
	return jsonFunc
}
