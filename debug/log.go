package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/signadot/jsonschema/encode"
	"github.com/signadot/jsonschema/ir"
)

var out io.Writer = os.Stderr

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			args[i] = encode.MustString(x, encode.Indent(0))
		case ir.Pointer:
			args[i] = fmt.Sprintf("%q", x.String())
		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
