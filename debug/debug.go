package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Registry bool
	Eval     bool
	Ref      bool
	Dialect  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Registry = boolEnv("JSONSCHEMA_DEBUG_REGISTRY")
	d.Eval = boolEnv("JSONSCHEMA_DEBUG_EVAL")
	d.Ref = boolEnv("JSONSCHEMA_DEBUG_REF")
	d.Dialect = boolEnv("JSONSCHEMA_DEBUG_DIALECT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Registry() bool {
	return d.Registry
}
func Eval() bool {
	return d.Eval
}
func Ref() bool {
	return d.Ref
}
func Dialect() bool {
	return d.Dialect
}
