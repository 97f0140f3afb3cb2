package formats

import (
	"github.com/signadot/jsonschema/ir"
	"github.com/signadot/jsonschema/schema"
)

// stringFormat adapts a string predicate to schema.Format.
func stringFormat(f func(string) error) schema.Format {
	return schema.FormatFunc(func(n *ir.Node) (bool, string) {
		if n.Type != ir.StringType {
			return true, ""
		}
		if err := f(n.String); err != nil {
			return false, err.Error()
		}
		return true, ""
	})
}

var builtin = map[string]func(string) error{
	"date-time":             checkDateTime,
	"date":                  checkDate,
	"time":                  checkTime,
	"duration":              checkDuration,
	"email":                 checkEmail,
	"idn-email":             checkIDNEmail,
	"hostname":              checkHostname,
	"idn-hostname":          checkIDNHostname,
	"ipv4":                  checkIPv4,
	"ipv6":                  checkIPv6,
	"uri":                   checkURI,
	"uri-reference":         checkURIReference,
	"iri":                   checkIRI,
	"iri-reference":         checkIRIReference,
	"uri-template":          checkURITemplate,
	"uuid":                  checkUUID,
	"json-pointer":          checkJSONPointer,
	"relative-json-pointer": checkRelativeJSONPointer,
	"regex":                 checkRegex,
}

// Register adds the built in formats to reg.
func Register(reg *schema.FormatRegistry) {
	for name, f := range builtin {
		reg.Register(name, stringFormat(f))
	}
}

// Default returns a registry holding the built in formats.
func Default() *schema.FormatRegistry {
	reg := schema.NewFormatRegistry()
	Register(reg)
	return reg
}

// Names returns the names of the built in formats.
func Names() []string {
	return Default().Names()
}
