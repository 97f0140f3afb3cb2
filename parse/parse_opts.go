package parse

import "github.com/signadot/jsonschema/format"

type parseOpts struct {
	format     format.Format
	filename   string
	allowEmpty bool
}

type ParseOption func(*parseOpts)

func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseFilename records the file name for error messages.
func ParseFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}

// AllowEmpty makes empty input parse as null instead of failing.
func AllowEmpty(v bool) ParseOption {
	return func(o *parseOpts) { o.allowEmpty = v }
}
