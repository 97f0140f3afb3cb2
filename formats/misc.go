package formats

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/signadot/jsonschema/ir"
)

// checkUUID accepts only the hyphenated RFC 4122 form.
func checkUUID(s string) error {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return fmt.Errorf("want 8-4-4-4-12 hex digits")
	}
	_, err := uuid.Parse(s)
	return err
}

func checkJSONPointer(s string) error {
	_, err := ir.ParsePointer(s)
	return err
}

// checkRelativeJSONPointer accepts a non negative integer followed by
// either '#' or a JSON pointer.
func checkRelativeJSONPointer(s string) error {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return fmt.Errorf("missing prefix")
	}
	if i > 1 && s[0] == '0' {
		return fmt.Errorf("leading zero in prefix")
	}
	rest := s[i:]
	if rest == "#" {
		return nil
	}
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return fmt.Errorf("bad pointer %q", rest)
	}
	return checkJSONPointer(rest)
}

func checkRegex(s string) error {
	_, err := regexp.Compile(s)
	return err
}
