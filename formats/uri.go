package formats

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

func checkURI(s string) error {
	return checkReference(s, true, false)
}

func checkURIReference(s string) error {
	return checkReference(s, false, false)
}

func checkIRI(s string) error {
	return checkReference(s, true, true)
}

func checkIRIReference(s string) error {
	return checkReference(s, false, true)
}

func checkReference(s string, absolute, intl bool) error {
	for i, r := range s {
		switch {
		case r == utf8.RuneError:
			return fmt.Errorf("invalid UTF-8 at %d", i)
		case r >= 0x80:
			if !intl {
				return fmt.Errorf("non ASCII character %q", r)
			}
		case r <= ' ' || strings.ContainsRune(`"<>\^`+"`{|}", r):
			return fmt.Errorf("invalid character %q", r)
		}
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if absolute && u.Scheme == "" {
		return fmt.Errorf("missing scheme")
	}
	if u.Host != "" {
		if h := u.Hostname(); strings.Contains(h, ":") && !strings.HasPrefix(u.Host, "[") {
			return fmt.Errorf("unbracketed IPv6 host %q", h)
		}
	}
	return nil
}

// checkURITemplate checks RFC 6570 expression syntax: balanced braces,
// an optional operator and comma separated variable specs.
func checkURITemplate(s string) error {
	for {
		open := strings.IndexAny(s, "{}")
		if open < 0 {
			return nil
		}
		if s[open] == '}' {
			return fmt.Errorf("unmatched '}'")
		}
		s = s[open+1:]
		end := strings.IndexAny(s, "{}")
		if end < 0 || s[end] == '{' {
			return fmt.Errorf("unterminated expression")
		}
		if err := checkTemplateExpr(s[:end]); err != nil {
			return err
		}
		s = s[end+1:]
	}
}

func checkTemplateExpr(e string) error {
	if e != "" && strings.ContainsRune("+#./;?&=,!@|", rune(e[0])) {
		e = e[1:]
	}
	if e == "" {
		return fmt.Errorf("empty expression")
	}
	for _, spec := range strings.Split(e, ",") {
		name, mod := spec, ""
		if i := strings.IndexAny(spec, ":*"); i >= 0 {
			name, mod = spec[:i], spec[i:]
		}
		if name == "" {
			return fmt.Errorf("empty variable name")
		}
		for i := 0; i < len(name); i++ {
			c := name[i]
			if !(c == '_' || c == '.' || c == '%' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
				return fmt.Errorf("invalid variable name %q", name)
			}
		}
		switch {
		case mod == "", mod == "*":
		case mod[0] == ':' && allDigits(mod[1:]) && len(mod) <= 5 && mod[1] != '0':
		default:
			return fmt.Errorf("invalid modifier %q", mod)
		}
	}
	return nil
}
