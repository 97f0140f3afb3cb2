package formats

import (
	"fmt"
	"net/mail"
	"net/netip"
	"strings"

	"golang.org/x/net/idna"
)

func checkIPv4(s string) error {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return err
	}
	if !a.Is4() {
		return fmt.Errorf("not an IPv4 address")
	}
	return nil
}

func checkIPv6(s string) error {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return err
	}
	if !a.Is6() || a.Zone() != "" {
		return fmt.Errorf("not an IPv6 address")
	}
	return nil
}

// checkHostname follows RFC 1123: dot separated labels of letters, digits
// and hyphens.
func checkHostname(s string) error {
	s = strings.TrimSuffix(s, ".")
	if s == "" || len(s) > 253 {
		return fmt.Errorf("hostname length %d out of range", len(s))
	}
	for _, label := range strings.Split(s, ".") {
		if err := checkLabel(label); err != nil {
			return err
		}
	}
	return nil
}

func checkLabel(l string) error {
	if l == "" || len(l) > 63 {
		return fmt.Errorf("label %q length out of range", l)
	}
	if l[0] == '-' || l[len(l)-1] == '-' {
		return fmt.Errorf("label %q starts or ends with '-'", l)
	}
	for i := 0; i < len(l); i++ {
		c := l[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return fmt.Errorf("label %q has invalid character %q", l, c)
		}
	}
	return nil
}

var idnProfile = idna.New(
	idna.MapForLookup(),
	idna.BidiRule(),
	idna.ValidateLabels(true),
	idna.StrictDomainName(true),
	idna.CheckHyphens(true),
	idna.CheckJoiners(true),
)

func checkIDNHostname(s string) error {
	a, err := idnProfile.ToASCII(s)
	if err != nil {
		return err
	}
	return checkHostname(a)
}

func checkEmail(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return fmt.Errorf("non ASCII character in address")
		}
	}
	return checkMailbox(s, checkHostname)
}

func checkIDNEmail(s string) error {
	return checkMailbox(s, checkIDNHostname)
}

// checkMailbox accepts a bare RFC 5321 mailbox. The domain is a hostname
// or a bracketed address literal.
func checkMailbox(s string, host func(string) error) error {
	i := strings.LastIndexByte(s, '@')
	if i <= 0 || i == len(s)-1 {
		return fmt.Errorf("want local@domain")
	}
	local, domain := s[:i], s[i+1:]
	if len(local) > 64 {
		return fmt.Errorf("local part too long")
	}
	if !strings.HasPrefix(local, `"`) {
		if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
			return fmt.Errorf("misplaced '.' in local part")
		}
	}
	if _, err := mail.ParseAddress("<" + local + "@example.com>"); err != nil {
		return err
	}
	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		lit := domain[1 : len(domain)-1]
		if v6, ok := strings.CutPrefix(lit, "IPv6:"); ok {
			return checkIPv6(v6)
		}
		return checkIPv4(lit)
	}
	return host(domain)
}
