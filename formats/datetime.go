package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errLeapSecond = errors.New("leap second must be at 23:59:60 UTC")

func checkDate(s string) error {
	if len(s) != len("2006-01-02") {
		return fmt.Errorf("want YYYY-MM-DD")
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return err
	}
	return nil
}

func checkDateTime(s string) error {
	i := strings.IndexAny(s, "Tt")
	if i < 0 {
		return fmt.Errorf("missing 'T' separator")
	}
	if err := checkDate(s[:i]); err != nil {
		return err
	}
	return checkTime(s[i+1:])
}

func twoDigits(s string, max int) (int, error) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("bad field %q", s)
	}
	n, _ := strconv.Atoi(s)
	if n > max {
		return 0, fmt.Errorf("field %q out of range", s)
	}
	return n, nil
}

// checkTime accepts an RFC 3339 full-time. A leap second is valid only
// when it falls on 23:59:60 UTC.
func checkTime(s string) error {
	if len(s) < len("15:04:05Z") || s[2] != ':' || s[5] != ':' {
		return fmt.Errorf("want HH:MM:SS with an offset")
	}
	h, err := twoDigits(s[0:2], 23)
	if err != nil {
		return err
	}
	m, err := twoDigits(s[3:5], 59)
	if err != nil {
		return err
	}
	sec, err := twoDigits(s[6:8], 60)
	if err != nil {
		return err
	}
	rest := s[8:]
	if rest != "" && rest[0] == '.' {
		j := 1
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == 1 {
			return fmt.Errorf("empty fraction")
		}
		rest = rest[j:]
	}
	var offset int
	switch {
	case rest == "Z" || rest == "z":
	case len(rest) == 6 && (rest[0] == '+' || rest[0] == '-') && rest[3] == ':':
		oh, err := twoDigits(rest[1:3], 23)
		if err != nil {
			return err
		}
		om, err := twoDigits(rest[4:6], 59)
		if err != nil {
			return err
		}
		offset = oh*60 + om
		if rest[0] == '-' {
			offset = -offset
		}
	default:
		return fmt.Errorf("bad offset %q", rest)
	}
	if sec == 60 {
		utc := ((h*60+m-offset)%(24*60) + 24*60) % (24 * 60)
		if utc != 23*60+59 {
			return errLeapSecond
		}
	}
	return nil
}

// checkDuration accepts an ISO 8601 duration as profiled by RFC 3339
// appendix A.
func checkDuration(s string) error {
	if len(s) < 2 || s[0] != 'P' {
		return fmt.Errorf("must start with 'P' and have a component")
	}
	body := s[1:]
	if strings.HasSuffix(body, "W") {
		if !allDigits(body[:len(body)-1]) {
			return fmt.Errorf("bad week duration")
		}
		return nil
	}
	date, tm, hasT := strings.Cut(body, "T")
	if hasT && tm == "" {
		return fmt.Errorf("empty time part")
	}
	n1, err := components(date, "YMD")
	if err != nil {
		return err
	}
	n2, err := components(tm, "HMS")
	if err != nil {
		return err
	}
	if n1+n2 == 0 {
		return fmt.Errorf("no components")
	}
	return nil
}

// components parses runs of digits each followed by a designator from
// units, in order. Units may be skipped but not repeated or reordered.
func components(s, units string) (int, error) {
	n := 0
	for s != "" {
		j := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == 0 || j == len(s) {
			return 0, fmt.Errorf("bad component in %q", s)
		}
		k := strings.IndexByte(units, s[j])
		if k < 0 {
			return 0, fmt.Errorf("unexpected designator %q", s[j])
		}
		units = units[k+1:]
		s = s[j+1:]
		n++
	}
	return n, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
