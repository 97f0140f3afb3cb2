package keyword

import (
	"fmt"
	"regexp"
	"sync"
)

var patterns sync.Map

// compilePattern compiles and caches an ECMA-262 style pattern. Patterns
// are unanchored. Constructs the RE2 engine lacks, such as lookaround and
// backreferences, are reported as errors.
func compilePattern(p string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(p); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
	}
	patterns.Store(p, re)
	return re, nil
}
