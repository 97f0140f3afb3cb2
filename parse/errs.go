package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse         = errors.New("parse error")
	ErrKeyType       = fmt.Errorf("%w: object key must be a scalar", ErrParse)
	ErrTrailingInput = fmt.Errorf("%w: trailing input after document", ErrParse)
)
