package schema

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrRefResolution     = errors.New("reference resolution failed")
	ErrUnknownVocabulary = errors.New("unknown required vocabulary")
	ErrUnknownDialect    = errors.New("unknown dialect")
	ErrInfiniteRecursion = errors.New("infinite recursion")
	ErrKeywordCycle      = errors.New("keyword dependency cycle")
)

// SchemaError reports a keyword whose value has the wrong shape. It aborts
// evaluation.
type SchemaError struct {
	Keyword  string
	Location string
	Msg      string
}

func (e *SchemaError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidSchema, e.Keyword, e.Msg)
	}
	return fmt.Sprintf("%s: %s at %s: %s", ErrInvalidSchema, e.Keyword, e.Location, e.Msg)
}

func (e *SchemaError) Unwrap() error { return ErrInvalidSchema }

type RefKind int

const (
	RefStatic RefKind = iota
	RefDynamic
	RefRecursive
	RefAnchor
)

func (k RefKind) String() string {
	switch k {
	case RefStatic:
		return "$ref"
	case RefDynamic:
		return "$dynamicRef"
	case RefRecursive:
		return "$recursiveRef"
	case RefAnchor:
		return "anchor"
	default:
		return fmt.Sprintf("RefKind(%d)", int(k))
	}
}

// RefResolutionError reports a reference or anchor that could not be
// resolved against the registry.
type RefResolutionError struct {
	Kind RefKind
	Ref  string
	Base string
	Err  error
}

func (e *RefResolutionError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", ErrRefResolution, e.Kind, e.Ref)
	if e.Base != "" {
		msg += fmt.Sprintf(" (base %s)", e.Base)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RefResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRefResolution}
	}
	return []error{ErrRefResolution, e.Err}
}
