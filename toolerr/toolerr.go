// Package toolerr defines the fatal error taxonomy shared by the front-end,
// encoder and emulator. Every error produced by the toolchain is one of the
// five kinds below; none of them is recoverable locally.
package toolerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which stage of the toolchain raised an error and why.
type Kind int

const (
	// SourceIO means the source file could not be read.
	SourceIO Kind = iota
	// Syntax means a line could not be tokenized or matched no known
	// instruction shape.
	Syntax
	// Range means a register index, immediate or rotate amount did not fit
	// its declared width.
	Range
	// Resolution means a referenced label or data identifier has no
	// binding.
	Resolution
	// Decode means the top nibble of a fetched word is not a recognized
	// opcode family.
	Decode
)

func (k Kind) String() string {
	switch k {
	case SourceIO:
		return "source I/O error"
	case Syntax:
		return "syntax error"
	case Range:
		return "range error"
	case Resolution:
		return "resolution error"
	case Decode:
		return "decode error"
	default:
		return "unknown error"
	}
}

// Error is a fatal diagnostic naming its kind, the offending location (a
// source line or a PC) and the offending token or word.
type Error struct {
	Kind    Kind
	Where   string // e.g. "line 3" or "pc=12"
	Token   string // offending token or hex word, may be empty
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Where, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s (%q)", e.Kind, e.Where, e.Message, e.Token)
}

// Unwrap exposes any wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// New builds a toolchain error of the given kind.
func New(kind Kind, where, token, message string) error {
	return &Error{Kind: kind, Where: where, Token: token, Message: message}
}

// Wrap builds a toolchain error that wraps an underlying cause (e.g. an
// os.Open failure for a SourceIO error).
func Wrap(kind Kind, where, token string, cause error) error {
	return &Error{Kind: kind, Where: where, Token: token, Message: cause.Error(), cause: errors.WithStack(cause)}
}

// Is reports whether err is a toolchain error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
