// Package liquid implements a compiler and renderer for the Liquid
// template language: variable substitutions {{ ... }} and control tags
// {% ... %} embedded in otherwise-literal text.
package liquid

import (
	"fmt"

	"github.com/juju/errors"
)

// Kind classifies the typed errors the engine can raise. Lexer failures
// degrade silently; expression-evaluation failures and unbalanced scopes are
// recorded as soft errors (see Context.ParseErrors) and carry a Kind just
// like the errors that propagate to the caller.
type Kind int

const (
	// MalformedStatement: tag arguments do not match its declared grammar.
	MalformedStatement Kind = iota
	// MissingArtifact: parse succeeded structurally but a required binding was absent.
	MissingArtifact
	// InvalidInvocation: a runtime semantic violation, e.g. an out-of-range limit.
	InvalidInvocation
	// MalformedExpression: an expression-level issue (stray boolean connector, etc).
	MalformedExpression
	// UnknownTag: a tag keyword with no registered parser.
	UnknownTag
	// UnknownFilter: a filter identifier with no registered function.
	UnknownFilter
	// UnknownOperator: an operator identifier with no registered implementation.
	UnknownOperator
	// UnbalancedScopes: EOF reached while a non-root scope was still open.
	UnbalancedScopes
)

func (k Kind) String() string {
	switch k {
	case MalformedStatement:
		return "malformed-statement"
	case MissingArtifact:
		return "missing-artifact"
	case InvalidInvocation:
		return "invalid-invocation"
	case MalformedExpression:
		return "malformed-expression"
	case UnknownTag:
		return "unknown-tag"
	case UnknownFilter:
		return "unknown-filter"
	case UnknownOperator:
		return "unknown-operator"
	case UnbalancedScopes:
		return "unbalanced-scopes"
	default:
		return "unknown"
	}
}

// Error is returned for every error that propagates out of the lexer, the
// parser, or the tag runtime. Line/Column are 1-based and refer to the
// template source; they are zero when the error has no specific location.
// An UnbalancedScopes error raised at EOF carries the last token's line and
// a zero Column.
type Error struct {
	Kind     Kind
	Filename string
	Line     int
	Column   int
	Sender   string
	cause    error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("[%s", e.Kind)
	if e.Sender != "" {
		s += " in " + e.Sender
	}
	if e.Filename != "" {
		s += " " + e.Filename
	}
	if e.Line > 0 {
		s += fmt.Sprintf(" | line %d col %d", e.Line, e.Column)
	}
	s += "] "
	if e.cause != nil {
		s += e.cause.Error()
	}
	return s
}

// Unwrap exposes the underlying cause so errors.Is / errors.As keep working
// against callers that compare against a sentinel or a juju/errors-annotated value.
func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, sender string, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Sender: sender,
		cause:  errors.Annotatef(fmt.Errorf(format, args...), "liquid"),
	}
}

func newErrorAt(kind Kind, sender string, filename string, line, col int, format string, args ...any) *Error {
	e := newError(kind, sender, format, args...)
	e.Filename = filename
	e.Line = line
	e.Column = col
	return e
}

// atToken annotates an existing *Error with the position of tok, if the
// error doesn't already carry a more specific position.
func (e *Error) atToken(tok *Token) *Error {
	if e.Line == 0 && tok != nil {
		e.Filename = tok.Filename
		e.Line = tok.Line
		e.Column = tok.Col
	}
	return e
}
