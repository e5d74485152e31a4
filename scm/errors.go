/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import (
	"errors"
	"fmt"
	"os"
)

// ErrorKind is the closed set of failures the parser and evaluator report.
type ErrorKind uint8

const (
	TypeMismatch ErrorKind = iota
	BadSpecialForm
	ParseError
	NotFunction
	UnboundVar
	NumArgs
	Default
)

var errorKindNames = [...]string{
	TypeMismatch:   "type mismatch",
	BadSpecialForm: "bad special form",
	ParseError:     "parse error",
	NotFunction:    "not a function",
	UnboundVar:     "unbound variable",
	NumArgs:        "wrong number of arguments",
	Default:        "error",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("error kind %d", k)
}

// Error is the value every failing core operation returns.
// Which fields are filled depends on Kind:
//
//	TypeMismatch    Context (expected type), Value
//	BadSpecialForm  Context, Value
//	ParseError      Context (diagnostic)
//	NotFunction     Name, Context (message)
//	UnboundVar      Context, Name
//	NumArgs         Expected, Value (the argument list)
//	Default         Context (message)
type Error struct {
	Kind     ErrorKind
	Context  string
	Name     string
	Expected int
	Value    Scmer
}

func (e *Error) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return "Invalid type: expected " + e.Context + ", found " + String(e.Value)
	case BadSpecialForm:
		return e.Context + ": " + String(e.Value)
	case ParseError:
		return "Parse error at " + e.Context
	case NotFunction:
		return e.Context + ": " + e.Name
	case UnboundVar:
		return e.Context + ": " + e.Name
	case NumArgs:
		return fmt.Sprintf("Expected %d args; found values %s", e.Expected, unwordsList(e.Value))
	default:
		return e.Context
	}
}

// unwordsList prints the elements of a list without the surrounding parens.
func unwordsList(v Scmer) string {
	s := String(v)
	if v.IsPair() {
		return s[1 : len(s)-1]
	}
	if v.IsNil() {
		return ""
	}
	return s
}

func NewTypeMismatch(expected string, found Scmer) error {
	return &Error{Kind: TypeMismatch, Context: expected, Value: found}
}

func NewBadSpecialForm(context string, form Scmer) error {
	return &Error{Kind: BadSpecialForm, Context: context, Value: form}
}

func NewParseError(message string) error {
	return &Error{Kind: ParseError, Context: message}
}

func NewNotFunction(name, message string) error {
	return &Error{Kind: NotFunction, Name: name, Context: message}
}

func NewUnboundVar(context, name string) error {
	return &Error{Kind: UnboundVar, Context: context, Name: name}
}

func NewNumArgs(expected int, args Scmer) error {
	return &Error{Kind: NumArgs, Expected: expected, Value: args}
}

func NewDefault(message string) error {
	return &Error{Kind: Default, Context: message}
}

// KindOf extracts the kind of a core error. Foreign errors are reported as
// Default with ok == false.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Default, false
}

// IsKind is shorthand for hosts that only branch on the kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// PrintError reports a host-level failure on stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, "error:", msg)
}
