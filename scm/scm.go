/*
Copyright (C) 2023-2026  Carl-Philip Hänsch
Copyright (C) 2013  Pieter Kelchtermans (originally licensed unter WTFPL 2.0)

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
/*
 * A minimal Scheme interpreter, as seen in lis.py and SICP
 * http://norvig.com/lispy.html
 * http://mitpress.mit.edu/sicp/full-text/sicp/book/node77.html
 *
 * Pieter Kelchtermans 2013
 * LICENSE: WTFPL 2.0
 */
package scm

import (
	"sort"
	"sync"

	"github.com/google/btree"
)

func init() {
	init_alu()
	init_list()
	init_debug()
}

/*
 Eval / Apply
*/

// Eval evaluates one expression against en. Bindings created by define and
// set! are visible to every later call with the same Env.
func Eval(expression Scmer, en *Env) (Scmer, error) {
	switch expression.GetTag() {
	case tagNil, tagInt, tagString, tagBool:
		return expression, nil
	case tagAtom:
		name := expression.Text()
		if v, ok := en.Lookup(name); ok {
			return v, nil
		}
		return NewNil(), NewUnboundVar("Getting an unbound variable", name)
	case tagPair:
		// handled below
	default:
		return NewNil(), NewBadSpecialForm("Unrecognized special form", expression)
	}

	list := expression.Slice()
	head := list[0]
	if !head.IsAtom() {
		return NewNil(), NewBadSpecialForm("Unrecognized special form", expression)
	}
	switch head.Text() {
	case "quote":
		if len(list) != 2 {
			return NewNil(), NewBadSpecialForm("quote expects exactly one argument", expression)
		}
		return list[1], nil
	case "if":
		if len(list) != 4 {
			return NewNil(), NewBadSpecialForm("if expects condition, consequence and alternative", expression)
		}
		cond, err := Eval(list[1], en)
		if err != nil {
			return NewNil(), err
		}
		b, err := cond.AsBool()
		if err != nil {
			return NewNil(), err
		}
		if b {
			return Eval(list[2], en)
		}
		return Eval(list[3], en)
	case "define":
		if len(list) != 3 || !list[1].IsAtom() {
			return NewNil(), NewBadSpecialForm("define expects a name and a value", expression)
		}
		value, err := Eval(list[2], en)
		if err != nil {
			return NewNil(), err
		}
		en.Define(list[1].Text(), value)
		return value, nil
	case "set!":
		if len(list) != 3 || !list[1].IsAtom() {
			return NewNil(), NewBadSpecialForm("set! expects a name and a value", expression)
		}
		name := list[1].Text()
		if en.FindWrite(name) == nil {
			return NewNil(), NewUnboundVar("Setting an unbound variable", name)
		}
		value, err := Eval(list[2], en)
		if err != nil {
			return NewNil(), err
		}
		if !en.Set(name, value) {
			return NewNil(), NewUnboundVar("Setting an unbound variable", name)
		}
		return value, nil
	}

	// apply: arguments are evaluated left to right before the primitive runs
	args := make([]Scmer, len(list)-1)
	for i, x := range list[1:] {
		v, err := Eval(x, en)
		if err != nil {
			return NewNil(), err
		}
		args[i] = v
	}
	return Apply(head.Text(), args...)
}

// EvalString parses one unit of source text and evaluates it.
func EvalString(source, text string, en *Env) (Scmer, error) {
	code, err := Parse(source, text)
	if err != nil {
		return NewNil(), err
	}
	return Eval(code, en)
}

/*
 Environments
*/

type binding struct {
	name  string
	value Scmer
}

func bindingLess(a, b binding) bool { return a.name < b.name }

// Env is one frame of a scope chain. Lookup searches outward, define always
// writes the innermost frame, set! writes the frame that owns the binding.
// A chain of one frame is a flat global namespace.
//
// Env is not safe for concurrent use; see Session.
type Env struct {
	Vars  *btree.BTreeG[binding]
	Outer *Env
}

func NewEnv(outer *Env) *Env {
	return &Env{btree.NewG[binding](8, bindingLess), outer}
}

func (e *Env) get(name string) (Scmer, bool) {
	if e.Vars == nil {
		return NewNil(), false
	}
	b, ok := e.Vars.Get(binding{name: name})
	return b.value, ok
}

// FindRead returns the innermost frame that binds name, or nil.
func (e *Env) FindRead(name string) *Env {
	for en := e; en != nil; en = en.Outer {
		if _, ok := en.get(name); ok {
			return en
		}
	}
	return nil
}

// FindWrite returns the frame set! has to modify; without scopes that
// capture frames this is the same as FindRead.
func (e *Env) FindWrite(name string) *Env {
	return e.FindRead(name)
}

func (e *Env) Lookup(name string) (Scmer, bool) {
	if en := e.FindRead(name); en != nil {
		return en.get(name)
	}
	return NewNil(), false
}

// Define inserts or overwrites name in this frame.
func (e *Env) Define(name string, value Scmer) {
	if e.Vars == nil {
		e.Vars = btree.NewG[binding](8, bindingLess)
	}
	e.Vars.ReplaceOrInsert(binding{name, value})
}

// Set overwrites an existing binding and reports false if there is none.
func (e *Env) Set(name string, value Scmer) bool {
	en := e.FindWrite(name)
	if en == nil {
		return false
	}
	en.Vars.ReplaceOrInsert(binding{name, value})
	return true
}

// Names lists every name visible from this frame in sorted order.
func (e *Env) Names() []string {
	seen := make(map[string]bool)
	var result []string
	for en := e; en != nil; en = en.Outer {
		if en.Vars == nil {
			continue
		}
		en.Vars.Ascend(func(b binding) bool {
			if !seen[b.name] {
				seen[b.name] = true
				result = append(result, b.name)
			}
			return true
		})
	}
	sort.Strings(result)
	return result
}

var snapshotMu sync.Mutex

// Snapshot returns a private copy of this frame; outer frames stay shared.
// Writes to either side are not seen by the other. Clone is not safe against
// a concurrent Define or Set on e; frames owned by a Session are snapshotted
// through Session.Snapshot, which holds the session lock.
func (e *Env) Snapshot() *Env {
	snapshotMu.Lock()
	defer snapshotMu.Unlock()
	if e.Vars == nil {
		return &Env{nil, e.Outer}
	}
	return &Env{e.Vars.Clone(), e.Outer}
}
