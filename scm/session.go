/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

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

import "io"
import "sync"
import "github.com/google/uuid"
import "github.com/jtolds/gls"

/* threadsafe evaluation context: one per prompt, script run or connection */

type Session struct {
	ID    uuid.UUID
	Env   *Env
	Debug io.Writer // nil: stdout
	mu    sync.Mutex
}

// NewSession opens a fresh top-level frame on top of outer (which may be nil).
func NewSession(outer *Env) *Session {
	return &Session{
		ID:  uuid.New(),
		Env: NewEnv(outer),
	}
}

// Snapshot copies the session frame for a new session. It waits for a
// running evaluation, so the copy never sees half of a request.
func (s *Session) Snapshot() *Env {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Env.Snapshot()
}

// Eval parses one expression and evaluates it. Calls on the same session are
// serialized so define and set! of one request are seen by the next.
func (s *Session) Eval(source, text string) (Scmer, error) {
	code, err := Parse(source, text)
	if err != nil {
		return NewNil(), err
	}
	return s.EvalExpr(code)
}

// EvalAll evaluates every expression of a script and returns the last value.
// Evaluation stops at the first error.
func (s *Session) EvalAll(source, text string) (Scmer, error) {
	codes, err := ParseAll(source, text)
	if err != nil {
		return NewNil(), err
	}
	result := NewNil()
	for _, code := range codes {
		result, err = s.EvalExpr(code)
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *Session) EvalExpr(code Scmer) (result Scmer, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run := func() {
		result, err = Eval(code, s.Env)
	}
	traced := func() {
		if t := currentTrace(); t != nil {
			t.Duration(traceName(code), "eval,"+s.ID.String(), run)
		} else {
			run()
		}
	}
	if s.Debug != nil {
		hostContext.SetValues(gls.Values{ctxDebugWriter: s.Debug}, traced)
	} else {
		traced()
	}
	return
}

func traceName(code Scmer) string {
	s := String(code)
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return s
}
