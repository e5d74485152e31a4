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
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_KeepsBindings(t *testing.T) {
	s := NewSession(nil)
	_, err := s.Eval("test", "(define x 5)")
	require.NoError(t, err)
	v, err := s.Eval("test", "(+ x 1)")
	require.NoError(t, err)
	assert.Equal(t, "6", String(v))
	assert.NotEqual(t, NewSession(nil).ID, s.ID)
}

func TestSession_SeesOuterFrame(t *testing.T) {
	global := NewEnv(nil)
	global.Define("g", NewInt(1))
	s := NewSession(global)
	_, err := s.Eval("test", "(define local 2)")
	require.NoError(t, err)
	v, err := s.Eval("test", "(+ g local)")
	require.NoError(t, err)
	assert.Equal(t, "3", String(v))
	_, ok := global.Lookup("local")
	assert.False(t, ok, "define stays in the session frame")
}

func TestSession_EvalAll(t *testing.T) {
	s := NewSession(nil)
	v, err := s.EvalAll("script", "(define a 2)\n(define b 3)\n(* a b)")
	require.NoError(t, err)
	assert.Equal(t, "6", String(v))

	v, err = s.EvalAll("script", "")
	require.NoError(t, err)
	assert.True(t, v.IsNil())

	// everything before the failing expression is committed
	_, err = s.EvalAll("script", "(define c 1) (car c) (define d 2)")
	assert.True(t, IsKind(err, TypeMismatch))
	_, err = s.Eval("test", "c")
	assert.NoError(t, err)
	_, err = s.Eval("test", "d")
	assert.True(t, IsKind(err, UnboundVar))

	_, err = s.EvalAll("script", "(define e 1) (")
	assert.True(t, IsKind(err, ParseError))
	_, err = s.Eval("test", "e")
	assert.True(t, IsKind(err, UnboundVar), "nothing runs when the script does not parse")
}

func TestSession_DebugWriter(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(nil)
	s.Debug = &out
	_, err := s.Eval("test", "(debug 1)")
	require.NoError(t, err)
	assert.Equal(t, "Int(1) [16B]\n", out.String())
}

func TestSession_ConcurrentEval(t *testing.T) {
	s := NewSession(nil)
	_, err := s.Eval("test", "(define counter 0)")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := s.Eval("test", "(set! counter (+ counter 1))")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	v, err := s.Eval("test", "counter")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(8*50), String(v))
}

func TestSession_SnapshotWhileEvaluating(t *testing.T) {
	global := NewSession(nil)
	_, err := global.Eval("test", "(define n 0)")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_, err := global.Eval("test", "(set! n (+ n 1))")
			assert.NoError(t, err)
		}
	}()
	for i := 0; i < 200; i++ {
		v, err := NewSession(global.Snapshot()).Eval("test", "n")
		require.NoError(t, err)
		assert.True(t, v.Int() >= 0 && v.Int() <= 200, "n = %d", v.Int())
	}
	<-done

	v, err := NewSession(global.Snapshot()).Eval("test", "n")
	require.NoError(t, err)
	assert.Equal(t, int32(200), v.Int())
}
