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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScmer_ZeroValueIsNil(t *testing.T) {
	var v Scmer
	assert.True(t, v.IsNil())
	assert.Equal(t, "()", String(v))
	assert.True(t, Equal(v, NewNil()))
}

func TestScmer_Scalars(t *testing.T) {
	assert.Equal(t, int32(-7), NewInt(-7).Int())
	assert.Equal(t, int32(-2147483648), NewInt(-2147483648).Int())
	assert.True(t, NewBool(true).Bool())
	assert.False(t, NewBool(false).Bool())
	assert.Equal(t, "hello", NewString("hello").Text())
	assert.Equal(t, "", NewString("").Text())
	assert.True(t, NewString("").IsString())
	assert.True(t, NewAtom("x").AtomEquals("x"))
	assert.False(t, NewString("x").AtomEquals("x"))
}

func TestScmer_CheckedAccessors(t *testing.T) {
	p := Cons(NewInt(1), NewInt(2))
	car, err := p.Car()
	require.NoError(t, err)
	assert.Equal(t, int32(1), car.Int())
	cdr, err := p.Cdr()
	require.NoError(t, err)
	assert.Equal(t, int32(2), cdr.Int())

	for _, v := range []Scmer{NewNil(), NewInt(1), NewAtom("a"), NewString("s"), NewBool(true)} {
		_, err := v.Car()
		assert.True(t, IsKind(err, TypeMismatch), "car of %s", String(v))
		_, err = v.Cdr()
		assert.True(t, IsKind(err, TypeMismatch), "cdr of %s", String(v))
	}

	b, err := NewBool(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)
	_, err = NewInt(1).AsBool()
	assert.True(t, IsKind(err, TypeMismatch))

	i, err := NewInt(5).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int32(5), i)
	_, err = NewString("5").AsInt()
	assert.True(t, IsKind(err, TypeMismatch))
}

func TestScmer_Seq(t *testing.T) {
	assert.Empty(t, NewNil().Slice())

	one := NewInt(5).Slice()
	require.Len(t, one, 1)
	assert.Equal(t, int32(5), one[0].Int())

	proper := List(NewInt(1), NewInt(2), NewInt(3)).Slice()
	require.Len(t, proper, 3)
	assert.Equal(t, int32(3), proper[2].Int())

	// the dotted tail is yielded as last element
	dotted := ListWithTail([]Scmer{NewInt(1), NewInt(2)}, NewAtom("rest")).Slice()
	require.Len(t, dotted, 3)
	assert.True(t, dotted[2].AtomEquals("rest"))

	// restartable and stoppable
	l := List(NewInt(1), NewInt(2), NewInt(3))
	seq := l.Seq()
	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
	n = 0
	for range seq {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestScmer_ProperList(t *testing.T) {
	assert.True(t, NewNil().IsProperList())
	assert.True(t, List(NewInt(1)).IsProperList())
	assert.False(t, Cons(NewInt(1), NewInt(2)).IsProperList())
	assert.False(t, NewInt(1).IsProperList())
}

func TestScmer_SharedTails(t *testing.T) {
	tail := List(NewInt(2), NewInt(3))
	a := Cons(NewInt(1), tail)
	b := Cons(NewInt(0), tail)
	assert.Equal(t, "(1 2 3)", String(a))
	assert.Equal(t, "(0 2 3)", String(b))
	ta, _ := a.Cdr()
	tb, _ := b.Cdr()
	assert.Same(t, ta.pair(), tb.pair())
}

func TestComputeSize(t *testing.T) {
	assert.Equal(t, uint(16), ComputeSize(NewInt(1)))
	assert.Equal(t, uint(16), ComputeSize(NewNil()))
	assert.Equal(t, uint(16), ComputeSize(NewString("")))
	assert.Equal(t, uint(16+16+8), ComputeSize(NewString("abc")))
	assert.Equal(t, uint(16+16+16), ComputeSize(NewAtom("ninechars")))
	// slot + cell + car + cdr slot holding Nil
	assert.Equal(t, uint(64), ComputeSize(List(NewInt(1))))
	assert.Equal(t, uint(112), ComputeSize(List(NewInt(1), NewInt(2))))
	assert.Equal(t, uint(64), ComputeSize(Cons(NewInt(1), NewInt(2))))
}
