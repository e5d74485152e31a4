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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Atoms(t *testing.T) {
	for _, text := range []string{"qwerty", "Qwerty", "QWERTY", "q1234", "Q1234", "Q1234!#$%&|*+-/:<=>?@^_~", "-5", "set!", "eq?", "#tx"} {
		v, err := Parse("test", text)
		require.NoError(t, err, text)
		assert.True(t, v.IsAtom(), "%s should be an atom, got %s", text, DebugString(v))
		assert.Equal(t, text, v.Text())
	}
	for _, text := range []string{"1", "\\", "1abc", "a.b"} {
		v, err := Parse("test", text)
		if err == nil {
			assert.False(t, v.IsAtom(), "%s must not parse as an atom", text)
		}
	}
}

func TestParse_Booleans(t *testing.T) {
	v, err := Parse("test", "#t")
	require.NoError(t, err)
	assert.Equal(t, "Bool(true)", DebugString(v))
	v, err = Parse("test", "#f")
	require.NoError(t, err)
	assert.Equal(t, "Bool(false)", DebugString(v))

	for _, text := range []string{"true", "#T", "TRUE", "TruE"} {
		v, err := Parse("test", text)
		if err == nil {
			assert.False(t, v.IsBool(), "%s must not parse as a boolean", text)
		}
	}
}

func TestParse_Numbers(t *testing.T) {
	v, err := Parse("test", "2147483647")
	require.NoError(t, err)
	assert.Equal(t, int32(2147483647), v.Int())

	_, err = Parse("test", "2147483648")
	assert.True(t, IsKind(err, ParseError), "out of range literal: %v", err)
	_, err = Parse("test", "(1 99999999999)")
	assert.True(t, IsKind(err, ParseError))
	assert.Contains(t, err.Error(), "test:1:4: number 99999999999 out of range")
}

func TestParse_RoundTrip(t *testing.T) {
	for _, text := range []string{
		"42", `"foo"`, "#t", "#f", "()", "(1 2 3)", "(1 . 2)",
		"cons", "1", "(1)", "(1 2)", `"1"`, `"a\b"`,
		"(define (adder x y) (+ x y))",
		"((1 . 2) (3 4 . 5))",
		"(quote x)",
	} {
		v, err := Parse("test", text)
		require.NoError(t, err, text)
		assert.Equal(t, text, String(v))
	}
}

func TestParse_Structure(t *testing.T) {
	v, err := Parse("test", "(1 x \"s\")")
	require.NoError(t, err)
	assert.Equal(t, `Pair{Int(1), Pair{Atom("x"), Pair{Str("s"), Nil}}}`, DebugString(v))

	v, err = Parse("test", "(1 2 . 3)")
	require.NoError(t, err)
	assert.Equal(t, "Pair{Int(1), Pair{Int(2), Int(3)}}", DebugString(v))

	v, err = Parse("test", "'(a)")
	require.NoError(t, err)
	assert.True(t, Equal(v, List(NewAtom("quote"), List(NewAtom("a")))))
}

func TestParse_Whitespace(t *testing.T) {
	for text, want := range map[string]string{
		"  42\n":            "42",
		"( 1 2 )":           "(1 2)",
		"(1\t2\n3)":         "(1 2 3)",
		"' x":               "(quote x)",
		"(1   .   2)":       "(1 . 2)",
		"(\"a b\" \"c\")":   `("a b" "c")`,
		"((1)(2))":          "",
		"(a \"b\"c)":        "",
		"(1 2)(3)":          "",
		"":                  "",
		"(1 2":              "",
		"\"unterminated":    "",
		"(1 . )":            "",
		"(. 1)":             "",
		"(1 . 2 3)":         "",
		"(1 2) extra":       "",
		"  (1 2)   extra  ": "",
	} {
		v, err := Parse("test", text)
		if want == "" {
			assert.True(t, IsKind(err, ParseError), "%q should fail, got %s", text, String(v))
			continue
		}
		require.NoError(t, err, text)
		assert.Equal(t, want, String(v), text)
	}
}

func TestParse_Diagnostic(t *testing.T) {
	_, err := Parse("prompt", "(1 2)\n  x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt:2:3")
	assert.Contains(t, err.Error(), "end of input")
}

func TestParse_ExpectedTokens(t *testing.T) {
	_, err := Parse("test", "(1 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test:1:5: expected")
	assert.Contains(t, err.Error(), `")"`)
	assert.Contains(t, err.Error(), "whitespace")
	assert.Contains(t, err.Error(), "found end of input")

	_, err = Parse("test", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expression")
}

func TestParse_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v, err := Parse("test", "(define (f x) (+ x '(1 . 2)))")
				if assert.NoError(t, err) {
					assert.Equal(t, "(define (f x) (+ x (quote (1 . 2))))", String(v))
				}
			}
		}()
	}
	wg.Wait()
}

func TestParseAll(t *testing.T) {
	codes, err := ParseAll("script", "(define x 1)\n(define y 2) 'z \"s\"(+ x y)")
	require.NoError(t, err)
	require.Len(t, codes, 5)
	assert.Equal(t, "(+ x y)", String(codes[4]))

	codes, err = ParseAll("script", "  \n ")
	require.NoError(t, err)
	assert.Empty(t, codes)

	_, err = ParseAll("script", "(define x 1) (")
	assert.True(t, IsKind(err, ParseError))
}

func TestBalanced(t *testing.T) {
	assert.True(t, Balanced("(+ 1 2)"))
	assert.True(t, Balanced("x"))
	assert.False(t, Balanced("(+ 1"))
	assert.False(t, Balanced("(define s \"(\""))
	assert.True(t, Balanced("(define s \")\")"))
	assert.False(t, Balanced("\"open"))
}
