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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclare_Table(t *testing.T) {
	names := PrimitiveNames()
	for _, name := range []string{"+", "*", "-", "/", "quotient", "remainder", "=", ">", "<", ">=", "<=", "&&", "||", "eq?", "eqv?", "cons", "car", "cdr", "debug"} {
		assert.Contains(t, names, name)
		assert.NotNil(t, Lookup(name), name)
	}
	assert.Nil(t, Lookup("lambda"))
	assert.IsIncreasing(t, names)
}

func TestApply(t *testing.T) {
	v, err := Apply("cons", NewInt(1), NewNil())
	require.NoError(t, err)
	assert.Equal(t, "(1)", String(v))

	_, err = Apply("nope")
	assert.True(t, IsKind(err, NotFunction))
	assert.EqualError(t, err, "Unrecognized primitive function args: nope")

	_, err = Apply("car")
	assert.True(t, IsKind(err, NumArgs))
	assert.EqualError(t, err, "Expected 1 args; found values ")

	_, err = Apply("cons", NewInt(1), NewInt(2), NewInt(3))
	assert.EqualError(t, err, "Expected 2 args; found values 1 2 3")

	// variadic parameters repeat the last declared type
	_, err = Apply("+", NewInt(1), NewInt(2), NewBool(true))
	assert.EqualError(t, err, "Invalid type: expected integer, found #t")
	_, err = Apply("&&", NewBool(true), NewInt(1))
	assert.EqualError(t, err, "Invalid type: expected boolean, found 1")
	_, err = Apply("car", NewInt(1))
	assert.EqualError(t, err, "Invalid type: expected pair, found 1")
}

func TestHelp(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Help(&b, ""))
	assert.Contains(t, b.String(), "-- Arithmetic --")
	assert.Contains(t, b.String(), "  cons: constructs a pair")

	b.Reset()
	require.NoError(t, Help(&b, "remainder"))
	assert.Contains(t, b.String(), "Help for: remainder")
	assert.Contains(t, b.String(), "Allowed number of parameters: 2")
	assert.Contains(t, b.String(), " - a (number): first operand")

	b.Reset()
	require.NoError(t, Help(&b, "+"))
	assert.Contains(t, b.String(), "0 or more")

	assert.True(t, IsKind(Help(&b, "nope"), NotFunction))
}

func TestWriteDocumentation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, WriteDocumentation(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "- [Arithmetic](arithmetic.md)")
	assert.Contains(t, string(index), "- [Lists](lists.md)")

	lists, err := os.ReadFile(filepath.Join(dir, "lists.md"))
	require.NoError(t, err)
	assert.Contains(t, string(lists), "## cons")
	assert.Contains(t, string(lists), "- **cdr** (`any`)")
	assert.Contains(t, string(lists), "### Returns\n\n`pair`")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "arithmetic", slugify("Arithmetic"))
	assert.Equal(t, "io-and-files", slugify(" IO and Files! "))
	assert.Equal(t, "chapter", slugify("???"))
}
