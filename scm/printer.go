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

package scm

import (
	"bytes"
	"fmt"
	"strconv"
)

// String renders a value in display syntax: () for Nil, (a b c), (a b . c),
// "text" without escaping, #t/#f.
func String(v Scmer) string {
	var b bytes.Buffer
	Serialize(&b, v)
	return b.String()
}

func (s Scmer) String() string {
	return String(s)
}

func Serialize(b *bytes.Buffer, v Scmer) {
	switch v.GetTag() {
	case tagNil:
		b.WriteString("()")
	case tagBool:
		if v.Bool() {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case tagInt:
		b.WriteString(strconv.FormatInt(int64(v.Int()), 10))
	case tagString:
		b.WriteByte('"')
		b.WriteString(v.Text())
		b.WriteByte('"')
	case tagAtom:
		b.WriteString(v.Text())
	case tagPair:
		b.WriteByte('(')
		for {
			p := v.pair()
			Serialize(b, p.car)
			v = p.cdr
			if v.IsNil() {
				break
			}
			if !v.IsPair() {
				// dotted list
				b.WriteString(" . ")
				Serialize(b, v)
				break
			}
			b.WriteByte(' ')
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<scmer %d>", v.GetTag())
	}
}

// DebugString shows the internal structure of a value, e.g.
// Pair{Int(1), Pair{Atom("x"), Nil}}.
func DebugString(v Scmer) string {
	var b bytes.Buffer
	serializeDebug(&b, v)
	return b.String()
}

func serializeDebug(b *bytes.Buffer, v Scmer) {
	switch v.GetTag() {
	case tagNil:
		b.WriteString("Nil")
	case tagBool:
		fmt.Fprintf(b, "Bool(%v)", v.Bool())
	case tagInt:
		fmt.Fprintf(b, "Int(%d)", v.Int())
	case tagString:
		fmt.Fprintf(b, "Str(%q)", v.Text())
	case tagAtom:
		fmt.Fprintf(b, "Atom(%q)", v.Text())
	case tagPair:
		p := v.pair()
		b.WriteString("Pair{")
		serializeDebug(b, p.car)
		b.WriteString(", ")
		serializeDebug(b, p.cdr)
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "<scmer %d>", v.GetTag())
	}
}
