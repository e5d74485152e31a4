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

func equalPrimitive(a ...Scmer) (Scmer, error) {
	return NewBool(Equal(a[0], a[1])), nil
}

func init_list() {
	DeclareTitle("Lists")

	Declare(&Declaration{
		"cons", "constructs a pair from a head and a tail; the tail is shared, not copied",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"car", "any", "new head element"},
			DeclarationParameter{"cdr", "any", "tail; a non-list tail makes a dotted pair"},
		}, "pair",
		func(a ...Scmer) (Scmer, error) {
			return Cons(a[0], a[1]), nil
		},
	})
	Declare(&Declaration{
		"car", "extracts the head of a pair",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"pair", "pair", "pair or non-empty list"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			return a[0].Car()
		},
	})
	Declare(&Declaration{
		"cdr", "extracts the tail of a pair",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"pair", "pair", "pair or non-empty list"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			return a[0].Cdr()
		},
	})

	DeclareTitle("Equality")

	Declare(&Declaration{
		"eq?", "tells if two values are structurally equal; values of different types are never equal",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "first value"},
			DeclarationParameter{"b", "any", "second value"},
		}, "bool",
		equalPrimitive,
	})
	Declare(&Declaration{
		"eqv?", "same as eq?",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "first value"},
			DeclarationParameter{"b", "any", "second value"},
		}, "bool",
		equalPrimitive,
	})
}
