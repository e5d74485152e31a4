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

import "math"

// checkedInt narrows an int64 intermediate back to the 32 bit number range.
func checkedInt(i int64) (Scmer, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return NewNil(), NewDefault("integer overflow")
	}
	return NewInt(int32(i)), nil
}

// monoidal folds all arguments; zero arguments yield the identity element
func monoidal(identity int64, op func(a, b int64) int64) func(...Scmer) (Scmer, error) {
	return func(a ...Scmer) (Scmer, error) {
		acc := identity
		for _, v := range a {
			acc = op(acc, int64(v.Int()))
			if acc < math.MinInt32 || acc > math.MaxInt32 {
				return NewNil(), NewDefault("integer overflow")
			}
		}
		return NewInt(int32(acc)), nil
	}
}

func binaryNumeric(op func(a, b int64) (int64, error)) func(...Scmer) (Scmer, error) {
	return func(a ...Scmer) (Scmer, error) {
		r, err := op(int64(a[0].Int()), int64(a[1].Int()))
		if err != nil {
			return NewNil(), err
		}
		return checkedInt(r)
	}
}

func binaryCompare(op func(a, b int32) bool) func(...Scmer) (Scmer, error) {
	return func(a ...Scmer) (Scmer, error) {
		return NewBool(op(a[0].Int(), a[1].Int())), nil
	}
}

func boolFold(identity bool, op func(a, b bool) bool) func(...Scmer) (Scmer, error) {
	return func(a ...Scmer) (Scmer, error) {
		acc := identity
		for _, v := range a {
			acc = op(acc, v.Bool())
		}
		return NewBool(acc), nil
	}
}

var errDivisionByZero = NewDefault("division by zero")

func divide(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errDivisionByZero
	}
	return a / b, nil // truncates toward zero
}

func remainder(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errDivisionByZero
	}
	return a % b, nil // sign follows the dividend
}

var twoNumbers = []DeclarationParameter{
	DeclarationParameter{"a", "number", "first operand"},
	DeclarationParameter{"b", "number", "second operand"},
}

func init_alu() {
	DeclareTitle("Arithmetic")

	Declare(&Declaration{
		"+", "adds all numbers; (+) is 0",
		0, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "values to add"},
		}, "number",
		monoidal(0, func(a, b int64) int64 { return a + b }),
	})
	Declare(&Declaration{
		"*", "multiplies all numbers; (*) is 1",
		0, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "number", "values to multiply"},
		}, "number",
		monoidal(1, func(a, b int64) int64 { return a * b }),
	})
	Declare(&Declaration{
		"-", "subtracts b from a",
		2, 2,
		twoNumbers, "number",
		binaryNumeric(func(a, b int64) (int64, error) { return a - b, nil }),
	})
	Declare(&Declaration{
		"/", "divides a by b, truncating toward zero; fails on division by zero",
		2, 2,
		twoNumbers, "number",
		binaryNumeric(divide),
	})
	Declare(&Declaration{
		"quotient", "integer quotient of a and b, truncating toward zero; fails on division by zero",
		2, 2,
		twoNumbers, "number",
		binaryNumeric(divide),
	})
	Declare(&Declaration{
		"remainder", "remainder of a divided by b with the sign of a; fails on division by zero",
		2, 2,
		twoNumbers, "number",
		binaryNumeric(remainder),
	})

	DeclareTitle("Comparison")

	Declare(&Declaration{
		"=", "tells if a equals b",
		2, 2,
		twoNumbers, "bool",
		binaryCompare(func(a, b int32) bool { return a == b }),
	})
	Declare(&Declaration{
		"<", "tells if a is less than b",
		2, 2,
		twoNumbers, "bool",
		binaryCompare(func(a, b int32) bool { return a < b }),
	})
	Declare(&Declaration{
		">", "tells if a is greater than b",
		2, 2,
		twoNumbers, "bool",
		binaryCompare(func(a, b int32) bool { return a > b }),
	})
	Declare(&Declaration{
		"<=", "tells if a is less than or equal to b",
		2, 2,
		twoNumbers, "bool",
		binaryCompare(func(a, b int32) bool { return a <= b }),
	})
	Declare(&Declaration{
		">=", "tells if a is greater than or equal to b",
		2, 2,
		twoNumbers, "bool",
		binaryCompare(func(a, b int32) bool { return a >= b }),
	})

	DeclareTitle("Logic")

	// all arguments are evaluated before these run, so there is no short circuit
	Declare(&Declaration{
		"&&", "logical and of all arguments; (&&) is #t",
		0, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"condition...", "bool", "conditions"},
		}, "bool",
		boolFold(true, func(a, b bool) bool { return a && b }),
	})
	Declare(&Declaration{
		"||", "logical or of all arguments; (||) is #f",
		0, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"condition...", "bool", "conditions"},
		}, "bool",
		boolFold(false, func(a, b bool) bool { return a || b }),
	})
}
