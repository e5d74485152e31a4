/*
Copyright (C) 2023-2026  Carl-Philip Hänsch

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

// Equal is structural equality as used by eq? and eqv?. Values of different
// tags are never equal; pair chains are compared element by element, so two
// separately built lists with the same contents are equal and aliasing is
// irrelevant.
func Equal(a, b Scmer) bool {
	for {
		if auxTag(a.aux) != auxTag(b.aux) {
			return false
		}
		switch auxTag(a.aux) {
		case tagNil:
			return true
		case tagBool, tagInt:
			return a.aux == b.aux
		case tagAtom, tagString:
			return a.Text() == b.Text()
		case tagPair:
			pa, pb := a.pair(), b.pair()
			if pa == pb {
				return true // same cell, nothing left to compare
			}
			if !Equal(pa.car, pb.car) {
				return false
			}
			// walk the tail iteratively so long lists don't grow the stack
			a, b = pa.cdr, pb.cdr
		default:
			return false
		}
	}
}
