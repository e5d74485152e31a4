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

import (
	"iter"
	"unsafe"
)

// Scmer is a compact tagged value container (16 bytes).
// The zero value is Nil.
type Scmer struct {
	ptr *byte
	aux uint64 // type tag + extra data (len, int payload, bool)
}

const (
	scmerStructOverhead = uint(16)
	goAllocOverhead     = uint(16)
)

// Type tags (upper 16 bits of aux)
const (
	tagNil = iota
	tagAtom
	tagInt
	tagString
	tagBool
	tagPair
)

// Helpers
func makeAux(tag uint16, val uint64) uint64 {
	return uint64(tag)<<48 | (val & ((1 << 48) - 1))
}
func auxTag(aux uint64) uint16 { return uint16(aux >> 48) }
func auxVal(aux uint64) uint64 { return aux & ((1 << 48) - 1) }

// Pair is a cons cell. It is never modified after Cons returned it, so
// tails may be shared between any number of lists.
type Pair struct {
	car Scmer
	cdr Scmer
}

//
// Constructors
//

func NewNil() Scmer { return Scmer{nil, makeAux(tagNil, 0)} }

func NewBool(b bool) Scmer {
	if b {
		return Scmer{nil, makeAux(tagBool, 1)}
	}
	return Scmer{nil, makeAux(tagBool, 0)}
}

// NewInt stores the 32 bit payload directly in aux; no allocation.
func NewInt(i int32) Scmer {
	return Scmer{nil, makeAux(tagInt, uint64(uint32(i)))}
}

func NewString(s string) Scmer {
	if len(s) == 0 {
		return Scmer{nil, makeAux(tagString, 0)}
	}
	return Scmer{unsafe.StringData(s), makeAux(tagString, uint64(len(s)))}
}

func NewAtom(name string) Scmer {
	if len(name) == 0 {
		return Scmer{nil, makeAux(tagAtom, 0)}
	}
	return Scmer{unsafe.StringData(name), makeAux(tagAtom, uint64(len(name)))}
}

// Cons builds a new cell in constant time.
func Cons(car, cdr Scmer) Scmer {
	p := &Pair{car, cdr}
	return Scmer{(*byte)(unsafe.Pointer(p)), makeAux(tagPair, 0)}
}

// List builds a proper list.
func List(items ...Scmer) Scmer {
	return ListWithTail(items, NewNil())
}

// ListWithTail builds a right-associated pair chain that ends in tail
// instead of Nil. A non-Nil, non-Pair tail yields a dotted list.
func ListWithTail(items []Scmer, tail Scmer) Scmer {
	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = Cons(items[i], result)
	}
	return result
}

//
// Predicates
//

func (s Scmer) GetTag() uint16 { return auxTag(s.aux) }

func (s Scmer) IsNil() bool { return auxTag(s.aux) == tagNil }

func (s Scmer) IsAtom() bool { return auxTag(s.aux) == tagAtom }

func (s Scmer) IsInt() bool { return auxTag(s.aux) == tagInt }

func (s Scmer) IsString() bool { return auxTag(s.aux) == tagString }

func (s Scmer) IsBool() bool { return auxTag(s.aux) == tagBool }

func (s Scmer) IsPair() bool { return auxTag(s.aux) == tagPair }

func (s Scmer) AtomEquals(name string) bool {
	return auxTag(s.aux) == tagAtom && s.Text() == name
}

//
// Raw accessors (no tag check beyond what the caller already did)
//

// Text returns the name of an atom or the contents of a string; "" otherwise.
func (s Scmer) Text() string {
	switch auxTag(s.aux) {
	case tagAtom, tagString:
		if s.ptr == nil {
			return ""
		}
		return unsafe.String(s.ptr, int(auxVal(s.aux)))
	}
	return ""
}

func (s Scmer) Int() int32 {
	if auxTag(s.aux) != tagInt {
		return 0
	}
	return int32(uint32(auxVal(s.aux)))
}

func (s Scmer) Bool() bool {
	return auxTag(s.aux) == tagBool && auxVal(s.aux) != 0
}

func (s Scmer) pair() *Pair {
	if auxTag(s.aux) != tagPair {
		panic("not pair")
	}
	return (*Pair)(unsafe.Pointer(s.ptr))
}

//
// Checked projections; these fail with TypeMismatch instead of panicking
//

func (s Scmer) Car() (Scmer, error) {
	if !s.IsPair() {
		return NewNil(), NewTypeMismatch("pair", s)
	}
	return s.pair().car, nil
}

func (s Scmer) Cdr() (Scmer, error) {
	if !s.IsPair() {
		return NewNil(), NewTypeMismatch("pair", s)
	}
	return s.pair().cdr, nil
}

func (s Scmer) AsBool() (bool, error) {
	if !s.IsBool() {
		return false, NewTypeMismatch("boolean", s)
	}
	return s.Bool(), nil
}

func (s Scmer) AsInt() (int32, error) {
	if !s.IsInt() {
		return 0, NewTypeMismatch("integer", s)
	}
	return s.Int(), nil
}

//
// Sequences
//

// Seq walks a value lazily. Nil is empty, a pair chain yields every car and,
// for a dotted list, the final tail as last element, any other value yields
// itself once. The returned sequence can be ranged over any number of times.
func (s Scmer) Seq() iter.Seq[Scmer] {
	return func(yield func(Scmer) bool) {
		v := s
		for {
			switch auxTag(v.aux) {
			case tagNil:
				return
			case tagPair:
				p := v.pair()
				if !yield(p.car) {
					return
				}
				v = p.cdr
			default:
				yield(v)
				return
			}
		}
	}
}

// Slice collects Seq into a fresh slice.
func (s Scmer) Slice() []Scmer {
	var result []Scmer
	for v := range s.Seq() {
		result = append(result, v)
	}
	return result
}

// IsProperList reports whether following cdr ends in Nil. Nil itself is a
// proper (empty) list.
func (s Scmer) IsProperList() bool {
	v := s
	for v.IsPair() {
		v = v.pair().cdr
	}
	return v.IsNil()
}

// ComputeSize approximates the memory held by a value. Shared tails are
// counted once per reference, so the result is an upper bound.
func ComputeSize(v Scmer) uint {
	base := scmerStructOverhead
	switch auxTag(v.aux) {
	case tagNil, tagBool, tagInt:
		return base
	case tagAtom, tagString:
		ln := uint(auxVal(v.aux))
		if ln == 0 {
			return base
		}
		return base + goAllocOverhead + align8(ln)
	case tagPair:
		sz := base
		for v.IsPair() {
			p := v.pair()
			// cell allocation + car + cdr slot
			sz += goAllocOverhead + ComputeSize(p.car) + scmerStructOverhead
			v = p.cdr
		}
		// the tail's own slot was already counted as cdr slot
		return sz + ComputeSize(v) - scmerStructOverhead
	}
	return base
}

func align8(n uint) uint {
	if n == 0 {
		return 0
	}
	if r := n & 7; r != 0 {
		return n + (8 - r)
	}
	return n
}
