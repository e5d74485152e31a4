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
	"fmt"
	"slices"
	"strconv"
	"strings"

	packrat "github.com/launix-de/go-packrat/v2"
)

type SourceInfo struct {
	source string
	line   int
	col    int
}

func (source_info SourceInfo) String() string {
	return fmt.Sprintf("%s:%d:%d", source_info.source, source_info.line, source_info.col)
}

func sourceInfo(source, text string, pos int) SourceInfo {
	line, col := 1, 1
	for _, ch := range text[:pos] {
		if ch == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return SourceInfo{source, line, col}
}

//
// character classes
//

const symbolChars = "!#$%&|*+-/:<=>?@^_~"

func isWhitespace(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' }
func isLetter(ch byte) bool     { return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' }
func isDigit(ch byte) bool      { return ch >= '0' && ch <= '9' }
func isSymbolChar(ch byte) bool { return strings.IndexByte(symbolChars, ch) >= 0 }
func isAtomChar(ch byte) bool   { return isLetter(ch) || isDigit(ch) || isSymbolChar(ch) }

// regex classes for the same sets; '-' is escaped, '^' is literal when not first
const (
	reAtomStart = `[a-zA-Z!#$%&|*+\-/:<=>?@^_~]`
	reAtomChar  = `[a-zA-Z0-9!#$%&|*+\-/:<=>?@^_~]`
)

//
// grammar
//

// syntax is the grammar for one parse run. go-packrat parsers keep per-match
// buffers, so every call builds its own set and concurrent sessions never
// share one.
type syntax struct {
	source  string
	text    string
	scanner *packrat.Scanner[Scmer]
	names   map[packrat.Parser[Scmer]]string
	err     error // first literal that did not fit into an int32

	expr *packrat.OrParser[Scmer]
	top  packrat.Parser[Scmer] // one expression, all input consumed
	item packrat.Parser[Scmer] // next expression of a script
	end  packrat.Parser[Scmer] // only whitespace left
}

func skip(string) Scmer { return NewNil() }

func (g *syntax) named(name string, p packrat.Parser[Scmer]) packrat.Parser[Scmer] {
	g.names[p] = name
	return p
}

func newSyntax(source, text string) *syntax {
	g := &syntax{source: source, text: text, names: make(map[packrat.Parser[Scmer]]string)}
	g.scanner = packrat.NewScanner[Scmer](text, nil) // whitespace is part of the grammar

	ws := g.named("whitespace", packrat.NewRegexParser(skip, `[ \t\r\n]+`, false, false))
	optWs := packrat.NewRegexParser(skip, `[ \t\r\n]*`, false, false)
	g.expr = packrat.NewOrParser[Scmer]()
	g.names[g.expr] = "expression"

	number := g.named("number", packrat.NewRegexParser(g.number, `[0-9]+`, false, false))

	str := packrat.NewAndParser[Scmer](func(_ string, parts ...Scmer) Scmer {
		return parts[1]
	},
		g.named("string", packrat.NewAtomParser(NewNil(), `"`, false, false)),
		packrat.NewRegexParser(func(s string) Scmer { return NewString(strings.Clone(s)) }, `[^"]*`, false, false),
		g.named(`closing "`, packrat.NewAtomParser(NewNil(), `"`, false, false)),
	)

	// #t but not #tx, which is an atom
	longer := packrat.NewRegexParser(skip, `#[tf]`+reAtomChar+`+`, false, false)
	boolean := packrat.NewOrParser[Scmer](
		packrat.NewNotParser[Scmer](g.named(`"#t"`, packrat.NewAtomParser(NewBool(true), "#t", false, false)), longer),
		packrat.NewNotParser[Scmer](g.named(`"#f"`, packrat.NewAtomParser(NewBool(false), "#f", false, false)), longer),
	)

	atom := g.named("atom", packrat.NewRegexParser(func(s string) Scmer {
		return NewAtom(strings.Clone(s))
	}, reAtomStart+reAtomChar+`*`, false, false))

	// 'e is (quote e)
	quoted := packrat.NewAndParser[Scmer](func(_ string, parts ...Scmer) Scmer {
		return List(NewAtom("quote"), parts[2])
	}, g.named(`"'"`, packrat.NewAtomParser(NewNil(), "'", false, false)), optWs, g.expr)

	open := g.named(`"("`, packrat.NewAtomParser(NewNil(), "(", false, false))
	closing := g.named(`")"`, packrat.NewAtomParser(NewNil(), ")", false, false))
	empty := packrat.NewAndParser[Scmer](func(string, ...Scmer) Scmer {
		return NewNil()
	}, open, optWs, closing)
	// elements need whitespace between them; a dot needs it on both sides
	items := packrat.NewManyParser[Scmer](func(_ string, items ...Scmer) Scmer {
		return List(items...)
	}, g.expr, ws)
	tail := packrat.NewMaybeParser[Scmer](NewNil(), packrat.NewAndParser[Scmer](func(_ string, parts ...Scmer) Scmer {
		return parts[3]
	}, ws, g.named(`"."`, packrat.NewAtomParser(NewNil(), ".", false, false)), ws, g.expr))
	list := packrat.NewAndParser[Scmer](func(_ string, parts ...Scmer) Scmer {
		return ListWithTail(parts[2].Slice(), parts[3])
	}, open, optWs, items, tail, optWs, closing)

	// number and boolean come before atom so it never shadows them
	g.expr.Set(number, str, boolean, atom, quoted, empty, list)

	eof := g.named("end of input", packrat.NewEndParser(NewNil(), false))
	g.top = packrat.NewAndParser[Scmer](func(_ string, parts ...Scmer) Scmer {
		return parts[1]
	}, optWs, g.expr, optWs, eof)
	g.item = packrat.NewAndParser[Scmer](func(_ string, parts ...Scmer) Scmer {
		return parts[1]
	}, optWs, g.expr)
	g.end = packrat.NewAndParser[Scmer](func(string, ...Scmer) Scmer {
		return NewNil()
	}, optWs, eof)
	return g
}

// number is called right after the scanner moved past the digits.
func (g *syntax) number(s string) Scmer {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		if g.err == nil {
			start := g.scanner.GetPosition() - len(s)
			g.err = NewParseError(fmt.Sprintf("%s: number %s out of range", sourceInfo(g.source, g.text, start), s))
		}
		return NewNil()
	}
	return NewInt(int32(i))
}

func (g *syntax) errorAt(pos int, expected ...string) error {
	found := "end of input"
	if pos < len(g.text) {
		found = strconv.Quote(g.text[pos:min(pos+10, len(g.text))])
	}
	return NewParseError(fmt.Sprintf("%s: expected %s, found %s", sourceInfo(g.source, g.text, pos), strings.Join(expected, " or "), found))
}

// fail turns the furthest failure of the packrat run into a ParseError.
func (g *syntax) fail(perr *packrat.ParserError[Scmer]) error {
	if g.err != nil {
		return g.err
	}
	var expected []string
	for _, p := range perr.FailedParsers {
		if name, ok := g.names[p]; ok && !slices.Contains(expected, name) {
			expected = append(expected, name)
		}
	}
	if len(expected) == 0 {
		expected = append(expected, "end of input")
	}
	slices.Sort(expected)
	return g.errorAt(min(perr.Position, len(g.text)), expected...)
}

//
// entry points
//

// Parse reads exactly one expression; the whole input must be consumed.
// Surrounding whitespace is ignored.
func Parse(source, text string) (Scmer, error) {
	g := newSyntax(source, text)
	node, perr := packrat.Parse[Scmer](g.top, g.scanner)
	if perr != nil {
		return NewNil(), g.fail(perr)
	}
	if g.err != nil {
		return NewNil(), g.err
	}
	return node.Payload, nil
}

// ParseAll reads any number of expressions, e.g. a whole script file.
// Expressions are separated by whitespace unless a bracket or string
// delimits them already.
func ParseAll(source, text string) ([]Scmer, error) {
	g := newSyntax(source, text)
	var result []Scmer
	for {
		if _, perr := packrat.ParsePartial[Scmer](g.end, g.scanner); perr == nil {
			return result, nil
		}
		node, perr := packrat.ParsePartial[Scmer](g.item, g.scanner)
		if perr != nil {
			return nil, g.fail(perr)
		}
		if g.err != nil {
			return nil, g.err
		}
		result = append(result, node.Payload)
		pos := g.scanner.GetPosition()
		if pos < len(text) && !isWhitespace(text[pos]) {
			last, next := text[pos-1], text[pos]
			if last != ')' && last != '"' && next != '(' && next != '\'' {
				return nil, g.errorAt(pos, "whitespace")
			}
		}
	}
}

// Balanced reports whether every ( outside of strings has its ). Hosts use
// it to decide whether to ask for a continuation line.
func Balanced(text string) bool {
	depth := 0
	inString := false
	for i := 0; i < len(text); i++ {
		switch ch := text[i]; {
		case inString:
			if ch == '"' {
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == '(':
			depth++
		case ch == ')':
			depth--
		}
	}
	return depth <= 0 && !inString
}
