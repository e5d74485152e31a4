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
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const contprompt = "\033[32m.\033[0m "
const resultprompt = "\033[31m=\033[0m "

// completer offers primitive names, bound names and meta commands for the
// word under the cursor.
type completer struct {
	s *Session
}

func (c completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	start := pos
	for start > 0 && isSymbolRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	candidates := PrimitiveNames()
	candidates = append(candidates, "quote", "if", "define", "set!")
	candidates = append(candidates, c.s.Env.Names()...)
	if start == 0 {
		candidates = append(candidates, ":help", ":env", ":quit")
	}
	for _, name := range candidates {
		if strings.HasPrefix(name, prefix) && name != prefix {
			newLine = append(newLine, []rune(name[len(prefix):]))
		}
	}
	return newLine, len([]rune(prefix))
}

func isSymbolRune(r rune) bool {
	return r < 128 && isAtomChar(byte(r))
}

// Repl reads expressions from the terminal until EOF or :quit. Incomplete
// input (unbalanced parens) continues on the next line.
func Repl(s *Session, historyFile string) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       historyFile,
		AutoComplete:      completer{s},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()
	l.CaptureExitSignal()

	oldline := ""
	for {
		line, err := l.Readline()
		line = oldline + line
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				oldline = ""
				l.SetPrompt(newprompt)
				continue
			}
		} else if err == io.EOF {
			break
		} else if err != nil {
			panic(err)
		}
		if strings.TrimSpace(line) == "" {
			oldline = ""
			l.SetPrompt(newprompt)
			continue
		}
		if !Balanced(line) {
			oldline = line + "\n"
			l.SetPrompt(contprompt)
			continue
		}
		oldline = ""
		l.SetPrompt(newprompt)

		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			if !metaCommand(os.Stdout, s, strings.TrimSpace(line)) {
				return
			}
			continue
		}

		// anti-panic func
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Println("panic:", r, string(debug.Stack()))
				}
			}()
			result, err := s.Eval("user prompt", line)
			if err != nil {
				kind, _ := KindOf(err)
				PrintError(kind.String() + ": " + err.Error())
				return
			}
			fmt.Print(resultprompt)
			fmt.Println(String(result))
		}()
	}
}

// metaCommand runs a :command and reports whether the prompt should go on.
func metaCommand(w io.Writer, s *Session, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return false
	case ":help":
		name := ""
		if len(fields) > 1 {
			name = fields[1]
		}
		if err := Help(w, name); err != nil {
			PrintError(err.Error())
		}
	case ":env":
		for _, name := range s.Env.Names() {
			v, _ := s.Env.Lookup(name)
			fmt.Fprintln(w, name, "=", String(v))
		}
	default:
		PrintError("unknown command " + fields[0] + "; try :help, :env or :quit")
	}
	return true
}
