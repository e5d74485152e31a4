/*
Copyright (C) 2024-2026  Carl-Philip Hänsch

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

import "os"
import "io"
import "fmt"
import "strings"
import "path/filepath"
import "github.com/launix-de/NonLockingReadMap"

// Unbounded as MaxParameter allows any number of arguments.
const Unbounded = -1

// Declaration is the typed descriptor of a primitive. Apply checks arity and
// parameter types against it, so Fn can rely on both.
type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int
	Params       []DeclarationParameter // the last entry repeats for variadic primitives
	Returns      string                 // any | number | bool | pair
	Fn           func(...Scmer) (Scmer, error)
}

type DeclarationParameter struct {
	Name string
	Type string // any | number | bool | pair
	Desc string
}

func (d Declaration) GetKey() string {
	return d.Name
}

func (d Declaration) ComputeSize() uint {
	return uint(len(d.Name)+len(d.Desc)) + 64*uint(len(d.Params)+1)
}

var declaration_titles []string
var declarations = NonLockingReadMap.New[Declaration, string]()

func DeclareTitle(title string) {
	declaration_titles = append(declaration_titles, "#"+title)
}

func Declare(def *Declaration) {
	if declarations.Set(def) == nil {
		declaration_titles = append(declaration_titles, def.Name)
	}
}

// Lookup returns the primitive called name or nil.
func Lookup(name string) *Declaration {
	return declarations.Get(name)
}

// PrimitiveNames lists all primitives in sorted order.
func PrimitiveNames() []string {
	all := declarations.GetAll()
	result := make([]string, len(all))
	for i, d := range all {
		result[i] = d.Name
	}
	return result
}

// Apply dispatches an already evaluated argument list to the primitive name.
func Apply(name string, args ...Scmer) (Scmer, error) {
	def := Lookup(name)
	if def == nil {
		return NewNil(), NewNotFunction(name, "Unrecognized primitive function args")
	}
	if len(args) < def.MinParameter {
		return NewNil(), NewNumArgs(def.MinParameter, List(args...))
	}
	if def.MaxParameter != Unbounded && len(args) > def.MaxParameter {
		return NewNil(), NewNumArgs(def.MaxParameter, List(args...))
	}
	for i, a := range args {
		j := i
		if j >= len(def.Params) {
			j = len(def.Params) - 1
		}
		if j < 0 {
			break
		}
		if !types_match(a, def.Params[j].Type) {
			return NewNil(), NewTypeMismatch(typeDescription(def.Params[j].Type), a)
		}
	}
	return def.Fn(args...)
}

func types_match(v Scmer, required string) bool {
	switch required {
	case "number":
		return v.IsInt()
	case "bool":
		return v.IsBool()
	case "pair":
		return v.IsPair()
	}
	return true
}

func typeDescription(typ string) string {
	switch typ {
	case "number":
		return "integer"
	case "bool":
		return "boolean"
	}
	return typ
}

func arityString(def *Declaration) string {
	if def.MaxParameter == Unbounded {
		return fmt.Sprintf("%d or more", def.MinParameter)
	}
	if def.MinParameter == def.MaxParameter {
		return fmt.Sprint(def.MinParameter)
	}
	return fmt.Sprintf("%d to %d", def.MinParameter, def.MaxParameter)
}

// Help prints all primitives grouped by chapter, or the details of one.
func Help(w io.Writer, name string) error {
	if name == "" {
		fmt.Fprintln(w, "Available primitives:")
		for _, title := range declaration_titles {
			if title[0] == '#' {
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, "-- "+title[1:]+" --")
			} else {
				fmt.Fprintln(w, "  "+title+": "+strings.Split(Lookup(title).Desc, "\n")[0])
			}
		}
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "get further information by typing :help name")
		return nil
	}
	def := Lookup(name)
	if def == nil {
		return NewNotFunction(name, "No help available")
	}
	fmt.Fprintln(w, "Help for: "+def.Name)
	fmt.Fprintln(w, "===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, def.Desc)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Allowed number of parameters:", arityString(def))
	fmt.Fprintln(w, "")
	for _, p := range def.Params {
		fmt.Fprintln(w, " - "+p.Name+" ("+p.Type+"): "+p.Desc)
	}
	fmt.Fprintln(w, "")
	return nil
}

// slugify makes a filesystem-safe, lowercase slug from a chapter title.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "chapter"
	}
	return out
}

// WriteDocumentation generates Markdown docs:
// - index.md with links to chapters
// - one <chapter>.md file per chapter, containing all primitives of that chapter
func WriteDocumentation(folder string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", folder, err)
	}

	type Chapter struct {
		Title string
		Slug  string
		Fns   []*Declaration
	}

	var chapters []*Chapter
	var current *Chapter
	for _, t := range declaration_titles {
		if t[0] == '#' {
			title := strings.TrimSpace(t[1:])
			current = &Chapter{Title: title, Slug: slugify(title)}
			chapters = append(chapters, current)
			continue
		}
		if current == nil {
			current = &Chapter{Title: "General", Slug: "general"}
			chapters = append(chapters, current)
		}
		if def := Lookup(t); def != nil {
			current.Fns = append(current.Fns, def)
		}
	}

	indexPath := filepath.Join(folder, "index.md")
	indexFile, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", indexPath, err)
	}
	defer indexFile.Close()

	fmt.Fprint(indexFile, "# Documentation\n\n")
	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fmt.Fprintf(indexFile, "- [%s](%s.md)\n", ch.Title, ch.Slug)
	}

	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fp := filepath.Join(folder, ch.Slug+".md")
		f, err := os.Create(fp)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", fp, err)
		}

		fmt.Fprintf(f, "# %s\n\n", ch.Title)
		for _, def := range ch.Fns {
			fmt.Fprintf(f, "## %s\n\n", def.Name)
			if def.Desc != "" {
				fmt.Fprintf(f, "%s\n\n", def.Desc)
			}
			fmt.Fprintf(f, "**Allowed number of parameters:** %s\n\n", arityString(def))

			fmt.Fprint(f, "### Parameters\n\n")
			if len(def.Params) == 0 {
				fmt.Fprint(f, "_This primitive has no parameters._\n\n")
			} else {
				for _, p := range def.Params {
					fmt.Fprintf(f, "- **%s** (`%s`): %s\n", p.Name, p.Type, p.Desc)
				}
				fmt.Fprintln(f)
			}

			fmt.Fprintf(f, "### Returns\n\n`%s`\n\n", def.Returns)
		}

		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
