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
	"fmt"
	"io"
	"os"

	units "github.com/docker/go-units"
	"github.com/jtolds/gls"
)

// goroutine local settings of the evaluating host
var hostContext = gls.NewContextManager()

const ctxDebugWriter = "debug-writer"

// WithDebugWriter runs f with debug output of this goroutine redirected to w.
func WithDebugWriter(w io.Writer, f func()) {
	hostContext.SetValues(gls.Values{ctxDebugWriter: w}, f)
}

func debugWriter() io.Writer {
	if v, ok := hostContext.GetValue(ctxDebugWriter); ok {
		if w, ok := v.(io.Writer); ok && w != nil {
			return w
		}
	}
	return os.Stdout
}

func init_debug() {
	DeclareTitle("Debugging")

	Declare(&Declaration{
		"debug", "prints the internal structure and memory size of each argument and returns the first one",
		1, Unbounded,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to inspect"},
		}, "any",
		func(a ...Scmer) (Scmer, error) {
			w := debugWriter()
			for _, v := range a {
				fmt.Fprintf(w, "%s [%s]\n", DebugString(v), units.BytesSize(float64(ComputeSize(v))))
			}
			return a[0], nil
		},
	})
}
