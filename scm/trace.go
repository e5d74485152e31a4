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

import "io"
import "os"
import "fmt"
import "sync"
import "time"
import "path/filepath"
import "encoding/json"

// Tracefile writes evaluation timings in the chrome://tracing JSON array format.
// Events arriving after Close are dropped.
type Tracefile struct {
	isFirst bool
	closed  bool
	file    io.WriteCloser
	m       sync.Mutex
}

var traceMu sync.Mutex
var trace *Tracefile // nil: tracing is off

// SetTrace closes the current trace and, if on, opens a new one in
// $MINILISP_TRACEDIR.
func SetTrace(on bool) error {
	traceMu.Lock()
	defer traceMu.Unlock()
	if trace != nil {
		trace.Close()
		trace = nil
	}
	if on {
		name := filepath.Join(os.Getenv("MINILISP_TRACEDIR"), "trace_"+fmt.Sprint(time.Now().Unix())+".json")
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		trace = NewTrace(f)
	}
	return nil
}

// SetTraceFile installs t as the active trace; nil turns tracing off.
func SetTraceFile(t *Tracefile) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if trace != nil {
		trace.Close()
	}
	trace = t
}

func currentTrace() *Tracefile {
	traceMu.Lock()
	defer traceMu.Unlock()
	return trace
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	result := new(Tracefile)
	result.file = file
	result.isFirst = true
	return result
}

func (t *Tracefile) Close() {
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	t.file.Write([]byte("]"))
	t.file.Close()
}

func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.EventHalf(name, cat, "B", 0, 0)
	defer t.EventHalf(name, cat, "E", 0, 0)
	f()
}

func (t *Tracefile) EventHalf(name string, cat string, typ string, tid int, pid int) {
	ts := time.Since(start).Microseconds()
	t.EventFull(name, cat, typ, ts, tid, pid)
}

/*
*

	@name string function
	@cat string comma separated categories (for filtering)
	@typ B/E for begin/end, X for events
	@ts timestamp in microseconds
	@pid process id
	@tid thread id
*/
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64, tid int, pid int) {
	t.m.Lock()
	defer t.m.Unlock()
	if t.closed {
		return
	}
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	t.file.Write([]byte("{\"name\": "))
	b, _ := json.Marshal(name)
	t.file.Write(b)
	t.file.Write([]byte(", \"cat\": "))
	b, _ = json.Marshal(cat)
	t.file.Write(b)
	t.file.Write([]byte(", \"ph\": \""))
	t.file.Write([]byte(typ))
	t.file.Write([]byte("\", \"ts\": "))
	b, _ = json.Marshal(ts)
	t.file.Write(b)
	t.file.Write([]byte(", \"pid\": "))
	b, _ = json.Marshal(pid)
	t.file.Write(b)
	t.file.Write([]byte(", \"tid\": "))
	b, _ = json.Marshal(tid)
	t.file.Write(b)
	t.file.Write([]byte(", \"s\": \"g\"}"))
}

var start time.Time = time.Now()
