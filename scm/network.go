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

import "io"
import "bytes"
import "fmt"
import "time"
import "sync"
import "strings"
import "net/http"
import "github.com/gorilla/websocket"

// NewReplHandler serves the interpreter over HTTP:
//
//	GET  /repl  websocket; every text message is evaluated in a session that
//	            lives as long as the connection
//	POST /eval  the request body is run as a script in a fresh session
//
// Each session starts from a snapshot of global, so connections never see
// each other's bindings.
//
// Every evaluation is answered with "= <value>" or "error <kind>: <message>".
// Output of debug is sent as "debug <line>" before the answer.
func NewReplHandler(global *Session) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/repl", func(res http.ResponseWriter, req *http.Request) {
		serveWebsocket(global, res, req)
	})
	mux.HandleFunc("/eval", func(res http.ResponseWriter, req *http.Request) {
		serveEval(global, res, req)
	})
	return mux
}

// HTTPServe starts the REPL handler on addr in the background.
func HTTPServe(addr string, global *Session) *http.Server {
	server := &http.Server{
		Addr:           addr,
		Handler:        NewReplHandler(global),
		ReadTimeout:    10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			PrintError("http server: " + err.Error())
		}
	}()
	return server
}

// FormatResult renders the answer line for one evaluation.
func FormatResult(v Scmer, err error) string {
	if err != nil {
		kind, _ := KindOf(err)
		return "error " + kind.String() + ": " + err.Error()
	}
	return "= " + String(v)
}

func serveEval(global *Session, res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		res.Header().Set("Allow", http.MethodPost)
		http.Error(res, "405 Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	var b strings.Builder
	if _, err := io.Copy(&b, req.Body); err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}
	req.Body.Close()

	var out strings.Builder
	sess := NewSession(global.Snapshot())
	sess.Debug = &lineWriter{send: func(line string) { out.WriteString("debug " + line + "\n") }}
	v, err := sess.EvalAll("http request", b.String())
	out.WriteString(FormatResult(v, err) + "\n")

	res.Header().Set("Content-Type", "text/plain")
	res.Header().Set("X-Session", sess.ID.String())
	if err != nil {
		res.WriteHeader(http.StatusUnprocessableEntity)
	}
	io.WriteString(res, out.String())
}

func serveWebsocket(global *Session, res http.ResponseWriter, req *http.Request) {
	var upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	ws, err := upgrader.Upgrade(res, req, nil)
	if err != nil {
		// Upgrade already answered with an HTTP error
		PrintError("websocket upgrade: " + err.Error())
		return
	}
	defer ws.Close()

	var sendmutex sync.Mutex
	send := func(msg string) error {
		sendmutex.Lock()
		defer sendmutex.Unlock()
		return ws.WriteMessage(websocket.TextMessage, []byte(msg))
	}

	sess := NewSession(global.Snapshot())
	sess.Debug = &lineWriter{send: func(line string) { send("debug " + line) }}
	defer func() {
		if r := recover(); r != nil {
			PrintError("error in websocket receive: " + fmt.Sprint(r))
		}
	}()
	for {
		// websocket read loop
		messageType, msg, err := ws.ReadMessage()
		if err != nil {
			if _, ok := err.(*websocket.CloseError); !ok {
				PrintError("websocket " + sess.ID.String() + ": " + err.Error())
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if strings.TrimSpace(string(msg)) == "" {
			continue
		}
		v, err := sess.EvalAll("websocket", string(msg))
		if err := send(FormatResult(v, err)); err != nil {
			return
		}
	}
}

// lineWriter cuts a byte stream into lines and hands each one to send.
type lineWriter struct {
	buf  []byte
	send func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.send(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}
