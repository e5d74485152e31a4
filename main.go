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
/*
	minilisp: a small Scheme-flavoured interpreter with a prompt,
	script runner and websocket REPL

	https://pkelchte.wordpress.com/2013/12/31/scm-go/

*/
package main

import "os"
import "fmt"
import "flag"
import "time"
import "context"
import "syscall"
import "os/signal"
import "crypto/rand"
import "path/filepath"
import "github.com/dc0d/onexit"
import "github.com/google/uuid"
import "github.com/fsnotify/fsnotify"
import "github.com/launix-de/minilisp/scm"

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// runScript evaluates a whole file in s and prints the last value.
func runScript(s *scm.Session, filename string) error {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	result, err := s.EvalAll(filename, string(bytes))
	if err != nil {
		return err
	}
	fmt.Println(filename+":", scm.String(result))
	return nil
}

// watchScript reruns filename in a fresh session whenever it changes on disk.
func watchScript(global *scm.Session, filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	rerun := func() {
		s := scm.NewSession(global.Snapshot())
		if err := runScript(s, filename); err != nil {
			scm.PrintError(err.Error())
		}
	}
	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				// flush all other events
				for {
					time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
					select {
					case <-watcher.Events:
						// ignore
					default:
						goto to_rerun
					}
				}
			to_rerun:
				fmt.Println("Reloading " + filename + " ...")
				rerun()
				watcher.Add(filename) // text editors rename, so we have to rewatch
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				scm.PrintError("watch " + filename + ": " + err.Error())
			}
		}
	}()
	if err := watcher.Add(filename); err != nil {
		watcher.Close()
		return nil, err
	}
	return watcher, nil
}

func main() {
	fmt.Print(`minilisp Copyright (C) 2023-2026   Carl-Philip Hänsch
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;

`)

	// init random generator for session UUIDs
	uuid.SetRand(rand.Reader)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute expression (repeatable)")
	var watch bool
	flag.BoolVar(&watch, "watch", false, "Rerun script files when they change on disk")
	serve := ""
	flag.StringVar(&serve, "serve", "", "Serve the websocket REPL on this address, e.g. :8080")
	tracing := false
	flag.BoolVar(&tracing, "trace", false, "Write evaluation timings to $MINILISP_TRACEDIR/trace_<unix>.json")
	docs := ""
	flag.StringVar(&docs, "docs", "", "Write Markdown documentation of all primitives into this folder and exit")
	history := filepath.Join(os.TempDir(), ".minilisp-history.tmp")
	flag.StringVar(&history, "history", history, "History file of the prompt")
	batch := false
	flag.BoolVar(&batch, "batch", false, "Do not open the prompt after running scripts and commands")
	flag.Parse()
	scripts := flag.Args()

	if docs != "" {
		if err := scm.WriteDocumentation(docs); err != nil {
			scm.PrintError(err.Error())
			os.Exit(1)
		}
		fmt.Println("Documentation written to " + docs)
		return
	}

	if tracing {
		if err := scm.SetTrace(true); err != nil {
			scm.PrintError("trace: " + err.Error())
		}
	}
	onexit.Register(func() { scm.SetTrace(false) }) // close trace file on exit

	// scripts and commands share the global frame
	global := scm.NewSession(nil)
	failed := false
	for _, scmfile := range scripts {
		fmt.Println("Loading " + scmfile + " ...")
		if err := runScript(global, scmfile); err != nil {
			scm.PrintError(err.Error())
			failed = true
		}
	}
	for _, command := range commands {
		fmt.Println("Executing " + command + " ...")
		result, err := global.Eval("command line", command)
		if err != nil {
			scm.PrintError(err.Error())
			failed = true
			continue
		}
		fmt.Println(scm.String(result))
	}

	if watch {
		for _, scmfile := range scripts {
			watcher, err := watchScript(global, scmfile)
			if err != nil {
				scm.PrintError(err.Error())
				continue
			}
			defer watcher.Close()
		}
	}

	// install exit handler
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if serve != "" {
		server := scm.HTTPServe(serve, global)
		fmt.Println("Serving websocket REPL on " + serve + "/repl")
		defer func() {
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			server.Shutdown(shutdown)
		}()
	}

	if batch {
		if serve != "" || watch {
			<-ctx.Done()
		}
		exitroutine()
		if failed {
			os.Exit(1)
		}
		return
	}

	go func() {
		<-ctx.Done()
		exitroutine()
		os.Exit(1)
	}()

	fmt.Print(`

    Type :help to show help

`)
	// REPL shell
	scm.Repl(scm.NewSession(global.Snapshot()), history)

	// normal shutdown
	exitroutine()
}

func exitroutine() {
	fmt.Println("Exit procedure...")
	scm.SetTrace(false)
	fmt.Println("Exit procedure finished")
}
