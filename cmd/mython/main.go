// Command mython runs Mython programs, at the file or the REPL prompt
// (SPEC_FULL.md §6.3).
//
// Grounded feature-for-feature on the teacher's cmd/msg/main.go: the same
// subcommand dispatch shape, the same REPL dependency
// (github.com/peterh/liner) for line editing and persistent history, the
// same Ctrl-C/SIGTERM handling via signal.Notify, and the same
// parse-probe trick for multi-line continuation — adapted here to
// Mython's indentation-based blocks instead of MindScript's S-expressions.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	mython "github.com/bda-user/cpp-mython"
)

const (
	appName     = "mython"
	historyFile = ".mython_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl())
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Usage:
  %s run <file.my>    Run a script.
  %s repl             Start the REPL.

`, appName, appName)
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.my>\n", appName)
		return 2
	}
	ip := mython.NewInterpreter()
	if err := ip.RunFile(args[0], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	return 0
}

func cmdRepl() int {
	fmt.Println("Mython REPL. Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := mython.NewInterpreter()

	for {
		src, ok := readStatement(ln)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == ":quit" {
			return 0
		}
		if trimmed == "" {
			continue
		}

		if err := ip.Run(src, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
		}
		ln.AppendHistory(strings.ReplaceAll(trimmed, "\n", " "))
	}
}

// readStatement accumulates lines until they form a complete program or
// the user aborts. While the latest line is indented or ends with ':', a
// block is still open and reading continues (an empty line closes it).
// Otherwise the parser itself is the "is this complete yet" oracle
// (mirroring the teacher's ParseSExprInteractiveWithSpans/IsIncomplete
// probe): a buffer that fails only because input ran out keeps reading,
// and anything else is handed back to be run.
func readStatement(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil { // Ctrl-C: abandon this statement, start fresh
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if t := strings.TrimSpace(line); strings.HasSuffix(t, ":") || (t != "" && line[0] == ' ') {
			continue
		}
		if _, perr := mython.ParseSource(src); perr == nil || !isIncompleteParse(perr) {
			return src, true
		}
	}
}

func isIncompleteParse(err error) bool {
	pe, ok := err.(*mython.ParseError)
	return ok && strings.Contains(pe.Msg, "unexpected end of input")
}
