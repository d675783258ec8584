package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fortio.org/log"
	"github.com/fatih/color"
	"github.com/peterh/liner"

	"tdop/interpreter-go/pkg/driver"
	"tdop/interpreter-go/pkg/parser"
	"tdop/interpreter-go/pkg/runtime"
)

const replSourceName = "<stdin>"

// lineReader is the part of liner.State the REPL needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// newLineReader uses liner on a terminal and plain buffered reads otherwise.
// The plain reader shares in with the session so input() and the prompt
// consume the same stream.
func newLineReader(stdin io.Reader, in *bufio.Reader, stdout io.Writer, cfg *driver.Config) lineReader {
	if isTerminal(stdin) {
		return newTerminalReader(cfg.HistoryPath())
	}
	return &plainReader{in: in, out: stdout}
}

type plainReader struct {
	in  *bufio.Reader
	out io.Writer
}

func (r *plainReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	line, err := r.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (r *plainReader) AppendHistory(string) {}

func (r *plainReader) Close() error { return nil }

type terminalReader struct {
	*liner.State
	history string
}

func newTerminalReader(history string) *terminalReader {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	r := &terminalReader{State: ln, history: history}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigc
		_ = r.Close()
		os.Exit(130)
	}()
	return r
}

func (r *terminalReader) Close() error {
	if r.history != "" {
		if f, err := os.Create(r.history); err == nil {
			_, _ = r.WriteHistory(f)
			_ = f.Close()
		} else {
			log.Warnf("cannot save history to %s: %v", r.history, err)
		}
	}
	return r.State.Close()
}

// runREPL reads entries until end of input. An entry that fails to parse
// only because it ended early is extended with continuation lines.
func runREPL(session *driver.Session, lr lineReader, cfg *driver.Config, stdout, stderr io.Writer, errColor *color.Color) int {
	defer lr.Close()
	var pending strings.Builder
	for {
		prompt := cfg.Prompt
		if pending.Len() > 0 {
			prompt = cfg.ContinuationPrompt
		}
		line, err := lr.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return 130
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				errColor.Fprintln(stderr, err)
			}
			if pending.Len() > 0 {
				evalEntry(session, pending.String(), true, cfg, stdout, stderr, errColor)
			}
			fmt.Fprintln(stdout)
			return 0
		}

		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)
		src := pending.String()
		if strings.TrimSpace(src) == "" {
			pending.Reset()
			continue
		}
		if !evalEntry(session, src, false, cfg, stdout, stderr, errColor) {
			continue
		}
		lr.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		pending.Reset()
	}
}

// evalEntry runs one entry. It returns false when more lines are needed;
// at end of input an incomplete entry is reported like any other error.
func evalEntry(session *driver.Session, src string, atEOF bool, cfg *driver.Config, stdout, stderr io.Writer, errColor *color.Color) bool {
	res, err := session.RunSource(replSourceName, src)
	if err != nil && !atEOF && parser.IsIncomplete(err) {
		log.LogVf("entry continues: %v", err)
		return false
	}
	if cfg.Debug {
		dump(stderr, session, res)
	}
	if err != nil {
		errColor.Fprintln(stderr, driver.Describe(err, replSourceName, src))
		return true
	}
	if res.Echo() {
		fmt.Fprintln(stdout, runtime.Inspect(res.Value))
	}
	return true
}
