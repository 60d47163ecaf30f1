package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Adirelle/devconsole/pkg/commands"
	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/thejerf/suture/v4"
)

type endlessInput struct{}

func (endlessInput) Read(p []byte) (int, error) {
	return copy(p, "help\n"), nil
}

func newTestConsole(input io.Reader) (*Console, *commands.Registry, *bytes.Buffer) {
	registry := commands.NewRegistry(commands.WithRegistryLogger(&log.Logger{Handler: discard.Default}))
	interp := commands.NewInterpreter(registry, commands.WithLogger(&log.Logger{Handler: discard.Default}))
	out := &bytes.Buffer{}
	console := NewConsole(interp, input, out, "> ")
	console.RegisterCommands(registry, commands.NewLoader(&commands.Catalog{}, registry), NewHistory(10))
	return console, registry, out
}

func TestConsoleHandle(t *testing.T) {
	t.Parallel()
	console, registry, out := newTestConsole(strings.NewReader(""))
	registry.Register("fail", commands.Func(func([]string) error { return errors.New("boom") }))
	registry.Register("crash", commands.Func(func([]string) error { panic("kaboom") }))

	tests := []struct {
		line     string
		quit     bool
		expected string
	}{
		{"", false, ""},
		{"nope", false, "command nope not found\n"},
		{"fail", false, "error: boom\n"},
		{"crash", false, "panic: kaboom\n"},
		{"help", false, "commands: clear, crash, fail, help, history, quit, reload\n"},
		{"clear", false, clearScreen},
		{"quit", true, ""},
	}

	for _, tt := range tests {
		out.Reset()
		if quit := console.Handle(tt.line); quit != tt.quit {
			t.Errorf("%q: expected quit=%t", tt.line, tt.quit)
		}
		if out.String() != tt.expected {
			t.Errorf("%q: unexpected output %q, expected %q", tt.line, out.String(), tt.expected)
		}
	}
}

func TestConsoleServe(t *testing.T) {
	t.Parallel()
	console, registry, out := newTestConsole(strings.NewReader("record a \"b c\"\n\nquit\nrecord never\n"))
	var recorded [][]string
	registry.Register("record", commands.Func(func(args []string) error {
		recorded = append(recorded, args)
		return nil
	}))

	if err := console.Serve(context.Background()); !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Errorf("unexpected error: %v", err)
	}
	if len(recorded) != 1 || len(recorded[0]) != 2 || recorded[0][1] != "b c" {
		t.Errorf("unexpected records: %q", recorded)
	}
	if out.String() != "> > > " {
		t.Errorf("unexpected output: %q", out.String())
	}
	waitReaderStopped(t, console)
}

func TestConsoleServeStopsReaderOnCancel(t *testing.T) {
	t.Parallel()
	console, _, _ := newTestConsole(endlessInput{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := console.Serve(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	waitReaderStopped(t, console)
}

func waitReaderStopped(t *testing.T, console *Console) {
	t.Helper()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for range console.lines {
		}
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("line reader is still running")
	}
}

func TestConsoleServeStopsAtEOF(t *testing.T) {
	t.Parallel()
	console, _, _ := newTestConsole(strings.NewReader("help\n"))

	if err := console.Serve(context.Background()); !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		t.Errorf("unexpected error: %v", err)
	}
}
