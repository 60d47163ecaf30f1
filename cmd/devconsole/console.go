package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Adirelle/devconsole/pkg/commands"
	"github.com/Adirelle/devconsole/pkg/utils"
	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
)

type (
	// Console is a line-based front end: it reads command lines and reports failures.
	// It stops reading for good once Serve returns.
	Console struct {
		interp *commands.Interpreter
		in     io.Reader
		out    io.Writer
		prompt string

		startReader sync.Once
		stopReader  sync.Once
		lines       chan string
		done        chan struct{}
	}
)

const clearScreen = "\033[H\033[2J"

var (
	errQuit = errors.New("quit requested")

	_ suture.Service = (*Console)(nil)
)

func NewConsole(interp *commands.Interpreter, in io.Reader, out io.Writer, prompt string) *Console {
	return &Console{
		interp: interp,
		in:     in,
		out:    out,
		prompt: prompt,
		lines:  make(chan string),
		done:   make(chan struct{}),
	}
}

func (c *Console) GoString() string {
	return "Console"
}

// RegisterCommands registers the commands tied to the console itself.
func (c *Console) RegisterCommands(registry *commands.Registry, loader *commands.Loader, history *History) {
	registry.Register("clear", commands.Func(func([]string) error {
		_, err := io.WriteString(c.out, clearScreen)
		return err
	}))
	registry.Register("quit", commands.Func(func([]string) error {
		return errQuit
	}))
	registry.Register("help", commands.Func(func([]string) error {
		_, err := fmt.Fprintf(c.out, "commands: %s\n", strings.Join(registry.Names(), ", "))
		return err
	}))
	registry.Register("reload", commands.Func(func([]string) error {
		n := loader.Reload()
		_, err := fmt.Fprintf(c.out, "%d commands discovered\n", n)
		return err
	}))
	if history != nil {
		registry.Register("history", commands.Func(func([]string) error {
			return history.Print(c.out)
		}))
	}
}

func (c *Console) Serve(ctx context.Context) error {
	c.startReader.Do(func() { go c.readLines() })
	defer c.stopReader.Do(func() { close(c.done) })

	for {
		_, _ = io.WriteString(c.out, c.prompt)
		line, err := utils.RecvWithContext(ctx, c.lines)
		switch {
		case errors.Is(err, utils.ErrChannelClosed):
			return suture.ErrTerminateSupervisorTree
		case err != nil:
			return nil
		case c.Handle(line):
			return suture.ErrTerminateSupervisorTree
		}
	}
}

func (c *Console) readLines() {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Error("console.read")
	}
}

// Handle interprets line and prints any failure. It reports whether the console
// should stop.
func (c *Console) Handle(line string) (quit bool) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("line", line).WithField("panic", r).Error("console.panic")
			fmt.Fprintf(c.out, "panic: %v\n", r)
		}
	}()

	err := c.interp.Interpret(line)
	switch {
	case err == nil:
	case errors.Is(err, errQuit):
		return true
	case errors.Is(err, commands.ErrCommandNotFound):
		fmt.Fprintf(c.out, "%s\n", err)
	default:
		fmt.Fprintf(c.out, "error: %+v\n", err)
	}
	return false
}
