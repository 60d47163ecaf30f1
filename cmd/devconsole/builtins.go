package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Adirelle/devconsole/pkg/commands"
	"github.com/apex/log"
)

type (
	echoCommand struct{}
)

// Version is set at build time.
var Version = "dev"

var output io.Writer = os.Stdout

func init() {
	commands.DeclareType[echoCommand]("echo", "print")
	commands.DeclareFunc(versionCommand, "version")
	commands.DeclareFunc(logLevelCommand, "loglevel")
}

func (echoCommand) Invoke(args []string) error {
	_, err := fmt.Fprintln(output, strings.Join(args, " "))
	return err
}

func versionCommand() {
	fmt.Fprintf(output, "devconsole %s\n", Version)
}

func logLevelCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: loglevel <debug|info|warn|error|fatal>")
	}
	level, err := log.ParseLevel(args[0])
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}
