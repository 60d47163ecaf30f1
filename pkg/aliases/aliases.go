// Package aliases loads command aliases from a properties file.
//
// Each entry maps an alias name to a command line:
//
//	sc = spawn crate
//	big = sc 10
//
// Invoking an alias runs its command line followed by the alias arguments, which
// are passed as is, without being split again.
package aliases

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Adirelle/devconsole/pkg/commands"
	"github.com/apex/log"
	properties "github.com/dmotylev/goproperties"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Aliases maps alias names to command lines.
	Aliases map[string]string

	Interpreter interface {
		InvokeCommand(name string, args []string) error
	}

	alias struct {
		name     string
		tokens   []string
		expander *expander
	}

	expander struct {
		registry *commands.Registry
		interp   Interpreter
	}
)

// MaxDepth bounds the nesting of aliases expanding to other aliases.
const MaxDepth = 16

var (
	ErrAliasLoop   = errors.New("alias nesting too deep")
	ErrInvalidName = errors.New("invalid alias name")

	// interface checks
	_ commands.Command = (*alias)(nil)
	_ fmt.Stringer     = (*alias)(nil)
)

func Load(path string) (Aliases, error) {
	props, err := properties.Load(path)
	if err != nil {
		return nil, fmt.Errorf("could not read aliases `%s`: %w", path, err)
	}
	return Parse(props)
}

// Parse validates a raw name to command line mapping.
func Parse(entries map[string]string) (Aliases, error) {
	aliases := make(Aliases, len(entries))
	for name, line := range entries {
		name = strings.TrimSpace(name)
		if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 || strings.ContainsRune(name, commands.Quote) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
		line = strings.TrimSpace(line)
		if len(commands.Split(line)) == 0 {
			continue
		}
		aliases[name] = line
	}
	return aliases, nil
}

func (a Aliases) Names() []string {
	names := maps.Keys(a)
	slices.Sort(names)
	return names
}

// Register registers every alias into registry. Expanded command lines are
// invoked through interp.
func (a Aliases) Register(registry *commands.Registry, interp Interpreter) {
	exp := &expander{registry, interp}
	for _, name := range a.Names() {
		registry.Register(name, &alias{name, commands.Split(a[name]), exp})
		log.WithFields(log.Fields{"alias": name, "line": a[name]}).Debug("aliases.register")
	}
}

func (a *alias) Invoke(args []string) error {
	return a.expander.expand(a, args)
}

func (a *alias) String() string {
	return fmt.Sprintf("%s = %s", a.name, commands.Join(a.tokens))
}

// expand resolves nested aliases in place, so the depth is tracked per call.
// Only the registered command the chain ends with goes through the interpreter.
func (e *expander) expand(a *alias, args []string) error {
	tokens := append(slices.Clip(a.tokens), args...)
	for depth := 1; ; depth++ {
		if len(tokens) == 0 {
			return fmt.Errorf("%w: alias %s expands to nothing", commands.ErrInvalidInput, a.name)
		}
		cmd, _ := e.registry.Lookup(tokens[0])
		next, isAlias := cmd.(*alias)
		if !isAlias {
			break
		}
		if depth >= MaxDepth {
			return fmt.Errorf("%w: %s", ErrAliasLoop, a.name)
		}
		tokens = append(slices.Clip(next.tokens), tokens[1:]...)
	}
	return e.interp.InvokeCommand(tokens[0], tokens[1:])
}
