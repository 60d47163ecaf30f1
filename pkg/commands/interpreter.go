package commands

import (
	"fmt"

	"github.com/Adirelle/devconsole/pkg/events"
	"github.com/apex/log"
)

type (
	// Interpreter turns command lines into command invocations.
	Interpreter struct {
		registry   *Registry
		logger     log.Interface
		dispatcher events.Dispatcher
	}

	InterpreterOption func(*Interpreter)

	// Invoked is published after a command line has been dispatched, whatever the outcome.
	Invoked struct {
		events.Time
		Name string
		Args []string
		Err  error
	}
)

const InvokedType events.Type = "CommandInvoked"

var (
	// interface checks
	_ events.Event = Invoked{}
	_ fmt.Stringer = Invoked{}
)

func NewInterpreter(registry *Registry, opts ...InterpreterOption) *Interpreter {
	i := &Interpreter{registry: registry, logger: log.Log}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func WithLogger(logger log.Interface) InterpreterOption {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

// WithDispatcher publishes an Invoked event for every dispatched command.
func WithDispatcher(dispatcher events.Dispatcher) InterpreterOption {
	return func(i *Interpreter) {
		i.dispatcher = dispatcher
	}
}

func (i *Interpreter) Registry() *Registry {
	return i.registry
}

// Interpret splits line and invokes the command named by its first token with the
// remaining ones. Blank lines are ignored. Unknown commands yield a *NotFoundError;
// errors returned by the command are passed through as is.
func (i *Interpreter) Interpret(line string) error {
	tokens := Split(line)
	if len(tokens) == 0 {
		return nil
	}
	return i.InvokeCommand(tokens[0], tokens[1:])
}

// InvokeCommand invokes the command registered as name. A nil args is passed as an
// empty slice.
func (i *Interpreter) InvokeCommand(name string, args []string) error {
	if name == "" {
		return fmt.Errorf("%w: missing command name", ErrInvalidInput)
	}
	if args == nil {
		args = []string{}
	}

	logger := i.logger.WithFields(log.Fields{"command": name, "args": args})

	cmd, found := i.registry.Lookup(name)
	if !found {
		err := &NotFoundError{Name: name}
		logger.Warn("command.unknown")
		i.publish(name, args, err)
		return err
	}

	logger.Debug("command.invoke")
	err := cmd.Invoke(args)
	if err == nil {
		logger.Info("command.success")
	} else {
		logger.WithError(err).Warn("command.error")
	}
	i.publish(name, args, err)

	return err
}

func (i *Interpreter) publish(name string, args []string, err error) {
	if i.dispatcher != nil {
		i.dispatcher.DispatchEvent(Invoked{events.Now(), name, args, err})
	}
}

func (Invoked) Type() events.Type {
	return InvokedType
}

func (e Invoked) String() string {
	return Join(append([]string{e.Name}, e.Args...))
}

func (e Invoked) Fields() log.Fields {
	fields := log.Fields{
		"command": e.Name,
		"args":    e.Args,
	}
	if e.Err != nil {
		fields["error"] = e.Err.Error()
	}
	return fields
}
