package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Adirelle/devconsole/pkg/aliases"
	"github.com/Adirelle/devconsole/pkg/commands"
	"github.com/Adirelle/devconsole/pkg/events"
	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
)

type (
	// RootSupervisor owns the command interpreter and the services around it.
	RootSupervisor struct {
		*suture.Supervisor
		Dispatcher  *events.AsyncDispatcher
		Registry    *commands.Registry
		Loader      *commands.Loader
		Interpreter *commands.Interpreter
		History     *History

		logger log.Interface
	}
)

var supervisorMessages = map[suture.EventType]string{
	suture.EventTypeStopTimeout:      "supervisor.timeout",
	suture.EventTypeServicePanic:     "supervisor.panic",
	suture.EventTypeServiceTerminate: "supervisor.terminate",
	suture.EventTypeBackoff:          "supervisor.backoff",
	suture.EventTypeResume:           "supervisor.resume",
}

// MakeRootSupervisor wires an empty registry to an interpreter publishing its
// invocations to the history. Declared commands are registered by Discover.
func MakeRootSupervisor(conf *Config, logger log.Interface) *RootSupervisor {
	s := &RootSupervisor{
		Dispatcher: events.NewAsyncDispatcher(),
		Registry:   commands.NewRegistry(commands.WithRegistryLogger(logger)),
		History:    NewHistory(conf.History),
		logger:     logger,
	}
	s.Supervisor = suture.New(filepath.Base(os.Args[0]), suture.Spec{EventHook: s.logEvent})
	s.Supervisor.Add(s.Dispatcher)
	s.Dispatcher.AddHandler(s.History)
	s.Loader = commands.NewLoader(commands.Declarations, s.Registry)
	s.Interpreter = commands.NewInterpreter(s.Registry,
		commands.WithLogger(logger),
		commands.WithDispatcher(s.Dispatcher),
	)
	return s
}

// Add also subscribes services that handle events to the dispatcher.
func (s *RootSupervisor) Add(svc suture.Service) suture.ServiceToken {
	if handler, isHandler := svc.(events.Handler); isHandler {
		s.Dispatcher.AddHandler(handler)
	}
	return s.Supervisor.Add(svc)
}

// Discover registers the declared commands, on the first call only.
func (s *RootSupervisor) Discover() {
	if s.Loader.Load() {
		s.logger.WithField("commands", s.Registry.Len()).Info("devconsole.discovered")
	}
}

func (s *RootSupervisor) LoadAliases(path string) error {
	a, err := aliases.Load(path)
	if err != nil {
		return err
	}
	a.Register(s.Registry, s.Interpreter)
	s.logger.WithField("aliases", len(a)).Info("devconsole.aliases")
	return nil
}

// AttachConsole adds a console service reading from in and registers its commands.
func (s *RootSupervisor) AttachConsole(in io.Reader, out io.Writer, prompt string) *Console {
	console := NewConsole(s.Interpreter, in, out, prompt)
	console.RegisterCommands(s.Registry, s.Loader, s.History)
	s.Add(console)
	return console
}

func (s *RootSupervisor) logEvent(event suture.Event) {
	entry := s.logger.
		WithField("message", event.String()).
		WithFields(log.Fields(event.Map()))
	message := supervisorMessages[event.Type()]
	if event.Type() == suture.EventTypeServicePanic {
		entry.Error(message)
	} else {
		entry.Warn(message)
	}
}
