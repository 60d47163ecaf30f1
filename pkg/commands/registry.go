package commands

import (
	"sync"

	"github.com/apex/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Registry maps command names to commands. Names are matched exactly.
	// It is safe for concurrent use.
	Registry struct {
		mu       sync.RWMutex
		commands map[string]Command
		logger   log.Interface
	}

	RegistryOption func(*Registry)
)

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		commands: make(map[string]Command, 50),
		logger:   log.Log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func WithRegistryLogger(logger log.Interface) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Register maps name to cmd, replacing any previous command with that name.
// It panics if name is empty or cmd is nil.
func (r *Registry) Register(name string, cmd Command) {
	if name == "" {
		panic(ErrEmptyName)
	}
	if cmd == nil {
		panic(ErrNilCommand)
	}

	r.mu.Lock()
	_, replaced := r.commands[name]
	r.commands[name] = cmd
	r.mu.Unlock()

	logger := r.logger.WithField("command", name)
	if replaced {
		logger.Debug("registry.overwrite")
	} else {
		logger.Debug("registry.register")
	}
}

// Unregister removes name from the registry. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	_, found := r.commands[name]
	delete(r.commands, name)
	r.mu.Unlock()

	if found {
		r.logger.WithField("command", name).Debug("registry.unregister")
	}
}

func (r *Registry) Lookup(name string) (cmd Command, found bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, found = r.commands[name]
	return
}

func (r *Registry) Has(name string) bool {
	_, found := r.Lookup(name)
	return found
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Commands returns a copy of the current mapping.
func (r *Registry) Commands() map[string]Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.commands)
}

// Names returns the sorted names of all registered commands.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := maps.Keys(r.commands)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}
