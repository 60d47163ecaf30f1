package commands

import (
	"fmt"
	"net/url"
	"reflect"
	"runtime"
	"strings"
	"sync"

	"github.com/apex/log"
	"golang.org/x/exp/slices"
)

type (
	// Declaration binds a command name to something that can produce a Command.
	// Declarations are collected in a Catalog, usually from package init functions,
	// and turned into registrations by Discover.
	Declaration struct {
		Name    string
		Package string
		target  target
	}

	target interface {
		command() (Command, error)
		String() string
	}

	factoryTarget struct {
		typ     reflect.Type
		factory func() Command
	}

	funcTarget struct {
		fn any
	}

	// Catalog holds the declarations made by the loaded packages.
	Catalog struct {
		mu           sync.Mutex
		declarations []Declaration
	}

	// Loader runs the discovery once.
	Loader struct {
		catalog  *Catalog
		registry *Registry
		once     sync.Once
	}
)

// Declarations is the catalog filled by DeclareType and DeclareFunc.
var Declarations = &Catalog{}

// DeclareType declares that a zero *T is registered under each of names.
// It is meant to be called from init functions and panics on an empty name.
func DeclareType[T any, P interface {
	*T
	Command
}](names ...string) {
	Declarations.declare(callerPackage(2), factoryTarget{reflect.TypeOf((*T)(nil)), Factory[T, P]()}, names)
}

// DeclareFunc declares that fn is registered under each of names. fn must be a
// func() or a func([]string); other funcs are skipped at discovery time. It
// panics on an empty name.
func DeclareFunc(fn any, names ...string) {
	Declarations.declare(callerPackage(2), funcTarget{fn}, names)
}

// Discover registers every declaration of the Declarations catalog.
func Discover(registry *Registry) int {
	return Declarations.Discover(registry)
}

// Factory returns a func creating a new zero T each time it is called.
func Factory[T any, P interface {
	*T
	Command
}]() func() Command {
	return func() Command {
		return P(new(T))
	}
}

func (c *Catalog) DeclareFactory(factory func() Command, names ...string) {
	if factory == nil {
		panic(ErrNilCommand)
	}
	c.declare(callerPackage(2), factoryTarget{factory: factory}, names)
}

func (c *Catalog) DeclareFunc(fn any, names ...string) {
	c.declare(callerPackage(2), funcTarget{fn}, names)
}

func (c *Catalog) declare(pkg string, t target, names []string) {
	if len(names) == 0 {
		panic(fmt.Errorf("%w: %s declared without name in %s", ErrEmptyName, t, pkg))
	}
	for _, name := range names {
		if name == "" {
			panic(fmt.Errorf("%w: %s declared in %s", ErrEmptyName, t, pkg))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		c.declarations = append(c.declarations, Declaration{name, pkg, t})
	}
}

func (c *Catalog) Declarations() []Declaration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.declarations)
}

// Discover registers every declaration into registry, replacing existing commands
// with the same names. It returns the number of registered commands.
func (c *Catalog) Discover(registry *Registry) int {
	return c.discover(registry, func(Declaration) bool { return true })
}

// DiscoverPackage is like Discover but only considers declarations made by pkgPath.
func (c *Catalog) DiscoverPackage(registry *Registry, pkgPath string) int {
	return c.discover(registry, func(d Declaration) bool { return d.Package == pkgPath })
}

func (c *Catalog) discover(registry *Registry, filter func(Declaration) bool) (count int) {
	logger := registry.logger
	for _, decl := range c.Declarations() {
		if !filter(decl) {
			continue
		}
		cmd, err := decl.target.command()
		if err != nil {
			logger.WithFields(decl).WithError(err).Warn("discovery.skip")
			continue
		}
		registry.Register(decl.Name, cmd)
		count++
	}
	logger.WithField("count", count).Debug("discovery.done")
	return
}

func (d Declaration) String() string {
	return fmt.Sprintf("%s => %s", d.Name, d.target)
}

func (d Declaration) Fields() log.Fields {
	return log.Fields{
		"command": d.Name,
		"package": d.Package,
		"target":  d.target.String(),
	}
}

func (t factoryTarget) command() (Command, error) {
	cmd := t.factory()
	if cmd == nil {
		return nil, ErrNilCommand
	}
	return cmd, nil
}

func (t factoryTarget) String() string {
	if t.typ != nil {
		return t.typ.String()
	}
	return funcName(t.factory)
}

func (t funcTarget) command() (Command, error) {
	return NewMethod(t.fn)
}

func (t funcTarget) String() string {
	if value := reflect.ValueOf(t.fn); value.Kind() == reflect.Func {
		return funcName(t.fn)
	}
	return fmt.Sprintf("%T", t.fn)
}

func NewLoader(catalog *Catalog, registry *Registry) *Loader {
	return &Loader{catalog: catalog, registry: registry}
}

// Load runs the discovery on its first call only. It reports whether it did.
func (l *Loader) Load() (loaded bool) {
	l.once.Do(func() {
		l.catalog.Discover(l.registry)
		loaded = true
	})
	return
}

// Reload runs the discovery again.
func (l *Loader) Reload() int {
	l.once.Do(func() {})
	return l.catalog.Discover(l.registry)
}

func funcName(fn any) string {
	value := reflect.ValueOf(fn)
	if value.IsNil() {
		return "nil"
	}
	if f := runtime.FuncForPC(value.Pointer()); f != nil {
		return f.Name()
	}
	return value.Type().String()
}

// callerPackage returns the import path of the package of the function skip
// frames above it.
func callerPackage(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}
	return packageOf(f.Name())
}

// packageOf extracts the import path from a symbol name like
// "gopkg.in/foo%2ev2.(*T).Invoke". Dots of the last path element are escaped
// in symbol names, so the first dot after the last slash ends the path.
func packageOf(symbol string) string {
	slash := strings.LastIndexByte(symbol, '/')
	if dot := strings.IndexByte(symbol[slash+1:], '.'); dot >= 0 {
		symbol = symbol[:slash+1+dot]
	}
	if path, err := url.PathUnescape(symbol); err == nil {
		return path
	}
	return symbol
}
