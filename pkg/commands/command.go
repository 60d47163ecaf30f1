package commands

import (
	"fmt"
	"reflect"
	"runtime"
)

type (
	// Command is anything that can be invoked with the arguments of a command line.
	// A returned error is reported, untouched, to the caller of the Interpreter.
	Command interface {
		Invoke(args []string) error
	}

	// Func wraps a closure. A nil Func does nothing.
	Func func(args []string) error

	// Method wraps a func() or a func([]string). Results are ignored, except a
	// trailing error which is returned by Invoke.
	Method struct {
		fn        reflect.Value
		withArgs  bool
		withError bool
	}
)

var (
	stringSliceType = reflect.TypeOf([]string(nil))
	errorType       = reflect.TypeOf((*error)(nil)).Elem()

	// interface checks
	_ Command      = Func(nil)
	_ Command      = (*Method)(nil)
	_ fmt.Stringer = (*Method)(nil)
)

func (f Func) Invoke(args []string) error {
	if f == nil {
		return nil
	}
	return f(args)
}

// NewMethod validates fn and wraps it. It fails with an *InvalidTargetError when fn
// does not have a suitable signature.
func NewMethod(fn any) (*Method, error) {
	value, err := validateMethod(fn)
	if err != nil {
		return nil, err
	}
	t := value.Type()
	withError := t.NumOut() > 0 && t.Out(t.NumOut()-1) == errorType
	return &Method{fn: value, withArgs: t.NumIn() == 1, withError: withError}, nil
}

// MustMethod is like NewMethod but panics on invalid targets.
func MustMethod(fn any) *Method {
	m, err := NewMethod(fn)
	if err != nil {
		panic(err)
	}
	return m
}

// IsValidMethod reports whether fn can back a Method.
func IsValidMethod(fn any) bool {
	_, err := validateMethod(fn)
	return err == nil
}

func validateMethod(fn any) (value reflect.Value, err error) {
	if fn == nil {
		return value, &InvalidTargetError{}
	}
	value = reflect.ValueOf(fn)
	t := value.Type()
	if t.Kind() != reflect.Func || value.IsNil() {
		return value, &InvalidTargetError{t}
	}
	switch {
	case t.IsVariadic(),
		t.NumIn() > 1,
		t.NumIn() == 1 && t.In(0) != stringSliceType:
		return value, &InvalidTargetError{t}
	}
	return value, nil
}

func (m *Method) Invoke(args []string) error {
	var in []reflect.Value
	if m.withArgs {
		in = []reflect.Value{reflect.ValueOf(args)}
	}
	out := m.fn.Call(in)
	if m.withError {
		if err := out[len(out)-1]; !err.IsNil() {
			return err.Interface().(error)
		}
	}
	return nil
}

func (m *Method) String() string {
	if f := runtime.FuncForPC(m.fn.Pointer()); f != nil {
		return f.Name()
	}
	return m.fn.Type().String()
}
