package carwash

import (
	"reflect"
	"sort"
	"strings"

	"github.com/colindecarlo/carwash/faker"
)

// columnFunc is a resolved formatter. value is the column's current value
type columnFunc func(f *faker.Faker, column string, value any) (any, error)

var (
	fakerType = reflect.TypeOf((*faker.Faker)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// resolveFormatter turns a configured formatter into a columnFunc.
// Named generators are parsed and looked up here so that a bad name or
// bad arguments are reported before any row is written
func resolveFormatter(fm Formatter) (columnFunc, error) {
	if fm == nil {
		return nil, configError("formatter is nil")
	}
	switch v := reflect.ValueOf(fm); v.Kind() {
	case reflect.Func, reflect.Ptr, reflect.Map, reflect.Interface, reflect.Slice, reflect.Chan:
		if v.IsNil() {
			return nil, configError("formatter %T is nil", fm)
		}
	}
	switch g := fm.(type) {
	case Generator:
		return resolveGenerator(string(g))
	case ValueFormatter:
		return g.FormatValue, nil
	default:
		return func(f *faker.Faker, column string, _ any) (any, error) {
			return fm.Format(f, column)
		}, nil
	}
}

// boundColumn is a column with its resolved formatter
type boundColumn struct {
	name string
	fn   columnFunc
}

// resolveColumns resolves the formatters of every column of a table,
// ordered by column name so that a seeded Faker gives repeatable output
func resolveColumns(table string, rules ColumnRules) ([]boundColumn, error) {
	names := make([]string, 0, len(rules))
	for column := range rules {
		names = append(names, column)
	}
	sort.Strings(names)

	bound := make([]boundColumn, 0, len(rules))
	for _, column := range names {
		fn, err := resolveFormatter(rules[column])
		if err != nil {
			return nil, &ScrubError{Table: table, Column: column, Err: err}
		}
		bound = append(bound, boundColumn{name: column, fn: fn})
	}
	return bound, nil
}

// generatorMethod finds the Faker method for a generator name, which is
// the method name with a lower case first letter, eg "safeEmail" for
// SafeEmail
func generatorMethod(name string) (reflect.Method, bool) {
	if name == "" {
		return reflect.Method{}, false
	}
	m, ok := fakerType.MethodByName(strings.ToUpper(name[:1]) + name[1:])
	if !ok {
		return m, false
	}
	// generators return a value and optionally an error
	switch m.Type.NumOut() {
	case 1:
		return m, true
	case 2:
		return m, m.Type.Out(1) == errorType
	}
	return m, false
}

// resolveGenerator parses a named generator and binds its arguments to
// the Faker method it names
func resolveGenerator(spec string) (columnFunc, error) {
	name, args := ParseGenerator(spec)
	method, ok := generatorMethod(name)
	if !ok {
		return nil, configError("unknown generator %q", name)
	}
	in, err := bindArgs(name, method.Type, args)
	if err != nil {
		return nil, err
	}
	returnsErr := method.Type.NumOut() == 2

	return func(f *faker.Faker, column string, _ any) (any, error) {
		out := method.Func.Call(append([]reflect.Value{reflect.ValueOf(f)}, in...))
		if returnsErr && !out[1].IsNil() {
			return nil, out[1].Interface().(error)
		}
		return out[0].Interface(), nil
	}, nil
}

// bindArgs converts parsed arguments to the parameter types of a Faker
// method. The method type includes the receiver as its first parameter
func bindArgs(name string, t reflect.Type, args []any) ([]reflect.Value, error) {
	params := t.NumIn() - 1
	switch {
	case t.IsVariadic() && len(args) < params-1:
		return nil, arityError("%s takes at least %d arguments, got %d", name, params-1, len(args))
	case !t.IsVariadic() && len(args) != params:
		return nil, arityError("%s takes %d arguments, got %d", name, params, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if t.IsVariadic() && i >= params-1 {
			pt = t.In(t.NumIn() - 1).Elem()
		} else {
			pt = t.In(i + 1)
		}
		v, ok := convertArg(a, pt)
		if !ok {
			return nil, arityError("argument %d of %s: cannot use %v (%T) as %s", i+1, name, a, a, pt)
		}
		in[i] = v
	}
	return in, nil
}

// convertArg converts a parsed argument to a parameter type. Only
// conversions within a kind family are made, so an int never becomes a
// string
func convertArg(a any, pt reflect.Type) (reflect.Value, bool) {
	v := reflect.ValueOf(a)
	if v.Type().AssignableTo(pt) {
		return v, true
	}
	switch v.Kind() {
	case reflect.Int:
		switch pt.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Float32, reflect.Float64:
			return v.Convert(pt), true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if v.Int() < 0 {
				return v, false
			}
			return v.Convert(pt), true
		}
	case reflect.String:
		if pt.Kind() == reflect.String {
			return v.Convert(pt), true
		}
	case reflect.Bool:
		if pt.Kind() == reflect.Bool {
			return v.Convert(pt), true
		}
	}
	return v, false
}
