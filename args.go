package carwash

import (
	"strconv"
	"strings"
)

// ParseGenerator splits a named generator such as "words:3,true" into
// the generator name and its arguments. Arguments are comma separated
// with no escaping; those that parse as integers become ints, "true"
// and "false" become bools and anything else stays a string
func ParseGenerator(spec string) (string, []any) {
	name, rest, found := strings.Cut(spec, ":")
	if !found {
		return name, []any{}
	}
	tokens := strings.Split(rest, ",")
	args := make([]any, len(tokens))
	for i, t := range tokens {
		args[i] = coerceArg(t)
	}
	return name, args
}

func coerceArg(t string) any {
	if i, err := strconv.Atoi(t); err == nil {
		return i
	}
	switch t {
	case "true":
		return true
	case "false":
		return false
	}
	return t
}
