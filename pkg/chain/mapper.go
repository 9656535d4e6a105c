package chain

import (
	"strings"

	"github.com/shuldan/clikit/pkg/console"
)

// Mapper builds the input values of a dependent command from the finished
// parent's input. Keys follow console.ArrayInput conventions.
type Mapper interface {
	Map(in console.Input) (map[string]any, error)
}

type MapperFunc func(in console.Input) (map[string]any, error)

func (f MapperFunc) Map(in console.Input) (map[string]any, error) {
	return f(in)
}

// MapSpec is a declarative mapper. Pairs sharing a destination merge into
// one list in declared order; absent source values are left out.
type MapSpec []MapPair

func (s MapSpec) Map(in console.Input) (map[string]any, error) {
	params := make(map[string]any, len(s))
	for _, pair := range s {
		value := read(in, pair.From)
		if value == nil {
			continue
		}
		existing, seen := params[pair.To]
		if !seen {
			params[pair.To] = value
			continue
		}
		params[pair.To] = append(flatten(existing), flatten(value)...)
	}
	return params, nil
}

func read(in console.Input, from string) any {
	if name, ok := strings.CutPrefix(from, "--"); ok {
		return in.Option(name)
	}
	return in.Argument(from)
}

func flatten(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []int:
		out := make([]any, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out
	}
	return []any{value}
}
