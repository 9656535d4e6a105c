package param

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/shuldan/clikit/pkg/console"
)

type rule interface {
	normalize(value any) any
	validate(name string, value any) (any, error)
}

type PathKind int

const (
	AnyPath PathKind = iota
	FilePath
	DirPath
)

func (k PathKind) String() string {
	switch k {
	case FilePath:
		return "file"
	case DirPath:
		return "directory"
	}
	return "path"
}

type boolRule struct{}

func (boolRule) normalize(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return true
	case "n", "no", "false", "0":
		return false
	}
	return value
}

func (boolRule) validate(name string, value any) (any, error) {
	if _, ok := value.(bool); !ok {
		return nil, invalidType(name, "yes or no", value)
	}
	return value, nil
}

var intLiteral = regexp.MustCompile(`^[+-]?\d+$`)

type intRule struct {
	min *int
	max *int
}

func (intRule) normalize(value any) any {
	switch v := value.(type) {
	case string:
		if !intLiteral.MatchString(v) {
			return value
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return value
		}
		return n
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		rv := reflect.ValueOf(v)
		if rv.CanInt() {
			return int(rv.Int())
		}
		return int(rv.Uint())
	}
	return value
}

func (r *intRule) validate(name string, value any) (any, error) {
	n, ok := value.(int)
	if !ok {
		return nil, invalidType(name, "an integer", value)
	}
	if r.min != nil && n < *r.min {
		return nil, ErrBelowMinimum.WithDetail("name", name).WithDetail("min", *r.min)
	}
	if r.max != nil && n > *r.max {
		return nil, ErrAboveMaximum.WithDetail("name", name).WithDetail("max", *r.max)
	}
	return n, nil
}

type stringRule struct {
	pattern *regexp.Regexp
}

func (r *stringRule) setPattern(name, expr string) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return ErrInvalidPattern.WithDetail("name", name).WithDetail("pattern", expr).WithCause(err)
	}
	r.pattern = re
	return nil
}

func (stringRule) normalize(value any) any {
	return value
}

func (r *stringRule) validate(name string, value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, invalidType(name, "a string", value)
	}
	if r.pattern != nil && !r.pattern.MatchString(s) {
		return nil, ErrPatternMismatch.
			WithDetail("name", name).
			WithDetail("value", s).
			WithDetail("pattern", r.pattern.String())
	}
	return s, nil
}

type pathRule struct {
	mustExist bool
	kind      PathKind
}

func (pathRule) normalize(value any) any {
	return value
}

func (r *pathRule) validate(name string, value any) (any, error) {
	path, ok := value.(string)
	if !ok {
		return nil, invalidType(name, "a path", value)
	}
	if !r.mustExist {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, ErrPathNotFound.WithDetail("name", name).WithDetail("value", path).WithCause(err)
	}
	if (r.kind == FilePath && info.IsDir()) || (r.kind == DirPath && !info.IsDir()) {
		return nil, ErrPathKind.WithDetail("name", name).WithDetail("value", path).WithDetail("kind", r.kind.String())
	}
	return path, nil
}

func (pathRule) complete(fragment string) []string {
	dir, base := filepath.Split(fragment)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}

	var matches []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), base) {
			continue
		}
		match := dir + entry.Name()
		if entry.IsDir() {
			match += string(filepath.Separator)
		}
		matches = append(matches, match)
	}
	return matches
}

type choiceRule struct {
	choices     []string
	multiSelect bool
}

func (choiceRule) normalize(value any) any {
	return value
}

func (r *choiceRule) validate(name string, value any) (any, error) {
	if !r.multiSelect {
		s, ok := value.(string)
		if !ok {
			return nil, invalidType(name, "one of "+strings.Join(r.choices, ", "), value)
		}
		return r.pick(name, s)
	}

	var answers []string
	switch v := value.(type) {
	case string:
		answers = strings.Split(v, ",")
	case []string:
		answers = v
	default:
		return nil, invalidType(name, "a comma separated list", value)
	}

	picked := make([]string, 0, len(answers))
	for _, answer := range answers {
		choice, err := r.pick(name, answer)
		if err != nil {
			return nil, err
		}
		picked = append(picked, choice)
	}
	return picked, nil
}

// pick accepts a candidate or its index.
func (r *choiceRule) pick(name, answer string) (string, error) {
	answer = strings.TrimSpace(answer)
	for _, choice := range r.choices {
		if choice == answer {
			return choice, nil
		}
	}
	if i, err := strconv.Atoi(answer); err == nil && i >= 0 && i < len(r.choices) {
		return r.choices[i], nil
	}

	err := ErrInvalidChoice.WithDetail("name", name).WithDetail("value", answer)
	if ranks := fuzzy.RankFindFold(answer, r.choices); len(ranks) > 0 {
		sort.Sort(ranks)
		err = err.WithDetail("suggestion", ranks[0].Target)
	}
	return "", err
}

func (r *choiceRule) complete(fragment string) []string {
	return fuzzy.FindFold(fragment, r.choices)
}

type customRule struct {
	validator  console.Validator
	normalizer console.Normalizer
}

func (r *customRule) normalize(value any) any {
	if r.normalizer == nil {
		return value
	}
	return r.normalizer.Normalize(value)
}

func (r *customRule) validate(_ string, value any) (any, error) {
	if r.validator == nil {
		return value, nil
	}
	return r.validator.Validate(value)
}

func invalidType(name, expected string, value any) error {
	return ErrInvalidType.
		WithDetail("name", name).
		WithDetail("expected", expected).
		WithDetail("value", fmt.Sprintf("%v", value))
}
