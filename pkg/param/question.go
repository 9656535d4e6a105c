package param

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/shuldan/clikit/pkg/console"
)

// Question builds a fresh prompt for the parameter on every call. Callers may
// swap the validator of the result without affecting later prompts.
func (p *Parameter) Question() *console.Question {
	q := &console.Question{
		Text:       p.questionText(),
		Default:    p.questionDefault(),
		Normalizer: console.NormalizerFunc(p.rule.normalize),
		Validator:  console.ValidatorFunc(p.validate),
	}

	switch r := p.rule.(type) {
	case *boolRule:
		q.Confirmation = true
	case *pathRule:
		q.Autocomplete = r.complete
	case *choiceRule:
		q.Choices = append([]string(nil), r.choices...)
		q.MultiSelect = r.multiSelect
		q.Autocomplete = r.complete
	}

	return q
}

func (p *Parameter) validate(value any) (any, error) {
	if isEmpty(value) {
		return nil, ErrValueRequired.WithDetail("name", p.name)
	}
	return p.rule.validate(p.name, value)
}

func (p *Parameter) validateSupplied(value any) (any, error) {
	if value == nil {
		return nil, ErrValueRequired.WithDetail("name", p.name)
	}
	return p.rule.validate(p.name, value)
}

func (p *Parameter) questionText() string {
	var b strings.Builder
	b.WriteString(p.description)

	if p.kind == KindBool {
		b.WriteString(" (yes/no)")
	}
	if c, ok := p.rule.(*choiceRule); ok && c.multiSelect {
		b.WriteString(" (comma separated)")
	}
	if p.multiple {
		b.WriteString(" (one value per prompt, empty answer to finish")
		if p.required {
			b.WriteString("; at least one value is required")
		}
		b.WriteString(")")
	}

	if shown := p.displayDefault(); shown != "" {
		b.WriteString(" [")
		b.WriteString(shown)
		b.WriteString("]")
	}

	b.WriteString(": ")
	return b.String()
}

func (p *Parameter) displayDefault() string {
	if p.def == nil {
		return ""
	}
	if v, ok := p.def.(bool); ok {
		if v {
			return "yes"
		}
		return "no"
	}
	if items, ok := sliceItems(p.def); ok {
		return joinItems(items, ", ")
	}
	return fmt.Sprintf("%v", p.def)
}

func (p *Parameter) questionDefault() any {
	if p.kind == KindBool && p.def == nil {
		return false
	}
	if items, ok := sliceItems(p.def); ok {
		return joinItems(items, "\n")
	}
	return p.def
}

func joinItems(items []any, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%v", item)
	}
	return strings.Join(parts, sep)
}

func sliceItems(value any) ([]any, bool) {
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	if items, ok := sliceItems(value); ok {
		return len(items) == 0
	}
	return false
}
