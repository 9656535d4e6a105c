package console

type Validator interface {
	Validate(value any) (any, error)
}

type ValidatorFunc func(value any) (any, error)

func (f ValidatorFunc) Validate(value any) (any, error) {
	return f(value)
}

type Normalizer interface {
	Normalize(value any) any
}

type NormalizerFunc func(value any) any

func (f NormalizerFunc) Normalize(value any) any {
	return f(value)
}

// Question describes one prompt. An empty answer yields Default, which then
// goes through Normalizer and Validator like any typed answer.
type Question struct {
	Text         string
	Default      any
	Normalizer   Normalizer
	Validator    Validator
	Autocomplete func(fragment string) []string
	Choices      []string
	MultiSelect  bool
	Confirmation bool
	MaxAttempts  int
}

func (q *Question) Clone() *Question {
	c := *q
	c.Choices = append([]string(nil), q.Choices...)
	return &c
}

func (q *Question) resolve(value any) (any, error) {
	if q.Normalizer != nil {
		value = q.Normalizer.Normalize(value)
	}
	if q.Validator != nil {
		return q.Validator.Validate(value)
	}
	return value, nil
}
