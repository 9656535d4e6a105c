package config

import (
	"bytes"
	"os"
	"strings"
	"text/template"
)

type templatedLoader struct {
	loader Loader
	funcs  template.FuncMap
}

func newTemplatedLoader(loader Loader) Loader {
	return &templatedLoader{
		loader: loader,
		funcs: template.FuncMap{
			"default": func(def, val any) string {
				if s, ok := val.(string); ok && s != "" {
					return s
				}
				s, _ := def.(string)
				return s
			},
			"env":   os.Getenv,
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"home": func() string {
				home, _ := os.UserHomeDir()
				return home
			},
		},
	}
}

func (t *templatedLoader) Load() (map[string]any, error) {
	raw, err := t.loader.Load()
	if err != nil {
		return nil, err
	}

	env := environment()
	processed := make(map[string]any, len(raw))
	for k, v := range raw {
		processed[k] = t.process(v, env)
	}
	return processed, nil
}

func (t *templatedLoader) process(v any, env map[string]string) any {
	switch val := v.(type) {
	case string:
		if !strings.Contains(val, "{{") || !strings.Contains(val, "}}") {
			return val
		}
		rendered, err := t.render(val, env)
		if err != nil {
			return val
		}
		return rendered
	case map[string]any:
		mapped := make(map[string]any, len(val))
		for k, item := range val {
			mapped[k] = t.process(item, env)
		}
		return mapped
	case []any:
		items := make([]any, len(val))
		for i, item := range val {
			items[i] = t.process(item, env)
		}
		return items
	}
	return v
}

func (t *templatedLoader) render(input string, env map[string]string) (string, error) {
	tmpl, err := template.New("config").Funcs(t.funcs).Option("missingkey=zero").Parse(input)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, env); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func environment() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
