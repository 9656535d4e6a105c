package config

import (
	"math/big"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

type HCLConfigLoader struct {
	paths []string
}

func (l *HCLConfigLoader) Load() (map[string]any, error) {
	parser := hclparse.NewParser()

	for _, path := range l.paths {
		if !hasExt(path, ".hcl") || !fileExists(path) {
			continue
		}

		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, ErrParseHCL.
				WithDetail("path", path).
				WithDetail("reason", diags.Error()).
				WithCause(diags)
		}

		attrs, diags := file.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, ErrParseHCL.
				WithDetail("path", path).
				WithDetail("reason", diags.Error()).
				WithCause(diags)
		}

		config := make(map[string]any, len(attrs))
		for name, attr := range attrs {
			value, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, ErrParseHCL.
					WithDetail("path", path).
					WithDetail("reason", diags.Error()).
					WithCause(diags)
			}
			config[name] = fromCty(value)
		}

		return config, nil
	}

	return nil, ErrNoConfigSource.WithDetail("loader", "hcl")
}

func fromCty(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString()
	case t == cty.Bool:
		return v.True()
	case t == cty.Number:
		return fromBigFloat(v.AsBigFloat())
	case t.IsObjectType() || t.IsMapType():
		result := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			result[key.AsString()] = fromCty(elem)
		}
		return result
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		result := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			result = append(result, fromCty(elem))
		}
		return result
	}
	return nil
}

func fromBigFloat(f *big.Float) any {
	if f.IsInt() {
		if i, accuracy := f.Int64(); accuracy == big.Exact {
			return int(i)
		}
	}
	out, _ := f.Float64()
	return out
}
