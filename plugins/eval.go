package plugins

import (
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/strata/internal/reader"
)

const definitionFuncName = "ModuleDefinitions"

// EvalDefinitions interprets the buffered module source and collects the
// definitions declared via ModuleDefinitions(). The evaluated payloads are
// round-tripped through the YAML schema so Go-authored and YAML-authored
// definitions validate identically.
func EvalDefinitions(r *reader.ModuleReader) ([]ModuleDefinition, error) {
	if r == nil {
		return nil, fmt.Errorf("plugin: module reader is required")
	}
	if r.Len() == 0 {
		return nil, fmt.Errorf("plugin: %s is empty", r.QualifiedName())
	}
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("plugin: prepare interpreter for %s: %w", r.QualifiedName(), err)
	}
	if _, err := i.Eval(string(r.Bytes())); err != nil {
		return nil, fmt.Errorf("plugin: interpret %s: %w", r.QualifiedName(), err)
	}
	fnValue, err := i.Eval(definitionFuncName)
	if err != nil {
		return nil, fmt.Errorf("plugin: %s must define %s() ([]map[string]any, error): %w",
			r.QualifiedName(), definitionFuncName, err)
	}
	raws, callErr := invokeDefinitionFunc(fnValue)
	if callErr != nil {
		return nil, fmt.Errorf("plugin: %s: %w", r.QualifiedName(), callErr)
	}
	defs := make([]ModuleDefinition, 0, len(raws))
	for idx, raw := range raws {
		payload, err := yaml.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("plugin: %s definition[%d]: %w", r.QualifiedName(), idx, err)
		}
		parsed, err := ParseDefinitionYAML(payload)
		if err != nil {
			return nil, fmt.Errorf("plugin: %s definition[%d]: %w", r.QualifiedName(), idx, err)
		}
		defs = append(defs, parsed)
	}
	return defs, nil
}

func invokeDefinitionFunc(value reflect.Value) ([]map[string]any, error) {
	if !value.IsValid() {
		return nil, fmt.Errorf("missing %s function", definitionFuncName)
	}
	fn := value
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s is not a function", definitionFuncName)
	}
	results := fn.Call(nil)
	if len(results) == 0 || len(results) > 2 {
		return nil, fmt.Errorf("%s must return ([]map[string]any[, error])", definitionFuncName)
	}
	defsVal := results[0]
	if len(results) == 2 {
		if !results[1].IsNil() {
			if e, ok := results[1].Interface().(error); ok && e != nil {
				return nil, e
			}
			return nil, fmt.Errorf("%s returned non-error second value", definitionFuncName)
		}
	}
	defs, ok := defsVal.Interface().([]map[string]any)
	if ok {
		return defs, nil
	}
	if defsVal.Kind() == reflect.Slice {
		result := make([]map[string]any, defsVal.Len())
		for i := 0; i < defsVal.Len(); i++ {
			entry := defsVal.Index(i).Interface()
			m, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s[%d] is not map[string]any", definitionFuncName, i)
			}
			result[i] = m
		}
		return result, nil
	}
	return nil, fmt.Errorf("%s must return []map[string]any", definitionFuncName)
}
