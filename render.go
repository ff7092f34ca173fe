package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatTOML = "toml"
	formatYAML = "yaml"
)

func render(value any, format string, compact bool) (bytes.Buffer, error) {
	var rendered bytes.Buffer
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(&rendered)
		encoder.SetEscapeHTML(false)
		if !compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(value); err != nil {
			return rendered, err
		}
	case formatTOML:
		converted, err := convertNumbers(value, tomlNumber)
		if err != nil {
			return rendered, err
		}
		table, isTable := converted.(map[string]any)
		if !isTable {
			return rendered, fmt.Errorf("the merged model must be an object, got %s", kind(value))
		}
		if err := toml.NewEncoder(&rendered).Encode(table); err != nil {
			return rendered, err
		}
	case formatYAML:
		converted, err := convertNumbers(value, yamlNumber)
		if err != nil {
			return rendered, err
		}
		encoder := yaml.NewEncoder(&rendered)
		encoder.SetIndent(2)
		if err := encoder.Encode(converted); err != nil {
			return rendered, err
		}
		if err := encoder.Close(); err != nil {
			return rendered, err
		}
	default:
		return rendered, fmt.Errorf("unsupported format: %s", format)
	}
	return rendered, nil
}

// convertNumbers rebuilds value with every json.Number passed through number,
// since neither the TOML nor the YAML encoder knows json.Number.
func convertNumbers(value any, number func(json.Number) (any, error)) (any, error) {
	switch v := value.(type) {
	case json.Number:
		return number(v)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := convertNumbers(item, number)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := convertNumbers(item, number)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = converted
		}
		return out, nil
	default:
		return v, nil
	}
}

func isInteger(n json.Number) bool {
	return !strings.ContainsAny(n.String(), ".eE")
}

// tomlNumber maps numbers onto TOML's 64-bit integers and binary64 floats.
// Integers that do not fit are refused rather than rounded.
func tomlNumber(n json.Number) (any, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	if isInteger(n) {
		return nil, fmt.Errorf("integer %s does not fit in a TOML integer", n)
	}
	return n.Float64()
}

// yamlNumber keeps the number's original text, so YAML output is as exact as
// the JSON it came from.
func yamlNumber(n json.Number) (any, error) {
	tag := "!!float"
	if isInteger(n) {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: n.String()}, nil
}

func kind(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case json.Number, float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	default:
		return fmt.Sprintf("%T", value)
	}
}
