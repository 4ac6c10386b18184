// Package config loads the properties of a CORS policy
// from YAML files and from command-line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"

	"github.com/jub0bs/corsfilter"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path and returns the properties it contains.
// See [Parse] for the expected layout.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	props, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return props, nil
}

// Parse decodes a YAML document into properties.
// The document must be a mapping from property names to scalars
// or to sequences of scalars; a sequence is rendered as a word list.
// Properties may also be nested under a "cors" key,
// in which case their names get the "cors." prefix:
//
//	cors:
//	  allowOrigin:
//	    - https://example.com
//	    - https://example.org
//	  supportsCredentials: true
//
// An empty document yields no properties.
func Parse(data []byte) (map[string]string, error) {
	props := make(map[string]string)
	if len(bytes.TrimSpace(data)) == 0 {
		return props, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return props, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return props, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top-level value must be a mapping", root.Line)
	}
	if err := collect(props, "", root); err != nil {
		return nil, err
	}
	return props, nil
}

var prefixKey = strings.TrimSuffix(cors.PropPrefix, ".")

func collect(dst map[string]string, prefix string, m *yaml.Node) error {
	var errs []error
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		name := prefix + k.Value
		switch v.Kind {
		case yaml.ScalarNode:
			dst[name] = scalar(v)
		case yaml.SequenceNode:
			s, err := wordList(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("property %s: %w", name, err))
				continue
			}
			dst[name] = s
		case yaml.MappingNode:
			if prefix != "" || k.Value != prefixKey {
				const tmpl = "line %d: property %s must not be a mapping"
				errs = append(errs, fmt.Errorf(tmpl, v.Line, name))
				continue
			}
			if err := collect(dst, cors.PropPrefix, v); err != nil {
				errs = append(errs, err)
			}
		default:
			const tmpl = "line %d: unsupported value for property %s"
			errs = append(errs, fmt.Errorf(tmpl, v.Line, name))
		}
	}
	return errors.Join(errs...)
}

func scalar(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

// emptyList is a non-blank word list that contains no words;
// an empty sequence must not be mistaken for an absent property.
const emptyList = ","

func wordList(n *yaml.Node) (string, error) {
	if len(n.Content) == 0 {
		return emptyList, nil
	}
	words := make([]string, 0, len(n.Content))
	for _, e := range n.Content {
		if e.Kind != yaml.ScalarNode {
			return "", fmt.Errorf("line %d: sequence elements must be scalars", e.Line)
		}
		words = append(words, scalar(e))
	}
	return strings.Join(words, ", "), nil
}

// ParseOverrides parses overrides of the form name=value,
// as passed on the command line.
// The value may be empty, but the name may not.
func ParseOverrides(overrides []string) (map[string]string, error) {
	props := make(map[string]string, len(overrides))
	var errs []error
	for _, o := range overrides {
		name, value, found := strings.Cut(o, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			const tmpl = "config: malformed override %q (want name=value)"
			errs = append(errs, fmt.Errorf(tmpl, o))
			continue
		}
		props[name] = value
	}
	if len(errs) != 0 {
		return nil, errors.Join(errs...)
	}
	return props, nil
}

// Merge returns the union of base and overrides;
// where both contain a property, the value from overrides wins.
// Neither argument is modified.
func Merge(base, overrides map[string]string) map[string]string {
	props := make(map[string]string, len(base)+len(overrides))
	maps.Copy(props, base)
	for k, v := range overrides {
		// An override of "allowOrigin" must not be shadowed
		// by a "cors.allowOrigin" from the file, or vice versa.
		delete(props, counterpart(k))
		props[k] = v
	}
	return props
}

func counterpart(name string) string {
	if bare, ok := strings.CutPrefix(name, cors.PropPrefix); ok {
		return bare
	}
	return cors.PropPrefix + name
}
