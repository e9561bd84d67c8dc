package source

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/flatmap"
)

// YAML flattens the first document of a YAML stream. Scalars keep their
// source text ("yes" stays "yes", "1.50" stays "1.50"); anchors and aliases
// are resolved.
func YAML(b []byte) (flatmap.Values, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, parseError("malformed YAML", err)
	}
	out := flatmap.Values{}
	if doc.Kind == 0 {
		// empty input
		return out, nil
	}
	if err := flattenYAML(&doc, "", out, 0); err != nil {
		return nil, err
	}
	return out, nil
}

// maxYAMLDepth bounds alias expansion.
const maxYAMLDepth = 256

func flattenYAML(n *yaml.Node, key string, out flatmap.Values, depth int) error {
	if depth > maxYAMLDepth {
		return formatError(key, "YAML nesting too deep", nil)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			if err := flattenYAML(c, key, out, depth+1); err != nil {
				return err
			}
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode || k.Value == "" {
				return formatError(key, "mapping keys must be non-empty scalars", nil)
			}
			if k.Tag == "!!merge" {
				return formatError(key, "merge keys are not supported", nil)
			}
			if err := flattenYAML(v, joinKey(key, k.Value), out, depth+1); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, c := range n.Content {
			if err := flattenYAML(c, key+"["+strconv.Itoa(i)+"]", out, depth+1); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		if n.Alias == nil {
			return formatError(key, "dangling alias", nil)
		}
		return flattenYAML(n.Alias, key, out, depth+1)
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		return put(out, key, n.Value)
	}
	return nil
}

// MarshalYAML writes v as one flat YAML mapping with keys in ascending
// order. Every value is tagged as a string so it reads back unchanged.
func MarshalYAML(v flatmap.Values) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range v.Keys() {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v[k]},
		)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, formatError("", "cannot encode values as YAML", err)
	}
	if err := enc.Close(); err != nil {
		return nil, formatError("", "cannot encode values as YAML", err)
	}
	return buf.Bytes(), nil
}
