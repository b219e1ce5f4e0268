package yaml_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/node"
	"gopkg.in/yaml.v3"
)

const propertiesKey = "properties"

type translator struct {
	filename string
	diags    hcl.Diagnostics
}

func translateDocument(filename string, doc *yaml.Node) (*config.Model, hcl.Diagnostics) {
	tr := &translator{filename: filename}
	model := config.NewModel()

	root := resolve(doc)
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return model, nil
		}
		root = resolve(root.Content[0])
	}
	if isNull(root) {
		return model, nil
	}
	if root.Kind != yaml.MappingNode {
		tr.errorf(root, "Invalid document", "A configuration document must be a mapping of element names.")
		return model, tr.diags
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], resolve(root.Content[i+1])
		if key.Value == propertiesKey {
			tr.properties(value, model.Properties)
			continue
		}
		switch value.Kind {
		case yaml.SequenceNode:
			for _, item := range value.Content {
				model.Components = append(model.Components, tr.element(key, resolve(item)))
			}
		default:
			model.Components = append(model.Components, tr.element(key, value))
		}
	}
	return model, tr.diags
}

func (tr *translator) properties(value *yaml.Node, into map[string]string) {
	if isNull(value) {
		return
	}
	if value.Kind != yaml.MappingNode {
		tr.errorf(value, "Invalid properties", "Properties must be a mapping of names to scalar values.")
		return
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, v := value.Content[i], resolve(value.Content[i+1])
		if v.Kind != yaml.ScalarNode {
			tr.errorf(v, "Invalid property", fmt.Sprintf("Property %q must be a scalar value.", key.Value))
			continue
		}
		if !isNull(v) {
			into[key.Value] = v.Value
		}
	}
}

// element converts one YAML value into a node named after its key.
func (tr *translator) element(key, value *yaml.Node) *node.Node {
	n := node.New(key.Value)
	n.Range = tr.rangeOf(key)

	switch value.Kind {
	case yaml.ScalarNode:
		if !isNull(value) {
			n.Value = value.Value
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			k, v := value.Content[i], resolve(value.Content[i+1])
			switch v.Kind {
			case yaml.ScalarNode:
				if _, dup := n.Attributes[k.Value]; dup {
					tr.errorf(k, "Duplicate attribute", fmt.Sprintf("Attribute %q is set more than once in %q.", k.Value, key.Value))
					continue
				}
				if !isNull(v) {
					n.SetAttribute(k.Value, v.Value)
				}
			case yaml.MappingNode:
				n.AddChild(tr.element(k, v))
			case yaml.SequenceNode:
				for _, item := range v.Content {
					n.AddChild(tr.element(k, resolve(item)))
				}
			}
		}
	default:
		tr.errorf(value, "Invalid element", fmt.Sprintf("Element %q must be a mapping or a scalar.", key.Value))
	}
	return n
}

func (tr *translator) errorf(at *yaml.Node, summary, detail string) {
	tr.diags = append(tr.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  tr.rangeOf(at),
	})
}

func (tr *translator) rangeOf(n *yaml.Node) *hcl.Range {
	pos := hcl.Pos{Line: n.Line, Column: n.Column}
	return &hcl.Range{Filename: tr.filename, Start: pos, End: pos}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
