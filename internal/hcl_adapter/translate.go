package hcl_adapter

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/node"
	"github.com/zclconf/go-cty/cty"
)

// propertiesBlock is the reserved top-level block holding substitution
// properties.
const propertiesBlock = "properties"

// translateFile turns a parsed file into a model: the properties block feeds
// the properties, every other top-level block becomes a component node.
func translateFile(file *hcl.File) (*config.Model, hcl.Diagnostics) {
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported file body",
			Detail:   "Only native HCL syntax files can be loaded.",
		}}
	}

	var diags hcl.Diagnostics
	model := config.NewModel()

	for name, attr := range body.Attributes {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected top-level attribute",
			Detail:   fmt.Sprintf("Attribute %q must be placed inside a block.", name),
			Subject:  attr.SrcRange.Ptr(),
		})
	}

	for _, block := range body.Blocks {
		if block.Type == propertiesBlock {
			diags = append(diags, translateProperties(block, model.Properties)...)
			continue
		}
		n, blockDiags := translateBlock(file.Bytes, block)
		diags = append(diags, blockDiags...)
		if n != nil {
			model.Components = append(model.Components, n)
		}
	}
	return model, diags
}

func translateProperties(block *hclsyntax.Block, into map[string]string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	if len(block.Body.Blocks) > 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected block",
			Detail:   "The properties block only accepts attributes.",
			Subject:  block.Body.Blocks[0].DefRange().Ptr(),
		})
	}
	for name, attr := range block.Body.Attributes {
		if len(attr.Expr.Variables()) > 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid property",
				Detail:   fmt.Sprintf("Property %q must be a literal value.", name),
				Subject:  attr.SrcRange.Ptr(),
			})
			continue
		}
		value, ok, valDiags := literalString(attr)
		diags = append(diags, valDiags...)
		if ok {
			into[name] = value
		}
	}
	return diags
}

// translateBlock converts a block and its nested blocks into a node. The
// block type is the node name, a single label becomes the "name" attribute.
func translateBlock(src []byte, block *hclsyntax.Block) (*node.Node, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	n := node.New(block.Type)
	n.Range = block.DefRange().Ptr()

	if len(block.Labels) > 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Too many labels",
			Detail:   fmt.Sprintf("Block %q accepts at most one label, its name.", block.Type),
			Subject:  block.LabelRanges[1].Ptr(),
		})
	}
	if len(block.Labels) > 0 {
		if _, clash := block.Body.Attributes["name"]; clash {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate name",
				Detail:   fmt.Sprintf("Block %q has both a label and a name attribute.", block.Type),
				Subject:  block.Body.Attributes["name"].SrcRange.Ptr(),
			})
		}
		n.SetAttribute("name", block.Labels[0])
	}

	for name, attr := range block.Body.Attributes {
		value, ok, attrDiags := attributeString(src, attr)
		diags = append(diags, attrDiags...)
		if ok {
			n.SetAttribute(name, value)
		}
	}

	for _, child := range block.Body.Blocks {
		c, childDiags := translateBlock(src, child)
		diags = append(diags, childDiags...)
		if c != nil {
			n.AddChild(c)
		}
	}
	return n, diags
}

// attributeString renders an attribute as the raw string the engine works
// with. Expressions referencing variables are kept as ${...} templates so
// they are resolved when the component is built; anything else is evaluated
// now. Null values report ok=false.
func attributeString(src []byte, attr *hclsyntax.Attribute) (string, bool, hcl.Diagnostics) {
	if len(attr.Expr.Variables()) == 0 {
		return literalString(attr)
	}

	switch expr := attr.Expr.(type) {
	case *hclsyntax.TemplateExpr:
		var sb strings.Builder
		for _, part := range expr.Parts {
			if lit, ok := part.(*hclsyntax.LiteralValueExpr); ok && lit.Val.Type() == cty.String {
				sb.WriteString(escapeTemplate(lit.Val.AsString()))
				continue
			}
			sb.WriteString("${" + string(part.Range().SliceBytes(src)) + "}")
		}
		return sb.String(), true, nil
	case *hclsyntax.TemplateWrapExpr:
		return "${" + string(expr.Wrapped.Range().SliceBytes(src)) + "}", true, nil
	default:
		return "${" + string(expr.Range().SliceBytes(src)) + "}", true, nil
	}
}

func literalString(attr *hclsyntax.Attribute) (string, bool, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", false, diags
	}
	if val.IsNull() {
		return "", false, nil
	}
	if !val.Type().IsPrimitiveType() {
		return "", false, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported attribute value",
			Detail:   fmt.Sprintf("Attribute %q must be a string, number or bool; use a nested block for structured values.", attr.Name),
			Subject:  attr.SrcRange.Ptr(),
		}}
	}

	var s string
	if diags := gohcl.DecodeExpression(attr.Expr, nil, &s); diags.HasErrors() {
		return "", false, diags
	}
	return escapeTemplate(s), true, nil
}

// escapeTemplate protects literal text from a second round of template
// evaluation at bind time.
func escapeTemplate(s string) string {
	s = strings.ReplaceAll(s, "${", "$${")
	return strings.ReplaceAll(s, "%{", "%%{")
}
