package handlers

import (
	"context"
	"fmt"
)

// visitValue resolves the node's text value, falling back to a "value"
// attribute and then to the declared default.
func visitValue(ctx context.Context, b *Binding) (any, error) {
	raw := b.Node.Value
	if raw == "" {
		if key, ok := b.Node.AttributeKey("value"); ok && b.Claims.ClaimAttribute(key) {
			raw = b.Node.Attributes[key]
			b.Matched = key
		}
	}
	if raw == "" {
		raw = b.Input.Default
	}
	if raw == "" {
		if b.Input.Required {
			return nil, fmt.Errorf("%s requires a value", b.Node.Describe())
		}
		return nil, nil
	}

	value, err := b.Substitute(raw)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}
	return ConvertString(value, b.Input.Type)
}

// visitNode hands the node itself to the input.
func visitNode(_ context.Context, b *Binding) (any, error) {
	return b.Node, nil
}

// visitConfiguration hands the configuration services to the input.
func visitConfiguration(_ context.Context, b *Binding) (any, error) {
	return b.Config, nil
}
