package handlers

import (
	"context"
	"fmt"

	"github.com/specialistvlad/plugbuild/internal/ctxlog"
)

const redacted = "*****"

// visitAttribute resolves an attribute input. Aliases are tried before the
// primary name; the first unclaimed match is consumed. Without a match the
// declared default is used.
func visitAttribute(ctx context.Context, b *Binding) (any, error) {
	logger := ctxlog.FromContext(ctx)

	raw, found := "", false
	for _, name := range b.Input.Names() {
		key, ok := b.Node.AttributeKey(name)
		if !ok || !b.Claims.ClaimAttribute(key) {
			continue
		}
		raw, found = b.Node.Attributes[key], true
		b.Matched = key
		break
	}

	if !found {
		if b.Input.Default == "" {
			if b.Input.Required {
				return nil, fmt.Errorf("attribute %q is required by %s", b.Input.Name, b.Node.Describe())
			}
			logger.Debug("Attribute not set, leaving default.", "input", b.Input.Name)
			return nil, nil
		}
		raw = b.Input.Default
	}

	value, err := b.Substitute(raw)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", b.Input.Name, err)
	}

	logValue := value
	if b.Input.Sensitive {
		logValue = redacted
	}
	logger.Debug("Resolved attribute.", "input", b.Input.Name, "matched", b.Matched, "value", logValue)

	converted, err := ConvertString(value, b.Input.Type)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", b.Input.Name, err)
	}
	return converted, nil
}
