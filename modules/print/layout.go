package print

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/specialistvlad/plugbuild/internal/plugin"
)

// Layout formats a message according to a pattern. Recognized conversions:
//
//	%m  the message
//	%p  the level
//	%d  the time, RFC 3339
//	%n  a newline
//	%%  a percent sign
//
// Anything else is copied as is.
type Layout struct {
	Pattern string
	Header  string

	now func() time.Time
}

// NewLayout creates a layout. An empty pattern is rejected.
func NewLayout(pattern, header string) (*Layout, error) {
	if pattern == "" {
		return nil, errors.New("layout pattern must not be empty")
	}
	return &Layout{Pattern: pattern, Header: header, now: time.Now}, nil
}

// Format renders one message.
func (l *Layout) Format(level slog.Level, msg string) string {
	var sb strings.Builder
	p := l.Pattern
	for i := 0; i < len(p); i++ {
		if p[i] != '%' || i+1 == len(p) {
			sb.WriteByte(p[i])
			continue
		}
		i++
		switch p[i] {
		case 'm':
			sb.WriteString(msg)
		case 'p':
			sb.WriteString(level.String())
		case 'd':
			sb.WriteString(l.now().Format(time.RFC3339))
		case 'n':
			sb.WriteByte('\n')
		case '%':
			sb.WriteByte('%')
		default:
			sb.WriteByte('%')
			sb.WriteByte(p[i])
		}
	}
	return sb.String()
}

func layoutDescriptor() *plugin.Descriptor {
	return &plugin.Descriptor{
		Name:    "layout",
		Aliases: []string{"PatternLayout"},
		Type:    reflect.TypeFor[*Layout](),
		Factory: &plugin.Factory{
			Params: []plugin.InputSpec{
				plugin.Param[string](plugin.Attr("pattern").AsRequired()),
				plugin.Param[string](plugin.Attr("header")),
			},
			Fn: func(args []any) (any, error) {
				return NewLayout(plugin.Arg[string](args, 0), plugin.Arg[string](args, 1))
			},
		},
	}
}
