package print

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/specialistvlad/plugbuild/internal/plugin"
)

// Console writes formatted messages to a stream. Messages below its level
// are dropped.
type Console struct {
	Name   string
	Level  slog.Level
	Layout *Layout

	mu            sync.Mutex
	w             io.Writer
	headerWritten bool
}

// NewConsole creates a console writing to w. A nil layout prints messages
// as they are.
func NewConsole(name string, w io.Writer, level slog.Level, layout *Layout) *Console {
	return &Console{Name: name, Level: level, Layout: layout, w: w}
}

// Print writes one message.
func (c *Console) Print(level slog.Level, msg string) error {
	if level < c.Level {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	line := msg
	if c.Layout != nil {
		if !c.headerWritten && c.Layout.Header != "" {
			if _, err := fmt.Fprintln(c.w, c.Layout.Header); err != nil {
				return err
			}
		}
		line = c.Layout.Format(level, msg)
	}
	c.headerWritten = true
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, err := io.WriteString(c.w, line)
	return err
}

// consoleBuilder collects the console's inputs.
type consoleBuilder struct {
	target string
	name   string
	level  slog.Level
	layout *Layout

	// streams resolves target names; tests swap it.
	streams map[string]io.Writer
}

func (b *consoleBuilder) Inputs() []plugin.InputSpec {
	return []plugin.InputSpec{
		plugin.Field(&b.target, plugin.Attr("target").WithAliases("stream").WithDefault("stdout")),
		plugin.Field(&b.name, plugin.Attr("name")),
		plugin.Field(&b.level, plugin.Attr("level").WithDefault("info")),
		plugin.Field(&b.layout, plugin.Element("layout")),
	}
}

func (b *consoleBuilder) Build() (any, error) {
	w, ok := b.streams[strings.ToLower(b.target)]
	if !ok {
		return nil, fmt.Errorf("unknown console target %q, expected stdout or stderr", b.target)
	}
	slog.Debug("Creating console.", "name", b.name, "target", b.target, "level", b.level)
	return NewConsole(b.name, w, b.level, b.layout), nil
}

func consoleDescriptor(streams map[string]io.Writer) *plugin.Descriptor {
	return &plugin.Descriptor{
		Name: "console",
		Type: reflect.TypeFor[*Console](),
		NewBuilder: func() plugin.Builder {
			return &consoleBuilder{streams: streams}
		},
	}
}

func defaultStreams() map[string]io.Writer {
	return map[string]io.Writer{"stdout": os.Stdout, "stderr": os.Stderr}
}
