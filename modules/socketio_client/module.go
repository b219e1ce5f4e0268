// Package socketio_client provides a socket.io client component. The client
// is built disconnected; callers decide when to call Connect.
package socketio_client

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"time"

	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/registry"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the socketio_client component.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&plugin.Descriptor{
		Name:    "socketio_client",
		Aliases: []string{"socketio"},
		Type:    reflect.TypeFor[*socket.Socket](),
		NewBuilder: func() plugin.Builder {
			return &clientBuilder{}
		},
	})
}

type clientBuilder struct {
	url                string
	namespace          string
	insecureSkipVerify bool
	timeout            time.Duration
	reconnection       bool
}

func (b *clientBuilder) Inputs() []plugin.InputSpec {
	return []plugin.InputSpec{
		plugin.Field(&b.url, plugin.Attr("url").WithAliases("uri").AsRequired()),
		plugin.Field(&b.namespace, plugin.Attr("namespace").WithDefault("/")),
		plugin.Field(&b.insecureSkipVerify, plugin.Attr("insecure_skip_verify")),
		plugin.Field(&b.timeout, plugin.Attr("timeout").WithDefault("15s")),
		plugin.Field(&b.reconnection, plugin.Attr("reconnection").WithDefault("true")),
	}
}

func (b *clientBuilder) Build() (any, error) {
	parsedURL, err := url.Parse(b.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("url %q must include a scheme and a host", b.url)
	}
	if b.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", b.timeout)
	}

	logger := slog.With("component", "socketio_client", "url", b.url)

	opts := socket.DefaultOptions()
	opts.SetAutoConnect(false)
	opts.SetPath(parsedURL.Path)
	if b.insecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))
	opts.SetTimeout(b.timeout)
	opts.SetReconnection(b.reconnection)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(b.namespace, opts)
	logger.Debug("Created socket.io client.", "namespace", b.namespace)
	return io, nil
}
