// Package http_client provides a configurable *http.Client component.
package http_client

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/specialistvlad/plugbuild/internal/plugin"
	"github.com/specialistvlad/plugbuild/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the http_client component.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&plugin.Descriptor{
		Name: "http_client",
		Type: reflect.TypeFor[*http.Client](),
		Factory: &plugin.Factory{
			Params: []plugin.InputSpec{
				plugin.Param[time.Duration](plugin.Attr("timeout").WithAliases("timeout_after").WithDefault("30s")),
				plugin.Param[bool](plugin.Attr("insecure_skip_verify")),
				plugin.Param[int](plugin.Attr("max_idle_conns").WithDefault("100")),
			},
			Fn: func(args []any) (any, error) {
				return NewClient(
					plugin.Arg[time.Duration](args, 0),
					plugin.Arg[bool](args, 1),
					plugin.Arg[int](args, 2),
				)
			},
		},
	})
}

// NewClient creates an HTTP client with its own connection pool.
func NewClient(timeout time.Duration, insecureSkipVerify bool, maxIdleConns int) (*http.Client, error) {
	if timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", timeout)
	}
	if maxIdleConns < 0 {
		return nil, fmt.Errorf("max_idle_conns must not be negative, got %d", maxIdleConns)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if insecureSkipVerify {
		slog.Warn("Skipping TLS certificate verification for http_client.")
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}
