package client

import (
	"github.com/saleslv/premium-api/pkg/log"
	"github.com/saleslv/premium-api/pkg/transport"
)

// Option configures optional behavior of a Client.
type Option func(*options)

type options struct {
	logger     log.Logger
	caps       transport.Capabilities
	factory    transport.Factory
	httpClient transport.HTTPClient
	remoteAddr func() string
}

func defaultOptions() options {
	return options{
		logger:  log.NewNoopLogger(),
		factory: transport.NewBackend,
	}
}

// WithLogger sets a logger. If not provided, nothing is logged.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCapabilities replaces the configuration-driven capability check used
// to pick the transport tier.
func WithCapabilities(caps transport.Capabilities) Option {
	return func(o *options) {
		o.caps = caps
	}
}

// WithBackendFactory replaces the function that builds the backend for the
// selected tier.
func WithBackendFactory(f transport.Factory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

// WithHTTPClient sets the client used by the native tier.
// *http.Client satisfies transport.HTTPClient.
func WithHTTPClient(c transport.HTTPClient) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithRemoteAddr sets the fallback source of the IP field for MessagesCreate,
// consulted when neither the fields nor the context carry one.
func WithRemoteAddr(fn func() string) Option {
	return func(o *options) {
		o.remoteAddr = fn
	}
}
