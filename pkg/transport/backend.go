package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/saleslv/premium-api/pkg/wire"
)

// Product is the product token of the User-Agent header.
const Product = "SalesLV/Premium-API"

// Default limits shared by all tiers.
const (
	DefaultConnectTimeout = 60 * time.Second
	DefaultTimeout        = 120 * time.Second
	DefaultMaxRedirects   = 5
)

// HTTPClient abstracts HTTP request execution for the native tier.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// Options configure a backend.
type Options struct {
	ConnectTimeout time.Duration
	Timeout        time.Duration
	MaxRedirects   int
	// VerifyTLS enables certificate verification for https URLs.
	VerifyTLS bool
	// HTTPClient replaces the client built by the native tier. Timeouts,
	// redirects and TLS settings are then the caller's responsibility.
	HTTPClient HTTPClient
}

// DefaultOptions returns Options with the default timeouts and verification on.
func DefaultOptions() Options {
	return Options{
		ConnectTimeout: DefaultConnectTimeout,
		Timeout:        DefaultTimeout,
		MaxRedirects:   DefaultMaxRedirects,
		VerifyTLS:      true,
	}
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = DefaultConnectTimeout
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxRedirects < 0 {
		o.MaxRedirects = 0
	}
	return o
}

// Backend performs one request/response cycle.
type Backend interface {
	Tier() Tier
	// SupportsUpload reports whether multipart requests can be sent.
	SupportsUpload() bool
	// Do sends req and returns what came back. A non-nil error means the
	// exchange failed at the transport level.
	Do(ctx context.Context, req *wire.Request) (*Result, error)
}

// Factory builds the backend for a tier.
type Factory func(t Tier, opts Options) (Backend, error)

// NewBackend is the default Factory.
func NewBackend(t Tier, opts Options) (Backend, error) {
	opts = opts.withDefaults()
	switch t {
	case TierNative:
		return newNativeBackend(opts), nil
	case TierSocket:
		return newSocketBackend(opts), nil
	case TierStream:
		return newStreamBackend(opts), nil
	}
	return nil, fmt.Errorf("no backend for tier %s", t)
}

// UserAgent identifies the library, its version and the tier in use.
func UserAgent(version string, t Tier) string {
	return fmt.Sprintf("%s/%s (%s)", Product, version, t)
}

// Result is the raw outcome of one exchange. Exactly one of Block, Lines or
// Parsed is set, depending on the tier.
type Result struct {
	// Block is a raw status line, headers, blank line and body, with the
	// header sections of redirect hops in front.
	Block []byte
	// Lines are raw header lines in arrival order, redirect hops included;
	// the body is in Body.
	Lines []string
	Body  []byte
	// Parsed is an already structured response.
	Parsed *wire.Response
}

// Response decomposes the result, running the header parser when needed.
func (r *Result) Response() *wire.Response {
	switch {
	case r == nil:
		return nil
	case r.Parsed != nil:
		return r.Parsed
	case r.Lines != nil:
		resp := wire.ParseLines(r.Lines)
		resp.Body = r.Body
		return resp
	}
	return wire.ParseBlock(r.Block)
}
