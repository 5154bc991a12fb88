package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/saleslv/premium-api/pkg/wire"
)

// nativeBackend runs requests through net/http.
type nativeBackend struct {
	client HTTPClient
}

func newNativeBackend(opts Options) *nativeBackend {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout:       opts.Timeout,
			Transport:     newHTTPTransport(opts),
			CheckRedirect: limitRedirects(opts.MaxRedirects, nil),
		}
	}
	return &nativeBackend{client: client}
}

func (b *nativeBackend) Tier() Tier           { return TierNative }
func (b *nativeBackend) SupportsUpload() bool { return true }

func (b *nativeBackend) Do(ctx context.Context, req *wire.Request) (*Result, error) {
	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if !resp.Uncompressed && isGzip(resp.Header.Get("Content-Encoding")) {
		if body, err = gunzip(body); err != nil {
			return nil, err
		}
	}

	parsed := &wire.Response{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp),
		Headers:    wire.NewHeaders(),
		Body:       body,
	}
	parsed.Headers.Set(wire.ResponseCodeHeader, strconv.Itoa(parsed.StatusCode))
	parsed.Headers.Set(wire.ResponseStatusHeader, parsed.Status)
	for _, name := range sortedKeys(resp.Header) {
		parsed.Headers.Set(name, strings.Join(resp.Header[name], ", "))
	}

	return &Result{Parsed: parsed}, nil
}

// newHTTPRequest converts an encoded request. Host, Connection and
// Content-Length map onto the request fields net/http owns.
func newHTTPRequest(ctx context.Context, req *wire.Request) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Each(func(name, value string) {
		switch strings.ToLower(name) {
		case "host":
			httpReq.Host = value
		case "connection":
			httpReq.Close = strings.EqualFold(value, "close")
		case "content-length":
		default:
			httpReq.Header.Set(name, value)
		}
	})
	return httpReq, nil
}

func newHTTPTransport(opts Options) *http.Transport {
	dialer := &net.Dialer{Timeout: opts.ConnectTimeout}
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: opts.ConnectTimeout,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: !opts.VerifyTLS}, //nolint:gosec // opt-out is explicit
		DisableKeepAlives:   true,
	}
}

// limitRedirects stops after max hops. onHop, when set, sees every redirect
// response before the next request is sent.
func limitRedirects(max int, onHop func(*http.Response)) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		if onHop != nil && req.Response != nil {
			onHop(req.Response)
		}
		return nil
	}
}

func statusText(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}

func sortedKeys(h http.Header) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
