package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/saleslv/premium-api/pkg/wire"
)

// errUploadUnsupported is returned when a multipart request reaches the
// stream tier.
var errUploadUnsupported = errors.New("stream transport cannot send file uploads")

// streamBackend opens the URL as a plain stream and reports the response
// metadata as header lines, the way a stream wrapper would expose them.
type streamBackend struct {
	opts      Options
	transport *http.Transport
}

func newStreamBackend(opts Options) *streamBackend {
	tr := newHTTPTransport(opts)
	tr.DisableCompression = true
	return &streamBackend{opts: opts, transport: tr}
}

func (b *streamBackend) Tier() Tier           { return TierStream }
func (b *streamBackend) SupportsUpload() bool { return false }

func (b *streamBackend) Do(ctx context.Context, req *wire.Request) (*Result, error) {
	if req.Multipart {
		return nil, errUploadUnsupported
	}

	httpReq, err := newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept-Encoding", acceptEncoding)

	var lines []string
	client := &http.Client{
		Timeout:   b.opts.Timeout,
		Transport: b.transport,
		CheckRedirect: limitRedirects(b.opts.MaxRedirects, func(hop *http.Response) {
			lines = append(lines, headerLines(hop)...)
		}),
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}
	if isGzip(resp.Header.Get("Content-Encoding")) {
		if body, err = gunzip(body); err != nil {
			return nil, err
		}
	}

	lines = append(lines, headerLines(resp)...)
	return &Result{Lines: lines, Body: body}, nil
}

// headerLines renders a response head as a status line followed by one
// "Name: value" line per header value, names sorted.
func headerLines(resp *http.Response) []string {
	lines := []string{statusLine(resp)}
	for _, name := range sortedKeys(resp.Header) {
		for _, v := range resp.Header[name] {
			lines = append(lines, name+": "+v)
		}
	}
	return lines
}
