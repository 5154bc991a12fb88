package transport

import (
	"bufio"
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/saleslv/premium-api/pkg/wire"
)

// socketBackend speaks HTTP/1.0 over a raw connection and hands back the
// response bytes undigested, prefixed by the header sections of any redirect
// hops it followed.
type socketBackend struct {
	opts Options
	now  func() time.Time
}

func newSocketBackend(opts Options) *socketBackend {
	return &socketBackend{opts: opts, now: time.Now}
}

func (b *socketBackend) Tier() Tier           { return TierSocket }
func (b *socketBackend) SupportsUpload() bool { return true }

func (b *socketBackend) Do(ctx context.Context, req *wire.Request) (*Result, error) {
	deadline := b.now().Add(b.opts.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	var block bytes.Buffer
	current := req
	for hop := 0; ; hop++ {
		raw, err := b.exchange(ctx, current, deadline)
		if err != nil {
			return nil, err
		}

		head, _, ok := wire.SplitHead(raw)
		if !ok {
			block.Write(raw)
			break
		}
		resp := wire.ParseBlock(raw)

		if location := resp.Headers.Get("Location"); isRedirect(resp.StatusCode) && location != "" {
			if hop >= b.opts.MaxRedirects {
				return nil, fmt.Errorf("stopped after %d redirects", b.opts.MaxRedirects)
			}
			next, err := redirectRequest(current, resp.StatusCode, location)
			if err != nil {
				return nil, err
			}
			block.Write(head)
			block.WriteString("\r\n")
			current = next
			continue
		}

		body := resp.Body
		if isGzip(resp.Headers.Get("Content-Encoding")) {
			if body, err = gunzip(body); err != nil {
				return nil, err
			}
		}
		block.Write(head)
		block.WriteString("\r\n")
		block.Write(body)
		break
	}

	return &Result{Block: block.Bytes()}, nil
}

// exchange writes one request on a fresh connection and reads until the
// server closes it.
func (b *socketBackend) exchange(ctx context.Context, req *wire.Request, deadline time.Time) ([]byte, error) {
	conn, err := b.dial(ctx, req.URL, deadline)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	w := bufio.NewWriter(conn)
	writeRequest(w, req)
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("write request: %w", err)
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return raw, nil
}

func (b *socketBackend) dial(ctx context.Context, u *url.URL, deadline time.Time) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: b.opts.ConnectTimeout, Deadline: deadline}
	addr := hostPort(u)

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	if u.Scheme != "https" {
		return conn, nil
	}

	tlsConn := tls.Client(conn, &tls.Config{
		ServerName:         u.Hostname(),
		InsecureSkipVerify: !b.opts.VerifyTLS, //nolint:gosec // opt-out is explicit
	})
	hsCtx, cancel := context.WithTimeout(ctx, b.opts.ConnectTimeout)
	defer cancel()
	if err := tlsConn.HandshakeContext(hsCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake with %s: %w", addr, err)
	}
	return tlsConn, nil
}

func writeRequest(w *bufio.Writer, req *wire.Request) {
	fmt.Fprintf(w, "%s %s HTTP/1.0\r\n", req.Method, req.URL.RequestURI())
	req.Header.Each(func(name, value string) {
		fmt.Fprintf(w, "%s: %s\r\n", name, value)
	})
	if _, ok := req.Header.Lookup("Accept-Encoding"); !ok {
		fmt.Fprintf(w, "Accept-Encoding: %s\r\n", acceptEncoding)
	}
	w.WriteString("\r\n")
	w.Write(req.Body)
}

func hostPort(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}
	if u.Scheme == "https" {
		return net.JoinHostPort(u.Hostname(), "443")
	}
	return net.JoinHostPort(u.Hostname(), "80")
}

func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// redirectRequest builds the follow-up request. 301, 302 and 303 turn into a
// bodiless GET; 307 and 308 resend the original method and body.
func redirectRequest(prev *wire.Request, code int, location string) (*wire.Request, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse redirect location %q: %w", location, err)
	}
	u := prev.URL.ResolveReference(ref)

	next := &wire.Request{
		Method:    prev.Method,
		URL:       u,
		Header:    prev.Header.Clone(),
		Body:      prev.Body,
		Multipart: prev.Multipart,
	}
	next.Header.Set("Host", u.Host)

	if code != http.StatusTemporaryRedirect && code != http.StatusPermanentRedirect && prev.Method != http.MethodGet {
		next.Method = http.MethodGet
		next.Body = nil
		next.Multipart = false
		next.Header.Del("Content-Type")
		next.Header.Del("Content-Length")
	}
	return next, nil
}

// statusLine renders the first line of a response the way it appears on the wire.
func statusLine(resp *http.Response) string {
	return strings.TrimSpace(resp.Proto + " " + strconv.Itoa(resp.StatusCode) + " " + statusText(resp))
}
