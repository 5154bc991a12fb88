package client

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type callerIPKey struct{}

// WithCallerIP returns a context carrying the address of the end user on
// whose behalf a message is created.
func WithCallerIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, callerIPKey{}, ip)
}

// CallerIP returns the address stored by WithCallerIP.
func CallerIP(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(callerIPKey{}).(string)
	return ip, ok && ip != ""
}

// RemoteIP extracts the client address of an inbound HTTP request, for use
// with WithCallerIP. The port is dropped.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
