package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlock_Simple(t *testing.T) {
	raw := "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nX-Count:  3 \r\n\r\n{\"ErrNo\":0}"

	resp := ParseBlock([]byte(raw))

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, "application/json", resp.Headers.Get("content-type"))
	assert.Equal(t, "3", resp.Headers.Get("X-Count"))
	assert.Equal(t, "200", resp.Headers.Get(ResponseCodeHeader))
	assert.Equal(t, "OK", resp.Headers.Get(ResponseStatusHeader))
	assert.Equal(t, `{"ErrNo":0}`, resp.BodyString())
}

func TestParseBlock_RedirectKeepsOnlyFinalBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "status lines in one header section",
			raw: "HTTP/1.1 301 Moved Permanently\nLocation: https://example.com/b\nX-Old: yes\n" +
				"HTTP/1.1 200 OK\nContent-Type: text/plain\n\nbody",
		},
		{
			name: "one header section per hop",
			raw: "HTTP/1.1 301 Moved Permanently\r\nLocation: https://example.com/b\r\nX-Old: yes\r\n\r\n" +
				"HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ParseBlock([]byte(tt.raw))

			assert.Equal(t, 200, resp.StatusCode)
			assert.Equal(t, "OK", resp.Status)
			assert.Equal(t, "text/plain", resp.Headers.Get("Content-Type"))
			_, hasOld := resp.Headers.Lookup("X-Old")
			assert.False(t, hasOld, "headers of the redirect hop must be dropped")
			_, hasLocation := resp.Headers.Lookup("Location")
			assert.False(t, hasLocation)
			assert.Equal(t, "body", resp.BodyString())
		})
	}
}

func TestParseBlock_ContinuationLine(t *testing.T) {
	raw := "HTTP/1.0 200 OK\nX-Long: first part\n   second part\nX-Next: n\n\n"

	resp := ParseBlock([]byte(raw))

	assert.Equal(t, "first part second part", resp.Headers.Get("X-Long"))
	assert.Equal(t, "n", resp.Headers.Get("X-Next"))
	assert.Equal(t, []string{ResponseCodeHeader, ResponseStatusHeader, "X-Long", "X-Next"}, resp.Headers.Names())
}

func TestParseBlock_NoBlankLine(t *testing.T) {
	raw := []byte("just a body without headers")

	resp := ParseBlock(raw)

	assert.Equal(t, 0, resp.StatusCode)
	assert.Equal(t, 0, resp.Headers.Len())
	assert.Equal(t, raw, resp.Body)
}

func TestParseBlock_LineEndingVariants(t *testing.T) {
	for name, sep := range map[string]string{"crlf": "\r\n", "lfcr": "\n\r", "cr": "\r", "lf": "\n"} {
		t.Run(name, func(t *testing.T) {
			raw := "HTTP/1.1 404 Not Found" + sep + "A: 1" + sep + sep + "{}"
			resp := ParseBlock([]byte(raw))

			assert.Equal(t, 404, resp.StatusCode)
			assert.Equal(t, "Not Found", resp.Status)
			assert.Equal(t, "1", resp.Headers.Get("A"))
			assert.Equal(t, "{}", resp.BodyString())
		})
	}
}

func TestParseBlock_BinaryBodyUntouched(t *testing.T) {
	body := []byte{0x1f, 0x8b, '\r', '\n', '\r', 0x00}
	raw := append([]byte("HTTP/1.1 200 OK\r\n\r\n"), body...)

	resp := ParseBlock(raw)

	assert.Equal(t, body, resp.Body)
}

func TestParseLines(t *testing.T) {
	lines := []string{
		"HTTP/1.0 302 Found",
		"Location: /next",
		"HTTP/1.0 200 OK",
		"Server: premium",
		"Set-Cookie: a=b;",
		" path=/",
	}

	resp := ParseLines(lines)

	require.NotNil(t, resp)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "premium", resp.Headers.Get("Server"))
	assert.Equal(t, "a=b; path=/", resp.Headers.Get("Set-Cookie"))
	assert.Empty(t, resp.Headers.Get("Location"))
}

func TestParseLines_ContinuationBeforeAnyHeaderIsIgnored(t *testing.T) {
	resp := ParseLines([]string{"HTTP/1.1 200 OK", "orphan text", "A: b"})

	assert.Equal(t, "b", resp.Headers.Get("A"))
	assert.Equal(t, 3, resp.Headers.Len())
}

func TestParseLines_IndentedLineWithColonContinues(t *testing.T) {
	resp := ParseLines([]string{"HTTP/1.1 200 OK", "X-Note: see", "\thttp://example.com/a"})

	assert.Equal(t, "see http://example.com/a", resp.Headers.Get("X-Note"))
	_, hasBogus := resp.Headers.Lookup("http")
	assert.False(t, hasBogus)
}

func TestParseLines_ValueWithColon(t *testing.T) {
	resp := ParseLines([]string{"HTTP/1.1 200 OK", "Date: Mon, 08 Feb 2010 10:00:00 GMT"})

	assert.Equal(t, "Mon, 08 Feb 2010 10:00:00 GMT", resp.Headers.Get("date"))
}

func TestParseStatusLine(t *testing.T) {
	tests := []struct {
		line   string
		code   int
		status string
	}{
		{"HTTP/1.1 200 OK", 200, "OK"},
		{"HTTP/1.1 503 Service Temporarily Unavailable", 503, "Service Temporarily Unavailable"},
		{"HTTP/2 204", 204, ""},
		{"HTTP/1.1", 0, ""},
		{"HTTP/1.1 abc OK", 0, ""},
	}

	for _, tt := range tests {
		code, status := parseStatusLine(tt.line)
		assert.Equal(t, tt.code, code, tt.line)
		assert.Equal(t, tt.status, status, tt.line)
	}
}
