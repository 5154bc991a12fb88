package wire

import (
	"bytes"
	"strconv"
	"strings"
)

// Synthetic header names carrying the parsed status line.
const (
	ResponseCodeHeader   = "Response Code"
	ResponseStatusHeader = "Response Status"
)

const statusLinePrefix = "HTTP/"

// Response is a decomposed HTTP response.
type Response struct {
	StatusCode int
	Status     string
	// Headers holds the headers that followed the final status line, plus
	// the synthetic Response Code and Response Status entries.
	Headers *Headers
	Body    []byte
}

// BodyString returns the body as text.
func (r *Response) BodyString() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

var newlines = strings.NewReplacer("\r\n", "\n", "\n\r", "\n", "\r", "\n")

// ParseBlock decodes a raw response: status line, headers, a blank line and
// the body. Consecutive header sections produced by a redirect chain are
// treated as one section, so only the last status block is kept.
//
// Without a blank line the whole input is returned as the body and no
// headers are reported.
func ParseBlock(raw []byte) *Response {
	head, body, ok := SplitHead(raw)
	if !ok {
		return &Response{Headers: NewHeaders(), Body: raw}
	}

	sections := []string{string(head)}
	for bytes.HasPrefix(body, []byte(statusLinePrefix)) {
		next, rest, ok := SplitHead(body)
		if !ok {
			break
		}
		sections = append(sections, string(next))
		body = rest
	}

	lines := strings.Split(newlines.Replace(strings.Join(sections, "\n")), "\n")
	resp := ParseLines(lines)
	resp.Body = body
	return resp
}

// ParseLines decodes an ordered list of raw header lines. Every line that
// starts with a status line marker discards what was collected before it.
// An indented line, or one without a colon, continues the previous header's
// value; before any header has been seen in the current status block it is
// ignored.
func ParseLines(lines []string) *Response {
	resp := &Response{Headers: NewHeaders()}
	current := ""

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, statusLinePrefix) {
			resp.StatusCode, resp.Status = parseStatusLine(line)
			resp.Headers = NewHeaders()
			resp.Headers.Set(ResponseCodeHeader, strconv.Itoa(resp.StatusCode))
			resp.Headers.Set(ResponseStatusHeader, resp.Status)
			current = ""
			continue
		}

		folded := line[0] == ' ' || line[0] == '\t'
		if name, value, ok := strings.Cut(line, ":"); ok && !folded {
			current = strings.TrimSpace(name)
			resp.Headers.Set(current, strings.TrimSpace(value))
			continue
		}

		if current == "" {
			continue
		}
		resp.Headers.Append(current, " "+strings.TrimSpace(line))
	}

	return resp
}

func parseStatusLine(line string) (int, string) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(parts) < 2 {
		return 0, ""
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ""
	}
	if len(parts) < 3 {
		return code, ""
	}
	return code, strings.TrimSpace(parts[2])
}

// SplitHead finds the first blank line in raw and returns what precedes it
// and what follows it. Line terminators are \r\n, \n\r, \r or \n.
func SplitHead(raw []byte) (head, body []byte, ok bool) {
	lineStart := 0
	for i := 0; i < len(raw); {
		n := terminatorLen(raw, i)
		if n == 0 {
			i++
			continue
		}
		if i == lineStart && lineStart > 0 {
			return raw[:lineStart], raw[i+n:], true
		}
		i += n
		lineStart = i
	}
	return nil, nil, false
}

func terminatorLen(b []byte, i int) int {
	switch b[i] {
	case '\r':
		if i+1 < len(b) && b[i+1] == '\n' {
			return 2
		}
		return 1
	case '\n':
		if i+1 < len(b) && b[i+1] == '\r' {
			return 2
		}
		return 1
	}
	return 0
}
