package wire

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/saleslv/premium-api/pkg/apierr"
)

// Content types produced by Encode.
const (
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// RequestSpec describes one outgoing call before encoding.
type RequestSpec struct {
	URL string
	// Params are sent as the request body. Nil or empty means no body.
	Params *Params
	// Headers override the defaults on name collision.
	Headers *Headers
	// Files switch the body to multipart. They must have passed
	// ValidateAttachments.
	Files []Attachment
}

// Request is an encoded call, ready for a transport.
type Request struct {
	Method string
	URL    *url.URL
	// Header lists defaults, then caller overrides, then the forced
	// encoding headers; the last write for a name wins.
	Header    *Headers
	Body      []byte
	Multipart bool
}

// Encode builds the request described by spec. userAgent is sent unless
// the caller overrides it.
func Encode(spec RequestSpec, userAgent string) (*Request, error) {
	u, err := url.Parse(spec.URL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse url: %q has no host", spec.URL)
	}

	req := &Request{Method: http.MethodGet, URL: u}

	var contentType string
	switch {
	case len(spec.Files) > 0:
		body, ct, err := encodeMultipart(spec.Params, spec.Files)
		if err != nil {
			return nil, err
		}
		req.Method = http.MethodPost
		req.Body = body
		req.Multipart = true
		contentType = ct
	case spec.Params.Len() > 0:
		req.Method = http.MethodPost
		req.Body = []byte(EncodeForm(spec.Params))
		contentType = ContentTypeForm
	}

	req.Header = BuildHeaders(u, userAgent, spec.Headers, contentType, len(req.Body))
	return req, nil
}

// BuildHeaders assembles outgoing headers: Host, Connection and User-Agent
// defaults, then overrides, then Content-Type and Content-Length when a body
// is present.
func BuildHeaders(u *url.URL, userAgent string, overrides *Headers, contentType string, contentLength int) *Headers {
	h := NewHeaders()
	h.Set("Host", u.Host)
	h.Set("Connection", "close")
	h.Set("User-Agent", userAgent)

	h.Merge(overrides)

	if contentType != "" {
		h.Set("Content-Type", contentType)
		h.Set("Content-Length", strconv.Itoa(contentLength))
	}
	return h
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(p *Params, files []Attachment) ([]byte, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for _, n := range p.Names() {
		values, list, _ := p.Get(n)
		field := n
		if list {
			field += listSuffix
		}
		for _, v := range values {
			if err := writer.WriteField(field, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", n, err)
			}
		}
	}

	for _, f := range files {
		if err := writeFilePart(writer, f); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart: %w", err)
	}
	return body.Bytes(), writer.FormDataContentType(), nil
}

func writeFilePart(writer *multipart.Writer, f Attachment) error {
	fh, err := os.Open(f.Path)
	if err != nil {
		return apierr.Newf(apierr.AttachmentFileNotReadable, "Attachment file is not readable: %s", f.Path)
	}
	defer fh.Close()

	name := quoteEscaper.Replace(f.Name)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, name, name))
	header.Set("Content-Type", f.Type)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create part %s: %w", f.Name, err)
	}
	if _, err := io.Copy(part, fh); err != nil {
		return apierr.Newf(apierr.AttachmentFileNotReadable, "Attachment file is not readable: %s", f.Path)
	}
	return nil
}
