package transport

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"
)

const acceptEncoding = "gzip"

func isGzip(contentEncoding string) bool {
	return strings.EqualFold(strings.TrimSpace(contentEncoding), "gzip")
}

func gunzip(body []byte) ([]byte, error) {
	if len(body) == 0 {
		return body, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("open gzip body: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("read gzip body: %w", err)
	}
	return out, nil
}
