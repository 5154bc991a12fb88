package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestZerologAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	z := NewZerologAdapterWithLogger(zerolog.New(&buf))

	z.Warn("request failed",
		String("url", "https://premium.example.com/"),
		Int("code", 7),
		Bool("retry", false),
		Duration("took", 2*time.Second),
		Err(errors.New("refused")),
		Any("extra", []string{"a"}),
	)

	got := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"url":"https://premium.example.com/"`,
		`"code":7`,
		`"retry":false`,
		`"error":"refused"`,
		`"extra":["a"]`,
		`"message":"request failed"`,
	} {
		if !bytes.Contains([]byte(got), []byte(want)) {
			t.Errorf("output %s missing %s", got, want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	z, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	z.Debug("hidden")
	z.Info("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	z.Error("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("expected error entry, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{" WARN ", zerolog.WarnLevel, false},
		{"loud", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Debug("x", String("k", "v"))
	l.Error("y")
}
