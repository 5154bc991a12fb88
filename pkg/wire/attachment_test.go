package wire

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleslv/premium-api/pkg/apierr"
)

func TestValidateAttachments(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("ok"), 0o600))
	missing := filepath.Join(dir, "missing.txt")

	valid := Attachment{Path: good, Type: "text/plain", Name: "Doc"}

	tests := []struct {
		name    string
		files   []Attachment
		want    *apierr.Error
		mention string
	}{
		{name: "nil list", files: nil},
		{name: "all valid", files: []Attachment{valid, valid}},
		{
			name:  "missing type",
			files: []Attachment{{Path: good, Name: "Doc"}},
			want:  apierr.ErrMalformedAttachmentList,
		},
		{
			name:  "missing name after valid entries",
			files: []Attachment{valid, valid, {Path: good, Type: "text/plain"}},
			want:  apierr.ErrMalformedAttachmentList,
		},
		{
			name:    "unreadable path",
			files:   []Attachment{valid, {Path: missing, Type: "text/plain", Name: "Doc"}},
			want:    apierr.ErrAttachmentFileNotReadable,
			mention: missing,
		},
		{
			name:    "directory is not a file",
			files:   []Attachment{{Path: dir, Type: "text/plain", Name: "Doc"}},
			want:    apierr.ErrAttachmentFileNotReadable,
			mention: dir,
		},
		{
			name: "first failure wins",
			files: []Attachment{
				{Path: missing, Type: "text/plain", Name: "Doc"},
				{Path: good},
			},
			want: apierr.ErrAttachmentFileNotReadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttachments(tt.files)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			if tt.mention != "" {
				assert.True(t, strings.Contains(err.Error(), tt.mention), "error should name %s: %v", tt.mention, err)
			}
		})
	}
}
